// Package mocks holds testify mocks of the port interfaces, in the shape
// mockery emits (see .mockery.yaml at the repository root).
package mocks
