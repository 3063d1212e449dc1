// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation indicates caller input failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated indicates the operation requires a verified caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrDependency indicates a downstream dependency (upstream API, store) failed.
	ErrDependency = errors.New("dependency failure")
)

// FailureKind classifies dependency failures for logging and metrics.
// Callers only ever see a generic internal error; the kind stays server-side.
type FailureKind int

const (
	// FailureNetwork is a transport-level failure: connection refused,
	// timeout, canceled context, or an open circuit breaker.
	FailureNetwork FailureKind = iota + 1

	// FailureUpstreamStatus is a non-success HTTP status from the upstream provider.
	FailureUpstreamStatus

	// FailureMalformedUpstream is an upstream body that could not be decoded
	// or an item missing required fields.
	FailureMalformedUpstream

	// FailureStore is a favorites store read or write failure.
	FailureStore
)

// String returns the metric label for the kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureUpstreamStatus:
		return "upstream_status"
	case FailureMalformedUpstream:
		return "malformed_upstream"
	case FailureStore:
		return "store"
	default:
		return "unknown"
	}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnauthenticatedError is returned when an operation that needs a caller
// identity is invoked without one.
type UnauthenticatedError struct {
	Operation string
}

// Error implements the error interface.
func (e *UnauthenticatedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("operation %q requires an authenticated caller", e.Operation)
	}

	return "authenticated caller required"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// NewUnauthenticatedError creates an unauthenticated error for the operation.
func NewUnauthenticatedError(operation string) error {
	return &UnauthenticatedError{Operation: operation}
}

// DependencyError describes a failed call to a downstream dependency.
// The Cause is kept for server-side logs; it must never reach the caller.
type DependencyError struct {
	Kind       FailureKind
	Dependency string
	Operation  string
	Cause      error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	msg := fmt.Sprintf("%s %s failed (%s)", e.Dependency, e.Operation, e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *DependencyError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the ErrDependency sentinel.
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}

// NewDependencyError creates a dependency error of the given kind.
func NewDependencyError(kind FailureKind, dependency, operation string, cause error) error {
	return &DependencyError{
		Kind:       kind,
		Dependency: dependency,
		Operation:  operation,
		Cause:      cause,
	}
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthenticated checks if an error is an unauthenticated error.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsDependency checks if an error is a dependency failure.
func IsDependency(err error) bool {
	return errors.Is(err, ErrDependency)
}

// FailureKindOf extracts the failure kind from a dependency error chain.
// Returns false if err is not a DependencyError.
func FailureKindOf(err error) (FailureKind, bool) {
	var depErr *DependencyError
	if errors.As(err, &depErr) {
		return depErr.Kind, true
	}

	return 0, false
}
