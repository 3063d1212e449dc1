// Package clients provides the instrumented HTTP client used for downstream services.
package clients

import "errors"

// Client errors are infrastructure failures; the ACL layer translates them
// into domain dependency errors.
var (
	// ErrCircuitOpen is returned without touching the network while the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps the final transport error after all attempts.
	ErrRequestFailed = errors.New("downstream request failed")
)
