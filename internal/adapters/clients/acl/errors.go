package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// dependencyName labels every failure raised by this package.
const dependencyName = "quotable"

// maxErrorBodyBytes bounds how much of an error body is kept for logs.
const maxErrorBodyBytes = 512

// errMissingField marks an upstream item without a required field.
var errMissingField = errors.New("missing required field")

// StatusError is a non-2xx response from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
	}

	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, e.Body)
}

// mapClientError translates a client-level failure. The client only fails
// without a response, so every such error is a network failure.
func mapClientError(err error, operation string) error {
	return domain.NewDependencyError(domain.FailureNetwork, dependencyName, operation, err)
}

// mapStatus translates a non-2xx response. It consumes but does not close
// the body.
func mapStatus(resp *http.Response, operation string) error {
	var excerpt string

	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		excerpt = strings.TrimSpace(string(b))
	}

	return domain.NewDependencyError(domain.FailureUpstreamStatus, dependencyName, operation,
		&StatusError{StatusCode: resp.StatusCode, Body: excerpt})
}

// malformed wraps a decode or translation failure.
func malformed(err error, operation string) error {
	return domain.NewDependencyError(domain.FailureMalformedUpstream, dependencyName, operation, err)
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
