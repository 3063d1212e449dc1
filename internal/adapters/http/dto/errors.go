// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "INVALID_ARGUMENT").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details holds field-level messages for invalid arguments.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes. The first four are the operation error kinds callers branch
// on; NOT_FOUND and TIMEOUT are transport-level.
const (
	ErrorCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrorCodeUnauthenticated = "UNAUTHENTICATED"
	ErrorCodeInternal        = "INTERNAL"
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeTimeout         = "TIMEOUT"
)

// internalMessage is the only message an INTERNAL response ever carries.
const internalMessage = "an internal error occurred"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrorCodeUnauthenticated:
		return http.StatusUnauthorized
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetTraceID returns the trace ID of the span active on the request, or "".
func GetTraceID(c *gin.Context) string {
	spanCtx := trace.SpanContextFromContext(c.Request.Context())
	if !spanCtx.HasTraceID() {
		return ""
	}

	return spanCtx.TraceID().String()
}

// AbortWithCode aborts the request with an error envelope for code.
func AbortWithCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}

// MapError converts an error returned by the application layer into an
// error response. Anything that is not a caller error collapses to INTERNAL
// with a generic message.
func MapError(ctx context.Context, err error) *ErrorResponse {
	var bindErr *BindingError
	if errors.As(err, &bindErr) {
		return NewErrorResponseWithDetails(ErrorCodeInvalidArgument, bindErr.Message(), bindErr.Details())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		if valErr.Field == "" {
			return NewErrorResponse(ErrorCodeInvalidArgument, valErr.Error())
		}

		details := map[string]string{valErr.Field: valErr.Message}

		return NewErrorResponseWithDetails(ErrorCodeInvalidArgument, valErr.Error(), details)
	}

	if domain.IsUnauthenticated(err) {
		return NewErrorResponse(ErrorCodeUnauthenticated, "authentication required")
	}

	if errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewErrorResponse(ErrorCodeTimeout, "request timed out")
	}

	return NewErrorResponse(ErrorCodeInternal, internalMessage)
}

// HandleError writes the error envelope for err. INTERNAL failures are
// logged with their failure kind; the cause never reaches the caller.
func HandleError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	resp := MapError(ctx, err).WithTraceID(GetTraceID(c))

	if resp.Error.Code == ErrorCodeInternal || resp.Error.Code == ErrorCodeTimeout {
		attrs := []any{slog.Any("error", err), slog.String("path", c.FullPath())}
		if kind, ok := domain.FailureKindOf(err); ok {
			attrs = append(attrs, slog.String("failure_kind", kind.String()))
		}

		logging.FromContext(ctx).ErrorContext(ctx, "request failed", attrs...)
	}

	c.AbortWithStatusJSON(HTTPStatusFromCode(resp.Error.Code), resp)
}
