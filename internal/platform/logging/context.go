package logging

import (
	"context"
	"log/slog"
)

// Attribute keys attached to request-scoped loggers.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyTraceID       = "trace_id"
	KeyUserID        = "user_id"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the request logger carried by ctx, or the default
// logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithAttrs returns a context whose logger carries attrs.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}

	return WithContext(ctx, FromContext(ctx).With(args...))
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithAttrs(ctx, slog.String(KeyRequestID, requestID))
}

func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return WithAttrs(ctx, slog.String(KeyCorrelationID, correlationID))
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return WithAttrs(ctx, slog.String(KeyTraceID, traceID))
}

// WithUserID tags the logger with the authenticated caller. Favorites logs
// are only meaningful per user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return WithAttrs(ctx, slog.String(KeyUserID, userID))
}

// SetDefault sets the default logger used when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
