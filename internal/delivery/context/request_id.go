package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// contextKey keeps request-scoped values from colliding with other packages.
type contextKey string

const (
	// KeyRequestID carries the correlation ID for a single request.
	KeyRequestID contextKey = "request_id"

	// KeyLogger carries the request-scoped logger.
	KeyLogger contextKey = "logger"

	// HeaderXRequestID is the header clients may use to supply their own
	// correlation ID.
	HeaderXRequestID = "X-Request-Id"
)

// SetRequestID stores the request ID on the echo context so handlers can
// read it back without touching headers.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestID returns a context carrying the request ID, for code below
// the delivery layer.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext returns the request ID, or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithLogger returns a context carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger when one is present,
// otherwise the fallback. Services use this so every log line within a
// request carries its correlation ID.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
