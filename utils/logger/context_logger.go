package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	FeedIDKey    ContextKey = "feed_id"
	OperationKey ContextKey = "operation"
)

type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext adds context values to log entries
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0, 6)

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		args = append(args, "request_id", requestID)
	}

	if feedID, ok := ctx.Value(FeedIDKey).(string); ok && feedID != "" {
		args = append(args, "feed_id", feedID)
	}

	if operation, ok := ctx.Value(OperationKey).(string); ok && operation != "" {
		args = append(args, "operation", operation)
	}

	return cl.logger.With(args...)
}

// Security logs a security-relevant event (guard rejections, throttling) at warn level.
func (cl *ContextLogger) Security(ctx context.Context, event string, args ...any) {
	cl.WithContext(ctx).WarnContext(ctx, "security event", append([]any{"event", event}, args...)...)
}

func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).ErrorContext(ctx, "operation failed",
		"operation", operation,
		"error", err,
	)
}
