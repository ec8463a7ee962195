package logging

import (
	"context"
	"time"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// Logger provides structured logging for application code. It is the same
// port the pricing core logs through.
type Logger = pricing.Logger

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok && logger != nil {
		return logger
	}
	return pricing.NopLogger{}
}

// LoggingMiddleware logs every request dispatched through the mediator with
// its duration and outcome.
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := mediator.RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(pricing.LevelError, "request failed", metadata)
			return response, err
		}
		logger.Log(pricing.LevelDebug, "request handled", metadata)
		return response, nil
	}
}
