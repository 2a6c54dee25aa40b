package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

// CorrelationIDKey is the context key carrying the per-operation
// correlation ID.
const CorrelationIDKey contextKey = "correlation_id"

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates a zerolog logger from the configuration. Unknown levels
// fall back to info; "text" selects the console writer for development.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// WithCorrelationID stores a fresh correlation ID on the context unless
// one is already present.
func WithCorrelationID(ctx context.Context) context.Context {
	if CorrelationID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, CorrelationIDKey, uuid.New().String())
}

// CorrelationID returns the context's correlation ID, or "".
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext decorates the logger with the context's correlation ID.
func FromContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if id := CorrelationID(ctx); id != "" {
		return logger.With().Str("correlation_id", id).Logger()
	}
	return logger
}
