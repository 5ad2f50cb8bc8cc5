package logging

import (
	"context"
	"log/slog"

	"ytdl/internal/services"
)

// Keys with special meaning to the console handler.
const (
	FieldComponent = "component"
	FieldCommand   = "command"
	FieldRunID     = "run_id"
	FieldURL       = "url"
)

// Attr aliases slog.Attr so callers only import this package.
type Attr = slog.Attr

var (
	String   = slog.String
	Int      = slog.Int
	Float64  = slog.Float64
	Bool     = slog.Bool
	Duration = slog.Duration
)

// Error records err under the "error" key.
func Error(err error) Attr {
	return slog.Any("error", err)
}

// Args adapts attrs to the ...any parameter of slog.Logger methods.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// tagged no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// WithContext tags logger with the subcommand and run ID stored in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if cmd, ok := services.CommandFromContext(ctx); ok {
		args = append(args, slog.String(FieldCommand, cmd))
	}
	if id, ok := services.RunIDFromContext(ctx); ok {
		args = append(args, slog.String(FieldRunID, id))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}
