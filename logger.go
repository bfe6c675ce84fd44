package scenedb

import (
	"log/slog"
	"os"

	"github.com/hupe1980/scenedb/internal/logging"
)

// Logger wraps slog.Logger with scene-database context.
type Logger = logging.Logger

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	return logging.New(handler)
}

// NewJSONLogger creates a Logger that writes JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return logging.NewJSON(os.Stderr, level)
}

// NewTextLogger creates a Logger that writes human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return logging.NewText(os.Stderr, level)
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return logging.Noop()
}
