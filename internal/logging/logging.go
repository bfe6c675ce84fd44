// Package logging wraps log/slog with scene-database specific helpers so that
// every component logs with consistent field names.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with scene-database context.
type Logger struct {
	*slog.Logger
}

// New creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSON creates a Logger that outputs JSON-formatted logs.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewText creates a Logger that outputs human-readable text logs.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all log output.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithManifest adds the manifest path to the logger.
func (l *Logger) WithManifest(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("manifest", path),
	}
}

// LogSkip logs a frame that was skipped during ingestion.
func (l *Logger) LogSkip(ctx context.Context, filename string, err error) {
	l.WarnContext(ctx, "skipping frame",
		"filename", filename,
		"error", err,
	)
}

// LogIngest logs the outcome of an ingestion run.
func (l *Logger) LogIngest(ctx context.Context, total, skipped int, duration time.Duration) {
	if skipped > 0 {
		l.WarnContext(ctx, "ingestion completed with skipped frames",
			"total", total,
			"skipped", skipped,
			"accepted", total-skipped,
			"duration", duration,
		)
	} else {
		l.InfoContext(ctx, "ingestion completed",
			"total", total,
			"duration", duration,
		)
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, frames int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "database saved",
			"name", name,
			"frames", frames,
		)
	}
}

// LogCleanup logs a blob that could not be removed after it was replaced.
func (l *Logger) LogCleanup(ctx context.Context, name string, err error) {
	l.WarnContext(ctx, "stale blob not removed",
		"name", name,
		"error", err,
	)
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, frames int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "database loaded",
			"name", name,
			"frames", frames,
		)
	}
}
