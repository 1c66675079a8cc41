package scanio

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with scanio-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithSize adds a size field to the logger.
func (l *Logger) WithSize(size int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogDrain logs a finished drain. Use WithPath to name the source.
func (l *Logger) LogDrain(ctx context.Context, bytes, grows int, mapped bool, err error) {
	if err != nil {
		l.WarnContext(ctx, "drain failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "drain completed",
			"bytes", bytes,
			"grows", grows,
			"mapped", mapped,
		)
	}
}

// LogRelease logs the outcome of an early release. Use WithSize to record
// the buffer size.
func (l *Logger) LogRelease(ctx context.Context, released bool) {
	if released {
		l.DebugContext(ctx, "buffer released")
	} else {
		l.DebugContext(ctx, "buffer left to scoped release")
	}
}

// LogSanitize logs an entry name that had to be rewritten.
func (l *Logger) LogSanitize(ctx context.Context, original, sanitized string) {
	if original != sanitized {
		l.InfoContext(ctx, "entry name sanitized",
			"original", original,
			"sanitized", sanitized,
		)
	}
}
