package vocabgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vocabulary-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithModel adds the model name to the logger.
func (l *Logger) WithModel(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("model", name),
	}
}

// WithEntries adds the vocabulary entry count to the logger.
func (l *Logger) WithEntries(entries int) *Logger {
	return &Logger{
		Logger: l.Logger.With("entries", entries),
	}
}

// LogLoad logs a model load.
func (l *Logger) LogLoad(ctx context.Context, name string, bytes int64, mapped bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model load failed",
			"model", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "model loaded",
			"model", name,
			"bytes", bytes,
			"mapped", mapped,
		)
	}
}

// LogSave logs a model save.
func (l *Logger) LogSave(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model save failed",
			"model", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "model saved",
			"model", name,
			"bytes", bytes,
		)
	}
}
