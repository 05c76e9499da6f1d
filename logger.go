package xtalgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with xtalgo-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDataType adds a data-type field to the logger.
func (l *Logger) WithDataType(t DataType) *Logger {
	return &Logger{
		Logger: l.Logger.With("data_type", t.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogMerge logs a merge operation.
func (l *Logger) LogMerge(target DataType, observations, unique int, err error) {
	if err != nil {
		l.Error("merge failed",
			"target", target.String(),
			"error", err,
		)
	} else {
		l.Debug("merge completed",
			"target", target.String(),
			"observations", observations,
			"unique", unique,
		)
	}
}

// LogFilter logs a filtering operation, e.g. systematic-absence
// removal.
func (l *Logger) LogFilter(name string, removed, remaining int) {
	l.Debug("filter applied",
		"filter", name,
		"removed", removed,
		"remaining", remaining,
	)
}
