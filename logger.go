package wordvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with wordvec-specific context.
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

// WithWord adds a word field to the logger.
func (l *Logger) WithWord(word string) *Logger {
	return &Logger{
		Logger: l.Logger.With("word", word),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogLearn logs a corpus scan.
func (l *Logger) LogLearn(ctx context.Context, source string, words int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "corpus scan failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "corpus scan completed",
			"source", source,
			"words", words,
		)
	}
}

// LogSearch logs a nearest-neighbor query.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogSave logs a model save.
func (l *Logger) LogSave(ctx context.Context, name string, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "model saved",
			"name", name,
			"entries", entries,
		)
	}
}

// LogLoad logs a model load.
func (l *Logger) LogLoad(ctx context.Context, name string, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "model loaded",
			"name", name,
			"entries", entries,
		)
	}
}

// LogBigrams logs a bigram table load.
func (l *Logger) LogBigrams(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bigram load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "bigrams loaded",
			"count", count,
		)
	}
}
