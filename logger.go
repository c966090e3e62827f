package txlsh

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with txlsh-specific context.
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

// WithConfig adds the digest configuration to the logger.
func (l *Logger) WithConfig(cfg Config) *Logger {
	return &Logger{
		Logger: l.Logger.With("config", cfg.String()),
	}
}

// WithName adds a blob or file name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogBuild logs the digest computation for a single input.
func (l *Logger) LogBuild(ctx context.Context, name string, bytes uint64, err error) {
	if err != nil {
		l.WarnContext(ctx, "digest failed",
			"name", name,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "digest completed",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogScan logs a completed blob store scan.
func (l *Logger) LogScan(ctx context.Context, prefix string, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "scan completed with failures",
			"prefix", prefix,
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "scan completed",
			"prefix", prefix,
			"count", count,
		)
	}
}

// LogSearch logs an index search.
func (l *Logger) LogSearch(ctx context.Context, maxDistance, candidates, matches int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"max_distance", maxDistance,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"max_distance", maxDistance,
			"candidates", candidates,
			"matches", matches,
		)
	}
}

// LogAdd logs the insertion of a digest into an index.
func (l *Logger) LogAdd(ctx context.Context, id uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add failed",
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "add completed",
			"id", id,
		)
	}
}

// LogRemove logs the removal of a digest from an index.
func (l *Logger) LogRemove(ctx context.Context, id uint32, removed bool) {
	l.DebugContext(ctx, "remove completed",
		"id", id,
		"removed", removed,
	)
}
