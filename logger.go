package signalsafe

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Logger wraps slog.Logger with recorder-specific helpers.
// This provides structured logging with consistent field names.
//
// Logging happens only on the recorder's supervising goroutine, never while
// a record is being formatted or written.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPath adds the dump file path to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogStart logs that a recorder began listening.
func (l *Logger) LogStart(ctx context.Context, signals []unix.Signal) {
	names := make([]string, len(signals))
	for i, sig := range signals {
		names[i] = signalName(sig)
	}
	l.InfoContext(ctx, "recorder started",
		"signals", names,
	)
}

// LogDump logs a written record.
func (l *Logger) LogDump(ctx context.Context, sig unix.Signal, seq uint64, bytes int) {
	l.DebugContext(ctx, "dump written",
		"signal", signalName(sig),
		"seq", seq,
		"bytes", bytes,
	)
}

// LogDrop logs a dump that was not written.
func (l *Logger) LogDrop(ctx context.Context, sig unix.Signal, reason DropReason) {
	l.WarnContext(ctx, "dump dropped",
		"signal", signalName(sig),
		"reason", reason.String(),
	)
}

// LogStop logs that a recorder stopped.
func (l *Logger) LogStop(ctx context.Context, dumps uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "recorder failed",
			"dumps", dumps,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "recorder stopped",
			"dumps", dumps,
		)
	}
}
