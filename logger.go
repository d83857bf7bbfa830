package flatspatial

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with grid-specific helpers so operations log
// with consistent field names.
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

// WithHandle adds a handle field to the logger.
func (l *Logger) WithHandle(h Handle) *Logger {
	return &Logger{
		Logger: l.Logger.With("handle", h.String()),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(h Handle, cells int) {
	l.Debug("insert completed",
		"handle", h.String(),
		"cells", cells,
	)
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(h Handle, err error) {
	if err != nil {
		l.Error("remove failed",
			"handle", h.String(),
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"handle", h.String(),
		)
	}
}

// LogMaintain logs a maintenance pass.
func (l *Logger) LogMaintain(reconciled, relocated int) {
	l.Debug("maintain completed",
		"reconciled", reconciled,
		"relocated", relocated,
	)
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(kind string, results int) {
	l.Debug("query completed",
		"kind", kind,
		"results", results,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op, name string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"name", name,
		)
	}
}
