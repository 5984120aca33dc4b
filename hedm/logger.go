package hedm

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with reader-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler on stderr at info level is used.
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

// NewTextLogger creates a Logger that writes text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithFile adds the file name to every record.
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", name),
	}
}

// LogSoftMissing logs a field that could not be read and kept its default.
func (l *Logger) LogSoftMissing(path, field string, err error) {
	l.Warn("field not read, using default",
		"path", path,
		"field", field,
		"error", err,
	)
}

// LogClose logs the release of a handle.
func (l *Logger) LogClose(path string, err error) {
	if err != nil {
		l.Warn("close failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Debug("closed",
			"path", path,
		)
	}
}

// LogRead logs the outcome of a top-level read.
func (l *Logger) LogRead(op, group string, phases, columns int, err error) {
	if err != nil {
		l.Error(op+" failed",
			"group", group,
			"code", int(CodeOf(err)),
			"error", err,
		)
	} else {
		l.Info(op+" completed",
			"group", group,
			"phases", phases,
			"columns", columns,
		)
	}
}
