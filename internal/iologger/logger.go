// Package iologger sets up slog for biosync and carries request-scoped
// loggers through context.
package iologger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ecoglobe/biosync/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "biosync.log"

type ctxKey struct{}

// Init sets the default slog logger. For the "file" destination the log
// goes to LogFile in logDir, truncated unless append is true.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	w, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(newHandler(w, cfg)))
	return nil
}

func writer(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
		path := filepath.Join(logDir, LogFile)
		flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(path, flag, 0644)
		if err != nil {
			return nil, CreateLogFileError(path, err)
		}
		return f, nil
	default:
		return os.Stderr, nil
	}
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "tint":
		// terminal output, the time is noise there
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// Component returns the default logger annotated with a component name.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored by WithLogger, or fallback when
// the context has none.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return log
	}
	return fallback
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
