package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%s: unknown log level: %w", level, ErrInvalid)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// Logger builds the logger described by the configuration. Records go to
// the rotating log file when one is configured and to w otherwise. The
// returned closer releases the log file.
func (c Config) Logger(w io.Writer) (*slog.Logger, io.Closer) {
	level, _ := ParseLevel(c.LogLevel)

	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		f := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closer
}
