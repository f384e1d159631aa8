// Package logging builds the command-line tool's slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/f3rmion/minpair/internal/config"
)

// New creates a logger writing to w and sets it as the slog default.
//
// Format "json" produces JSON lines; anything else produces text with source
// positions. Level is one of debug, info, warn, error (case-insensitive) and
// defaults to info. verbose forces debug.
func New(w io.Writer, cfg config.Log, verbose bool) *slog.Logger {
	level := ParseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
