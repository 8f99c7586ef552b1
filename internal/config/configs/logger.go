package configs

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger defines configuration options for the structured logger. The
// Level controls the minimum level emitted by the logger. Valid values
// include "debug", "info", "warn" and "error". Format determines the
// output encoding and may be "text" (default), "json" or "pretty" (a
// colorized tint handler for local development). An unknown format falls
// back to "text".
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// SlogLevel converts the textual level into a slog.Level. Unknown levels
// default to slog.LevelInfo.
func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler builds the slog.Handler for the configured format and level.
func (c Logger) Handler(w io.Writer) slog.Handler {
	level := c.SlogLevel()
	switch strings.ToLower(c.Format) {
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "pretty":
		return tint.NewHandler(w, &tint.Options{Level: level})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
}
