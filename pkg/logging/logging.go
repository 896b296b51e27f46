// Package logging configures structured logging with tint.
//
// Usage:
//
//	logging.Setup()                          // level from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//	logging.New(logging.Options{JSON: true}) // JSON to stdout for the server
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options selects the handler built by New.
type Options struct {
	Level slog.Level
	// Writer defaults to os.Stderr, or os.Stdout for JSON.
	Writer io.Writer
	// JSON switches from colored text to one JSON object per line.
	JSON bool
	// NoColor disables ANSI colors in text output.
	NoColor bool
}

// New builds a logger without installing it.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if opts.JSON {
		if w == nil {
			w = os.Stdout
		}
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level}))
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.Kitchen,
		AddSource:  opts.Level <= slog.LevelDebug,
		NoColor:    opts.NoColor,
	}))
}

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(Options{Level: level}))
}

// ParseLevel maps debug, warn and error to their levels. Anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
