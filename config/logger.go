package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger writing to stdout for the given environment.
// Production uses the JSON handler; otherwise the text handler.
// LOG_LEVEL may be debug, info, warn or error (default: info).
func NewLogger(environment string) *slog.Logger {
	return newLogger(os.Stdout, environment, os.Getenv("LOG_LEVEL"))
}

func newLogger(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if s == "" || level.UnmarshalText([]byte(s)) != nil {
		return slog.LevelInfo
	}
	return level
}
