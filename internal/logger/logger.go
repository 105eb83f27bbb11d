// Package logger builds the slog loggers used by the CLI and the engine
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// LevelNone disables all logging
const LevelNone = slog.Level(100)

// ParseLevel parses a level name, defaulting to warn for unknown input
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning", "":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "off":
		return LevelNone
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger writing to w at the given level name
func New(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	if lvl >= LevelNone {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
