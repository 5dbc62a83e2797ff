package main

import (
	"log/slog"
	"os"
	"strings"
)

// setupLogger installs the default slog logger on stderr. The level comes
// from LOG_LEVEL; --verbose forces debug.
func setupLogger(debug bool) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
