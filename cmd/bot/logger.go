package main

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger installs a JSON slog handler as the default logger. The
// level comes from LOG_LEVEL (debug, info, warn, error), default info.
func InitLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
