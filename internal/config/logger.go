package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger создаёт JSON-логгер с уровнем level (DEBUG, INFO, WARN, ERROR).
// Неизвестный уровень считается INFO.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		slogLevel = slog.LevelDebug
	case "WARN":
		slogLevel = slog.LevelWarn
	case "ERROR":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}
