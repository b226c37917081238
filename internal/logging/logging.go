package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the default slog logger with JSON output at the given level.
// Accepts debug, info, warn and error; anything else means info.
func Init(level string) *slog.Logger {
	return initTo(os.Stdout, level)
}

func initTo(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
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
