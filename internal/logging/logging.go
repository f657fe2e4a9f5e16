package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger. ASEQ_JSON_LOG and ASEQ_LOG_LEVEL override
// the configured format and level.
func New(w io.Writer, level, format string) *slog.Logger {
	if env := os.Getenv("ASEQ_LOG_LEVEL"); env != "" {
		level = env
	}
	if env := strings.ToLower(os.Getenv("ASEQ_JSON_LOG")); env == "1" || env == "true" || env == "json" {
		format = "json"
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "aseq")
}

// Init builds the logger with New and installs it as the slog default.
func Init(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "level", level, "format", format)
	return logger
}

func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
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
