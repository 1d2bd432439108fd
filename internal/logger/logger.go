// Package logger configures log/slog for the service: JSON lines with source
// locations, tagged with the service name.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ServiceName is attached to every log record.
const ServiceName = "treelife"

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	return slog.New(handler).With("service", ServiceName)
}

// Setup installs a stdout logger as the slog default.
func Setup(level slog.Level) {
	slog.SetDefault(New(os.Stdout, level))
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
// Unrecognized values default to info level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
