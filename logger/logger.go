// Package logger configures the zerolog logger used by the stmt CLI.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to stderr, so report output on
// stdout stays clean for piping.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_JSON: true to emit raw JSON lines instead of the console format
func New() zerolog.Logger {
	level := parseLevel(getenv("LOG_LEVEL", "info"))

	if strings.EqualFold(getenv("LOG_JSON", "false"), "true") {
		return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	}
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(cw).With().Timestamp().Logger().Level(level)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
