// Package logging builds the structured logger shared by the CLI and the
// runner. Output is slog text; the level comes from SPARKS_LOG_LEVEL.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable read by New.
const LevelEnv = "SPARKS_LOG_LEVEL"

// New returns a text logger writing to w at the level named by LevelEnv.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func New(w io.Writer) *slog.Logger {
	return NewWithLevel(w, ParseLevel(os.Getenv(LevelEnv)))
}

func NewWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
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
