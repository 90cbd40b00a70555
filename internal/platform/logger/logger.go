package logger

import (
	"log/slog"
	"os"
)

// New returns a structured text logger at the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
