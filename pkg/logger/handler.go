package logger

import (
	"log/slog"
	"os"
)

// NewJSONHandler returns the production handler: one JSON object per line on
// stdout, suitable for any log collector.
func NewJSONHandler(level slog.Level) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}
