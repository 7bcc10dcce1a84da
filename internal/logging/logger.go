// Package logging builds the process logger for the commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON logger writing to w, or a text logger when format is
// "text".
func New(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// FromEnv builds a stdout logger whose format comes from LOG_FORMAT.
func FromEnv(debug bool) *slog.Logger {
	level := new(slog.LevelVar)
	if debug {
		level.Set(slog.LevelDebug)
	}
	return New(os.Stdout, os.Getenv("LOG_FORMAT"), level)
}
