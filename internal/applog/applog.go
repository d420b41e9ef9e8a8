// Package applog wraps log/slog with the handler selection the CLI
// needs: human-readable text by default, JSON when --json is set. This
// is purely diagnostic logging; direct user-facing output goes through
// fmt.Fprintf in cmd/bwplan, not through here (spec.md ambient stack).
package applog

import (
	"io"
	"log/slog"
)

// New builds a slog.Logger writing to w, in JSON when json is true and
// in slog's default text handler otherwise.
func New(w io.Writer, jsonOutput bool, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
