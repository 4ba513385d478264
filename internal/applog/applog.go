// Package applog sets up the diagnostic log. The TUI owns the terminal, so
// logs only ever go to a file.
package applog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Disabled reports whether path turns logging off.
func Disabled(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "", "off", "none":
		return true
	}
	return false
}

// Open returns a logger writing to path and a func that closes the file.
// When the file cannot be opened, a warning goes to warn (if non-nil) and a
// discarding logger is returned.
func Open(path string, warn io.Writer) (*slog.Logger, func() error) {
	nop := func() error { return nil }
	if Disabled(path) {
		return Discard(), nop
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		if warn != nil {
			fmt.Fprintf(warn, "scriptpad: cannot create log dir %s: %v\n", filepath.Dir(path), err)
		}
		return Discard(), nop
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		if warn != nil {
			fmt.Fprintf(warn, "scriptpad: cannot open log file %s: %v\n", path, err)
		}
		return Discard(), nop
	}
	return New(f), f.Close
}

func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
