package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const sqliteFileName = "scriptpad.sqlite"

// Store is a directory holding the scriptpad SQLite key-value database and
// small best-effort sidecar files (tui_state.json).
type Store struct {
	Dir string

	// Logger receives recovered persistence failures. Nil discards them.
	Logger *slog.Logger
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// SQLitePath is the database file inside the store directory.
func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
