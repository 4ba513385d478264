package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"scriptpad/internal/model"
)

// FilesKey is the single key holding the whole collection.
const FilesKey = "files"

// DefaultFiles is the bootstrap collection used when nothing has been saved yet.
func DefaultFiles() []model.File {
	return []model.File{
		{
			Name:    "Alert Example 1.js",
			Content: `alert("Hello, World!");`,
		},
		{
			Name: "Alert Example 2.js",
			Content: `const { Alert } = this.ReactNative;
Alert.alert(
"Alert Title",
"My Alert Msg",
[
  {
    text: "Cancel",
    onPress: () => alert("Cancel Pressed"),
    style: "cancel"
  },
  { text: "OK", onPress: () => alert("OK Pressed") }
]);`,
		},
	}
}

// DecodeFiles parses a persisted blob. An absent, empty or "[]" blob yields the
// default collection.
func DecodeFiles(blob string) ([]model.File, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" || blob == "[]" {
		return DefaultFiles(), nil
	}
	var files []model.File
	if err := json.Unmarshal([]byte(blob), &files); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FilesKey, err)
	}
	if files == nil {
		// "null"
		return DefaultFiles(), nil
	}
	return files, nil
}

func EncodeFiles(files []model.File) (string, error) {
	if files == nil {
		files = []model.File{}
	}
	b, err := json.Marshal(files)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFiles loads the collection and reports read or parse failures.
// Duplicate names are collapsed (first wins) and logged as conflicts.
func (s Store) ReadFiles(ctx context.Context) (*model.Collection, error) {
	blob, _, err := s.Get(ctx, FilesKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FilesKey, err)
	}
	files, err := DecodeFiles(blob)
	if err != nil {
		return nil, err
	}
	c, dups := model.FromFiles(files)
	for _, name := range dups {
		s.logger().Warn("duplicate file name in store; keeping first",
			slog.String("name", name), slog.Any("err", model.ConflictError{Name: name}))
	}
	return c, nil
}

// LoadFiles is the forgiving startup load: any failure is logged and an empty
// collection is returned instead.
func (s Store) LoadFiles(ctx context.Context) *model.Collection {
	c, err := s.ReadFiles(ctx)
	if err != nil {
		s.logger().Error("load files failed", slog.String("dir", s.Dir), slog.Any("err", err))
		return model.NewCollection()
	}
	return c
}

// WriteFiles replaces the persisted collection in one write.
func (s Store) WriteFiles(ctx context.Context, c *model.Collection) error {
	blob, err := EncodeFiles(c.Files())
	if err != nil {
		return err
	}
	if err := s.Set(ctx, FilesKey, blob); err != nil {
		return fmt.Errorf("write %s: %w", FilesKey, err)
	}
	return nil
}
