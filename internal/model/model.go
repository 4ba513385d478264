package model

import (
	"fmt"
	"strings"
	"time"
)

// File is a named unit of user-authored script text.
type File struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// NewDraftName returns the name given to a fresh, unsaved draft.
func NewDraftName(now time.Time) string {
	return fmt.Sprintf("File_%d.js", now.UnixMilli())
}

// NewDraft returns an empty draft named after now.
func NewDraft(now time.Time) File {
	return File{Name: NewDraftName(now)}
}

// IsBlank reports whether the content has nothing but whitespace.
func (f File) IsBlank() bool {
	return strings.TrimSpace(f.Content) == ""
}

// Validate checks that f can be stored in a Collection.
func (f File) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if f.IsBlank() {
		return ErrEmptyContent
	}
	return nil
}
