package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName    = errors.New("file name is required")
	ErrEmptyContent = errors.New("file content is empty")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("name conflict")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError is returned when a name is already taken by another file.
type ConflictError struct {
	Name string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("file already exists: %s", e.Name)
}

func (e ConflictError) Is(target error) bool { return target == ErrConflict }

// IndexError reports a list position outside the collection.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (len %d)", e.Index, e.Len)
}

func (e IndexError) Is(target error) bool { return target == ErrNotFound }
