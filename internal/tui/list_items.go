package tui

import (
	"fmt"
	"strings"

	"scriptpad/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

// fileItem is one saved file in the list. index is its position in the
// collection, which differs from the list index while a filter is active.
type fileItem struct {
	file  model.File
	index int
	// current marks the entry whose name matches the draft.
	current bool
}

func (i fileItem) FilterValue() string { return i.file.Name }
func (i fileItem) Title() string {
	if i.current {
		return i.file.Name + " " + glyphBullet()
	}
	return i.file.Name
}
func (i fileItem) Description() string {
	lines := strings.Count(strings.TrimRight(i.file.Content, "\n"), "\n") + 1
	if strings.TrimSpace(i.file.Content) == "" {
		lines = 0
	}
	if lines == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", lines)
}

func fileItems(files []model.File, draftName string) []list.Item {
	out := make([]list.Item, 0, len(files))
	for i, f := range files {
		out = append(out, fileItem{file: f, index: i, current: f.Name == draftName})
	}
	return out
}

func newFileList() list.Model {
	l := list.New([]list.Item{}, newCompactItemDelegate(), 0, 0)
	l.Title = "Saved files"
	// The screen renders its own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("file", "files")
	// Quitting is handled by the app model (it saves screen state first).
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)
	return l
}
