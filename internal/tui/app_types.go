package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusName focusArea = iota
	focusContent
	focusList
)

var focusOrder = []focusArea{focusName, focusContent, focusList}

func (f focusArea) String() string {
	switch f {
	case focusContent:
		return "content"
	case focusList:
		return "list"
	default:
		return "name"
	}
}

func parseFocus(s string) focusArea {
	switch s {
	case "content":
		return focusContent
	case "list":
		return focusList
	default:
		return focusName
	}
}

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalAlert
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// storeChangedMsg is sent when the store database changes on disk.
type storeChangedMsg struct{}

// storeWatchClosedMsg is sent once the watcher channel closes.
type storeWatchClosedMsg struct{}

type minibufferTickMsg struct{}

const minibufferAutoClearAfter = 4 * time.Second

func tickMinibuffer() tea.Cmd {
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg { return minibufferTickMsg{} })
}
