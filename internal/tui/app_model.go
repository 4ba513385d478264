package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"scriptpad/internal/model"
	"scriptpad/internal/pad"
	"scriptpad/internal/script"
	"scriptpad/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	ctx context.Context
	pad *pad.Pad

	width  int
	height int
	layout paneLayout

	focus     focusArea
	nameInput textinput.Model
	content   textarea.Model
	files     list.Model

	modal        modalKind
	confirmFocus confirmModalFocus
	deleteIndex  int
	deleteName   string

	// session is the last run; its unanswered alerts are shown before notices.
	session     *script.Session
	notices     []script.Alert
	alertButton int
	output      []string

	minibufferText  string
	minibufferSetAt time.Time

	externalEditorPath   string
	externalEditorBefore string

	storeEvents <-chan struct{}
	copy        func(string) error
}

type paneLayout struct {
	leftW    int
	rightW   int
	bodyH    int
	editorH  int
	outputH  int
	listH    int
	previewH int
}

func newAppModel(ctx context.Context, p *pad.Pad) appModel {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "File name"

	content := textarea.New()
	content.Placeholder = "Type your script here"
	content.ShowLineNumbers = true
	content.CharLimit = 0
	content.MaxHeight = 0

	m := appModel{
		ctx:         ctx,
		pad:         p,
		nameInput:   name,
		content:     content,
		files:       newFileList(),
		deleteIndex: -1,
		copy:        copyToClipboard,
	}
	m.loadDraftIntoInputs(p.Draft())
	m.refreshList()
	m.setFocus(focusName)
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForStoreChange(m.storeEvents))
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSetAt = time.Now()
}

func (m *appModel) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.nameInput.Blur()
	m.content.Blur()
	switch f {
	case focusName:
		return m.nameInput.Focus()
	case focusContent:
		// A whitespace-only script is cleared so typing starts on line one.
		if strings.TrimSpace(m.content.Value()) == "" && m.content.Value() != "" {
			m.content.SetValue("")
			m.syncDraft()
		}
		return m.content.Focus()
	}
	return nil
}

func (m *appModel) cycleFocus(delta int) tea.Cmd {
	i := 0
	for j, f := range focusOrder {
		if f == m.focus {
			i = j
		}
	}
	n := len(focusOrder)
	return m.setFocus(focusOrder[((i+delta)%n+n)%n])
}

func (m *appModel) loadDraftIntoInputs(f model.File) {
	m.nameInput.SetValue(f.Name)
	m.nameInput.CursorEnd()
	m.content.SetValue(f.Content)
}

// syncDraft copies the input values into the draft.
func (m *appModel) syncDraft() {
	prev := m.pad.Draft().Name
	m.pad.SetName(m.nameInput.Value())
	m.pad.SetContent(m.content.Value())
	if prev != m.pad.Draft().Name {
		m.refreshList()
	}
}

// refreshList rebuilds the list from the collection, keeping the cursor on
// the same file name when it still exists.
func (m *appModel) refreshList() {
	selected := ""
	if fi, ok := m.selectedFile(); ok {
		selected = fi.file.Name
	}
	_ = m.files.SetItems(fileItems(m.pad.Files(), m.pad.Draft().Name))
	m.selectName(selected)
}

func (m *appModel) selectName(name string) {
	if name == "" {
		return
	}
	for i, it := range m.files.Items() {
		if fi, ok := it.(fileItem); ok && fi.file.Name == name {
			m.files.Select(i)
			return
		}
	}
}

func (m appModel) selectedFile() (fileItem, bool) {
	fi, ok := m.files.SelectedItem().(fileItem)
	return fi, ok
}

func (m *appModel) resize() {
	l := paneLayout{}
	l.leftW = max(24, m.width*3/5)
	l.rightW = max(12, m.width-l.leftW-1)
	// header + footer
	l.bodyH = max(10, m.height-2)
	l.outputH = min(6, max(2, l.bodyH/5))
	// name row + buttons row + two framed panes
	l.editorH = max(3, l.bodyH-2-2-(l.outputH+2))
	l.listH = max(3, (l.bodyH-4)/2)
	l.previewH = max(1, l.bodyH-4-l.listH)
	m.layout = l

	m.nameInput.Width = max(8, l.leftW-8)
	m.content.SetWidth(max(10, l.leftW-2))
	m.content.SetHeight(l.editorH)
	m.files.SetSize(max(4, l.rightW-2), max(1, l.listH-1))
}

func (m appModel) tuiState() *store.TUIState {
	draft := m.pad.Draft()
	st := &store.TUIState{Version: 1, Draft: &draft, Focus: m.focus.String()}
	if fi, ok := m.selectedFile(); ok {
		st.SelectedName = fi.file.Name
	}
	return st
}

func (m *appModel) applyTUIState(st *store.TUIState) {
	if st == nil {
		return
	}
	if st.Draft != nil && !(st.Draft.Name == "" && st.Draft.Content == "") {
		m.pad.SetDraft(*st.Draft)
		m.loadDraftIntoInputs(*st.Draft)
		m.refreshList()
	}
	m.selectName(st.SelectedName)
	m.setFocus(parseFocus(st.Focus))
}

// errorText is what the error alert shows: the script's own message when
// there is one.
func errorText(err error) string {
	var se *script.ScriptError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func (m *appModel) pushError(err error) {
	m.notices = append(m.notices, script.Alert{
		Title:   "Error",
		Message: errorText(err),
		Buttons: []script.Button{{Text: "OK"}},
	})
}

// currentAlert is the alert the modal should show, if any.
func (m appModel) currentAlert() (a script.Alert, fromSession bool, ok bool) {
	if m.session != nil {
		if a, ok := m.session.Pending(); ok {
			return a, true, true
		}
	}
	if len(m.notices) > 0 {
		return m.notices[0], false, true
	}
	return script.Alert{}, false, false
}

func (m *appModel) syncAlertModal() {
	if _, _, ok := m.currentAlert(); ok {
		if m.modal != modalAlert {
			m.alertButton = 0
		}
		m.modal = modalAlert
		return
	}
	if m.modal == modalAlert {
		m.modal = modalNone
	}
}
