package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scriptpad/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case minibufferTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) >= minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, nil

	case storeChangedMsg:
		m.pad.Load(m.ctx)
		m.refreshList()
		return m, waitForStoreChange(m.storeEvents)

	case storeWatchClosedMsg:
		m.storeEvents = nil
		return m, nil

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, tickMinibuffer()

	case tea.KeyMsg:
		switch m.modal {
		case modalConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modalAlert:
			return m.updateAlert(msg)
		}
		return m.updateKey(msg)
	}

	return m.updateFocused(msg)
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The list owns every key while its filter prompt is open.
	if m.focus == focusList && m.files.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
		return m.updateFocused(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		m.run()
		return m, nil
	case "ctrl+s":
		m.save()
		return m, tickMinibuffer()
	case "ctrl+n":
		return m, m.newDraft()
	case "ctrl+e":
		cmd, err := m.openExternalEditor()
		if err != nil {
			m.showMinibuffer("Editor failed: " + err.Error())
			return m, tickMinibuffer()
		}
		return m, cmd
	case "ctrl+y":
		m.syncDraft()
		if err := m.copy(m.pad.Draft().Content); err != nil {
			m.showMinibuffer("Copy failed: " + err.Error())
		} else {
			m.showMinibuffer(fmt.Sprintf("Copied %s to clipboard", m.pad.Draft().Name))
		}
		return m, tickMinibuffer()
	case "tab":
		return m, m.cycleFocus(1)
	case "shift+tab":
		return m, m.cycleFocus(-1)
	}

	if m.focus == focusList {
		switch msg.String() {
		case "enter":
			m.loadSelected()
			return m, tickMinibuffer()
		case "d", "x", "delete":
			m.confirmDeleteSelected()
			return m, nil
		case "n":
			return m, m.newDraft()
		case "r":
			m.pad.Load(m.ctx)
			m.refreshList()
			m.showMinibuffer("Reloaded")
			return m, tickMinibuffer()
		case "q":
			return m, tea.Quit
		}
	}
	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused widget.
func (m appModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.syncDraft()
	case focusContent:
		m.content, cmd = m.content.Update(msg)
		m.syncDraft()
	case focusList:
		m.files, cmd = m.files.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			m.deleteConfirmed()
		} else {
			m.cancelDelete()
		}
		return m, tickMinibuffer()
	case "y":
		m.deleteConfirmed()
		return m, tickMinibuffer()
	case "esc", "n", "ctrl+g":
		m.cancelDelete()
	}
	return m, nil
}

func (m appModel) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a, fromSession, ok := m.currentAlert()
	if !ok {
		m.modal = modalNone
		return m, nil
	}
	n := len(a.Buttons)

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "left", "h", "shift+tab", "up":
		m.alertButton = (m.alertButton - 1 + n) % n
	case "right", "l", "tab", "down":
		m.alertButton = (m.alertButton + 1) % n
	case "enter", " ":
		if fromSession {
			err := m.session.Press(m.ctx, a.ID, min(m.alertButton, n-1))
			m.afterSessionCall(err)
		} else {
			m.notices = m.notices[1:]
		}
		m.alertButton = 0
		m.syncAlertModal()
	case "esc":
		if fromSession {
			err := m.session.Dismiss(m.ctx, a.ID)
			m.afterSessionCall(err)
		} else {
			m.notices = m.notices[1:]
		}
		m.alertButton = 0
		m.syncAlertModal()
	}
	return m, nil
}

func (m *appModel) afterSessionCall(err error) {
	m.output = m.session.Output()
	if err != nil {
		m.pushError(err)
	}
}

// run evaluates the draft and opens the first alert it raised.
func (m *appModel) run() {
	m.syncDraft()
	m.notices = nil
	sess, err := m.pad.Run(m.ctx)
	m.session = sess
	m.output = nil
	if sess != nil {
		m.output = sess.Output()
	}
	if err != nil {
		m.pushError(err)
	}
	m.alertButton = 0
	m.syncAlertModal()
}

func (m *appModel) save() {
	m.syncDraft()
	if !m.pad.CanSave() {
		m.showMinibuffer("Nothing to save: name and content are required")
		return
	}
	created, err := m.pad.Save(m.ctx)
	if err != nil {
		m.showMinibuffer("Save failed: " + err.Error())
		return
	}
	name := m.pad.Draft().Name
	m.refreshList()
	m.selectName(name)
	if created {
		m.showMinibuffer("Saved " + name)
	} else {
		m.showMinibuffer("Updated " + name)
	}
}

func (m *appModel) newDraft() tea.Cmd {
	f := m.pad.NewDraft()
	m.loadDraftIntoInputs(f)
	m.session = nil
	m.notices = nil
	m.output = nil
	m.refreshList()
	return m.setFocus(focusName)
}

func (m *appModel) loadSelected() {
	fi, ok := m.selectedFile()
	if !ok {
		return
	}
	f, err := m.pad.Select(fi.index)
	if err != nil {
		m.showMinibuffer("Load failed: " + err.Error())
		return
	}
	m.loadDraftIntoInputs(f)
	m.refreshList()
	m.showMinibuffer("Loaded " + f.Name)
}

func (m *appModel) confirmDeleteSelected() {
	fi, ok := m.selectedFile()
	if !ok {
		return
	}
	m.deleteIndex = fi.index
	m.deleteName = fi.file.Name
	m.confirmFocus = confirmFocusConfirm
	m.modal = modalConfirmDelete
}

func (m *appModel) cancelDelete() {
	m.modal = modalNone
	m.deleteIndex = -1
	m.deleteName = ""
}

func (m *appModel) deleteConfirmed() {
	defer m.cancelDelete()

	// The collection may have been reloaded while the prompt was open.
	i := m.deleteIndex
	if files := m.pad.Files(); i < 0 || i >= len(files) || files[i].Name != m.deleteName {
		i = m.pad.Index(m.deleteName)
	}
	removed, err := m.pad.Delete(m.ctx, i)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			m.showMinibuffer(m.deleteName + " no longer exists")
			return
		}
		m.pad.Logger().Warn("delete failed", slog.String("name", m.deleteName), slog.Any("err", err))
		m.showMinibuffer("Delete failed: " + err.Error())
		return
	}
	m.refreshList()
	m.showMinibuffer("Deleted " + removed.Name)
}
