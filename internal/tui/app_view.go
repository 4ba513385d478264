package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading…"
	}

	switch m.modal {
	case modalConfirmDelete:
		body := fmt.Sprintf("Do you want to delete this file?\n\n%s", m.deleteName)
		return m.placeModal(renderConfirmModal(m.width, "Confirm", body, "OK", "Cancel", m.confirmFocus))
	case modalAlert:
		if a, _, ok := m.currentAlert(); ok {
			return m.placeModal(renderAlertModal(m.width, a, m.alertButton))
		}
	}

	l := m.layout
	left := normalizePane(m.viewEditor(), l.leftW, l.bodyH)
	right := normalizePane(m.viewSaved(), l.rightW, l.bodyH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	return strings.Join([]string{
		fitWidth(m.viewHeader(), m.width),
		body,
		fitWidth(m.viewFooter(), m.width),
	}, "\n")
}

func (m appModel) placeModal(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) viewHeader() string {
	dir := m.pad.Store().Dir
	return styleHeader().Render("scriptpad") + styleMuted().Render(" "+glyphSep()+" "+dir)
}

func (m appModel) viewEditor() string {
	l := m.layout

	name := styleLabel(m.focus == focusName).Render("Name  ") + m.nameInput.View()

	editor := styleFrame(m.focus == focusContent).
		Width(l.leftW - 2).
		Render(m.content.View())

	buttons := []string{styleButton(false).Render("Run ^R")}
	if m.pad.CanSave() {
		buttons = append(buttons, " ", styleButton(false).Render("Save ^S"))
	}
	actions := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)

	out := styleFrame(false).
		Width(l.leftW - 2).
		Render(normalizePane(m.viewOutput(), l.leftW-2, l.outputH))

	return strings.Join([]string{name, editor, actions, out}, "\n")
}

func (m appModel) viewOutput() string {
	if len(m.output) == 0 {
		return styleMuted().Render("Run output appears here (ctrl+r)")
	}
	lines := m.output
	if n := m.layout.outputH; n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if strings.HasPrefix(ln, "error: ") {
			out = append(out, styleError().Render(ln))
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}

func (m appModel) viewSaved() string {
	l := m.layout
	title := fmt.Sprintf("Saved files (%d)", m.pad.Len())
	if m.files.FilterState() != list.Unfiltered {
		title += "  /" + m.files.FilterValue()
	}

	listBody := m.files.View()
	if m.pad.Len() == 0 {
		listBody = styleMuted().Render("No saved files")
	}
	listPane := styleFrame(m.focus == focusList).
		Width(l.rightW - 2).
		Render(styleLabel(m.focus == focusList).Render(title) + "\n" + normalizePane(listBody, l.rightW-2, l.listH-1))

	preview := ""
	if fi, ok := m.selectedFile(); ok {
		preview = renderCodePreview(fi.file.Content, l.rightW-2)
	}
	previewPane := styleFrame(false).
		Width(l.rightW - 2).
		Render(normalizePane(preview, l.rightW-2, l.previewH))

	return listPane + "\n" + previewPane
}

func (m appModel) viewFooter() string {
	if m.minibufferText != "" {
		return m.minibufferText
	}
	var keys string
	switch m.focus {
	case focusList:
		keys = "enter load  d delete  / filter  n new  r reload  tab focus  q quit"
	default:
		keys = "ctrl+r run  ctrl+s save  ctrl+n new  ctrl+e editor  ctrl+y copy  tab focus  ctrl+c quit"
	}
	return styleMuted().Render(keys)
}
