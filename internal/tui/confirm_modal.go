package tui

import (
	"strings"

	"scriptpad/internal/script"

	"github.com/charmbracelet/lipgloss"
)

func modalBoxWidth(width int) int {
	return min(max(24, width-8), 64)
}

// modalBodyWidth is the usable text width inside the box (border + padding).
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 4
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	head := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Width(bodyW).Render(title)
	body := lipgloss.NewStyle().Foreground(colorSurfaceFg).Width(bodyW).Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorderFocus).
		Padding(0, 1).
		Width(bodyW + 2).
		Render(head + "\n\n" + body)
}

func modalButtons(labels []string, active int) string {
	// No borders on buttons: nested borders inside a colored modal leave
	// background artifacts in some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	parts := make([]string, 0, len(labels)*2)
	for i, l := range labels {
		if i > 0 {
			parts = append(parts, " ")
		}
		if i == active {
			parts = append(parts, btnActive.Render(l))
		} else {
			parts = append(parts, btnBase.Render(l))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	active := 0
	if focus == confirmFocusCancel {
		active = 1
	}
	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   esc: cancel")
	content := strings.Join([]string{
		body,
		"",
		modalButtons([]string{confirmLabel, cancelLabel}, active),
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// renderAlertModal shows one script alert with its buttons.
func renderAlertModal(width int, a script.Alert, active int) string {
	title := a.Title
	if strings.TrimSpace(title) == "" {
		title = "Alert"
	}
	labels := make([]string, 0, len(a.Buttons))
	for _, b := range a.Buttons {
		label := b.Text
		if strings.TrimSpace(label) == "" {
			label = "OK"
		}
		labels = append(labels, label)
	}
	help := styleMuted().Width(modalBodyWidth(width)).Render("←/→: choose   enter: press   esc: dismiss")
	content := strings.Join([]string{
		a.Message,
		"",
		modalButtons(labels, active),
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
