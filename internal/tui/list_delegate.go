package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// compactItemDelegate renders one file per row: name on the left, line count
// on the right.
type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle().Foreground(colorSurfaceFg),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		meta: styleMuted(),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	isSelected := index == m.Index()
	style := d.normal
	prefix := "  "
	if isSelected {
		style = d.selected
		prefix = glyphCursor() + " "
	}

	title := fmt.Sprint(item)
	meta := ""
	if fi, ok := item.(fileItem); ok {
		title = fi.Title()
		meta = fi.Description()
	}

	left := prefix + title
	leftW := xansi.StringWidth(left)
	metaW := xansi.StringWidth(meta)

	// Drop the meta column when the name needs the room.
	if meta == "" || leftW+metaW+2 > contentW {
		line := left
		if leftW > contentW {
			line = xansi.Cut(line, 0, contentW-1) + "…"
			leftW = contentW
		}
		fmt.Fprint(w, style.Render(line+strings.Repeat(" ", max(0, contentW-leftW))))
		return
	}

	gap := strings.Repeat(" ", contentW-leftW-metaW)
	if isSelected {
		fmt.Fprint(w, style.Render(left+gap+meta))
		return
	}
	fmt.Fprint(w, style.Render(left+gap)+d.meta.Render(meta))
}
