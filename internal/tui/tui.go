package tui

import (
	"context"
	"log/slog"

	"scriptpad/internal/pad"

	tea "github.com/charmbracelet/bubbletea"
)

// Options carries configured appearance; environment variables still win.
type Options struct {
	Theme  string
	Glyphs string
}

// Run loads the store into p and runs the interactive screen until the user
// quits. The screen state is written back to the store dir on exit.
func Run(ctx context.Context, p *pad.Pad, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.Load(ctx)
	st := p.Store()
	log := p.Logger()

	m := newAppModel(ctx, p)
	if state, err := st.LoadTUIState(); err != nil {
		log.Warn("load tui state failed", slog.Any("err", err))
	} else {
		m.applyTUIState(state)
	}
	if ch, err := st.Watch(ctx); err != nil {
		log.Warn("store watch unavailable", slog.Any("err", err))
	} else {
		m.storeEvents = ch
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(appModel); ok {
		if serr := st.SaveTUIState(fm.tuiState()); serr != nil {
			log.Warn("save tui state failed", slog.Any("err", serr))
		}
	}
	return err
}
