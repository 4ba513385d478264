package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// waitForStoreChange turns the next store notification into a message.
// Update re-arms it after every storeChangedMsg.
func waitForStoreChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return storeWatchClosedMsg{}
		}
		return storeChangedMsg{}
	}
}
