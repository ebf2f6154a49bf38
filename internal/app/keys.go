// internal/app/keys.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/keymap"
)

// handleKey runs the host-level bindings. Keys it does not handle go to the
// card.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.keys.ResolveKey(msg) {
	case keymap.ActionQuit:
		return true, m.quit()
	}
	return false, nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Shutdown()
	return tea.Quit
}
