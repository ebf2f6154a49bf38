// Package action defines how UI components report user intents to the host.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a user intent raised by a component. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg wraps an Action with the name of the component that raised it.
type Msg struct {
	Source string // e.g. "playercard"
	Action Action
}

var _ tea.Msg = Msg{}

// Cmd returns a command delivering a as a Msg from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg {
		return Msg{Source: source, Action: a}
	}
}
