package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Component is a value-type bubbletea component whose Update returns the
// updated copy.
type Component[M any] interface {
	Update(msg tea.Msg) (M, tea.Cmd)
	View() string
}

// Harness drives a Component in tests, keeping the latest model and every
// command it returned.
type Harness[M Component[M]] struct {
	model M
	cmds  []tea.Cmd
}

// NewHarness wraps model.
func NewHarness[M Component[M]](model M) *Harness[M] {
	return &Harness[M]{model: model}
}

// Model returns a pointer to the current model so tests can call setters.
func (h *Harness[M]) Model() *M {
	return &h.model
}

// View returns the model's rendered content.
func (h *Harness[M]) View() string {
	return h.model.View()
}

// PlainView returns the view without escape sequences.
func (h *Harness[M]) PlainView() string {
	return StripANSI(h.model.View())
}

// Send delivers msg and returns the resulting command.
func (h *Harness[M]) Send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey simulates typing key as runes.
func (h *Harness[M]) SendKey(key string) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a non-rune key (enter, esc, arrows).
func (h *Harness[M]) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: keyType})
}

// Press sends a left button press at screen cell (x, y).
func (h *Harness[M]) Press(x, y int) tea.Cmd {
	return h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// Drag sends a left button motion to (x, y).
func (h *Harness[M]) Drag(x, y int) tea.Cmd {
	return h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

// Release sends a button release at (x, y).
func (h *Harness[M]) Release(x, y int) tea.Cmd {
	return h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

// Commands returns every command collected so far.
func (h *Harness[M]) Commands() []tea.Cmd {
	return h.cmds
}

// ViewContains reports whether the plain view contains substr.
func (h *Harness[M]) ViewContains(substr string) bool {
	return strings.Contains(h.PlainView(), substr)
}

// Collect runs cmd and returns every message it produces, flattening
// batches. Commands built with tea.Tick block for their duration.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
