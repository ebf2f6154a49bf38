// internal/app/view.go
package app

import (
	"strings"

	"github.com/llehouerou/playcard/internal/keymap"
	"github.com/llehouerou/playcard/internal/ui/kittyimg"
	"github.com/llehouerou/playcard/internal/ui/render"
	"github.com/llehouerou/playcard/internal/ui/styles"
)

// View renders the card and a one-line hint below it.
func (m Model) View() string {
	if m.quitting {
		// Images outlive the alternate screen.
		return kittyimg.DeleteAll
	}
	return indent(m.card.View()+"\n"+m.footer(), m.cardX())
}

// cardX is the column the card is drawn at: centered in the window.
func (m Model) cardX() int {
	return max((m.width-m.card.Width())/2, 0)
}

func indent(s string, n int) string {
	if n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

func (m Model) footer() string {
	var parts []string
	for _, a := range []keymap.Action{keymap.ActionQuit, keymap.ActionHelp} {
		if keys := m.keys.KeysFor(a); len(keys) > 0 {
			parts = append(parts, keys[0]+" "+footerLabels[a])
		}
	}
	hint := render.Truncate(" "+strings.Join(parts, " · "), m.card.Width())
	return styles.T().S().Help.Render(hint)
}

var footerLabels = map[keymap.Action]string{
	keymap.ActionQuit: "quit",
	keymap.ActionHelp: "help",
}
