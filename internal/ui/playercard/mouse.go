package playercard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/ui"
)

// contentCell converts screen coordinates to a content row and column. The
// column may fall outside the content while dragging.
func (m Model) contentCell(x, y int) (row, col int) {
	row = y - m.originY - 1
	col = x - m.originX - 1 - ui.HorizontalPadding
	return row, col
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	cw := m.contentWidth()
	row, col := m.contentCell(msg.X, msg.Y)
	header := m.headerRows()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch row {
		case header + rowScrubOffset:
			if !m.seekable() || col < 0 || col >= cw {
				return m, nil
			}
			m.dragging = true
			m.scrub.active = true
			m.scrub.version++ // drop any pending keyboard commit
			m.scrub.ratio = ratioAt(col, cw)
		case header + rowTransportOffset:
			if slot := slotAt(col, cw); slot >= 0 {
				return m.trigger(transportActions[slot])
			}
		}

	case tea.MouseActionMotion:
		if m.dragging {
			m.scrub.ratio = ratioAt(col, cw)
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.scrub.ratio = ratioAt(col, cw)
			return m.commitScrub()
		}
	}
	return m, nil
}
