package playercard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scrubState tracks a seek the user is choosing. While active, and while
// holding after a commit, snapshots do not move the knob so late time
// updates from before the seek cannot make it jump back.
type scrubState struct {
	active       bool
	holding      bool
	ratio        float64
	version      int // bumped by every step, cancel and commit
	graceVersion int
}

func (m Model) seekable() bool {
	return m.hasSnap && m.snap.Duration > 0
}

// displayRatio is where the knob is drawn.
func (m Model) displayRatio() float64 {
	if m.scrub.active || m.scrub.holding {
		return m.scrub.ratio
	}
	if !m.hasSnap {
		return 0
	}
	return m.snap.Progress()
}

func (m Model) stepScrub(delta float64) (Model, tea.Cmd) {
	if !m.seekable() {
		return m, nil
	}
	if !m.scrub.active {
		m.scrub.ratio = m.displayRatio()
		m.scrub.active = true
	}
	m.scrub.ratio = clampRatio(m.scrub.ratio + delta)
	m.scrub.version++
	v := m.scrub.version
	return m, tea.Tick(m.cfg.ScrubCommitDelay, func(time.Time) tea.Msg {
		return scrubCommitMsg{version: v}
	})
}

func (m Model) commitScrub() (Model, tea.Cmd) {
	ratio := m.scrub.ratio
	m.scrub.active = false
	m.scrub.version++
	m.dragging = false
	seek := emit(SeekMsg{Ratio: ratio})

	if m.cfg.ScrubGrace <= 0 {
		m.scrub.holding = false
		return m, seek
	}
	m.scrub.holding = true
	m.scrub.graceVersion++
	gv := m.scrub.graceVersion
	return m, tea.Batch(seek, tea.Tick(m.cfg.ScrubGrace, func(time.Time) tea.Msg {
		return scrubReleaseMsg{version: gv}
	}))
}

func (m *Model) cancelScrub() {
	m.scrub.active = false
	m.scrub.version++
	m.dragging = false
}

func clampRatio(r float64) float64 {
	return min(max(r, 0), 1)
}
