// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/lastfm"
	"github.com/llehouerou/playcard/internal/mpris"
	"github.com/llehouerou/playcard/internal/ui/action"
)

// Update handles messages and returns updated model and commands.
// Snapshots published by the view-model while handling msg reach the card
// once, after the handler returns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	snapCmd := m.applySnapshot()
	return m, tea.Batch(cmd, snapCmd)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cmd := m.updateCard(msg)
		m.card.SetOrigin(m.cardX(), 0)
		return cmd

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return cmd
		}
		return m.updateCard(msg)

	case action.Msg:
		return m.handleAction(msg)

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case mpris.RemoteMsg:
		return m.handleRemote(msg)

	case lastfm.LoveResultMsg, lastfm.NowPlayingResultMsg:
		return m.handleLastfmMsg(msg)

	case ArtworkMsg:
		m.handleArtwork(msg)
		return nil

	case StderrMsg:
		m.card.SetStatus(msg.Line)
		return WatchStderr(m.stderr)
	}
	return m.updateCard(msg)
}

func (m *Model) updateCard(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.card, cmd = m.card.Update(msg)
	return cmd
}

// applySnapshot hands the latest published snapshot to the card and MPRIS.
func (m *Model) applySnapshot() tea.Cmd {
	if !m.inbox.pending {
		return nil
	}
	s := m.inbox.snap
	m.inbox.pending = false
	m.card.SetSnapshot(s)
	m.mpris.Update(m.remoteState())
	return m.nowPlaying(s.Playing, s.Duration)
}

// remoteState is what MPRIS clients see.
func (m Model) remoteState() mpris.State {
	snap, ok := m.card.Snapshot()
	return mpris.State{
		Loaded:   ok,
		Track:    m.track,
		Playing:  snap.Playing,
		Position: snap.Position,
		Duration: snap.Duration,
		Repeat:   m.repeat,
	}
}
