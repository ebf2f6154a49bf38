// internal/app/update_playback.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/playcard/internal/artwork"
	"github.com/llehouerou/playcard/internal/errmsg"
	"github.com/llehouerou/playcard/internal/player"
)

// handlePlaybackMsg routes engine notifications to the view-model and keeps
// the watch armed until the subscription closes.
func (m *Model) handlePlaybackMsg(msg PlaybackMessage) tea.Cmd {
	switch msg := msg.(type) {
	case EngineEventMsg:
		ev := player.Event(msg)
		m.vm.HandleEvent(ev)
		if ev.Kind == player.EventEnded && ev.Generation == m.engine.Generation() {
			m.handleEnded()
		}
		return WatchEngineEvents(m.vm.Subscription())

	case EngineErrorMsg:
		e := player.ErrorEvent(msg)
		if e.Generation != m.engine.Generation() {
			m.log.Debug().Uint64("generation", e.Generation).Msg("dropping stale engine error")
		} else {
			m.log.Error().Err(e.Err).Str("op", string(e.Op)).Str("source", e.Source).Msg("playback failed")
			m.card.SetError(e.Message())
		}
		return WatchEngineEvents(m.vm.Subscription())

	case EngineClosedMsg:
		m.log.Debug().Msg("engine subscription closed")
	}
	return nil
}

// handleEnded restarts the track when repeat is on.
func (m *Model) handleEnded() {
	m.nowPlayingSent = false
	if !m.repeat {
		return
	}
	m.vm.Seek(0)
	if !m.engine.IsPlaying() {
		m.vm.PlayPause()
	}
}

// handleArtwork shows the thumbnail. On failure the card keeps its
// placeholder.
func (m *Model) handleArtwork(msg ArtworkMsg) {
	switch {
	case errors.Is(msg.Err, artwork.ErrNoArtwork):
		m.log.Debug().Msg("track has no artwork")
	case msg.Err != nil:
		m.log.Warn().Err(msg.Err).Str("op", string(errmsg.OpArtworkLoad)).Msg("artwork unavailable")
	default:
		m.card.SetArtwork(msg.Data)
	}
}
