// internal/app/update_lastfm.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/errmsg"
	"github.com/llehouerou/playcard/internal/lastfm"
)

// handleLastfmMsg handles Last.fm related messages.
func (m *Model) handleLastfmMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case lastfm.LoveResultMsg:
		m.handleLoveResult(msg)
	case lastfm.NowPlayingResultMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("title", msg.Song.Title).Msg("last.fm now playing")
		}
	}
	return nil
}

// handleLoveResult reverts the heart when Last.fm refused the change.
func (m *Model) handleLoveResult(msg lastfm.LoveResultMsg) {
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Bool("loved", msg.Loved).Msg("last.fm love")
		m.card.SetLiked(!msg.Loved)
		m.card.SetStatus(errmsg.Format(errmsg.OpLastfmLove, msg.Err))
		return
	}
	if msg.Loved {
		m.card.SetStatus("Loved on Last.fm")
	} else {
		m.card.SetStatus("Removed from Last.fm loved tracks")
	}
}
