// internal/app/intents.go
package app

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/errmsg"
	"github.com/llehouerou/playcard/internal/lastfm"
	"github.com/llehouerou/playcard/internal/mpris"
	"github.com/llehouerou/playcard/internal/ui/action"
	"github.com/llehouerou/playcard/internal/ui/playercard"
)

// volumeControl is implemented by engines with an output level.
type volumeControl interface {
	Volume() float64
	SetVolume(level float64)
	Muted() bool
	SetMuted(muted bool)
}

// handleAction turns card intents into view-model calls.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	if msg.Source != playercard.Source || msg.Action == nil {
		return nil
	}
	m.log.Debug().Str("action", msg.Action.ActionType()).Msg("intent")

	switch a := msg.Action.(type) {
	case playercard.PlayPauseMsg:
		m.vm.PlayPause()
	case playercard.SeekMsg:
		m.vm.Seek(a.Ratio)
	case playercard.PrevMsg:
		m.vm.Seek(0)
	case playercard.NextMsg:
		m.skipNext()
	case playercard.LikeMsg:
		return m.like(a.Liked)
	case playercard.RepeatMsg:
		m.setRepeat(a.Enabled)
	case playercard.VolumeMsg:
		m.changeVolume(a.Delta)
	case playercard.MuteMsg:
		m.toggleMute()
	}
	return nil
}

// handleRemote applies a request from a desktop media client.
func (m *Model) handleRemote(msg mpris.RemoteMsg) tea.Cmd {
	m.log.Debug().Stringer("command", msg.Command).Msg("remote")

	switch msg.Command {
	case mpris.CommandPlay:
		if !m.engine.IsPlaying() {
			m.vm.PlayPause()
		}
	case mpris.CommandPause:
		if m.engine.IsPlaying() {
			m.vm.PlayPause()
		}
	case mpris.CommandPlayPause:
		m.vm.PlayPause()
	case mpris.CommandStop:
		if m.engine.IsPlaying() {
			m.vm.PlayPause()
		}
		m.vm.Seek(0)
	case mpris.CommandNext:
		m.skipNext()
	case mpris.CommandPrevious:
		m.vm.Seek(0)
	case mpris.CommandSeek:
		m.seekTo(m.engine.CurrentTime()+msg.Offset, true)
	case mpris.CommandSetPosition:
		m.seekTo(msg.Position, false)
	case mpris.CommandSetLoop:
		m.card.SetRepeat(msg.Repeat)
		m.setRepeat(msg.Repeat)
	}
	return nil
}

// seekTo seeks to an absolute position. Out-of-range positions are clamped
// when clamp is set and ignored otherwise.
func (m *Model) seekTo(pos time.Duration, clamp bool) {
	d := m.engine.Duration()
	if d <= 0 {
		return
	}
	ratio := float64(pos) / float64(d)
	if clamp {
		ratio = min(max(ratio, 0), 1)
	}
	m.vm.Seek(ratio)
}

// skipNext has no queue to advance.
func (m *Model) skipNext() {
	m.log.Info().Str("title", m.track.Title).Msg("next: no queued track")
}

func (m *Model) setRepeat(on bool) {
	m.repeat = on
	m.mpris.Update(m.remoteState())
}

// like loves or unloves the track on Last.fm when configured.
func (m *Model) like(liked bool) tea.Cmd {
	if m.lastfm == nil {
		m.log.Info().Bool("liked", liked).Str("title", m.track.Title).Msg("like")
		return nil
	}
	snap, _ := m.card.Snapshot()
	song, err := lastfm.SongFromTrack(m.track, snap.Duration)
	if err != nil {
		m.card.SetLiked(!liked)
		m.card.SetStatus(errmsg.Format(errmsg.OpLastfmLove, err))
		return nil
	}
	return lastfm.LoveCmd(m.lastfm, song, liked)
}

// nowPlaying reports the track to Last.fm the first time it plays.
func (m *Model) nowPlaying(playing bool, duration time.Duration) tea.Cmd {
	if m.lastfm == nil || m.nowPlayingSent || !playing {
		return nil
	}
	m.nowPlayingSent = true
	song, err := lastfm.SongFromTrack(m.track, duration)
	if err != nil {
		m.log.Debug().Err(err).Msg("skip now playing")
		return nil
	}
	return lastfm.NowPlayingCmd(m.lastfm, song)
}

func (m *Model) changeVolume(delta float64) {
	v, ok := m.engine.(volumeControl)
	if !ok {
		return
	}
	v.SetVolume(v.Volume() + delta)
	if v.Muted() {
		v.SetMuted(false)
	}
	m.card.SetStatus(volumeStatus(v.Volume()))
}

func (m *Model) toggleMute() {
	v, ok := m.engine.(volumeControl)
	if !ok {
		return
	}
	v.SetMuted(!v.Muted())
	if v.Muted() {
		m.card.SetStatus("Muted")
		return
	}
	m.card.SetStatus(volumeStatus(v.Volume()))
}

func volumeStatus(level float64) string {
	return fmt.Sprintf("Volume %d%%", int(math.Round(level*100)))
}
