// internal/app/app_test.go
package app

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/playcard/internal/errmsg"
	"github.com/llehouerou/playcard/internal/lastfm"
	"github.com/llehouerou/playcard/internal/mpris"
	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/track"
	"github.com/llehouerou/playcard/internal/ui/action"
	"github.com/llehouerou/playcard/internal/ui/playercard"
	"github.com/llehouerou/playcard/internal/ui/testutil"
)

var testTrack = track.Track{
	Title:     "Song",
	Subtitle:  "Artist",
	StreamURL: "https://example.com/song.mp3",
}

func newTestModel(t *testing.T, engine player.Interface) Model {
	t.Helper()
	return New(Options{
		Track:  testTrack,
		Card:   playercard.Config{Width: 44, ScrubGrace: 500 * time.Millisecond},
		Engine: engine,
		Log:    zerolog.Nop(),
	})
}

func newMockModel(t *testing.T) (Model, *player.Mock) {
	t.Helper()
	mock := player.NewMock()
	mock.SetDuration(4 * time.Minute)
	return newTestModel(t, mock), mock
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func intent(a action.Action) action.Msg {
	return action.Msg{Source: playercard.Source, Action: a}
}

func event(mock *player.Mock, kind player.EventKind, playing bool, pos time.Duration) EngineEventMsg {
	return EngineEventMsg{
		Kind:       kind,
		Generation: mock.Generation(),
		Playing:    playing,
		Position:   pos,
		Duration:   mock.Duration(),
	}
}

func TestNew_LoadsTrackAndPublishes(t *testing.T) {
	m, mock := newMockModel(t)

	assert.Equal(t, []track.Track{testTrack}, mock.Loads())

	snap, ok := m.Card().Snapshot()
	require.True(t, ok)
	assert.Equal(t, "Song", snap.Title)
	assert.Equal(t, "Artist", snap.Subtitle)
	assert.Zero(t, snap.Position)
	assert.Equal(t, 4*time.Minute, snap.Duration)
}

func TestInit_ReturnsCommands(t *testing.T) {
	m, _ := newMockModel(t)
	assert.NotNil(t, m.Init())
}

func TestUpdate_PlayPauseIntent(t *testing.T) {
	m, mock := newMockModel(t)

	m, _ = send(t, m, intent(playercard.PlayPauseMsg{}))
	assert.Equal(t, 1, mock.PlayCalls())

	m, cmd := send(t, m, event(mock, player.EventStateChanged, true, 0))
	assert.NotNil(t, cmd, "engine watch must be re-armed")
	snap, _ := m.Card().Snapshot()
	assert.True(t, snap.Playing)

	_, _ = send(t, m, intent(playercard.PlayPauseMsg{}))
	assert.Equal(t, 1, mock.PauseCalls())
}

func TestUpdate_SeekAndPrevIntents(t *testing.T) {
	m, mock := newMockModel(t)

	m, _ = send(t, m, intent(playercard.SeekMsg{Ratio: 0.5}))
	_, _ = send(t, m, intent(playercard.PrevMsg{}))

	assert.Equal(t, []time.Duration{2 * time.Minute, 0}, mock.SeekCalls())
}

func TestUpdate_NextIsNoOp(t *testing.T) {
	m, mock := newMockModel(t)

	_, cmd := send(t, m, intent(playercard.NextMsg{}))

	assert.Nil(t, cmd)
	assert.Empty(t, mock.SeekCalls())
	assert.Len(t, mock.Loads(), 1)
}

func TestUpdate_IgnoresForeignActions(t *testing.T) {
	m, mock := newMockModel(t)

	_, _ = send(t, m, action.Msg{Source: "other", Action: playercard.PlayPauseMsg{}})

	assert.Zero(t, mock.PlayCalls())
}

func TestUpdate_TimeUpdateMovesCard(t *testing.T) {
	m, mock := newMockModel(t)
	mock.SetPlaying(true)

	m, _ = send(t, m, event(mock, player.EventTimeUpdate, true, 83*time.Second))

	snap, _ := m.Card().Snapshot()
	assert.Equal(t, 83*time.Second, snap.Position)
	assert.Contains(t, testutil.StripANSI(m.View()), "1:23")
}

func TestUpdate_DropsStaleEvents(t *testing.T) {
	m, mock := newMockModel(t)
	ev := event(mock, player.EventTimeUpdate, true, time.Minute)
	ev.Generation = mock.Generation() - 1

	m, _ = send(t, m, ev)

	snap, _ := m.Card().Snapshot()
	assert.Zero(t, snap.Position)
}

func TestUpdate_EndedWithoutRepeat(t *testing.T) {
	m, mock := newMockModel(t)

	m, _ = send(t, m, event(mock, player.EventEnded, false, mock.Duration()))

	snap, _ := m.Card().Snapshot()
	assert.False(t, snap.Playing)
	assert.Equal(t, 4*time.Minute, snap.Position)
	assert.Empty(t, mock.SeekCalls())
	assert.Zero(t, mock.PlayCalls())
}

func TestUpdate_EndedWithRepeatRestarts(t *testing.T) {
	m, mock := newMockModel(t)

	m, _ = send(t, m, intent(playercard.RepeatMsg{Enabled: true}))
	require.True(t, m.Repeat())

	_, _ = send(t, m, event(mock, player.EventEnded, false, mock.Duration()))

	assert.Equal(t, []time.Duration{0}, mock.SeekCalls())
	assert.Equal(t, 1, mock.PlayCalls())
}

func TestUpdate_EngineErrorShownOnCard(t *testing.T) {
	m, mock := newMockModel(t)

	m, cmd := send(t, m, EngineErrorMsg{
		Op:         errmsg.OpStreamOpen,
		Source:     testTrack.StreamURL,
		Err:        errors.New("boom"),
		Generation: mock.Generation(),
	})

	assert.NotNil(t, cmd)
	assert.Contains(t, testutil.StripANSI(m.View()), "Failed to open stream: boom")
}

func TestUpdate_StaleEngineErrorIgnored(t *testing.T) {
	m, mock := newMockModel(t)

	m, _ = send(t, m, EngineErrorMsg{
		Op:         errmsg.OpStreamDecode,
		Err:        errors.New("old"),
		Generation: mock.Generation() + 1,
	})

	assert.NotContains(t, testutil.StripANSI(m.View()), "Failed to")
}

func TestUpdate_EngineClosedStopsWatching(t *testing.T) {
	m, _ := newMockModel(t)

	_, cmd := send(t, m, EngineClosedMsg{})

	assert.Nil(t, cmd)
}

func TestUpdate_QuitReleasesEngine(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m, mock := newMockModel(t)

			m, cmd := send(t, m, key)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, mock.Closed())
			assert.NotContains(t, m.View(), "Song")
		})
	}
}

func TestUpdate_KeysReachCard(t *testing.T) {
	m, _ := newMockModel(t)

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	require.NotNil(t, cmd)
	msgs := testutil.Collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, intent(playercard.PlayPauseMsg{}), msgs[0])
}

func TestUpdate_LikeWithoutLastfm(t *testing.T) {
	m, _ := newMockModel(t)

	_, cmd := send(t, m, intent(playercard.LikeMsg{Liked: true}))

	assert.Nil(t, cmd)
}

func TestUpdate_LikeWithLastfm(t *testing.T) {
	m, _ := newMockModel(t)
	m.lastfm = lastfm.New("key", "secret", "session")

	_, cmd := send(t, m, intent(playercard.LikeMsg{Liked: true}))

	assert.NotNil(t, cmd)
}

func TestUpdate_LikeWithoutArtistReverts(t *testing.T) {
	mock := player.NewMock()
	m := New(Options{
		Track:  track.Track{Title: "Untitled", StreamURL: "a.mp3"},
		Card:   playercard.Config{Width: 44},
		Engine: mock,
		Log:    zerolog.Nop(),
	})
	m.lastfm = lastfm.New("key", "secret", "session")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	require.True(t, m.Card().Liked())
	m, cmd := send(t, m, intent(playercard.LikeMsg{Liked: true}))

	assert.Nil(t, cmd)
	assert.False(t, m.Card().Liked())
	assert.Contains(t, testutil.StripANSI(m.View()), "Failed to update Last.fm love")
}

func TestUpdate_LoveResult(t *testing.T) {
	m, _ := newMockModel(t)
	m.card.SetLiked(true)

	m, _ = send(t, m, lastfm.LoveResultMsg{Loved: true, Err: errors.New("rate limited")})

	assert.False(t, m.Card().Liked())
	assert.Contains(t, testutil.StripANSI(m.View()), "Failed to update Last.fm")

	m, _ = send(t, m, lastfm.LoveResultMsg{Loved: false})
	assert.Contains(t, testutil.StripANSI(m.View()), "Removed from Last.fm")
}

func TestUpdate_NowPlayingSentOnce(t *testing.T) {
	m, mock := newMockModel(t)
	m.lastfm = lastfm.New("key", "secret", "session")

	m, _ = send(t, m, event(mock, player.EventTimeUpdate, false, 0))
	assert.False(t, m.nowPlayingSent)

	mock.SetPlaying(true)
	m, _ = send(t, m, event(mock, player.EventStateChanged, true, 0))
	assert.True(t, m.nowPlayingSent)
}

func TestUpdate_Artwork(t *testing.T) {
	mock := player.NewMock()
	m := New(Options{
		Track:  testTrack,
		Card:   playercard.Config{Width: 44, Artwork: true},
		Engine: mock,
		Log:    zerolog.Nop(),
	})

	m, _ = send(t, m, ArtworkMsg{Err: errors.New("timeout")})
	assert.NotContains(t, m.View(), "\x1b_G")

	m, _ = send(t, m, ArtworkMsg{Data: []byte("png")})
	assert.Contains(t, m.View(), "\x1b_Ga=T")
}

func TestUpdate_StderrLineOnStatus(t *testing.T) {
	m, _ := newMockModel(t)

	m, cmd := send(t, m, StderrMsg{Line: "ALSA underrun"})

	assert.Nil(t, cmd, "no capture channel to re-arm")
	assert.Contains(t, testutil.StripANSI(m.View()), "ALSA underrun")
}

// volumeEngine adds an output level to the mock.
type volumeEngine struct {
	*player.Mock
	level float64
	muted bool
}

func (v *volumeEngine) Volume() float64     { return v.level }
func (v *volumeEngine) SetVolume(l float64) { v.level = min(max(l, 0), 1) }
func (v *volumeEngine) Muted() bool         { return v.muted }
func (v *volumeEngine) SetMuted(b bool)     { v.muted = b }

func TestUpdate_Volume(t *testing.T) {
	engine := &volumeEngine{Mock: player.NewMock(), level: 1}
	m := newTestModel(t, engine)

	m, _ = send(t, m, intent(playercard.VolumeMsg{Delta: -0.3}))
	assert.InDelta(t, 0.7, engine.level, 1e-9)
	assert.Contains(t, testutil.StripANSI(m.View()), "Volume 70%")

	m, _ = send(t, m, intent(playercard.MuteMsg{}))
	assert.True(t, engine.muted)
	assert.Contains(t, testutil.StripANSI(m.View()), "Muted")

	_, _ = send(t, m, intent(playercard.VolumeMsg{Delta: 0.1}))
	assert.False(t, engine.muted)
	assert.InDelta(t, 0.8, engine.level, 1e-9)
}

func TestUpdate_VolumeUnsupported(t *testing.T) {
	m, _ := newMockModel(t)

	m, _ = send(t, m, intent(playercard.VolumeMsg{Delta: 0.1}))

	assert.NotContains(t, testutil.StripANSI(m.View()), "Volume")
}

func TestView_Footer(t *testing.T) {
	m, _ := newMockModel(t)

	lines := strings.Split(testutil.StripANSI(m.View()), "\n")
	last := lines[len(lines)-1]

	assert.Contains(t, last, "q quit")
	assert.Contains(t, last, "? help")
}

func TestUpdate_WindowSizeCentersCard(t *testing.T) {
	tests := []struct {
		name  string
		width int
		wantX int
	}{
		{"wide window", 84, 20},
		{"odd remainder", 85, 20},
		{"exact fit", 44, 0},
		{"narrow window", 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newMockModel(t)

			m, _ = send(t, m, tea.WindowSizeMsg{Width: tt.width, Height: 30})

			if x, y := m.Card().Origin(); x != tt.wantX || y != 0 {
				t.Errorf("card origin = (%d, %d), want (%d, 0)", x, y, tt.wantX)
			}
			pad := strings.Repeat(" ", tt.wantX)
			for i, line := range strings.Split(testutil.StripANSI(m.View()), "\n") {
				if !strings.HasPrefix(line, pad) {
					t.Errorf("line %d %q is not indented by %d", i, line, tt.wantX)
				}
			}
		})
	}
}

func TestArtworkEnabled(t *testing.T) {
	assert.True(t, ArtworkEnabled("kitty"))
	assert.False(t, ArtworkEnabled("none"))
	assert.False(t, ArtworkEnabled(""))
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		track track.Track
		want  string
	}{
		{track.Track{Title: "Song", Subtitle: "Artist"}, "Song - Artist"},
		{track.Track{Title: "Song"}, "Song"},
		{track.Track{}, "playcard"},
	}
	for _, tt := range tests {
		if got := windowTitle(tt.track); got != tt.want {
			t.Errorf("windowTitle(%+v) = %q, want %q", tt.track, got, tt.want)
		}
	}
}

func TestUpdate_RemoteCommands(t *testing.T) {
	tests := []struct {
		name      string
		playing   bool
		position  time.Duration
		msg       mpris.RemoteMsg
		wantPlay  int
		wantPause int
		wantSeeks []time.Duration
	}{
		{"play when paused", false, 0, mpris.RemoteMsg{Command: mpris.CommandPlay}, 1, 0, nil},
		{"play when playing", true, 0, mpris.RemoteMsg{Command: mpris.CommandPlay}, 0, 0, nil},
		{"pause when playing", true, 0, mpris.RemoteMsg{Command: mpris.CommandPause}, 0, 1, nil},
		{"pause when paused", false, 0, mpris.RemoteMsg{Command: mpris.CommandPause}, 0, 0, nil},
		{"play-pause when paused", false, 0, mpris.RemoteMsg{Command: mpris.CommandPlayPause}, 1, 0, nil},
		{"play-pause when playing", true, 0, mpris.RemoteMsg{Command: mpris.CommandPlayPause}, 0, 1, nil},
		{"stop when playing", true, time.Minute, mpris.RemoteMsg{Command: mpris.CommandStop}, 0, 1, []time.Duration{0}},
		{"stop when paused", false, time.Minute, mpris.RemoteMsg{Command: mpris.CommandStop}, 0, 0, []time.Duration{0}},
		{"previous restarts", true, time.Minute, mpris.RemoteMsg{Command: mpris.CommandPrevious}, 0, 0, []time.Duration{0}},
		{"next does nothing", true, time.Minute, mpris.RemoteMsg{Command: mpris.CommandNext}, 0, 0, nil},
		{"seek forward", false, time.Minute, mpris.RemoteMsg{Command: mpris.CommandSeek, Offset: time.Minute}, 0, 0, []time.Duration{2 * time.Minute}},
		{"seek past end clamps", false, 3*time.Minute + 50*time.Second, mpris.RemoteMsg{Command: mpris.CommandSeek, Offset: 30 * time.Second}, 0, 0, []time.Duration{4 * time.Minute}},
		{"seek before start clamps", false, 30 * time.Second, mpris.RemoteMsg{Command: mpris.CommandSeek, Offset: -time.Minute}, 0, 0, []time.Duration{0}},
		{"set position", false, 0, mpris.RemoteMsg{Command: mpris.CommandSetPosition, Position: time.Minute}, 0, 0, []time.Duration{time.Minute}},
		{"set position past end ignored", false, 0, mpris.RemoteMsg{Command: mpris.CommandSetPosition, Position: 5 * time.Minute}, 0, 0, nil},
		{"set position negative ignored", false, 0, mpris.RemoteMsg{Command: mpris.CommandSetPosition, Position: -time.Second}, 0, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mock := newMockModel(t)
			mock.SetPlaying(tt.playing)
			mock.SetPosition(tt.position)

			_, cmd := send(t, m, tt.msg)

			if cmd != nil {
				t.Error("remote commands return no command")
			}
			if got := mock.PlayCalls(); got != tt.wantPlay {
				t.Errorf("PlayCalls() = %d, want %d", got, tt.wantPlay)
			}
			if got := mock.PauseCalls(); got != tt.wantPause {
				t.Errorf("PauseCalls() = %d, want %d", got, tt.wantPause)
			}
			if got := mock.SeekCalls(); !slices.Equal(got, tt.wantSeeks) {
				t.Errorf("SeekCalls() = %v, want %v", got, tt.wantSeeks)
			}
		})
	}
}

func TestUpdate_RemotePlayIsIdempotent(t *testing.T) {
	m, mock := newMockModel(t)

	m, _ = send(t, m, mpris.RemoteMsg{Command: mpris.CommandPlay})
	_, _ = send(t, m, mpris.RemoteMsg{Command: mpris.CommandPlay})

	if got := mock.PlayCalls(); got != 1 {
		t.Errorf("PlayCalls() = %d, want 1", got)
	}
	if !mock.IsPlaying() {
		t.Error("engine should be playing")
	}
}

func TestUpdate_RemoteSeekWithoutDuration(t *testing.T) {
	m, mock := newMockModel(t)
	mock.SetDuration(0)

	_, _ = send(t, m, mpris.RemoteMsg{Command: mpris.CommandSeek, Offset: 10 * time.Second})

	if got := mock.SeekCalls(); len(got) != 0 {
		t.Errorf("SeekCalls() = %v, want none while the duration is unknown", got)
	}
}

func TestUpdate_RemoteSetLoop(t *testing.T) {
	m, _ := newMockModel(t)

	m, _ = send(t, m, mpris.RemoteMsg{Command: mpris.CommandSetLoop, Repeat: true})
	if !m.Repeat() || !m.Card().Repeat() {
		t.Errorf("after SetLoop(true): app repeat %v, card repeat %v, want both true", m.Repeat(), m.Card().Repeat())
	}

	m, _ = send(t, m, mpris.RemoteMsg{Command: mpris.CommandSetLoop, Repeat: false})
	if m.Repeat() || m.Card().Repeat() {
		t.Errorf("after SetLoop(false): app repeat %v, card repeat %v, want both false", m.Repeat(), m.Card().Repeat())
	}
}
