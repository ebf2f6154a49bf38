//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"
)

const (
	busName  = "playcard"
	identity = "Playcard"
	noTrack  = "/org/mpris/MediaPlayer2/TrackList/NoTrack"
)

// Adapter serves the MPRIS interfaces on the session bus.
type Adapter struct {
	ctrl   *controller
	server *server.Server
	log    zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New registers the player on the session bus. Remote requests fail until
// Attach is called. It fails when no session bus is reachable.
func New(log zerolog.Logger) (*Adapter, error) {
	if _, err := dbus.SessionBus(); err != nil {
		return nil, errors.Wrap(err, "connect session bus")
	}

	a := &Adapter{
		ctrl: newController(),
		log:  log,
	}
	a.server = server.NewServer(busName, &rootAdapter{}, &playerAdapter{ctrl: a.ctrl, log: log})

	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris listen")
		}
	}()

	return a, nil
}

// Attach delivers remote requests to send, typically (*tea.Program).Send.
// Nil-safe.
func (a *Adapter) Attach(send Sender) {
	if a == nil {
		return
	}
	a.ctrl.attach(send)
}

// Update publishes the state desktop clients read. Nil-safe.
func (a *Adapter) Update(s State) {
	if a == nil {
		return
	}
	a.ctrl.update(s)
}

// Close stops the adapter and releases D-Bus resources. Nil-safe; later
// calls return the first result.
func (a *Adapter) Close() error {
	if a == nil {
		return nil
	}
	a.closeOnce.Do(func() {
		a.closeErr = a.server.Stop()
	})
	return a.closeErr
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

// Quit is refused; the terminal owns the program's lifetime.
func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and
// OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
type playerAdapter struct {
	ctrl *controller
	log  zerolog.Logger
}

func (p *playerAdapter) request(msg RemoteMsg) error {
	p.log.Debug().Stringer("command", msg.Command).Msg("mpris request")
	return p.ctrl.dispatch(msg)
}

func (p *playerAdapter) Next() error {
	return p.request(RemoteMsg{Command: CommandNext})
}

func (p *playerAdapter) Previous() error {
	return p.request(RemoteMsg{Command: CommandPrevious})
}

func (p *playerAdapter) Pause() error {
	return p.request(RemoteMsg{Command: CommandPause})
}

func (p *playerAdapter) PlayPause() error {
	return p.request(RemoteMsg{Command: CommandPlayPause})
}

func (p *playerAdapter) Stop() error {
	return p.request(RemoteMsg{Command: CommandStop})
}

func (p *playerAdapter) Play() error {
	return p.request(RemoteMsg{Command: CommandPlay})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.request(RemoteMsg{
		Command: CommandSeek,
		Offset:  time.Duration(offset) * time.Microsecond,
	})
}

// SetPosition ignores requests for a track other than the current one.
func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	s := p.ctrl.current()
	if !s.Loaded || trackID != formatTrackID(s.Track.StreamURL) {
		return nil
	}
	return p.request(RemoteMsg{
		Command:  CommandSetPosition,
		Position: time.Duration(position) * time.Microsecond,
	})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s := p.ctrl.current()
	switch {
	case !s.Loaded:
		return types.PlaybackStatusStopped, nil
	case s.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.ctrl.current()
	if !s.Loaded {
		return types.Metadata{TrackId: dbus.ObjectPath(noTrack)}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Track.StreamURL)),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   s.Track.Title,
		ArtUrl:  ArtURL(s.Track),
	}
	if s.Track.Subtitle != "" {
		meta.Artist = []string{s.Track.Subtitle}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.current().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// CanGoNext is false: there is no queue to advance.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

// CanGoPrevious reports whether there is a track to restart.
func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.ctrl.current().Loaded, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.ctrl.current().Loaded, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	s := p.ctrl.current()
	return s.Loaded && s.Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.ctrl.current().Repeat {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Playlist looping maps onto track repeat.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	return p.request(RemoteMsg{
		Command: CommandSetLoop,
		Repeat:  status != types.LoopStatusNone,
	})
}

func formatTrackID(ref string) string {
	h := fnv.New64a()
	h.Write([]byte(ref))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
