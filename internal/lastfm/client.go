// Package lastfm sends the card's like button and now-playing state to
// Last.fm.
package lastfm

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/playcard/internal/track"
)

var (
	// ErrNotAuthenticated is returned when no session key is configured.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingArtist is returned for tracks without an artist; Last.fm
	// identifies tracks by artist and title.
	ErrMissingArtist = errors.New("track has no artist")
)

// Song identifies a track on Last.fm.
type Song struct {
	Artist   string
	Title    string
	Duration time.Duration
}

// SongFromTrack uses the track subtitle as the artist.
func SongFromTrack(t track.Track, duration time.Duration) (Song, error) {
	if t.Subtitle == "" {
		return Song{}, ErrMissingArtist
	}
	return Song{Artist: t.Subtitle, Title: t.Title, Duration: duration}, nil
}

func (s Song) params() lastfm.P {
	p := lastfm.P{
		"artist": s.Artist,
		"track":  s.Title,
	}
	if s.Duration > 0 {
		p["duration"] = int(s.Duration.Seconds())
	}
	return p
}

// calls are the API methods the client uses.
type calls struct {
	love       func(lastfm.P) error
	unlove     func(lastfm.P) error
	nowPlaying func(lastfm.P) error
}

// Client wraps the Last.fm API with an authenticated session.
type Client struct {
	api        calls
	sessionKey string
}

// New creates a client for the given API credentials and session key.
func New(apiKey, apiSecret, sessionKey string) *Client {
	api := lastfm.New(apiKey, apiSecret)
	api.SetSession(sessionKey)
	return &Client{
		api: calls{
			love:   func(p lastfm.P) error { return api.Track.Love(p) },
			unlove: func(p lastfm.P) error { return api.Track.UnLove(p) },
			nowPlaying: func(p lastfm.P) error {
				_, err := api.Track.UpdateNowPlaying(p)
				return err
			},
		},
		sessionKey: sessionKey,
	}
}

// IsAuthenticated returns true if a session key is set.
func (c *Client) IsAuthenticated() bool {
	return c.sessionKey != ""
}

// SetLoved loves or unloves s.
func (c *Client) SetLoved(s Song, loved bool) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if loved {
		return errors.Wrap(c.api.love(s.params()), "track.love")
	}
	return errors.Wrap(c.api.unlove(s.params()), "track.unlove")
}

// UpdateNowPlaying reports s as playing.
func (c *Client) UpdateNowPlaying(s Song) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return errors.Wrap(c.api.nowPlaying(s.params()), "track.updateNowPlaying")
}
