// Package track defines the playable item shown by the player card.
package track

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/playcard/internal/tags"
)

// Track describes one playable item. It is a value: copy it freely.
type Track struct {
	Title        string
	Subtitle     string
	ArtworkURL   string        // "" when the track has no artwork reference
	StreamURL    string        // http(s) URL, file:// URL or local path
	DurationHint time.Duration // used when the stream does not report a duration; 0 = none
}

// Sample returns the demo track played when nothing else is configured.
func Sample() Track {
	return Track{
		Title:      "SoundHelix Song 1",
		Subtitle:   "Demo Artist",
		ArtworkURL: "https://picsum.photos/seed/geminiplay/256",
		StreamURL:  "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	}
}

// FromFile builds a Track from a local audio file using its tags.
func FromFile(path string) (Track, error) {
	tg, err := tags.Read(path)
	if err != nil {
		return Track{}, errors.Wrapf(err, "read tags of %s", path)
	}
	return Track{
		Title:     tg.Title,
		Subtitle:  tg.Subtitle(),
		StreamURL: path,
	}, nil
}

// HasArtwork reports whether the track references artwork.
func (t Track) HasArtwork() bool {
	return strings.TrimSpace(t.ArtworkURL) != ""
}

// IsRemote reports whether the stream is fetched over HTTP.
func (t Track) IsRemote() bool {
	return IsRemote(t.StreamURL)
}

// LocalPath returns the filesystem path of a local stream, or "" for remote ones.
func (t Track) LocalPath() string {
	return LocalPath(t.StreamURL)
}

// IsRemote reports whether ref is an http or https URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// LocalPath resolves a file:// URL or plain path to a filesystem path.
// Returns "" for remote or unparsable references.
func LocalPath(ref string) string {
	if ref == "" || IsRemote(ref) {
		return ""
	}
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return ""
		}
		return filepath.FromSlash(u.Path)
	}
	return ref
}

// Ext returns the lower-cased extension of the reference's path, ignoring any
// query string ("https://x/a.MP3?sig=1" -> ".mp3").
func Ext(ref string) string {
	if IsRemote(ref) || strings.HasPrefix(ref, "file://") {
		if u, err := url.Parse(ref); err == nil {
			return strings.ToLower(filepath.Ext(u.Path))
		}
	}
	return strings.ToLower(filepath.Ext(ref))
}
