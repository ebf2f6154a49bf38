// Package tags reads the metadata the player card needs from local audio files:
// display text and cover art.
package tags

// File extensions with format-specific handling.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
	ExtWAV  = ".wav"
)

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// Tag contains the display metadata of a music file.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Year        int
}

// Subtitle returns the line shown under the title: the artist, or the album
// artist when the track has none.
func (t *Tag) Subtitle() string {
	if t.Artist != "" {
		return t.Artist
	}
	return t.AlbumArtist
}
