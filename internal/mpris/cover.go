package mpris

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/llehouerou/playcard/internal/track"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt looks for album art in the same directory as the track.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ArtURL returns the artwork location advertised for t: its remote artwork
// URL, a file:// URL for local artwork, or a cover image next to a local
// stream. Empty when none applies.
func ArtURL(t track.Track) string {
	if t.HasArtwork() {
		if track.IsRemote(t.ArtworkURL) {
			return t.ArtworkURL
		}
		if p := track.LocalPath(t.ArtworkURL); p != "" {
			return fileURL(p)
		}
	}
	if p := t.LocalPath(); p != "" {
		if art := FindAlbumArt(p); art != "" {
			return fileURL(art)
		}
	}
	return ""
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
