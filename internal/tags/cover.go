package tags

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// Common cover art filenames to look for next to a track.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"front.jpg", "front.jpeg", "front.png",
}

// ExtractCoverArt reads cover art for an audio file.
// Embedded art wins; otherwise common image files in the same directory are tried.
// Returns nil data when nothing is found.
func ExtractCoverArt(path string) (data []byte, mimeType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "open")
	}
	data, mimeType, err = EmbeddedArt(f)
	f.Close()
	if err == nil && data != nil {
		return data, mimeType, nil
	}

	return findFolderArt(filepath.Dir(path))
}

// EmbeddedArt reads the picture stored in the metadata of r.
// Returns nil data when the stream has tags but no picture.
func EmbeddedArt(r io.ReadSeeker) (data []byte, mimeType string, err error) {
	m, err := tag.ReadFrom(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "read tags")
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}

func findFolderArt(dir string) (data []byte, mimeType string, err error) {
	for _, filename := range coverArtFilenames {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			data, err = os.ReadFile(filepath.Join(dir, strings.ToUpper(filename)))
			if err != nil {
				continue
			}
		}

		switch strings.ToLower(filepath.Ext(filename)) {
		case ".png":
			mimeType = mimePNG
		default:
			mimeType = mimeJPEG
		}
		return data, mimeType, nil
	}

	return nil, "", nil
}
