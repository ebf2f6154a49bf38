package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// createTestMP3 writes a minimal MP3 frame with ID3v2 tags and returns its path.
func createTestMP3(t *testing.T, dir, name string, tg *Tag, cover []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)

	// MP3 frame header (MPEG1 Layer3, 128kbps, 44100Hz, stereo) + padding
	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	if err := os.WriteFile(path, mp3Frame, 0o600); err != nil {
		t.Fatalf("create test MP3: %v", err)
	}

	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open MP3 for tagging: %v", err)
	}
	defer id3tag.Close()

	id3tag.SetTitle(tg.Title)
	id3tag.SetArtist(tg.Artist)
	id3tag.SetAlbum(tg.Album)
	if tg.AlbumArtist != "" {
		id3tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, tg.AlbumArtist)
	}
	if cover != nil {
		id3tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    mimeJPEG,
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     cover,
		})
	}
	if err := id3tag.Save(); err != nil {
		t.Fatalf("save tags: %v", err)
	}
	return path
}

var testJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
