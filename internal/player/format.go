package player

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
	extWAV  = ".wav"
)

// ErrUnsupportedFormat is returned when neither the extension nor the content
// identifies a decodable format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// detectFormat picks the codec for a stream: a known extension wins, then the
// leading magic bytes.
func detectFormat(ext string, head []byte) string {
	switch ext {
	case extMP3, extFLAC, extOGG, extWAV:
		return ext
	case ".oga":
		return extOGG
	case ".wave":
		return extWAV
	}
	return sniffFormat(head)
}

func sniffFormat(head []byte) string {
	switch {
	case bytes.HasPrefix(head, []byte("fLaC")):
		return extFLAC
	case bytes.HasPrefix(head, []byte("OggS")):
		return extOGG
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return extWAV
	case bytes.HasPrefix(head, []byte("ID3")):
		// FLAC files sometimes carry a leading ID3v2 tag; MP3 is far more common.
		return extMP3
	case len(head) >= 2 && head[0] == 0xff && head[1]&0xe0 == 0xe0:
		return extMP3
	}
	return ""
}

// decode detects the format of src and returns a decoded stream. The returned
// stream owns src.
func decode(src *Source) (beep.StreamSeekCloser, beep.Format, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, beep.Format{}, errors.Wrap(err, "read header")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "rewind")
	}

	kind := detectFormat(src.Ext, head[:n])
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch kind {
	case extMP3:
		stream, format, err = decodeMP3(src)
	case extFLAC:
		if err := skipID3v2(src); err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "skip id3v2")
		}
		stream, format, err = flac.Decode(src)
	case extOGG:
		stream, format, err = vorbis.Decode(src)
	case extWAV:
		stream, format, err = wav.Decode(src)
	default:
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "%q", src.Ext)
	}
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", kind)
	}
	return &ownedStream{StreamSeekCloser: stream, src: src}, format, nil
}

// ownedStream closes its source together with the decoder.
type ownedStream struct {
	beep.StreamSeekCloser
	src *Source
}

func (s *ownedStream) Close() error {
	err := s.StreamSeekCloser.Close()
	if cerr := s.src.Close(); err == nil {
		err = cerr
	}
	return err
}

// skipID3v2 positions r after a leading ID3v2 tag, if any. The FLAC decoder
// does not handle tags some taggers prepend.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// syncsafe integer: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
