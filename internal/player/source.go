package player

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/playcard/internal/track"
)

// ErrStreamTooLarge is returned when a remote stream exceeds the buffering limit.
var ErrStreamTooLarge = errors.New("stream too large")

// Source is an opened, seekable stream.
type Source struct {
	io.ReadSeeker
	closer io.Closer
	closed bool

	Ext  string // lower-cased extension, "" when unknown
	Size int64
}

// Close releases the underlying file. Safe to call more than once.
func (s *Source) Close() error {
	if s.closed || s.closer == nil {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}

// OpenSource opens ref for decoding. http(s) streams are fetched with client
// and buffered into memory (at most maxBytes, 0 = unlimited) so decoders can
// seek; file:// URLs and plain paths are opened directly.
func OpenSource(ctx context.Context, client *http.Client, ref string, maxBytes int64) (*Source, error) {
	if track.IsRemote(ref) {
		return openRemote(ctx, client, ref, maxBytes)
	}
	path := track.LocalPath(ref)
	if path == "" {
		return nil, errors.Newf("invalid stream reference %q", ref)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat file")
	}
	return &Source{ReadSeeker: f, closer: f, Ext: track.Ext(path), Size: info.Size()}, nil
}

func openRemote(ctx context.Context, client *http.Client, ref string, maxBytes int64) (*Source, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch stream")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("unexpected status %s", resp.Status)
	}
	if maxBytes > 0 && resp.ContentLength > maxBytes {
		return nil, errors.Wrapf(ErrStreamTooLarge, "%s exceeds %s",
			humanize.Bytes(uint64(resp.ContentLength)), humanize.Bytes(uint64(maxBytes))) //nolint:gosec // checked positive
	}

	body := io.Reader(resp.Body)
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "read stream")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errors.Wrapf(ErrStreamTooLarge, "exceeds %s", humanize.Bytes(uint64(maxBytes))) //nolint:gosec // checked positive
	}

	ext := track.Ext(ref)
	if ext == "" {
		ext = extFromContentType(resp.Header.Get("Content-Type"))
	}
	return &Source{ReadSeeker: bytes.NewReader(data), Ext: ext, Size: int64(len(data))}, nil
}

func extFromContentType(ct string) string {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return extMP3
	case "audio/flac", "audio/x-flac":
		return extFLAC
	case "audio/ogg", "audio/vorbis", "application/ogg":
		return extOGG
	case "audio/wav", "audio/x-wav", "audio/wave":
		return extWAV
	default:
		return ""
	}
}
