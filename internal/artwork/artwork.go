// Package artwork loads cover art for a track and prepares it for the card:
// decoded, shrunk to a thumbnail and re-encoded as PNG for kitty graphics.
package artwork

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // GIF decoder for remote covers
	_ "image/jpeg" // JPEG decoder for covers
	"image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/llehouerou/playcard/internal/tags"
	"github.com/llehouerou/playcard/internal/track"
)

const (
	// DefaultTimeout bounds a remote artwork request.
	DefaultTimeout = 10 * time.Second

	defaultMaxBytes = 16 << 20

	// Thumbnail box in pixels. A 20x10 cell area is roughly 160x160 pixels
	// with 8x16 cells; twice that keeps HiDPI terminals sharp.
	defaultWidth  = 320
	defaultHeight = 320
)

// ErrNoArtwork is returned when the track has no artwork to load.
var ErrNoArtwork = errors.New("no artwork")

// Loader fetches and thumbnails artwork.
type Loader struct {
	client   *http.Client
	maxBytes int64
	width    uint
	height   uint
	log      zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client. Its timeout bounds each request.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithMaxBytes caps the size of a downloaded or embedded image.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) { l.maxBytes = n }
}

// WithSize sets the thumbnail bounding box in pixels.
func WithSize(width, height uint) Option {
	return func(l *Loader) { l.width, l.height = width, height }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: DefaultTimeout},
		maxBytes: defaultMaxBytes,
		width:    defaultWidth,
		height:   defaultHeight,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns PNG thumbnail data for t. The artwork URL wins when set; a
// local stream falls back to its embedded picture or a cover file next to it.
func (l *Loader) Load(ctx context.Context, t track.Track) ([]byte, error) {
	raw, err := l.raw(ctx, t)
	if err != nil {
		return nil, err
	}
	thumb, err := Thumbnail(raw, l.width, l.height)
	if err != nil {
		return nil, err
	}
	l.log.Debug().
		Str("artwork", t.ArtworkURL).
		Str("source", humanize.IBytes(uint64(len(raw)))).
		Str("thumbnail", humanize.IBytes(uint64(len(thumb)))).
		Msg("artwork loaded")
	return thumb, nil
}

func (l *Loader) raw(ctx context.Context, t track.Track) ([]byte, error) {
	if t.HasArtwork() {
		if track.IsRemote(t.ArtworkURL) {
			return l.Fetch(ctx, t.ArtworkURL)
		}
		return l.readFile(track.LocalPath(t.ArtworkURL))
	}
	if path := t.LocalPath(); path != "" {
		data, _, err := tags.ExtractCoverArt(path)
		if err != nil {
			return nil, errors.Wrap(err, "extract cover art")
		}
		if data != nil {
			return data, nil
		}
	}
	return nil, ErrNoArtwork
}

// Fetch downloads url. Non-2xx responses are errors.
func (l *Loader) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch artwork")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("unexpected status %s", resp.Status)
	}
	return l.readAll(resp.Body)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open artwork")
	}
	defer f.Close()
	return l.readAll(f)
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read artwork")
	}
	if int64(len(data)) > l.maxBytes {
		return nil, errors.Newf("artwork larger than %s", humanize.IBytes(uint64(l.maxBytes)))
	}
	return data, nil
}

// Thumbnail decodes data, shrinks it to fit width x height keeping its
// aspect ratio, and encodes the result as PNG. Smaller images are kept as is.
func Thumbnail(data []byte, width, height uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode artwork")
	}
	img = resize.Thumbnail(width, height, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode artwork")
	}
	return buf.Bytes(), nil
}
