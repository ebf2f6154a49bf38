package player

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSource_Remote(t *testing.T) {
	body := "ID3 pretend audio"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/song.MP3":
			_, _ = io.WriteString(w, body)
		case "/stream":
			w.Header().Set("Content-Type", "audio/flac")
			_, _ = io.WriteString(w, body)
		case "/big":
			// no Content-Length: the limit is enforced while reading
			w.(http.Flusher).Flush()
			_, _ = io.WriteString(w, strings.Repeat("x", 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("buffers body and keeps extension", func(t *testing.T) {
		src, err := OpenSource(context.Background(), srv.Client(), srv.URL+"/song.MP3?sig=1", 0)
		require.NoError(t, err)
		defer src.Close()
		assert.Equal(t, ".mp3", src.Ext)
		assert.Equal(t, int64(len(body)), src.Size)
		got, err := io.ReadAll(src)
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	})

	t.Run("extension from content type", func(t *testing.T) {
		src, err := OpenSource(context.Background(), srv.Client(), srv.URL+"/stream", 0)
		require.NoError(t, err)
		assert.Equal(t, ".flac", src.Ext)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		_, err := OpenSource(context.Background(), srv.Client(), srv.URL+"/missing.mp3", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("content length over limit", func(t *testing.T) {
		_, err := OpenSource(context.Background(), srv.Client(), srv.URL+"/song.MP3", 4)
		assert.ErrorIs(t, err, ErrStreamTooLarge)
	})

	t.Run("streamed body over limit", func(t *testing.T) {
		_, err := OpenSource(context.Background(), srv.Client(), srv.URL+"/big", 16)
		assert.ErrorIs(t, err, ErrStreamTooLarge)
	})
}

func TestOpenSource_Local(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Track.FLAC")
	require.NoError(t, os.WriteFile(path, []byte("fLaC...."), 0o600))

	for _, ref := range []string{path, "file://" + filepath.ToSlash(path)} {
		t.Run(ref, func(t *testing.T) {
			src, err := OpenSource(context.Background(), nil, ref, 0)
			require.NoError(t, err)
			defer src.Close()
			assert.Equal(t, ".flac", src.Ext)
			assert.Equal(t, int64(8), src.Size)
		})
	}

	_, err := OpenSource(context.Background(), nil, filepath.Join(dir, "none.mp3"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = OpenSource(context.Background(), nil, "", 0)
	assert.Error(t, err)
}

func TestSource_CloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(path, makeWAV(8000, 10), 0o600))
	src, err := OpenSource(context.Background(), nil, path, 0)
	require.NoError(t, err)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}

func TestExtFromContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want string
	}{
		{"audio/mpeg", ".mp3"},
		{"audio/x-flac", ".flac"},
		{"application/ogg", ".ogg"},
		{"audio/wav; charset=binary", ".wav"},
		{"text/html", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ct, func(t *testing.T) {
			assert.Equal(t, tt.want, extFromContentType(tt.ct))
		})
	}
}
