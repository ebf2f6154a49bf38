//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStreamOpen,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpStreamOpen,
			err:      errors.New("connection refused"),
			expected: "Failed to open stream: connection refused",
		},
		{
			name:     "decode operation",
			op:       OpStreamDecode,
			err:      errors.New("unsupported format"),
			expected: "Failed to decode stream: unsupported format",
		},
		{
			name:     "audio operation",
			op:       OpAudioInit,
			err:      errors.New("no audio device"),
			expected: "Failed to initialize audio output: no audio device",
		},
		{
			name:     "artwork operation",
			op:       OpArtworkLoad,
			err:      errors.New("unexpected status: 404 Not Found"),
			expected: "Failed to load artwork: unexpected status: 404 Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStreamOpen,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "includes context",
			op:       OpStreamOpen,
			context:  "https://example.com/song.mp3",
			err:      errors.New("unexpected status: 500"),
			expected: "Failed to open stream 'https://example.com/song.mp3': unexpected status: 500",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackSeek,
			context:  "",
			err:      errors.New("not ready"),
			expected: "Failed to seek: not ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
