// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Stream operations
	OpStreamOpen   Op = "open stream"
	OpStreamDecode Op = "decode stream"

	// Audio output
	OpAudioInit Op = "initialize audio output"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Card extras
	OpArtworkLoad Op = "load artwork"
	OpLastfmLove  Op = "update Last.fm love"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpMprisStart Op = "start media controls"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
