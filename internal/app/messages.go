// internal/app/messages.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/player"
)

// PlaybackMessage is implemented by messages carrying engine notifications.
// External messages (from other packages) cannot implement it, so they are
// handled separately in the Update() switch.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// EngineEventMsg delivers an engine event on the UI loop.
type EngineEventMsg player.Event

func (EngineEventMsg) playbackMessage() {}

// EngineErrorMsg delivers an engine failure on the UI loop.
type EngineErrorMsg player.ErrorEvent

func (EngineErrorMsg) playbackMessage() {}

// EngineClosedMsg is sent once the engine subscription is closed.
type EngineClosedMsg struct{}

func (EngineClosedMsg) playbackMessage() {}

// ArtworkMsg carries the loaded artwork thumbnail (PNG) or the failure.
type ArtworkMsg struct {
	Data []byte
	Err  error
}

// StderrMsg carries a line written to stderr by the audio backend.
type StderrMsg struct {
	Line string
}
