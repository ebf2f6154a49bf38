// internal/app/commands.go
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/artwork"
	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/track"
)

// WatchEngineEvents returns a command that waits for the next notification
// on sub and converts it to a tea.Msg. Handlers re-arm it after each message.
func WatchEngineEvents(sub *player.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.Events:
			return EngineEventMsg(e)
		case e := <-sub.Errors:
			return EngineErrorMsg(e)
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchStderr returns a command that waits for a captured stderr line.
func WatchStderr(lines <-chan string) tea.Cmd {
	return waitForChannel(lines, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}

// LoadArtworkCmd loads the thumbnail of t's artwork in the background.
func LoadArtworkCmd(loader *artwork.Loader, t track.Track) tea.Cmd {
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), artwork.DefaultTimeout)
		defer cancel()
		data, err := loader.Load(ctx, t)
		return ArtworkMsg{Data: data, Err: err}
	}
}
