package playercard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/ui/action"
)

// Source is the action.Msg source of every card intent.
const Source = "playercard"

// PlayPauseMsg asks the host to toggle playback.
type PlayPauseMsg struct{}

// SeekMsg asks the host to seek to Ratio of the duration, in [0, 1].
type SeekMsg struct {
	Ratio float64
}

// NextMsg asks for the next track.
type NextMsg struct{}

// PrevMsg asks for the previous track.
type PrevMsg struct{}

// LikeMsg reports the new like state after a toggle.
type LikeMsg struct {
	Liked bool
}

// RepeatMsg reports the new repeat state after a toggle.
type RepeatMsg struct {
	Enabled bool
}

// VolumeMsg asks to change the volume by Delta (a fraction of full scale).
type VolumeMsg struct {
	Delta float64
}

// MuteMsg asks to toggle mute.
type MuteMsg struct{}

func (PlayPauseMsg) ActionType() string { return "playercard.play_pause" }
func (SeekMsg) ActionType() string      { return "playercard.seek" }
func (NextMsg) ActionType() string      { return "playercard.next" }
func (PrevMsg) ActionType() string      { return "playercard.prev" }
func (LikeMsg) ActionType() string      { return "playercard.like" }
func (RepeatMsg) ActionType() string    { return "playercard.repeat" }
func (VolumeMsg) ActionType() string    { return "playercard.volume" }
func (MuteMsg) ActionType() string      { return "playercard.mute" }

func emit(a action.Action) tea.Cmd {
	return action.Cmd(Source, a)
}

// scrubCommitMsg fires after the keyboard scrub delay. Only the latest
// version commits.
type scrubCommitMsg struct {
	version int
}

// scrubReleaseMsg ends the grace period after a commit.
type scrubReleaseMsg struct {
	version int
}
