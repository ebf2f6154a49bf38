// Package keymap defines key bindings and action dispatch for the player card.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Transport actions
	ActionPlayPause Action = "play_pause"
	ActionNextTrack Action = "next_track"
	ActionPrevTrack Action = "prev_track"
	ActionLike      Action = "like"
	ActionRepeat    Action = "repeat"

	// Scrub actions
	ActionScrubBack    Action = "scrub_back"
	ActionScrubForward Action = "scrub_forward"
	ActionScrubCommit  Action = "scrub_commit" // enter
	ActionScrubCancel  Action = "scrub_cancel" // esc

	// Volume actions
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionMute       Action = "mute"
)
