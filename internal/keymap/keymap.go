package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "transport", "scrub", "volume"
}

// All contains all key bindings of the card.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle key help", "global"},

	// Transport
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "transport"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "transport"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "transport"},
	{ActionLike, []string{"f"}, "Like", "transport"},
	{ActionRepeat, []string{"r"}, "Repeat", "transport"},

	// Scrub
	{ActionScrubBack, []string{"h", "left"}, "Scrub back", "scrub"},
	{ActionScrubForward, []string{"l", "right"}, "Scrub forward", "scrub"},
	{ActionScrubCommit, []string{"enter"}, "Seek to scrub position", "scrub"},
	{ActionScrubCancel, []string{"esc"}, "Cancel scrub", "scrub"},

	// Volume
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "volume"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "volume"},
	{ActionMute, []string{"m"}, "Mute", "volume"},
}

// ByContext returns bindings filtered by context.
func ByContext(ctx string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == ctx {
			result = append(result, b)
		}
	}
	return result
}

// Help returns "key description" entries for the given bindings, using the
// first printable key of each.
func Help(bindings []Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		key := b.Keys[0]
		if key == " " && len(b.Keys) > 1 {
			key = b.Keys[1]
		}
		out = append(out, key+" "+b.Description)
	}
	return out
}
