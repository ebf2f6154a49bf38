package lastfm

import tea "github.com/charmbracelet/bubbletea"

// LoveResultMsg reports the outcome of a love or unlove request.
type LoveResultMsg struct {
	Song  Song
	Loved bool
	Err   error
}

// NowPlayingResultMsg reports the outcome of a now-playing update.
type NowPlayingResultMsg struct {
	Song Song
	Err  error
}

// LoveCmd loves or unloves s in the background.
func LoveCmd(client *Client, s Song, loved bool) tea.Cmd {
	return func() tea.Msg {
		return LoveResultMsg{Song: s, Loved: loved, Err: client.SetLoved(s, loved)}
	}
}

// NowPlayingCmd sends a now-playing notification in the background.
func NowPlayingCmd(client *Client, s Song) tea.Cmd {
	return func() tea.Msg {
		return NowPlayingResultMsg{Song: s, Err: client.UpdateNowPlaying(s)}
	}
}
