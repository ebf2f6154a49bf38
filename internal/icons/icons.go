package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play     string
	Pause    string
	Next     string
	Prev     string
	Repeat   string
	Liked    string
	NotLiked string
	Note     string
	Knob     string
	Loading  string
}

var (
	nerdIcons = Icons{
		Play:     "󰐊", // nf-md-play
		Pause:    "󰏤", // nf-md-pause
		Next:     "󰒭", // nf-md-skip_next
		Prev:     "󰒮", // nf-md-skip_previous
		Repeat:   "󰑖", // nf-md-repeat
		Liked:    "󰣐", // nf-md-heart
		NotLiked: "󰋕", // nf-md-heart_outline
		Note:     "", // nf-fa-music
		Knob:     "●",
		Loading:  "󰦖", // nf-md-progress_clock
	}

	unicodeIcons = Icons{
		Play:     "▶",
		Pause:    "⏸",
		Next:     "⏭",
		Prev:     "⏮",
		Repeat:   "🔁",
		Liked:    "♥",
		NotLiked: "♡",
		Note:     "♪",
		Knob:     "●",
		Loading:  "…",
	}

	noneIcons = Icons{
		Play:     ">",
		Pause:    "||",
		Next:     ">>|",
		Prev:     "|<<",
		Repeat:   "[R]",
		Liked:    "<3",
		NotLiked: "</3",
		Note:     "~",
		Knob:     "o",
		Loading:  "...",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// PlayPause returns the transport icon for the given state: the pause icon
// while playing, the play icon otherwise.
func PlayPause(playing bool) string {
	if playing {
		return current.Pause
	}
	return current.Play
}

func Play() string    { return current.Play }
func Pause() string   { return current.Pause }
func Next() string    { return current.Next }
func Prev() string    { return current.Prev }
func Repeat() string  { return current.Repeat }
func Note() string    { return current.Note }
func Knob() string    { return current.Knob }
func Loading() string { return current.Loading }

// Like returns the heart icon, filled when liked.
func Like(liked bool) string {
	if liked {
		return current.Liked
	}
	return current.NotLiked
}
