// Package styles holds the card's color palette and pre-built lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the card.
type Theme struct {
	Background lipgloss.Color // Card background
	Selected   lipgloss.Color // Play/pause button background

	// Scrub bar
	BarTrack lipgloss.Color
	BarFill  lipgloss.Color

	// Text hierarchy
	LabelPrimary   lipgloss.Color
	LabelSecondary lipgloss.Color
	FgSubtle       lipgloss.Color

	// Title gradient endpoints
	TitleFrom lipgloss.Color
	TitleTo   lipgloss.Color

	// Icons
	IconDefault lipgloss.Color
	IconAccent  lipgloss.Color // repeat on
	HeartOn     lipgloss.Color

	Border lipgloss.Color
	Error  lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the card.
type Styles struct {
	Card      lipgloss.Style // Rounded border around the whole card
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Time      lipgloss.Style
	BarFill   lipgloss.Style
	BarTrack  lipgloss.Style
	Knob      lipgloss.Style
	Icon      lipgloss.Style
	IconOn    lipgloss.Style // repeat enabled
	Heart     lipgloss.Style // liked
	PlayPause lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

var defaultTheme = Theme{
	Background: lipgloss.Color("#2a2a3d"),
	Selected:   lipgloss.Color("#004a77"),

	BarTrack: lipgloss.Color("#6b6f7f"),
	BarFill:  lipgloss.Color("#85a6d6"),

	LabelPrimary:   lipgloss.Color("#ffffff"),
	LabelSecondary: lipgloss.Color("#b3b3b3"),
	FgSubtle:       lipgloss.Color("#6b6f7f"),

	TitleFrom: lipgloss.Color("#ffffff"),
	TitleTo:   lipgloss.Color("#85a6d6"),

	IconDefault: lipgloss.Color("#ffffff"),
	IconAccent:  lipgloss.Color("#0a84ff"),
	HeartOn:     lipgloss.Color("#ff375f"),

	Border: lipgloss.Color("#555b66"),
	Error:  lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	icon := lipgloss.NewStyle().Foreground(t.IconDefault)

	return &Styles{
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		Title:    lipgloss.NewStyle().Foreground(t.LabelPrimary).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.LabelSecondary),
		Time:     lipgloss.NewStyle().Foreground(t.LabelSecondary),
		BarFill:  lipgloss.NewStyle().Foreground(t.BarFill),
		BarTrack: lipgloss.NewStyle().Foreground(t.BarTrack),
		Knob:     lipgloss.NewStyle().Foreground(t.LabelPrimary),
		Icon:     icon,
		IconOn:   lipgloss.NewStyle().Foreground(t.IconAccent).Bold(true),
		Heart:    lipgloss.NewStyle().Foreground(t.HeartOn),
		PlayPause: lipgloss.NewStyle().
			Foreground(t.LabelPrimary).
			Background(t.Selected).
			Bold(true).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Error:  lipgloss.NewStyle().Foreground(t.Error),
		Help:   lipgloss.NewStyle().Foreground(t.FgSubtle).Italic(true),
	}
}

// Title renders a track title with the theme's bold gradient.
func (t *Theme) Title(text string) string {
	return ApplyBoldGradient(text, t.TitleFrom, t.TitleTo)
}
