package playercard

import (
	"math"
	"strings"

	"github.com/llehouerou/playcard/internal/icons"
	"github.com/llehouerou/playcard/internal/keymap"
	"github.com/llehouerou/playcard/internal/ui"
	"github.com/llehouerou/playcard/internal/ui/kittyimg"
	"github.com/llehouerou/playcard/internal/ui/render"
	"github.com/llehouerou/playcard/internal/ui/styles"
)

const (
	idleTitle      = "Not playing"
	transportSlots = 5
)

// Content rows below the header, relative to its end.
const (
	rowScrubOffset = iota + 1
	rowTimeOffset
	_
	rowTransportOffset
	rowStatusOffset
	rowsBelowHeader
)

// transport slot order, left to right
var transportActions = [transportSlots]keymap.Action{
	keymap.ActionRepeat,
	keymap.ActionPrevTrack,
	keymap.ActionPlayPause,
	keymap.ActionNextTrack,
	keymap.ActionLike,
}

// contentWidth is the width inside the border and padding.
func (m Model) contentWidth() int {
	return m.Width() - ui.BorderWidth - 2*ui.HorizontalPadding
}

func (m Model) showArt() bool {
	return m.contentWidth() >= artCols+artGap+minMetaWidth
}

func (m Model) showArtwork() bool {
	return m.cfg.Artwork && len(m.artwork) > 0 && m.showArt()
}

func (m Model) headerRows() int {
	if m.showArt() {
		return artRows
	}
	return 2
}

// CardHeight is the number of lines of the card itself, borders included.
func (m Model) CardHeight() int {
	return m.headerRows() + rowsBelowHeader + ui.BorderHeight
}

// View renders the card, followed by the key help when toggled on.
func (m Model) View() string {
	cw := m.contentWidth()

	lines := m.headerLines(cw)
	lines = append(lines,
		"",
		m.scrubBar(cw),
		m.timeRow(cw),
		"",
		m.transportRow(cw),
		m.statusLine(cw),
	)
	for i := range lines {
		lines[i] = render.Pad(lines[i], cw)
	}

	card := styles.T().S().Card.
		Padding(0, ui.HorizontalPadding).
		Width(m.Width() - ui.BorderWidth).
		Render(strings.Join(lines, "\n"))

	if m.showArtwork() {
		card = injectArtwork(card, m.artwork)
	}
	if m.showHelp {
		card += "\n" + m.helpView()
	}
	return card
}

func (m Model) labels() (title, subtitle string) {
	if !m.hasSnap {
		return idleTitle, ""
	}
	return m.snap.Title, m.snap.Subtitle
}

func (m Model) headerLines(cw int) []string {
	title, subtitle := m.labels()
	s := styles.T().S()

	if !m.showArt() {
		return []string{
			styles.T().Title(render.Truncate(title, cw)),
			s.Subtitle.Render(render.Truncate(subtitle, cw)),
		}
	}

	metaWidth := cw - artCols - artGap
	meta := make([]string, artRows)
	mid := artRows/2 - 1
	meta[mid] = styles.T().Title(render.Truncate(title, metaWidth))
	meta[mid+1] = s.Subtitle.Render(render.Truncate(subtitle, metaWidth))

	var art []string
	if !m.showArtwork() {
		art = kittyimg.Placeholder(artCols, artRows, icons.Note())
	}

	lines := make([]string, artRows)
	gap := render.Blank(artGap)
	for i := range artRows {
		cell := render.Blank(artCols)
		if i < len(art) {
			cell = s.Status.Render(art[i])
		}
		lines[i] = cell + gap + meta[i]
	}
	return lines
}

func (m Model) scrubBar(cw int) string {
	if cw < 2 {
		return ""
	}
	s := styles.T().S()
	knob := min(max(int(math.Round(m.displayRatio()*float64(cw-1))), 0), cw-1)
	return s.BarFill.Render(strings.Repeat("━", knob)) +
		s.Knob.Render(icons.Knob()) +
		s.BarTrack.Render(strings.Repeat("─", cw-1-knob))
}

// ratioAt maps a content column on the scrub bar to a seek ratio.
func ratioAt(col, cw int) float64 {
	if cw < 2 {
		return 0
	}
	return clampRatio(float64(col) / float64(cw-1))
}

func (m Model) timeRow(cw int) string {
	s := styles.T().S()
	position := render.UnknownClock
	if m.hasSnap {
		position = render.Clock(m.snap.Position)
	}
	return render.Row(s.Time.Render(position), m.durationLabel(), cw)
}

func (m Model) durationLabel() string {
	switch {
	case m.hasSnap && m.snap.Duration > 0:
		return styles.T().S().Time.Render(render.Clock(m.snap.Duration))
	case m.loading:
		return m.spinner.View()
	default:
		return styles.T().S().Time.Render(render.UnknownClock)
	}
}

func (m Model) transportRow(cw int) string {
	s := styles.T().S()
	playing := m.hasSnap && m.snap.Playing

	var b strings.Builder
	for i, a := range transportActions {
		var icon string
		switch a {
		case keymap.ActionRepeat:
			style := s.Icon
			if m.repeat {
				style = s.IconOn
			}
			icon = style.Render(icons.Repeat())
		case keymap.ActionPrevTrack:
			icon = s.Icon.Render(icons.Prev())
		case keymap.ActionPlayPause:
			icon = s.PlayPause.Render(icons.PlayPause(playing))
		case keymap.ActionNextTrack:
			icon = s.Icon.Render(icons.Next())
		case keymap.ActionLike:
			style := s.Icon
			if m.liked {
				style = s.Heart
			}
			icon = style.Render(icons.Like(m.liked))
		}
		b.WriteString(render.Center(icon, slotWidth(cw, i)))
	}
	return b.String()
}

func slotWidth(cw, i int) int {
	w := cw / transportSlots
	if i == transportSlots-1 {
		return cw - w*(transportSlots-1)
	}
	return w
}

// slotAt returns the transport slot under a content column, or -1.
func slotAt(col, cw int) int {
	w := cw / transportSlots
	if w == 0 || col < 0 || col >= cw {
		return -1
	}
	return min(col/w, transportSlots-1)
}

func (m Model) statusLine(cw int) string {
	s := styles.T().S()
	switch {
	case m.errText != "":
		return s.Error.Render(render.Truncate(m.errText, cw))
	case m.status != "":
		return s.Status.Render(render.Truncate(m.status, cw))
	}
	return ""
}

func (m Model) helpView() string {
	return styles.T().S().Help.
		Width(m.Width()).
		Render(strings.Join(keymap.Help(keymap.All), " · "))
}

// injectArtwork places the kitty escape at the first content cell of the
// first content line, after the left border and its padding.
func injectArtwork(card string, png []byte) string {
	seq := kittyimg.Encode(png, artCols, artRows)
	if seq == "" {
		return card
	}
	lines := strings.SplitN(card, "\n", 3)
	if len(lines) < 2 {
		return card
	}
	line := lines[1]
	border := strings.Index(line, "│")
	if border < 0 {
		return card
	}
	at := border + len("│")
	pad := strings.IndexByte(line[at:], ' ')
	if pad < 0 {
		return card
	}
	at += pad + 1
	lines[1] = line[:at] + seq + line[at:]
	return strings.Join(lines, "\n")
}

