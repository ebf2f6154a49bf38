// Package playercard renders the player card and turns key presses and mouse
// gestures into playback intents.
//
// The card never talks to the engine. It displays the latest
// playback.Snapshot handed to SetSnapshot and reports intents as action.Msg
// values with Source "playercard".
package playercard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/playcard/internal/keymap"
	"github.com/llehouerou/playcard/internal/playback"
	"github.com/llehouerou/playcard/internal/ui"
	"github.com/llehouerou/playcard/internal/ui/styles"
)

const (
	artCols      = 20
	artRows      = 10
	artGap       = 2
	minMetaWidth = 12

	volumeStep = 0.1
)

// Config holds card settings.
type Config struct {
	Width            int
	ScrubStep        float64       // fraction of the track per key press
	ScrubGrace       time.Duration // snapshots do not move the knob for this long after a seek
	ScrubCommitDelay time.Duration // keyboard scrubbing seeks after this much inactivity
	Artwork          bool          // draw artwork with kitty graphics
}

// Model is the player card.
type Model struct {
	ui.Base
	cfg  Config
	keys *keymap.Resolver

	snap    playback.Snapshot
	hasSnap bool
	loading bool
	spinner spinner.Model

	liked    bool
	repeat   bool
	showHelp bool

	scrub    scrubState
	dragging bool

	artwork []byte // PNG
	errText string
	status  string

	originX, originY int
}

// New creates a card.
func New(cfg Config) Model {
	cfg.Width = max(cfg.Width, ui.MinCardWidth)
	if cfg.ScrubStep <= 0 {
		cfg.ScrubStep = 0.05
	}
	m := Model{
		cfg:  cfg,
		keys: keymap.NewResolver(keymap.All),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(styles.T().S().Time),
		),
	}
	m.SetSize(cfg.Width, 0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.loading {
		return m.spinner.Tick
	}
	return nil
}

// StartLoading marks a new track as loading: the spinner replaces the
// duration until a snapshot carries one, and the error line is cleared.
func (m *Model) StartLoading() tea.Cmd {
	m.loading = true
	m.errText = ""
	m.scrub = scrubState{version: m.scrub.version + 1, graceVersion: m.scrub.graceVersion + 1}
	m.dragging = false
	return m.spinner.Tick
}

// SetSnapshot replaces the displayed state. Only the latest snapshot is kept.
func (m *Model) SetSnapshot(s playback.Snapshot) {
	m.snap = s
	m.hasSnap = true
	if s.Duration > 0 {
		m.loading = false
	}
}

// Snapshot returns the displayed snapshot and whether one was set.
func (m Model) Snapshot() (playback.Snapshot, bool) {
	return m.snap, m.hasSnap
}

// SetArtwork sets the PNG artwork. nil shows the placeholder.
func (m *Model) SetArtwork(png []byte) {
	m.artwork = png
}

// SetError shows text on the status line until cleared with "" or a new load.
func (m *Model) SetError(text string) {
	m.errText = text
	if text != "" {
		m.loading = false
	}
}

// SetStatus shows text on the status line when there is no error.
func (m *Model) SetStatus(text string) {
	m.status = text
}

// SetOrigin records where the card's top-left corner is drawn, for mouse hit
// testing.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Origin returns the position set with SetOrigin.
func (m Model) Origin() (x, y int) {
	return m.originX, m.originY
}

// SetRepeat sets the repeat toggle without emitting an intent, for changes
// made elsewhere (media keys).
func (m *Model) SetRepeat(on bool) {
	m.repeat = on
}

// SetLiked sets the like toggle without emitting an intent.
func (m *Model) SetLiked(liked bool) {
	m.liked = liked
}

func (m Model) Loading() bool   { return m.loading }
func (m Model) Liked() bool     { return m.liked }
func (m Model) Repeat() bool    { return m.repeat }
func (m Model) Scrubbing() bool { return m.scrub.active }

// Update implements the bubbletea update loop for the card.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(max(min(m.cfg.Width, msg.Width), ui.MinCardWidth), msg.Height)

	case tea.KeyMsg:
		return m.trigger(m.keys.ResolveKey(msg))

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case scrubCommitMsg:
		if msg.version == m.scrub.version && m.scrub.active && !m.dragging {
			return m.commitScrub()
		}

	case scrubReleaseMsg:
		if msg.version == m.scrub.graceVersion {
			m.scrub.holding = false
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) trigger(a keymap.Action) (Model, tea.Cmd) {
	switch a {
	case keymap.ActionPlayPause:
		return m, emit(PlayPauseMsg{})
	case keymap.ActionNextTrack:
		return m, emit(NextMsg{})
	case keymap.ActionPrevTrack:
		return m, emit(PrevMsg{})
	case keymap.ActionLike:
		m.liked = !m.liked
		return m, emit(LikeMsg{Liked: m.liked})
	case keymap.ActionRepeat:
		m.repeat = !m.repeat
		return m, emit(RepeatMsg{Enabled: m.repeat})
	case keymap.ActionScrubBack:
		return m.stepScrub(-m.cfg.ScrubStep)
	case keymap.ActionScrubForward:
		return m.stepScrub(m.cfg.ScrubStep)
	case keymap.ActionScrubCommit:
		if m.scrub.active {
			return m.commitScrub()
		}
	case keymap.ActionScrubCancel:
		m.cancelScrub()
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionVolumeUp:
		return m, emit(VolumeMsg{Delta: volumeStep})
	case keymap.ActionVolumeDown:
		return m, emit(VolumeMsg{Delta: -volumeStep})
	case keymap.ActionMute:
		return m, emit(MuteMsg{})
	}
	return m, nil
}
