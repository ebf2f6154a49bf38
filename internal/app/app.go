// internal/app/app.go

// Package app is the root bubbletea model. It wires the playback engine, the
// view-model and the player card, and routes intents between them.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/playcard/internal/artwork"
	"github.com/llehouerou/playcard/internal/keymap"
	"github.com/llehouerou/playcard/internal/lastfm"
	"github.com/llehouerou/playcard/internal/logger"
	"github.com/llehouerou/playcard/internal/mpris"
	"github.com/llehouerou/playcard/internal/playback"
	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/track"
	"github.com/llehouerou/playcard/internal/ui/kittyimg"
	"github.com/llehouerou/playcard/internal/ui/playercard"
)

// Options holds the collaborators of the root model. Only Engine is
// required; nil extras are disabled.
type Options struct {
	Track   track.Track
	Card    playercard.Config
	Engine  player.Interface
	Artwork *artwork.Loader
	Lastfm  *lastfm.Client
	MPRIS   *mpris.Adapter
	Stderr  <-chan string // captured backend output
	Log     zerolog.Logger
}

// snapshotInbox receives what the view-model publishes while a message is
// handled. Model is copied on every update; the inbox is shared by pointer.
type snapshotInbox struct {
	snap    playback.Snapshot
	pending bool
}

func (b *snapshotInbox) receive(s playback.Snapshot) {
	b.snap = s
	b.pending = true
}

// Model is the root application model.
type Model struct {
	engine player.Interface
	vm     *playback.ViewModel
	inbox  *snapshotInbox
	card   playercard.Model
	keys   *keymap.Resolver
	track  track.Track

	artwork *artwork.Loader
	lastfm  *lastfm.Client
	mpris   *mpris.Adapter
	stderr  <-chan string
	log     zerolog.Logger

	repeat         bool
	nowPlayingSent bool
	quitting       bool
	width, height  int
}

// New creates the root model and loads opts.Track into the engine.
func New(opts Options) Model {
	inbox := &snapshotInbox{}
	vm := playback.New(opts.Engine, playback.WithLogger(logger.Component(opts.Log, "viewmodel")))
	vm.SetObserver(inbox.receive)

	m := Model{
		engine:  opts.Engine,
		vm:      vm,
		inbox:   inbox,
		card:    playercard.New(opts.Card),
		keys:    keymap.NewResolver(keymap.All),
		track:   opts.Track,
		artwork: opts.Artwork,
		lastfm:  opts.Lastfm,
		mpris:   opts.MPRIS,
		stderr:  opts.Stderr,
		log:     logger.Component(opts.Log, "app"),
	}

	m.vm.Load(opts.Track)
	m.card.StartLoading()
	m.applySnapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.card.Init(),
		WatchEngineEvents(m.vm.Subscription()),
		LoadArtworkCmd(m.artwork, m.track),
		WatchStderr(m.stderr),
		tea.SetWindowTitle(windowTitle(m.track)),
	)
}

// Card returns the player card.
func (m Model) Card() playercard.Model {
	return m.card
}

// Repeat reports whether the track restarts when it ends.
func (m Model) Repeat() bool {
	return m.repeat
}

// Shutdown releases the view-model subscription, the engine and MPRIS.
func (m *Model) Shutdown() {
	m.vm.Close()
	if err := m.engine.Close(); err != nil {
		m.log.Warn().Err(err).Msg("close engine")
	}
	if err := m.mpris.Close(); err != nil {
		m.log.Warn().Err(err).Msg("close mpris")
	}
}

// ArtworkEnabled resolves the artwork setting ("auto", "kitty" or "none")
// against terminal support.
func ArtworkEnabled(mode string) bool {
	switch mode {
	case "kitty":
		return true
	case "auto":
		return kittyimg.Supported()
	default:
		return false
	}
}

func windowTitle(t track.Track) string {
	if t.Title == "" {
		return "playcard"
	}
	if t.Subtitle == "" {
		return t.Title
	}
	return t.Title + " - " + t.Subtitle
}
