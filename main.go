// Command playcard plays one audio stream in a terminal player card.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/playcard/internal/app"
	"github.com/llehouerou/playcard/internal/artwork"
	"github.com/llehouerou/playcard/internal/config"
	"github.com/llehouerou/playcard/internal/errmsg"
	"github.com/llehouerou/playcard/internal/icons"
	"github.com/llehouerou/playcard/internal/lastfm"
	"github.com/llehouerou/playcard/internal/logger"
	"github.com/llehouerou/playcard/internal/mpris"
	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/stderr"
	"github.com/llehouerou/playcard/internal/track"
	"github.com/llehouerou/playcard/internal/ui/playercard"
)

var (
	cli          = kingpin.New("playcard", "Play an audio stream in a terminal player card")
	streamArg    = cli.Arg("stream", "Audio file, file:// URL or http(s) URL (default: configured or demo track)").String()
	configPath   = cli.Flag("config", "Path to an extra config file").String()
	title        = cli.Flag("title", "Track title").String()
	subtitle     = cli.Flag("subtitle", "Line under the title, usually the artist").String()
	artworkRef   = cli.Flag("artwork", "Artwork URL or image path").String()
	durationHint = cli.Flag("duration-hint", "Duration shown when the stream reports none (e.g. 3m30s)").Duration()
	logLevel     = cli.Flag("log-level", "Log level (overrides config)").Enum("debug", "info", "warn", "error")
)

func main() {
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the program. Using a separate function ensures deferred
// cleanup runs before main exits.
func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logFile, err := cfg.LogFile()
	if err != nil {
		return err
	}
	logCloser, err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return errors.Wrap(err, "initialize logger")
	}
	defer logCloser.Close()
	log := zlog.Logger

	icons.Init(cfg.Icons)
	t := resolveTrack(cfg, log)
	log.Info().Str("title", t.Title).Str("stream", t.StreamURL).Msg("starting")

	// Before the engine: the audio backend writes to fd 2 when it initializes.
	var stderrLines <-chan string
	capture, err := stderr.Start()
	if err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	} else {
		defer capture.Stop()
		stderrLines = capture.Lines()
	}

	engine := player.New(
		player.WithHTTPClient(&http.Client{Timeout: cfg.Player.HTTPTimeout}),
		player.WithMaxStreamBytes(cfg.Player.MaxStreamBytes),
		player.WithTickInterval(cfg.Player.TickInterval),
		player.WithLogger(logger.Component(log, "player")),
	)
	engine.SetVolume(cfg.Player.Volume)

	artworkOn := app.ArtworkEnabled(cfg.Artwork)
	var loader *artwork.Loader
	if artworkOn {
		loader = artwork.NewLoader(artwork.WithLogger(logger.Component(log, "artwork")))
	}

	var lfm *lastfm.Client
	if cfg.HasLastfmConfig() {
		lfm = lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret, cfg.Lastfm.SessionKey)
	}

	var remote *mpris.Adapter
	if cfg.MPRIS.Enabled {
		remote, err = mpris.New(logger.Component(log, "mpris"))
		if err != nil {
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpMprisStart, err))
			remote = nil
		}
	}

	m := app.New(app.Options{
		Track: t,
		Card: playercard.Config{
			Width:            cfg.UI.Width,
			ScrubStep:        cfg.UI.ScrubStep,
			ScrubGrace:       cfg.UI.ScrubGrace,
			ScrubCommitDelay: cfg.UI.ScrubCommitDelay,
			Artwork:          artworkOn,
		},
		Engine:  engine,
		Artwork: loader,
		Lastfm:  lfm,
		MPRIS:   remote,
		Stderr:  stderrLines,
		Log:     log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	remote.Attach(p.Send)

	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Shutdown()
	}
	if err != nil {
		return errors.Wrap(err, "run program")
	}
	return nil
}

// resolveTrack applies the command line to the configured track. A local
// file given without --title is described by its tags.
func resolveTrack(cfg *config.Config, log zerolog.Logger) track.Track {
	t := cfg.TrackToPlay()
	if *streamArg != "" {
		t = track.Track{StreamURL: *streamArg}
		if p := track.LocalPath(*streamArg); p != "" && *title == "" {
			ft, err := track.FromFile(p)
			if err != nil {
				log.Warn().Err(err).Str("path", p).Msg("no tags")
			} else {
				t = ft
			}
		}
	}
	if *title != "" {
		t.Title = *title
	}
	if *subtitle != "" {
		t.Subtitle = *subtitle
	}
	if *artworkRef != "" {
		t.ArtworkURL = *artworkRef
	}
	if *durationHint > 0 {
		t.DurationHint = *durationHint
	}
	if t.Title == "" {
		t.Title = path.Base(t.StreamURL)
	}
	return t
}
