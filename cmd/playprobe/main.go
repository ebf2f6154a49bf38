// Command playprobe plays a stream headless and logs every snapshot the
// view-model publishes. Useful to check a stream decodes and reports its
// duration without a terminal UI.
package main

import (
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/rs/zerolog"

	"github.com/llehouerou/playcard/internal/logger"
	"github.com/llehouerou/playcard/internal/playback"
	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/track"
)

var (
	cli          = kingpin.New("playprobe", "Play a stream headless and log its snapshots")
	streamArg    = cli.Arg("stream", "Audio file or http(s) URL (default: demo track)").String()
	playFor      = cli.Flag("for", "Stop after this long (0 plays to the end)").Default("15s").Duration()
	durationHint = cli.Flag("duration-hint", "Duration used when the stream reports none").Duration()
	seekRatio    = cli.Flag("seek", "Seek to this fraction of the track once it is ready").Default("-1").Float64()
	logLevel     = cli.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")
)

func main() {
	kingpin.MustParse(cli.Parse(os.Args[1:]))
	os.Exit(probe())
}

func probe() int {
	log := logger.Console(os.Stdout, *logLevel)

	t := track.Sample()
	if *streamArg != "" {
		t = track.Track{Title: *streamArg, StreamURL: *streamArg}
		if p := track.LocalPath(*streamArg); p != "" {
			if ft, err := track.FromFile(p); err == nil {
				t = ft
			}
		}
	}
	t.DurationHint = *durationHint

	engine := player.New(player.WithLogger(logger.Component(log, "player")))
	defer engine.Close()

	vm := playback.New(engine, playback.WithLogger(logger.Component(log, "viewmodel")))
	defer vm.Close()
	vm.SetObserver(func(s playback.Snapshot) {
		log.Info().
			Str("title", s.Title).
			Bool("playing", s.Playing).
			Dur("position", s.Position).
			Dur("duration", s.Duration).
			Float64("progress", s.Progress()).
			Msg("snapshot")
	})

	vm.Load(t)
	vm.PlayPause()

	if !run(vm, log) {
		return 1
	}
	return 0
}

// run delivers engine notifications to the view-model until the stream
// ends, fails, the deadline passes or the process is interrupted. Returns
// false on failure.
func run(vm *playback.ViewModel, log zerolog.Logger) bool {
	sub := vm.Subscription()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var deadline <-chan time.Time
	if *playFor > 0 {
		timer := time.NewTimer(*playFor)
		defer timer.Stop()
		deadline = timer.C
	}

	seeked := *seekRatio < 0
	for {
		select {
		case ev := <-sub.Events:
			vm.HandleEvent(ev)
			if !seeked && ev.Kind == player.EventStateChanged && ev.Duration > 0 {
				seeked = true
				vm.Seek(*seekRatio)
			}
			if ev.Kind == player.EventEnded {
				log.Info().Msg("ended")
				return true
			}
		case e := <-sub.Errors:
			log.Error().Err(e.Err).Str("op", string(e.Op)).Msg(e.Message())
			return false
		case <-sub.Done:
			return true
		case <-deadline:
			log.Info().Dur("after", *playFor).Msg("stopping")
			return true
		case <-interrupt:
			return true
		}
	}
}
