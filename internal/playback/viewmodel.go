// Package playback mediates between the playback engine and the player card.
//
// The ViewModel owns no playback state: it forwards user intents to the
// engine and turns engine notifications into Snapshots for a single observer.
// It is not safe for concurrent use; the host calls it from its UI loop and
// marshals engine events there (see HandleEvent).
package playback

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/track"
)

// Observer receives every published Snapshot.
type Observer func(Snapshot)

// ViewModel translates intents into engine commands and engine events into
// snapshots.
type ViewModel struct {
	engine   player.Interface
	sub      *player.Subscription
	observer Observer
	track    *track.Track
	log      zerolog.Logger
	closed   bool
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(vm *ViewModel) { vm.log = l }
}

// New creates a ViewModel subscribed to engine's notifications.
func New(engine player.Interface, opts ...Option) *ViewModel {
	vm := &ViewModel{
		engine: engine,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.sub = engine.Subscribe()
	return vm
}

// SetObserver registers the single observer. A later call replaces it;
// nil unregisters.
func (vm *ViewModel) SetObserver(fn Observer) {
	vm.observer = fn
}

// Subscription returns the engine subscription whose events the host must
// deliver to HandleEvent on its UI loop.
func (vm *ViewModel) Subscription() *player.Subscription {
	return vm.sub
}

// Track returns a copy of the current track, or nil before the first Load.
func (vm *ViewModel) Track() *track.Track {
	if vm.track == nil {
		return nil
	}
	t := *vm.track
	return &t
}

// Load makes t the current track and hands it to the engine. The track is
// not validated; engine failures surface on the subscription's error channel.
func (vm *ViewModel) Load(t track.Track) {
	vm.track = &t
	vm.engine.Load(t)
	vm.log.Debug().Str("title", t.Title).Str("stream", t.StreamURL).Msg("load")
	vm.publish(vm.engine.IsPlaying(), 0, vm.engine.Duration())
}

// PlayPause toggles the engine between playing and paused.
func (vm *ViewModel) PlayPause() {
	if vm.engine.IsPlaying() {
		vm.engine.Pause()
	} else {
		vm.engine.Play()
	}
}

// Seek moves to ratio × duration. Ratios that are not finite or fall outside
// [0, 1] are ignored. The engine's following time update publishes.
func (vm *ViewModel) Seek(ratio float64) {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 || ratio > 1 {
		return
	}
	target := time.Duration(ratio * float64(vm.engine.Duration()))
	vm.engine.Seek(target)
}

// HandleEvent dispatches an engine event. Events from a superseded Load are
// dropped.
func (vm *ViewModel) HandleEvent(ev player.Event) {
	if vm.closed {
		return
	}
	if ev.Generation != vm.engine.Generation() {
		vm.log.Debug().
			Uint64("generation", ev.Generation).
			Stringer("kind", ev.Kind).
			Msg("dropping stale engine event")
		return
	}
	switch ev.Kind {
	case player.EventStateChanged:
		vm.PlaybackChanged(ev.Playing)
	case player.EventTimeUpdate:
		vm.TimeUpdated(ev.Position, ev.Duration)
	case player.EventEnded:
		vm.PlaybackEnded()
	}
}

// PlaybackChanged publishes the engine clock with the new playing flag.
func (vm *ViewModel) PlaybackChanged(playing bool) {
	vm.publish(playing, vm.engine.CurrentTime(), vm.engine.Duration())
}

// TimeUpdated publishes a new position and duration.
func (vm *ViewModel) TimeUpdated(position, duration time.Duration) {
	vm.publish(vm.engine.IsPlaying(), position, duration)
}

// PlaybackEnded publishes a stopped snapshot pinned to the end.
func (vm *ViewModel) PlaybackEnded() {
	d := vm.engine.Duration()
	vm.publish(false, d, d)
}

// Close unsubscribes from the engine and drops the observer. Idempotent.
func (vm *ViewModel) Close() {
	if vm.closed {
		return
	}
	vm.closed = true
	vm.engine.Unsubscribe(vm.sub)
	vm.observer = nil
}

func (vm *ViewModel) publish(playing bool, position, duration time.Duration) {
	if vm.track == nil || vm.observer == nil {
		return
	}
	vm.observer(Snapshot{
		Title:    vm.track.Title,
		Subtitle: vm.track.Subtitle,
		Playing:  playing,
		Position: max(position, 0),
		Duration: max(duration, 0),
	})
}
