// Package player implements the streaming playback engine on top of beep.
package player

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/rs/zerolog"

	"github.com/llehouerou/playcard/internal/errmsg"
	"github.com/llehouerou/playcard/internal/track"
)

const (
	defaultTickInterval   = 250 * time.Millisecond
	defaultMaxStreamBytes = 256 << 20
	defaultSeekSettle     = 100 * time.Millisecond
)

// Player is the beep-backed engine. All methods are safe for concurrent use;
// events are emitted from the loader, ticker, seek and end-of-stream goroutines.
type Player struct {
	mu sync.Mutex

	out          Output
	client       *http.Client
	maxBytes     int64
	tickInterval time.Duration
	seekSettle   time.Duration
	log          zerolog.Logger

	gen    uint64
	cancel context.CancelFunc
	source string
	hint   time.Duration

	state    State
	ready    bool
	ended    bool
	stream   beep.StreamSeekCloser
	format   beep.Format
	outRate  beep.SampleRate
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	duration time.Duration
	position time.Duration // reported while not ready (pending seek)
	pending  bool          // a seek was requested while loading

	volumeLevel float64
	muted       bool

	seekChan chan seekRequest
	tickStop chan struct{}
	subs     subscribers
	closed   bool
}

// Option configures a Player.
type Option func(*Player)

// WithOutput replaces the beep speaker.
func WithOutput(o Output) Option {
	return func(p *Player) { p.out = o }
}

// WithHTTPClient sets the client used to fetch remote streams.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) { p.client = c }
}

// WithMaxStreamBytes bounds how much of a remote stream is buffered.
func WithMaxStreamBytes(n int64) Option {
	return func(p *Player) { p.maxBytes = n }
}

// WithTickInterval sets how often time updates are emitted while playing.
func WithTickInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.tickInterval = d
		}
	}
}

// WithSeekSettle sets how long audio stays muted after a seek.
func WithSeekSettle(d time.Duration) Option {
	return func(p *Player) { p.seekSettle = max(d, 0) }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Player) { p.log = l }
}

// New creates a Player and starts its seek goroutine.
func New(opts ...Option) *Player {
	p := &Player{
		out:          SpeakerOutput(),
		client:       &http.Client{Timeout: 30 * time.Second},
		maxBytes:     defaultMaxStreamBytes,
		tickInterval: defaultTickInterval,
		seekSettle:   defaultSeekSettle,
		log:          zerolog.Nop(),
		state:        Stopped,
		volumeLevel:  1.0,
		seekChan:     make(chan seekRequest, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.seekLoop()
	return p
}

// Load stops the current stream and starts preparing t in the background.
// Any preparation still running for a previous Load is cancelled.
func (p *Player) Load(t track.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.stopLocked()
	p.gen++
	p.source = t.StreamURL
	p.hint = t.DurationHint

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.prepare(ctx, p.gen, t)
}

// prepare opens and decodes the stream, then hands it to the output.
func (p *Player) prepare(ctx context.Context, gen uint64, t track.Track) {
	log := p.log.With().
		Uint64("generation", gen).
		Str("session", uuid.NewString()).
		Str("stream", t.StreamURL).
		Logger()
	started := time.Now()

	src, err := OpenSource(ctx, p.client, t.StreamURL, p.maxBytes)
	if err != nil {
		p.fail(gen, errmsg.OpStreamOpen, err, log)
		return
	}
	log.Debug().
		Str("size", humanize.Bytes(uint64(max(src.Size, 0)))).
		Dur("elapsed", time.Since(started)).
		Msg("stream opened")

	stream, format, err := decode(src)
	if err != nil {
		src.Close()
		p.fail(gen, errmsg.OpStreamDecode, err, log)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.closed {
		stream.Close()
		return
	}

	rate, err := p.out.Init(format.SampleRate)
	if err != nil {
		stream.Close()
		p.failLocked(gen, errmsg.OpAudioInit, err, log)
		return
	}

	p.stream = stream
	p.format = format
	p.outRate = rate
	p.duration = ResolveDuration(streamSeconds(stream, format), p.hint)
	p.ready = true

	if p.pending {
		p.pending = false
		if err := stream.Seek(p.clampSamples(p.position)); err != nil {
			log.Warn().Err(err).Msg("apply pending seek")
		}
	}
	p.position = 0
	p.startOutputLocked(gen)
	if p.state == Playing {
		p.startTickerLocked()
	}

	log.Info().
		Dur("duration", p.duration).
		Int("sample_rate", int(format.SampleRate)).
		Msg("stream ready")
	p.emitLocked(EventStateChanged)
}

// startOutputLocked builds the effect chain around the stream and plays it.
func (p *Player) startOutputLocked(gen uint64) {
	var s beep.Streamer = p.stream
	if p.format.SampleRate != p.outRate {
		s = beep.Resample(4, p.format.SampleRate, p.outRate, p.stream)
	}
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: p.state != Playing}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}
	// The callback runs on the speaker goroutine with the speaker locked.
	p.out.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.handleEnd(gen)
	})))
}

func (p *Player) handleEnd(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || !p.ready || p.ended {
		return
	}
	if err := p.stream.Err(); err != nil {
		p.log.Warn().Err(err).Uint64("generation", gen).Msg("stream ended with error")
	}
	p.ended = true
	p.state = Stopped
	p.stopTickerLocked()
	p.emitLocked(EventEnded)
}

func (p *Player) fail(gen uint64, op errmsg.Op, err error, log zerolog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failLocked(gen, op, err, log)
}

func (p *Player) failLocked(gen uint64, op errmsg.Op, err error, log zerolog.Logger) {
	if gen != p.gen || p.closed || errors.Is(err, context.Canceled) {
		return
	}
	log.Error().Err(err).Str("op", string(op)).Msg("playback failure")
	p.subs.error(ErrorEvent{Op: op, Source: p.source, Err: err, Generation: gen})
	if p.state != Stopped {
		p.state = Stopped
		p.emitLocked(EventStateChanged)
	}
}

// stopLocked releases the current stream and resets the clock.
func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.stopTickerLocked()
	if p.ready {
		p.out.Clear()
		if err := p.stream.Close(); err != nil {
			p.log.Debug().Err(err).Msg("close stream")
		}
	}
	p.ready = false
	p.ended = false
	p.pending = false
	p.stream = nil
	p.ctrl = nil
	p.volume = nil
	p.position = 0
	p.duration = 0
	p.state = Stopped
}

// emitLocked broadcasts an event of the current generation.
func (p *Player) emitLocked(kind EventKind) {
	p.subs.event(Event{
		Kind:       kind,
		Generation: p.gen,
		Playing:    p.state == Playing,
		Position:   p.currentTimeLocked(),
		Duration:   p.duration,
	})
}

// IsPlaying reports whether playback is on, including a Play requested
// before the stream is ready.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Playing
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// CurrentTime returns the playback position.
func (p *Player) CurrentTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentTimeLocked()
}

func (p *Player) currentTimeLocked() time.Duration {
	if !p.ready {
		return p.position
	}
	if p.ended {
		return p.duration
	}
	p.out.Lock()
	pos := p.format.SampleRate.D(p.stream.Position())
	p.out.Unlock()
	if p.duration > 0 {
		pos = min(pos, p.duration)
	}
	return max(pos, 0)
}

// Duration returns the resolved duration, 0 while unknown.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Generation returns the number of Load calls so far.
func (p *Player) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Subscribe returns a new subscription. After Close the subscription is
// returned already done.
func (p *Player) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		s := newSubscription()
		s.close()
		return s
	}
	return p.subs.add()
}

// Unsubscribe stops delivery to sub and closes its Done channel.
func (p *Player) Unsubscribe(sub *Subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs.remove(sub)
}

// Close stops playback, ends the worker goroutines and closes every
// subscription. Further calls are no-ops.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.stopLocked()
	p.closed = true
	close(p.seekChan)
	p.subs.closeAll()
	return nil
}
