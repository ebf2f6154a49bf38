package player

import (
	"sync"
	"time"

	"github.com/llehouerou/playcard/internal/track"
)

// Mock is a test double for the engine. Commands are recorded and their
// events are delivered synchronously to the subscriptions.
type Mock struct {
	mu       sync.Mutex
	playing  bool
	position time.Duration
	duration time.Duration
	gen      uint64
	closed   bool

	loads      []track.Track
	playCalls  int
	pauseCalls int
	seekCalls  []time.Duration

	subs subscribers
}

// NewMock creates a stopped mock with an unknown duration.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(t track.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, t)
	m.gen++
	m.position = 0
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	m.playing = true
	m.emitLocked(EventStateChanged)
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.playing = false
	m.emitLocked(EventStateChanged)
}

func (m *Mock) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
	m.position = max(position, 0)
	m.emitLocked(EventTimeUpdate)
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) CurrentTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

func (m *Mock) Subscribe() *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs.add()
}

func (m *Mock) Unsubscribe(sub *Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs.remove(sub)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.subs.closeAll()
	return nil
}

// Test helpers

// SetPlaying sets the playing flag without emitting.
func (m *Mock) SetPlaying(playing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = playing
}

// SetDuration sets the reported duration without emitting.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// SetPosition sets the reported position without emitting.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// EmitTimeUpdate sets the position and duration and emits a time update.
func (m *Mock) EmitTimeUpdate(position, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
	m.duration = duration
	m.emitLocked(EventTimeUpdate)
}

// EmitEnded stops the mock and emits the end of stream.
func (m *Mock) EmitEnded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.position = m.duration
	m.emitLocked(EventEnded)
}

// EmitStateChanged emits a state change stamped with gen, which may be stale.
func (m *Mock) EmitStateChanged(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs.event(Event{
		Kind:       EventStateChanged,
		Generation: gen,
		Playing:    m.playing,
		Position:   m.position,
		Duration:   m.duration,
	})
}

// EmitError delivers an error event for the current generation.
func (m *Mock) EmitError(e ErrorEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Generation = m.gen
	m.subs.error(e)
}

// Loads returns the tracks passed to Load.
func (m *Mock) Loads() []track.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]track.Track(nil), m.loads...)
}

// PlayCalls returns the number of Play calls.
func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

// PauseCalls returns the number of Pause calls.
func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// SeekCalls returns the positions passed to Seek.
func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) emitLocked(kind EventKind) {
	m.subs.event(Event{
		Kind:       kind,
		Generation: m.gen,
		Playing:    m.playing,
		Position:   m.position,
		Duration:   m.duration,
	})
}
