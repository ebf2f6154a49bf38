package player

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

// makeWAV returns a 16-bit stereo PCM WAV file holding frames of silence.
func makeWAV(sampleRate, frames int) []byte {
	const channels, bits = 2, 16
	blockAlign := channels * bits / 8
	dataSize := frames * blockAlign

	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+dataSize))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, uint16(bits))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(dataSize))
	b.Write(make([]byte, dataSize))
	return b.Bytes()
}

// writeWAV writes one second of 8kHz audio into dir.
func writeWAV(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, makeWAV(8000, 8000), 0o600); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	return path
}

// fakeOutput is an Output that only produces samples when pulled.
type fakeOutput struct {
	lock sync.Mutex // plays the role of the speaker lock

	mu        sync.Mutex
	rate      beep.SampleRate
	initErr   error
	inits     int
	streamers []beep.Streamer
	clears    int
}

func (o *fakeOutput) Init(sr beep.SampleRate) (beep.SampleRate, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inits++
	if o.initErr != nil {
		return 0, o.initErr
	}
	if o.rate == 0 {
		o.rate = sr
	}
	return o.rate, nil
}

func (o *fakeOutput) Play(s beep.Streamer) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.streamers = append(o.streamers, s)
}

func (o *fakeOutput) Clear() {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.streamers = nil
	o.clears++
}

func (o *fakeOutput) Lock()   { o.lock.Lock() }
func (o *fakeOutput) Unlock() { o.lock.Unlock() }

// pull streams n frames from every playing streamer, dropping finished ones.
func (o *fakeOutput) pull(n int) {
	o.lock.Lock()
	defer o.lock.Unlock()
	buf := make([][2]float64, n)
	kept := o.streamers[:0]
	for _, s := range o.streamers {
		if _, ok := s.Stream(buf); ok {
			kept = append(kept, s)
		}
	}
	o.streamers = kept
}

func (o *fakeOutput) playing() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return len(o.streamers)
}

func newTestPlayer(t *testing.T, out *fakeOutput, opts ...Option) *Player {
	t.Helper()
	opts = append([]Option{WithOutput(out), WithSeekSettle(0)}, opts...)
	p := New(opts...)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

const waitTimeout = 2 * time.Second

// waitEvent returns the first event matching match, failing on errors.
func waitEvent(t *testing.T, sub *Subscription, match func(Event) bool) Event {
	t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case ev := <-sub.Events:
			if match(ev) {
				return ev
			}
		case e := <-sub.Errors:
			t.Fatalf("unexpected error event: %s", e.Message())
		case <-timeout:
			t.Fatal("timed out waiting for event")
			return Event{}
		}
	}
}

func waitError(t *testing.T, sub *Subscription) ErrorEvent {
	t.Helper()
	select {
	case e := <-sub.Errors:
		return e
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for error event")
		return ErrorEvent{}
	}
}

func isKind(k EventKind) func(Event) bool {
	return func(ev Event) bool { return ev.Kind == k }
}

func isReady(ev Event) bool {
	return ev.Kind == EventStateChanged && ev.Duration > 0
}
