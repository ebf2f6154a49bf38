package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the audio sink the engine plays into. The default is the beep
// speaker; tests substitute a fake that pulls samples on demand.
type Output interface {
	// Init prepares the device for sr and returns the rate it actually runs
	// at. Only the first call initializes the device.
	Init(sr beep.SampleRate) (beep.SampleRate, error)
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerOutput drives the process-wide beep speaker.
type speakerOutput struct {
	mu          sync.Mutex
	initialized bool
	rate        beep.SampleRate
}

var defaultOutput = &speakerOutput{}

// SpeakerOutput returns the Output backed by the beep speaker.
func SpeakerOutput() Output { return defaultOutput }

func (o *speakerOutput) Init(sr beep.SampleRate) (beep.SampleRate, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.initialized {
		return o.rate, nil
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return 0, err
	}
	o.initialized = true
	o.rate = sr
	return sr, nil
}

func (o *speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (o *speakerOutput) Clear()               { speaker.Clear() }
func (o *speakerOutput) Lock()                { speaker.Lock() }
func (o *speakerOutput) Unlock()              { speaker.Unlock() }
