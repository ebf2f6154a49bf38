package player

import (
	"time"

	"github.com/llehouerou/playcard/internal/track"
)

// Interface is the playback engine contract the view-model drives.
//
// Commands return immediately; outcomes are reported on the channels of a
// Subscription. Implementations are safe for concurrent use.
type Interface interface {
	// Load replaces the current stream. Preparation happens asynchronously.
	Load(t track.Track)
	Play()
	Pause()
	// Seek moves to an absolute position, clamped to >= 0.
	Seek(position time.Duration)
	IsPlaying() bool
	CurrentTime() time.Duration
	// Duration is 0 until the stream duration is resolved.
	Duration() time.Duration
	// Generation is incremented by every Load.
	Generation() uint64
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)
	Close() error
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
