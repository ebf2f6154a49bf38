package player

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// ResolveDuration turns a stream-reported duration in seconds into the
// duration exposed by the engine. A non-finite value means the stream does
// not know its length: the track's hint is used instead (0 when absent).
// Negative values clamp to 0.
func ResolveDuration(seconds float64, hint time.Duration) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return max(hint, 0)
	}
	return time.Duration(max(seconds, 0) * float64(time.Second))
}

// streamSeconds returns the length of a decoded stream in seconds, or NaN
// when the decoder cannot tell.
func streamSeconds(s beep.StreamSeekCloser, format beep.Format) float64 {
	n := s.Len()
	if n <= 0 || format.SampleRate <= 0 {
		return math.NaN()
	}
	return format.SampleRate.D(n).Seconds()
}
