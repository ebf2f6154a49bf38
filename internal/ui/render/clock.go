package render

import (
	"fmt"
	"math"
	"time"
)

// UnknownClock is shown when there is no time to display.
const UnknownClock = "--:--"

// Clock formats d as m:ss of its rounded seconds. Negative values show 0:00.
func Clock(d time.Duration) string {
	return ClockSeconds(d.Seconds())
}

// ClockSeconds is Clock for a float second count; NaN and infinities show
// UnknownClock.
func ClockSeconds(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return UnknownClock
	}
	s := max(0, int(math.Round(seconds)))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
