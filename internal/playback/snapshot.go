package playback

import "time"

// Snapshot is the immutable state the view renders. Position and Duration
// are never negative; a zero Duration means it is not known yet.
type Snapshot struct {
	Title    string
	Subtitle string
	Playing  bool
	Position time.Duration
	Duration time.Duration
}

// Progress returns Position/Duration clamped to [0, 1], or 0 while the
// duration is unknown.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.Position)/float64(s.Duration), 0), 1)
}
