package player

// State is the engine's transport state.
//
// Transitions:
//   - Load    → Stopped (from any state)
//   - Play    → Playing (from Stopped or Paused; rewinds first after the end)
//   - Pause   → Paused  (from Playing)
//   - end of stream → Stopped, position pinned to the duration
//   - Seek after the end → Paused at the target
//   - preparation failure → Stopped
//
// Play before the stream is prepared moves to Playing right away; audio
// starts once preparation completes.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is playing or paused mid-way.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
