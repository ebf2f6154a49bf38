package player

import (
	"time"

	"github.com/llehouerou/playcard/internal/errmsg"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventStateChanged is emitted on Play, Pause and once the stream is
	// prepared (the duration becomes known).
	EventStateChanged EventKind = iota
	// EventTimeUpdate is emitted periodically while playing and after a seek.
	EventTimeUpdate
	// EventEnded is emitted once when the stream reaches its end.
	EventEnded
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "StateChanged"
	case EventTimeUpdate:
		return "TimeUpdate"
	case EventEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Event is a notification from the engine. Generation identifies the Load it
// belongs to; consumers drop events whose generation is no longer current.
type Event struct {
	Kind       EventKind
	Generation uint64
	Playing    bool
	Position   time.Duration
	Duration   time.Duration
}

// ErrorEvent is emitted when preparing or playing a stream fails.
type ErrorEvent struct {
	Op         errmsg.Op
	Source     string // stream reference
	Err        error
	Generation uint64
}

// Message returns the user-facing description of the failure.
func (e ErrorEvent) Message() string {
	return errmsg.Format(e.Op, e.Err)
}
