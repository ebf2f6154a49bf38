// Package mpris exposes the player card to desktop media controls over the
// D-Bus MPRIS interface. Remote requests are forwarded to the bubbletea
// program as RemoteMsg values; the host reports its state through Update.
package mpris

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/playcard/internal/track"
)

// ErrNoProgram is returned to D-Bus callers when no program receives
// remote requests.
var ErrNoProgram = errors.New("mpris: no program attached")

// Command identifies a remote control request.
type Command int

const (
	CommandPlay Command = iota
	CommandPause
	CommandPlayPause
	CommandNext
	CommandPrevious
	CommandStop
	CommandSeek        // relative, Offset
	CommandSetPosition // absolute, Position
	CommandSetLoop     // Repeat
)

func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "Play"
	case CommandPause:
		return "Pause"
	case CommandPlayPause:
		return "PlayPause"
	case CommandNext:
		return "Next"
	case CommandPrevious:
		return "Previous"
	case CommandStop:
		return "Stop"
	case CommandSeek:
		return "Seek"
	case CommandSetPosition:
		return "SetPosition"
	case CommandSetLoop:
		return "SetLoop"
	default:
		return "Unknown"
	}
}

// RemoteMsg is sent to the program for every request from a desktop client.
type RemoteMsg struct {
	Command  Command
	Offset   time.Duration
	Position time.Duration
	Repeat   bool
}

// State is what desktop clients see. Loaded is false until the host has
// published a track.
type State struct {
	Loaded   bool
	Track    track.Track
	Playing  bool
	Position time.Duration
	Duration time.Duration
	Repeat   bool
}

// Sender delivers a message to the UI loop, typically (*tea.Program).Send.
type Sender func(tea.Msg)

// controller holds the last reported State and forwards requests. D-Bus
// calls arrive on their own goroutines, so both are swapped atomically.
type controller struct {
	state atomic.Pointer[State]
	send  atomic.Pointer[Sender]
}

func newController() *controller {
	c := &controller{}
	c.state.Store(&State{})
	return c
}

// attach sets the receiver of remote requests. The program is created after
// the adapter, so requests before attach fail with ErrNoProgram.
func (c *controller) attach(send Sender) {
	if send == nil {
		c.send.Store(nil)
		return
	}
	c.send.Store(&send)
}

func (c *controller) update(s State) {
	c.state.Store(&s)
}

func (c *controller) current() State {
	return *c.state.Load()
}

func (c *controller) dispatch(msg RemoteMsg) error {
	send := c.send.Load()
	if send == nil {
		return ErrNoProgram
	}
	(*send)(msg)
	return nil
}
