//go:build !linux

package mpris

import "github.com/rs/zerolog"

// Adapter only records state on platforms without D-Bus.
type Adapter struct {
	ctrl *controller
}

// New returns an adapter that never receives remote requests.
func New(_ zerolog.Logger) (*Adapter, error) {
	return &Adapter{ctrl: newController()}, nil
}

// Attach is a no-op beyond recording send. Nil-safe.
func (a *Adapter) Attach(send Sender) {
	if a == nil {
		return
	}
	a.ctrl.attach(send)
}

// Update records s. Nil-safe.
func (a *Adapter) Update(s State) {
	if a == nil {
		return
	}
	a.ctrl.update(s)
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
