//go:build !windows

package stderr

import (
	"os"
	"syscall"

	"github.com/cockroachdb/errors"
)

type platformState struct {
	orig    int
	r, w    *os.File
	drained chan struct{}
}

// Start redirects fd 2 into a pipe. Call it early in main, before the audio
// backend initializes. On error the program can continue uncaptured.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "create pipe")
	}
	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, errors.Wrap(err, "dup stderr")
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, errors.Wrap(err, "redirect stderr")
	}

	c := &Capture{
		lines: make(chan string, bufferSize),
		state: platformState{orig: orig, r: r, w: w, drained: make(chan struct{})},
	}
	go func() {
		defer close(c.state.drained)
		forward(r, c.lines)
	}()
	return c, nil
}

// WriteOriginal writes to the original stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.state.orig, []byte(msg))
}

func (c *Capture) restore() {
	_ = syscall.Dup2(c.state.orig, int(os.Stderr.Fd()))
	// fd 2 no longer refers to the pipe; closing w ends the reader.
	c.state.w.Close()
	<-c.state.drained
	c.state.r.Close()
	_ = syscall.Close(c.state.orig)
	close(c.lines)
}
