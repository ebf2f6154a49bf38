// Package stderr captures output that native audio backends (ALSA through
// oto) write straight to file descriptor 2, so it does not corrupt the TUI.
// Captured lines are surfaced on the player card's status line.
package stderr

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

const bufferSize = 100

// Capture redirects fd 2 for the lifetime of the process until Stop.
type Capture struct {
	lines chan string
	stop  sync.Once
	state platformState
}

// Lines returns the captured, non-empty lines. The channel is closed by Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop restores the original stderr. Safe to call more than once.
func (c *Capture) Stop() {
	c.stop.Do(func() {
		c.restore()
	})
}

// forward scans r and sends trimmed lines to out, dropping lines while out
// is full. It returns when r is exhausted.
func forward(r io.Reader, out chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		default:
		}
	}
}
