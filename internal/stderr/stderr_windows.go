//go:build windows

package stderr

import "os"

// Windows audio backends do not write to stderr; nothing is redirected.
type platformState struct{}

// Start returns a capture that never yields lines.
func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func (c *Capture) restore() {
	close(c.lines)
}
