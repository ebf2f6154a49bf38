// Package kittyimg writes images with the Kitty terminal graphics protocol.
package kittyimg

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

const chunkSize = 4096 // max base64 bytes per escape sequence

// DeleteAll removes every image placed by this program.
const DeleteAll = "\x1b_Ga=d,d=A\x1b\\"

// Encode wraps PNG data in a transmit-and-display escape sequence sized to
// cols x rows cells. The cursor does not move (C=1) so the sequence can be
// injected into a rendered line. Returns "" for empty data.
func Encode(pngData []byte, cols, rows int) string {
	if len(pngData) == 0 || cols <= 0 || rows <= 0 {
		return ""
	}

	payload := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(payload); i += chunkSize {
		end := min(i+chunkSize, len(payload))
		more := 0
		if end < len(payload) {
			more = 1
		}
		if i == 0 {
			fmt.Fprintf(&sb, "\x1b_Ga=T,f=100,C=1,q=2,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, payload[i:end])
		} else {
			fmt.Fprintf(&sb, "\x1b_Gm=%d;%s\x1b\\", more, payload[i:end])
		}
	}
	return sb.String()
}

// Placeholder returns a cols x rows box with glyph centered, drawn when no
// artwork can be shown.
func Placeholder(cols, rows int, glyph string) []string {
	if cols < 4 || rows < 2 {
		return nil
	}

	inner := cols - 2
	lines := make([]string, 0, rows)
	lines = append(lines, "┌"+strings.Repeat("─", inner)+"┐")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 && glyph != "" {
			left := (inner - 1) / 2
			lines = append(lines, "│"+strings.Repeat(" ", left)+glyph+strings.Repeat(" ", inner-1-left)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", inner)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", inner)+"┘")
	return lines
}

// Supported reports whether the terminal understands the Kitty graphics
// protocol, judging from the environment.
func Supported() bool {
	return supported(os.Getenv)
}

func supported(getenv func(string) string) bool {
	// Contour sets CONTOUR_PROFILE but has no Kitty support, and inherits
	// variables like GHOSTTY_RESOURCES_DIR from the parent terminal.
	if getenv("CONTOUR_PROFILE") != "" {
		return false
	}
	term := getenv("TERM")
	switch {
	case getenv("KITTY_WINDOW_ID") != "":
		return true
	case strings.Contains(term, "kitty"):
		return true
	case getenv("TERM_PROGRAM") == "WezTerm":
		return true
	case getenv("GHOSTTY_RESOURCES_DIR") != "":
		return true
	}
	version := getenv("KONSOLE_VERSION")
	return len(version) >= 4 && version[:4] >= "2204"
}
