package screen

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Visible strips CSI and two-byte escape sequences, leaving printable text
func Visible(s string) string {
	if strings.IndexByte(s, 0x1b) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != 0x1b {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			break
		}
		if s[i+1] != '[' {
			// ESC x
			i++
			continue
		}
		// Skip parameters and intermediates up to the final byte
		j := i + 2
		for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
			j++
		}
		i = j
	}
	return b.String()
}

// Width returns the display width of s, ignoring escape sequences
func Width(s string) int {
	return runewidth.StringWidth(Visible(s))
}

// Pad right-fills s with spaces to width display cells; wider text is returned unchanged
func Pad(s string, width int) string {
	w := Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate cuts plain text to width display cells, ending in tail when cut
func Truncate(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}

// Center pads s on both sides to width display cells
func Center(s string, width int) string {
	w := Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
