package color

import (
	"github.com/lixenwraith/termcore/terminal"
)

// AppendForeground appends the foreground sequence for the color's own space
func (c Color) AppendForeground(dst []byte) []byte {
	switch c.space {
	case Indexed256:
		return terminal.AppendFg256(dst, c.index)
	case Indexed16:
		return terminal.AppendFg16(dst, terminal.Basic16(c.index))
	default:
		return terminal.AppendFgRGB(dst, c.rgb)
	}
}

// AppendBackground appends the background sequence for the color's own space
func (c Color) AppendBackground(dst []byte) []byte {
	switch c.space {
	case Indexed256:
		return terminal.AppendBg256(dst, c.index)
	case Indexed16:
		return terminal.AppendBg16(dst, terminal.Basic16(c.index))
	default:
		return terminal.AppendBgRGB(dst, c.rgb)
	}
}

// Foreground returns the SGR sequence selecting c as foreground
func (c Color) Foreground() string {
	var buf [24]byte
	return string(c.AppendForeground(buf[:0]))
}

// Background returns the SGR sequence selecting c as background
func (c Color) Background() string {
	var buf [24]byte
	return string(c.AppendBackground(buf[:0]))
}
