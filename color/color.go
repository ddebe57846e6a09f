// Package color is the immutable color value used by every rendering path.
//
// A Color always carries authoritative r,g,b. Palette spaces add a derived index;
// converting down to a palette keeps the original channels so converting back to
// true color is lossless.
package color

import (
	"fmt"

	"github.com/lixenwraith/termcore/colorspace"
	"github.com/lixenwraith/termcore/terminal"
)

// Space selects how a color is emitted to the terminal
type Space uint8

const (
	TrueColor  Space = iota // 24-bit SGR 38;2 / 48;2
	Indexed256              // xterm palette SGR 38;5 / 48;5
	Indexed16               // legacy SGR 30-37, 90-97 / 40-47, 100-107
)

func (s Space) String() string {
	switch s {
	case TrueColor:
		return "truecolor"
	case Indexed256:
		return "256"
	case Indexed16:
		return "16"
	default:
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
}

// SpaceFor returns the richest space a terminal mode can display
func SpaceFor(mode terminal.ColorMode) Space {
	switch mode {
	case terminal.ColorMode256:
		return Indexed256
	case terminal.ColorMode16:
		return Indexed16
	default:
		return TrueColor
	}
}

// Color is an immutable color value; the zero value is true-color black
type Color struct {
	space Space
	rgb   terminal.RGB
	index uint8
}

// Common values
var (
	Black = FromRGB(0, 0, 0)
	White = FromRGB(255, 255, 255)
)

// FromRGB builds a true color
func FromRGB(r, g, b uint8) Color {
	return Color{space: TrueColor, rgb: terminal.RGB{R: r, G: g, B: b}}
}

// FromTerminal builds a true color from a terminal.RGB
func FromTerminal(c terminal.RGB) Color {
	return Color{space: TrueColor, rgb: c}
}

// FromIndex256 builds a 256-palette color, channels taken from the palette entry
func FromIndex256(index uint8) Color {
	return Color{space: Indexed256, rgb: terminal.PaletteRGB(index), index: index}
}

// FromBasic builds a legacy 16-color value
func FromBasic(b terminal.Basic16) Color {
	b &= 0x0f
	return Color{space: Indexed16, rgb: b.RGB(), index: uint8(b)}
}

// In converts to another space by nearest palette match. Channels are kept unchanged.
func (c Color) In(space Space) Color {
	if space == c.space {
		return c
	}
	switch space {
	case Indexed256:
		// 16-color slots are valid 256-palette indices
		if c.space == Indexed16 {
			return Color{space: Indexed256, rgb: c.rgb, index: c.index}
		}
		return Color{space: Indexed256, rgb: c.rgb, index: terminal.RGBTo256(c.rgb)}
	case Indexed16:
		if c.space == Indexed256 && c.index < 16 {
			return Color{space: Indexed16, rgb: c.rgb, index: c.index}
		}
		return Color{space: Indexed16, rgb: c.rgb, index: terminal.RGBTo16(c.rgb)}
	default:
		return Color{space: TrueColor, rgb: c.rgb}
	}
}

// ForMode converts to the space displayable in mode, leaving poorer spaces alone
func (c Color) ForMode(mode terminal.ColorMode) Color {
	if target := SpaceFor(mode); target > c.space {
		return c.In(target)
	}
	return c
}

func (c Color) Space() Space { return c.space }

// Index is the palette index, meaningful only outside TrueColor
func (c Color) Index() uint8 { return c.index }

func (c Color) RGB() (r, g, b uint8) { return c.rgb.R, c.rgb.G, c.rgb.B }

func (c Color) Terminal() terminal.RGB { return c.rgb }

// Spaces expresses the channels in every auxiliary color space
func (c Color) Spaces() colorspace.Set { return colorspace.Convert(c.rgb) }

// Equal compares space, channels and index
func (c Color) Equal(o Color) bool {
	return c.space == o.space && c.rgb == o.rgb && (c.space == TrueColor || c.index == o.index)
}

// Hex returns #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.rgb.R, c.rgb.G, c.rgb.B)
}

// String returns a specifier that Parse accepts and that reproduces the same value
func (c Color) String() string {
	switch c.space {
	case Indexed256:
		return fmt.Sprintf("%d", c.index)
	case Indexed16:
		return terminal.Basic16(c.index).String()
	default:
		return c.Hex()
	}
}

// IsBright reports Rec.601 integer luma of at least 128
func (c Color) IsBright() bool {
	luma := (299*int(c.rgb.R) + 587*int(c.rgb.G) + 114*int(c.rgb.B)) / 1000
	return luma >= 128
}

// Readable returns black or white, whichever reads on c as a background, in c's space
func (c Color) Readable() Color {
	if c.IsBright() {
		return Black.In(c.space)
	}
	return White.In(c.space)
}
