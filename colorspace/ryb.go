package colorspace

import (
	"fmt"
	"math"

	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vmath"
)

// RYB is the painter's subtractive primary model, components in [0,255]
type RYB struct {
	R, Y, B float64
}

// RGBToRYB converts using white/black removal, yellow extraction from red+green,
// a green split into yellow and blue, and renormalisation to the original peak channel.
// The mapping is exactly inverted by RYBToRGB.
func RGBToRYB(c terminal.RGB) RYB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)

	// Remove the whiteness
	w := vmath.Min3(r, g, b)
	r, g, b = r-w, g-w, b-w
	mg := vmath.Max3(r, g, b)

	// Yellow out of red and green
	y := math.Min(r, g)
	r -= y
	g -= y

	// Green is split between yellow and blue when both are present
	if b > 0 && g > 0 {
		b /= 2
		g /= 2
	}
	y += g
	b += g

	// Normalise to the original peak
	if my := vmath.Max3(r, y, b); my > 0 {
		n := mg / my
		r, y, b = r*n, y*n, b*n
	}

	return RYB{R: r + w, Y: y + w, B: b + w}
}

// RYBToRGB mirrors RGBToRYB
func RYBToRGB(c RYB) terminal.RGB {
	r, y, b := c.R, c.Y, c.B

	w := vmath.Min3(r, y, b)
	r, y, b = r-w, y-w, b-w
	my := vmath.Max3(r, y, b)

	// Green out of yellow and blue
	g := math.Min(y, b)
	y -= g
	b -= g

	if b > 0 && g > 0 {
		b *= 2
		g *= 2
	}
	r += y
	g += y

	if mg := vmath.Max3(r, g, b); mg > 0 {
		n := my / mg
		r, g, b = r*n, g*n, b*n
	}

	return terminal.RGB{R: vmath.ToByte(r + w), G: vmath.ToByte(g + w), B: vmath.ToByte(b + w)}
}

func (c RYB) RGB() terminal.RGB { return RYBToRGB(c) }

func (c RYB) Valid() error {
	if err := checkRange("ryb", "r", c.R, 0, 255); err != nil {
		return err
	}
	if err := checkRange("ryb", "y", c.Y, 0, 255); err != nil {
		return err
	}
	return checkRange("ryb", "b", c.B, 0, 255)
}

func (c RYB) String() string {
	return fmt.Sprintf("ryb(%.0f, %.0f, %.0f)", c.R, c.Y, c.B)
}
