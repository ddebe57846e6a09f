package colorspace

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vmath"
)

// HSL is hue in degrees [0,360), saturation and lightness in [0,100]
type HSL struct {
	H, S, L float64
}

// HSV is hue in degrees [0,360), saturation and value in [0,100]
type HSV struct {
	H, S, V float64
}

func toColorful(c terminal.RGB) colorful.Color {
	r, g, b := unit(c)
	return colorful.Color{R: r, G: g, B: b}
}

func fromColorful(c colorful.Color) terminal.RGB {
	return fromUnit(c.R, c.G, c.B)
}

func RGBToHSL(c terminal.RGB) HSL {
	h, s, l := toColorful(c).Hsl()
	return HSL{H: vmath.WrapDegrees(h), S: s * 100, L: l * 100}
}

func HSLToRGB(c HSL) terminal.RGB {
	return fromColorful(colorful.Hsl(vmath.WrapDegrees(c.H), c.S/100, c.L/100))
}

func RGBToHSV(c terminal.RGB) HSV {
	h, s, v := toColorful(c).Hsv()
	return HSV{H: vmath.WrapDegrees(h), S: s * 100, V: v * 100}
}

func HSVToRGB(c HSV) terminal.RGB {
	return fromColorful(colorful.Hsv(vmath.WrapDegrees(c.H), c.S/100, c.V/100))
}

// ReverseHue returns the hue across the wheel's vertical axis, (360 - h) mod 360
func ReverseHue(h float64) float64 {
	return vmath.WrapDegrees(360 - h)
}

func (c HSL) RGB() terminal.RGB { return HSLToRGB(c) }
func (c HSV) RGB() terminal.RGB { return HSVToRGB(c) }

func (c HSL) Valid() error {
	if err := checkHue("hsl", c.H); err != nil {
		return err
	}
	if err := checkRange("hsl", "s", c.S, 0, 100); err != nil {
		return err
	}
	return checkRange("hsl", "l", c.L, 0, 100)
}

func (c HSV) Valid() error {
	if err := checkHue("hsv", c.H); err != nil {
		return err
	}
	if err := checkRange("hsv", "s", c.S, 0, 100); err != nil {
		return err
	}
	return checkRange("hsv", "v", c.V, 0, 100)
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f°, %.0f%%, %.0f%%)", c.H, c.S, c.L)
}

func (c HSV) String() string {
	return fmt.Sprintf("hsv(%.0f°, %.0f%%, %.0f%%)", c.H, c.S, c.V)
}
