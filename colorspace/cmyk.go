package colorspace

import (
	"fmt"

	"github.com/lixenwraith/termcore/terminal"
)

// CMY is the subtractive complement of RGB, components in [0,100]
type CMY struct {
	C, M, Y float64
}

// CMYK separates the black key from CMY, components in [0,100]
type CMYK struct {
	C, M, Y, K float64
}

func RGBToCMY(c terminal.RGB) CMY {
	r, g, b := unit(c)
	return CMY{C: (1 - r) * 100, M: (1 - g) * 100, Y: (1 - b) * 100}
}

func CMYToRGB(c CMY) terminal.RGB {
	return fromUnit(1-c.C/100, 1-c.M/100, 1-c.Y/100)
}

// RGBToCMYK takes K as the minimum of the inverted channels; pure black is K=100 only
func RGBToCMYK(c terminal.RGB) CMYK {
	r, g, b := unit(c)
	k := 1 - max(r, g, b)
	if k >= 1 {
		return CMYK{K: 100}
	}
	d := 1 - k
	return CMYK{
		C: (1 - r - k) / d * 100,
		M: (1 - g - k) / d * 100,
		Y: (1 - b - k) / d * 100,
		K: k * 100,
	}
}

func CMYKToRGB(c CMYK) terminal.RGB {
	k := 1 - c.K/100
	return fromUnit((1-c.C/100)*k, (1-c.M/100)*k, (1-c.Y/100)*k)
}

// CMY drops the key channel by folding it back into each ink
func (c CMYK) CMY() CMY {
	k := c.K / 100
	return CMY{
		C: (c.C/100*(1-k) + k) * 100,
		M: (c.M/100*(1-k) + k) * 100,
		Y: (c.Y/100*(1-k) + k) * 100,
	}
}

// CMYK extracts the key channel
func (c CMY) CMYK() CMYK {
	k := min(c.C, c.M, c.Y) / 100
	if k >= 1 {
		return CMYK{K: 100}
	}
	d := 1 - k
	return CMYK{
		C: (c.C/100 - k) / d * 100,
		M: (c.M/100 - k) / d * 100,
		Y: (c.Y/100 - k) / d * 100,
		K: k * 100,
	}
}

func (c CMY) RGB() terminal.RGB  { return CMYToRGB(c) }
func (c CMYK) RGB() terminal.RGB { return CMYKToRGB(c) }

func (c CMY) Valid() error {
	for _, p := range []struct {
		n string
		v float64
	}{{"c", c.C}, {"m", c.M}, {"y", c.Y}} {
		if err := checkRange("cmy", p.n, p.v, 0, 100); err != nil {
			return err
		}
	}
	return nil
}

func (c CMYK) Valid() error {
	for _, p := range []struct {
		n string
		v float64
	}{{"c", c.C}, {"m", c.M}, {"y", c.Y}, {"k", c.K}} {
		if err := checkRange("cmyk", p.n, p.v, 0, 100); err != nil {
			return err
		}
	}
	return nil
}

func (c CMY) String() string {
	return fmt.Sprintf("cmy(%.0f%%, %.0f%%, %.0f%%)", c.C, c.M, c.Y)
}

func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%.0f%%, %.0f%%, %.0f%%, %.0f%%)", c.C, c.M, c.Y, c.K)
}
