package colorspace

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vmath"
)

// ErrComponentRange is wrapped by every Valid failure
var ErrComponentRange = errors.New("component out of range")

// rangeEpsilon absorbs float error at computed range limits
const rangeEpsilon = 1e-9

// Value is a color expressed in one of the auxiliary spaces
type Value interface {
	RGB() terminal.RGB
	Valid() error
	String() string
}

// Set holds one RGB color expressed in every supported space
type Set struct {
	RGB  terminal.RGB
	RYB  RYB
	CMY  CMY
	CMYK CMYK
	HSL  HSL
	HSV  HSV
	YIQ  YIQ
	YUV  YUV
}

// Convert computes all spaces for c
func Convert(c terminal.RGB) Set {
	return Set{
		RGB:  c,
		RYB:  RGBToRYB(c),
		CMY:  RGBToCMY(c),
		CMYK: RGBToCMYK(c),
		HSL:  RGBToHSL(c),
		HSV:  RGBToHSV(c),
		YIQ:  RGBToYIQ(c),
		YUV:  RGBToYUV(c),
	}
}

// checkRange validates one component, NaN always fails
func checkRange(space, name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo-rangeEpsilon || v > hi+rangeEpsilon {
		return fmt.Errorf("%w: %s %s=%g not in [%g,%g]", ErrComponentRange, space, name, v, lo, hi)
	}
	return nil
}

// checkHue validates a hue in [0,360)
func checkHue(space string, h float64) error {
	if math.IsNaN(h) || h < 0 || h >= 360 {
		return fmt.Errorf("%w: %s hue=%g not in [0,360)", ErrComponentRange, space, h)
	}
	return nil
}

// unit returns channels scaled to [0,1]
func unit(c terminal.RGB) (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// fromUnit rounds [0,1] channels back to 8-bit, clamping out-of-gamut values
func fromUnit(r, g, b float64) terminal.RGB {
	return terminal.RGB{R: vmath.UnitToByte(r), G: vmath.UnitToByte(g), B: vmath.UnitToByte(b)}
}
