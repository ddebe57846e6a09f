package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeTrueColor ColorMode = iota // 24-bit RGB
	ColorMode256                        // xterm-256 palette
	ColorMode16                         // legacy 16-color ANSI palette
)

// String returns the config/flag name of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	case ColorMode256:
		return "256"
	case ColorMode16:
		return "16"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// ParseColorMode resolves a flag/config value. "auto" and "" return DetectColorMode()
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "true", "24bit", "24":
		return ColorModeTrueColor, nil
	case "256", "8bit":
		return ColorMode256, nil
	case "16", "4bit", "ansi":
		return ColorMode16, nil
	}
	return ColorModeTrueColor, fmt.Errorf("unknown color mode %q", s)
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// colorful converts to go-colorful's unit-range representation
func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

// palette holds the RGB value of every xterm-256 index, 0-15 being the legacy ANSI colors
var palette [256]RGB

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}

	// tcell carries the canonical xterm values for every palette slot
	for i := 0; i < 256; i++ {
		r, g, b := tcell.PaletteColor(i).RGB()
		palette[i] = RGB{uint8(r), uint8(g), uint8(b)}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PaletteRGB returns the RGB value of a 256-palette index
func PaletteRGB(index uint8) RGB {
	return palette[index]
}

// RGBTo256 converts RGB to nearest 256-color palette index.
// Exact palette hits return immediately; otherwise the nearest cube cell and the nearest gray
// ramp step compete on HSLuv distance, the legacy 0-15 slots are never chosen.
func RGBTo256(c RGB) uint8 {
	qr, qg, qb := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]
	cube := RGB{cubeValues[qr], cubeValues[qg], cubeValues[qb]}
	cubeIdx := Cube256(qr, qg, qb)
	if cube == c {
		return cubeIdx
	}

	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	var step int
	switch {
	case gray < 8:
		step = 0
	case gray > 238:
		step = 23
	default:
		step = (gray - 3) / 10
		if step > 23 {
			step = 23
		}
	}
	level := uint8(8 + 10*step)
	grayRGB := RGB{level, level, level}

	src := c.colorful()
	if src.DistanceHSLuv(cube.colorful()) <= src.DistanceHSLuv(grayRGB.colorful()) {
		return cubeIdx
	}
	return Gray256(uint8(step))
}

// RGBTo16 converts RGB to the nearest legacy ANSI palette slot (0-15) by CIE Lab distance
func RGBTo16(c RGB) uint8 {
	src := c.colorful()
	best := uint8(0)
	bestDist := src.DistanceLab(palette[0].colorful())
	for i := 1; i < 16; i++ {
		d := src.DistanceLab(palette[i].colorful())
		if d < bestDist {
			bestDist = d
			best = uint8(i)
		}
	}
	return best
}
