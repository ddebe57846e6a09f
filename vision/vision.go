// Package vision simulates color vision deficiencies on color values.
//
// Dichromacies use the Machado, Oliveira and Fernandes (2009) full-severity matrices,
// applied in linear sRGB and blended with identity by severity. Monochromacy collapses
// gamma-encoded channels to luma.
package vision

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vmath"
)

var (
	ErrInvalidSeverity   = errors.New("severity must be within [0,1]")
	ErrUnknownDeficiency = errors.New("unknown deficiency")
)

// Deficiency selects the simulated condition; None leaves colors untouched
type Deficiency uint8

const (
	None Deficiency = iota
	Protan
	Deutan
	Tritan
	Monochromacy
)

// Deficiencies lists every simulated condition in display order
var Deficiencies = []Deficiency{Protan, Deutan, Tritan, Monochromacy}

func (d Deficiency) String() string {
	switch d {
	case None:
		return "none"
	case Protan:
		return "protan"
	case Deutan:
		return "deutan"
	case Tritan:
		return "tritan"
	case Monochromacy:
		return "monochromacy"
	default:
		return fmt.Sprintf("Deficiency(%d)", uint8(d))
	}
}

// ParseDeficiency accepts short names and the -opia/-omaly clinical names
func ParseDeficiency(name string) (Deficiency, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "normal", "off":
		return None, nil
	case "protan", "protanopia", "protanomaly", "red":
		return Protan, nil
	case "deutan", "deuteranopia", "deuteranomaly", "green":
		return Deutan, nil
	case "tritan", "tritanopia", "tritanomaly", "blue":
		return Tritan, nil
	case "mono", "monochromacy", "achromatopsia", "gray", "grey":
		return Monochromacy, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownDeficiency, name)
}

// Full-severity simulation matrices in linear RGB
var dichromacy = map[Deficiency]vmath.Mat3{
	Protan: {
		{0.152286, 1.052583, -0.204868},
		{0.114503, 0.786281, 0.099216},
		{-0.003882, -0.048116, 1.051998},
	},
	Deutan: {
		{0.367322, 0.860646, -0.227968},
		{0.280085, 0.672501, 0.047413},
		{-0.011820, 0.042940, 0.968881},
	},
	Tritan: {
		{1.255528, -0.076749, -0.178779},
		{-0.078411, 0.930809, 0.147602},
		{0.004733, 0.691367, 0.303900},
	},
}

// Matrix returns the effective matrix (1-s)I + sM for a dichromacy
func Matrix(d Deficiency, severity float64) (vmath.Mat3, error) {
	if err := checkSeverity(severity); err != nil {
		return vmath.Mat3{}, err
	}
	m, ok := dichromacy[d]
	if !ok {
		return vmath.Mat3{}, fmt.Errorf("%w: %v has no matrix", ErrUnknownDeficiency, d)
	}
	if severity == 1 {
		return m, nil
	}
	return vmath.M3Lerp(vmath.M3Identity(), m, severity), nil
}

func checkSeverity(s float64) error {
	if math.IsNaN(s) || s < 0 || s > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidSeverity, s)
	}
	return nil
}

// Simulate returns c as perceived with deficiency d at severity in [0,1].
// The result stays in c's space; palette indices are re-derived from the simulated channels.
func Simulate(c color.Color, d Deficiency, severity float64) (color.Color, error) {
	if err := checkSeverity(severity); err != nil {
		return color.Color{}, err
	}

	var rgb terminal.RGB
	switch d {
	case None:
		return c, nil
	case Protan, Deutan, Tritan:
		if severity == 0 {
			return c, nil
		}
		m, _ := Matrix(d, severity)
		rgb = applyLinear(m, c.Terminal())
	case Monochromacy:
		if severity == 0 {
			return c, nil
		}
		rgb = desaturate(c.Terminal(), severity)
	default:
		return color.Color{}, fmt.Errorf("%w: %v", ErrUnknownDeficiency, d)
	}

	if rgb == c.Terminal() {
		return c, nil
	}
	return color.FromTerminal(rgb).In(c.Space()), nil
}

// applyLinear runs m on the linearised channels and re-encodes
func applyLinear(m vmath.Mat3, c terminal.RGB) terminal.RGB {
	lin := vmath.Vec3F{X: vmath.Linearize(c.R), Y: vmath.Linearize(c.G), Z: vmath.Linearize(c.B)}
	out := vmath.V3FMap(vmath.M3MulVec(m, lin), vmath.Delinearize)
	return terminal.RGB{R: vmath.UnitToByte(out.X), G: vmath.UnitToByte(out.Y), B: vmath.UnitToByte(out.Z)}
}

// desaturate blends gamma-encoded channels towards 0.3R + 0.59G + 0.11B
func desaturate(c terminal.RGB, severity float64) terminal.RGB {
	v := vmath.Vec3F{X: float64(c.R), Y: float64(c.G), Z: float64(c.B)}
	gray := vmath.V3FDot(v, vmath.Vec3F{X: 0.3, Y: 0.59, Z: 0.11})
	out := vmath.V3FLerp(v, vmath.Vec3F{X: gray, Y: gray, Z: gray}, severity)
	return terminal.RGB{R: vmath.ToByte(out.X), G: vmath.ToByte(out.Y), B: vmath.ToByte(out.Z)}
}

// Simulation is a configured deficiency applied to colors before output
type Simulation struct {
	Deficiency Deficiency
	Severity   float64
}

// Enabled reports whether Apply changes anything
func (s Simulation) Enabled() bool {
	return s.Deficiency != None && s.Severity > 0
}

// Valid checks both fields
func (s Simulation) Valid() error {
	if err := checkSeverity(s.Severity); err != nil {
		return err
	}
	if s.Deficiency > Monochromacy {
		return fmt.Errorf("%w: %v", ErrUnknownDeficiency, s.Deficiency)
	}
	return nil
}

func (s Simulation) Apply(c color.Color) (color.Color, error) {
	return Simulate(c, s.Deficiency, s.Severity)
}

func (s Simulation) String() string {
	if !s.Enabled() {
		return "none"
	}
	return fmt.Sprintf("%v@%.2f", s.Deficiency, s.Severity)
}
