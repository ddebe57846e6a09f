package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termcore/colorspace"
	"github.com/lixenwraith/termcore/terminal"
)

var (
	// ErrInvalidSpecifier covers unrecognised syntax, wrong component count and non-numeric components
	ErrInvalidSpecifier = errors.New("invalid color specifier")
	// ErrInvalidComponentRange is returned for numeric components outside their space's range
	ErrInvalidComponentRange = errors.New("color component out of range")
)

// ParseError reports the specifier that failed and why
type ParseError struct {
	Spec string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse color %q: %v", e.Spec, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// spaceParser builds an auxiliary-space value from its components
type spaceParser struct {
	components int
	build      func(v []float64) colorspace.Value
}

var spaceParsers = map[string]spaceParser{
	"ryb":  {3, func(v []float64) colorspace.Value { return colorspace.RYB{R: v[0], Y: v[1], B: v[2]} }},
	"cmy":  {3, func(v []float64) colorspace.Value { return colorspace.CMY{C: v[0], M: v[1], Y: v[2]} }},
	"cmyk": {4, func(v []float64) colorspace.Value { return colorspace.CMYK{C: v[0], M: v[1], Y: v[2], K: v[3]} }},
	"hsl":  {3, func(v []float64) colorspace.Value { return colorspace.HSL{H: v[0], S: v[1], L: v[2]} }},
	"hsv":  {3, func(v []float64) colorspace.Value { return colorspace.HSV{H: v[0], S: v[1], V: v[2]} }},
	"yiq":  {3, func(v []float64) colorspace.Value { return colorspace.YIQ{Y: v[0], I: v[1], Q: v[2]} }},
	"yuv":  {3, func(v []float64) colorspace.Value { return colorspace.YUV{Y: v[0], U: v[1], V: v[2]} }},
}

// Parse reads a color specifier:
//
//	#RRGGBB, #RGB                    true color
//	R;G;B, rgb:R;G;B                 true color, integers 0-255
//	ryb|cmy|hsl|hsv|yiq|yuv:a;b;c    true color through the named space
//	cmyk:c;m;y;k                     true color through CMYK
//	N                                256-palette index 0-255
//	red, bright-blue, grey, ansi:N   16-color slot
//
// Out-of-range components are rejected, never clamped.
func Parse(spec string) (Color, error) {
	c, err := parse(strings.TrimSpace(spec))
	if err != nil {
		return Color{}, &ParseError{Spec: spec, Err: err}
	}
	return c, nil
}

// MustParse panics on error, for literal tables
func MustParse(spec string) Color {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func parse(s string) (Color, error) {
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty", ErrInvalidSpecifier)
	}

	if s[0] == '#' {
		return parseHex(s)
	}

	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		switch prefix {
		case "rgb":
			return parseTriple(rest)
		case "ansi":
			return parseANSI(rest)
		}
		p, known := spaceParsers[prefix]
		if !known {
			return Color{}, fmt.Errorf("%w: unknown space %q", ErrInvalidSpecifier, prefix)
		}
		return parseSpace(prefix, p, rest)
	}

	if strings.Contains(s, ";") {
		return parseTriple(s)
	}

	if isInteger(s) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("%w: palette index %s not in [0,255]", ErrInvalidComponentRange, s)
		}
		return FromIndex256(uint8(n)), nil
	}

	if b, ok := terminal.LookupBasic16(s); ok {
		return FromBasic(b), nil
	}
	return Color{}, fmt.Errorf("%w: unrecognised %q", ErrInvalidSpecifier, s)
}

func parseHex(s string) (Color, error) {
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: hex needs 3 or 6 digits", ErrInvalidSpecifier)
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Color{}, fmt.Errorf("%w: bad hex digit %q", ErrInvalidSpecifier, s[i])
		}
	}
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	cf, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidSpecifier, err)
	}
	r, g, b := cf.RGB255()
	return FromRGB(r, g, b), nil
}

// parseTriple reads R;G;B integers
func parseTriple(s string) (Color, error) {
	parts := splitComponents(s)
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: rgb needs 3 components, got %d", ErrInvalidSpecifier, len(parts))
	}
	var ch [3]uint8
	for i, p := range parts {
		if !isInteger(p) {
			return Color{}, fmt.Errorf("%w: rgb component %q is not an integer", ErrInvalidSpecifier, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("%w: rgb component %s not in [0,255]", ErrInvalidComponentRange, p)
		}
		ch[i] = uint8(n)
	}
	return FromRGB(ch[0], ch[1], ch[2]), nil
}

// parseANSI reads a 16-color slot number
func parseANSI(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !isInteger(s) {
		return Color{}, fmt.Errorf("%w: ansi slot %q is not an integer", ErrInvalidSpecifier, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 15 {
		return Color{}, fmt.Errorf("%w: ansi slot %s not in [0,15]", ErrInvalidComponentRange, s)
	}
	return FromBasic(terminal.Basic16(n)), nil
}

func parseSpace(name string, p spaceParser, s string) (Color, error) {
	parts := splitComponents(s)
	if len(parts) != p.components {
		return Color{}, fmt.Errorf("%w: %s needs %d components, got %d", ErrInvalidSpecifier, name, p.components, len(parts))
	}
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %s component %q is not a number", ErrInvalidSpecifier, name, part)
		}
		vals[i] = v
	}

	value := p.build(vals)
	if err := value.Valid(); err != nil {
		return Color{}, fmt.Errorf("%w: %w", ErrInvalidComponentRange, err)
	}
	return FromTerminal(value.RGB()), nil
}

func splitComponents(s string) []string {
	parts := strings.Split(s, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// isInteger accepts an optional leading minus followed by decimal digits
func isInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
