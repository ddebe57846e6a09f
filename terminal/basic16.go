package terminal

import (
	"strings"
	"unicode"
)

// Basic16 names the legacy ANSI palette slots in SGR order.
// Values 8-15 are the bright variants (SGR 90-97 / 100-107).
type Basic16 uint8

const (
	Black Basic16 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var basic16Names = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// String returns the canonical lower-case name
func (b Basic16) String() string {
	if b > BrightWhite {
		return "invalid"
	}
	return basic16Names[b]
}

// RGB returns the xterm value of the slot
func (b Basic16) RGB() RGB {
	return palette[b&0x0f]
}

// Bright reports whether the slot is one of the high-intensity variants
func (b Basic16) Bright() bool {
	return b >= BrightBlack
}

// basic16Aliases are accepted in addition to the canonical names
var basic16Aliases = map[string]Basic16{
	"gray":         BrightBlack,
	"grey":         BrightBlack,
	"dark-gray":    BrightBlack,
	"dark-grey":    BrightBlack,
	"light-gray":   White,
	"light-grey":   White,
	"silver":       White,
	"dark-red":     Red,
	"dark-green":   Green,
	"dark-yellow":  Yellow,
	"olive":        Yellow,
	"dark-blue":    Blue,
	"navy":         Blue,
	"dark-magenta": Magenta,
	"purple":       Magenta,
	"dark-cyan":    Cyan,
	"teal":         Cyan,
}

// basic16Lookup is keyed by folded name, see foldName
var basic16Lookup = func() map[string]Basic16 {
	m := make(map[string]Basic16, len(basic16Names)+len(basic16Aliases))
	for i, n := range basic16Names {
		m[foldName(n)] = Basic16(i)
	}
	for n, b := range basic16Aliases {
		m[foldName(n)] = b
	}
	return m
}()

// foldName lower-cases and drops '-', '_' and spaces so "Bright_Red" matches "bright-red"
func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// LookupBasic16 resolves a canonical name or alias, ignoring case and separators
func LookupBasic16(name string) (Basic16, bool) {
	b, ok := basic16Lookup[foldName(name)]
	return b, ok
}
