// Package theme maps semantic UI roles to colors.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vision"
)

var (
	ErrUnknownRole  = errors.New("unknown theme role")
	ErrUnknownTheme = errors.New("unknown theme")
)

// Role is a semantic color slot resolved by widgets before output
type Role uint8

const (
	Background Role = iota
	Foreground
	Separator
	Neutral
	Accent
	Highlight
	Warning
	Error

	roleCount
)

var roleNames = [roleCount]string{
	"background", "foreground", "separator", "neutral",
	"accent", "highlight", "warning", "error",
}

func (r Role) String() string {
	if r >= roleCount {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roleNames[r]
}

// Roles lists every role in declaration order
func Roles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// ParseRole resolves a role name, case-insensitive
func ParseRole(name string) (Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, rn := range roleNames {
		if rn == n {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// Theme is an immutable role table
type Theme struct {
	name   string
	colors [roleCount]color.Color
}

func (t *Theme) Name() string { return t.name }

// Color returns the color for r; unknown roles resolve to the foreground
func (t *Theme) Color(r Role) color.Color {
	if r >= roleCount {
		return t.colors[Foreground]
	}
	return t.colors[r]
}

// With returns a copy with r set to c
func (t *Theme) With(r Role, c color.Color) *Theme {
	nt := *t
	if r < roleCount {
		nt.colors[r] = c
	}
	return &nt
}

// ForMode returns a copy with every color downgraded for mode
func (t *Theme) ForMode(mode terminal.ColorMode) *Theme {
	nt := *t
	for i, c := range nt.colors {
		nt.colors[i] = c.ForMode(mode)
	}
	return &nt
}

// Simulated returns a copy as perceived under sim
func (t *Theme) Simulated(sim vision.Simulation) (*Theme, error) {
	nt := *t
	for i, c := range nt.colors {
		sc, err := sim.Apply(c)
		if err != nil {
			return nil, err
		}
		nt.colors[i] = sc
	}
	return &nt, nil
}

// Override returns a copy with roles replaced from name -> specifier pairs
func (t *Theme) Override(specs map[string]string) (*Theme, error) {
	nt := *t
	// Sorted for a deterministic first error
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		r, err := ParseRole(k)
		if err != nil {
			return nil, err
		}
		c, err := color.Parse(specs[k])
		if err != nil {
			return nil, fmt.Errorf("theme %s role %s: %w", t.name, k, err)
		}
		nt.colors[r] = c
	}
	return &nt, nil
}

func build(name string, specs [roleCount]string) *Theme {
	t := &Theme{name: name}
	for i, s := range specs {
		t.colors[i] = color.MustParse(s)
	}
	return t
}

var builtins = map[string]*Theme{
	"dark": build("dark", [roleCount]string{
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Separator:  "#3b4261",
		Neutral:    "#787c99",
		Accent:     "#7aa2f7",
		Highlight:  "#e0af68",
		Warning:    "#ff9e64",
		Error:      "#f7768e",
	}),
	"light": build("light", [roleCount]string{
		Background: "#f5f5f5",
		Foreground: "#1e1e1e",
		Separator:  "#c8c8c8",
		Neutral:    "#6e6e6e",
		Accent:     "#0059b3",
		Highlight:  "#b35900",
		Warning:    "#cc7a00",
		Error:      "#c4001a",
	}),
	"ansi": build("ansi", [roleCount]string{
		Background: "black",
		Foreground: "white",
		Separator:  "bright-black",
		Neutral:    "white",
		Accent:     "bright-blue",
		Highlight:  "bright-yellow",
		Warning:    "yellow",
		Error:      "bright-red",
	}),
}

// Default returns the dark theme
func Default() *Theme { return builtins["dark"] }

// Builtin returns a named built-in theme
func Builtin(name string) (*Theme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Default(), nil
	}
	t, ok := builtins[n]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Names lists built-in themes, sorted
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
