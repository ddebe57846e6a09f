// Package console tracks the foreground and background escape sequences last written to the
// terminal so redundant color changes are never retransmitted.
//
// State is not safe for concurrent use. The screen compositor serialises access; other
// callers must own a State from a single goroutine.
package console

import (
	"io"

	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vision"
)

// Layer selects the foreground or background slot
type Layer uint8

const (
	Fg Layer = iota
	Bg
)

// State caches the last color sequences actually written to w
type State struct {
	w    io.Writer
	mode terminal.ColorMode

	// Last sequence flushed per slot, "" when unknown
	fg string
	bg string

	paintBackground bool
	sim             vision.Simulation

	writes int
}

// Option configures a State
type Option func(*State)

// WithPaintBackground sets whether background colors are emitted, default true
func WithPaintBackground(on bool) Option {
	return func(s *State) { s.paintBackground = on }
}

// WithSimulation applies a deficiency simulation to every color before output.
// Invalid simulations are ignored; use SetSimulation to observe the error.
func WithSimulation(sim vision.Simulation) Option {
	return func(s *State) {
		if sim.Valid() == nil {
			s.sim = sim
		}
	}
}

// WithColorMode downgrades colors to what the terminal can display, default true color
func WithColorMode(mode terminal.ColorMode) Option {
	return func(s *State) { s.mode = mode }
}

// New creates a State writing to w
func New(w io.Writer, opts ...Option) *State {
	s := &State{
		w:               w,
		mode:            terminal.ColorModeTrueColor,
		paintBackground: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write is the single output path. The text is scanned for SGR color changes
// and the cache slots follow whatever the text leaves the terminal in.
// Nothing is cached when the underlying write fails.
func (s *State) Write(text string) error {
	if text == "" {
		return nil
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		return err
	}
	s.writes++

	st := terminal.ScanSGR(text)
	if st.FgSet {
		s.fg = st.Fg
	}
	if st.BgSet {
		s.bg = st.Bg
	}
	return nil
}

// SetForeground emits c as foreground unless it is already current
func (s *State) SetForeground(c color.Color) error {
	seq := s.Escape(c, Fg)
	if seq == s.fg {
		return nil
	}
	return s.Write(seq)
}

// SetBackground emits c as background unless it is already current.
// With background painting disabled the default background is emitted instead, unless force.
func (s *State) SetBackground(c color.Color, force bool) error {
	var seq string
	if !s.paintBackground && !force {
		seq = terminal.SeqDefaultBg
	} else {
		seq = s.Escape(c, Bg)
	}
	if seq == s.bg {
		return nil
	}
	return s.Write(seq)
}

// ResetColors returns both slots to the terminal defaults
func (s *State) ResetColors() error {
	if s.fg == terminal.SeqDefaultFg && s.bg == terminal.SeqDefaultBg {
		return nil
	}
	return s.Write(terminal.SeqReset)
}

// Escape returns the sequence that would select c on layer after simulation and mode
// downgrade, without writing it. The background gate is not applied.
func (s *State) Escape(c color.Color, layer Layer) string {
	c = s.prepare(c)
	if layer == Bg {
		return c.Background()
	}
	return c.Foreground()
}

// BackgroundEscape is Escape for the background layer with the painting gate applied
func (s *State) BackgroundEscape(c color.Color) string {
	if !s.paintBackground {
		return terminal.SeqDefaultBg
	}
	return s.Escape(c, Bg)
}

func (s *State) prepare(c color.Color) color.Color {
	if s.sim.Enabled() {
		if sim, err := s.sim.Apply(c); err == nil {
			c = sim
		}
	}
	return c.ForMode(s.mode)
}

// Foreground returns the cached foreground sequence, "" before the first write
func (s *State) Foreground() string { return s.fg }

// Background returns the cached background sequence, "" before the first write
func (s *State) Background() string { return s.bg }

// Invalidate forgets both slots, forcing the next Set calls to write.
// Use after output bypassed Write.
func (s *State) Invalidate() {
	s.fg, s.bg = "", ""
}

// Writes returns the number of successful writes issued
func (s *State) Writes() int { return s.writes }

func (s *State) PaintBackground() bool { return s.paintBackground }

// SetPaintBackground toggles the background gate. The cache is kept; the next
// SetBackground resolves against the new gate.
func (s *State) SetPaintBackground(on bool) {
	s.paintBackground = on
}

// SetSimulation validates and installs sim; the zero Simulation disables it
func (s *State) SetSimulation(sim vision.Simulation) error {
	if err := sim.Valid(); err != nil {
		return err
	}
	s.sim = sim
	return nil
}

func (s *State) Simulation() vision.Simulation { return s.sim }

func (s *State) ColorMode() terminal.ColorMode { return s.mode }

// SetColorMode changes the output downgrade target
func (s *State) SetColorMode(mode terminal.ColorMode) {
	s.mode = mode
}
