package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/console"
	"github.com/lixenwraith/termcore/screen"
	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/theme"
	"github.com/lixenwraith/termcore/vision"
)

const (
	labelWidth  = 6
	swatchWidth = 24
	reportX     = 44
	themeY      = 13
)

// inspector is the palette session; producers read it at render time while the config
// watcher may swap the theme from another goroutine
type inspector struct {
	mu       sync.Mutex
	specs    []string
	colors   []color.Color
	cur      int
	theme    *theme.Theme
	severity float64
}

func newInspector(specs []string, th *theme.Theme, severity float64) (*inspector, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no colors to inspect")
	}
	in := &inspector{theme: th, severity: severity}
	for _, s := range specs {
		c, err := color.Parse(s)
		if err != nil {
			return nil, err
		}
		in.specs = append(in.specs, s)
		in.colors = append(in.colors, c)
	}
	return in, nil
}

// step moves the selection by delta, wrapping
func (in *inspector) step(delta int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	n := len(in.colors)
	in.cur = ((in.cur+delta)%n + n) % n
}

func (in *inspector) setTheme(th *theme.Theme) {
	in.mu.Lock()
	in.theme = th
	in.mu.Unlock()
}

func (in *inspector) adjustSeverity(delta float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.severity = min(1, max(0, in.severity+delta))
}

type selection struct {
	index    int
	count    int
	spec     string
	color    color.Color
	theme    *theme.Theme
	severity float64
}

func (in *inspector) snapshot() selection {
	in.mu.Lock()
	defer in.mu.Unlock()
	return selection{
		index:    in.cur,
		count:    len(in.colors),
		spec:     in.specs[in.cur],
		color:    in.colors[in.cur],
		theme:    in.theme,
		severity: in.severity,
	}
}

// swatch paints text on c with a readable foreground, then resets
func swatch(st *console.State, c color.Color, text string, width int) string {
	return st.Escape(c.Readable(), console.Fg) + st.BackgroundEscape(c) + screen.Pad(text, width) + terminal.SeqReset
}

func label(name string) string {
	return screen.Pad(name, labelWidth)
}

// spaceLines lists c in every supported color space
func spaceLines(st *console.State, spec string, c color.Color) []string {
	set := c.Spaces()
	r, g, b := c.RGB()
	return []string{
		swatch(st, c, " "+spec, swatchWidth),
		label("hex") + c.Hex(),
		label("rgb") + fmt.Sprintf("%d;%d;%d", r, g, b),
		label("ryb") + set.RYB.String(),
		label("cmy") + set.CMY.String(),
		label("cmyk") + set.CMYK.String(),
		label("hsl") + set.HSL.String(),
		label("hsv") + set.HSV.String(),
		label("yiq") + set.YIQ.String(),
		label("yuv") + set.YUV.String(),
	}
}

// reportLines shows c as seen under each deficiency
func reportLines(st *console.State, c color.Color, severity float64) ([]string, error) {
	rows, err := vision.Report(c, severity)
	if err != nil {
		return nil, err
	}
	lines := []string{fmt.Sprintf("vision @ %.2f", severity)}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s %s  rev %3.0f°",
			screen.Pad(row.Deficiency.String(), 13),
			swatch(st, row.Color, "", 4),
			screen.Pad(row.HSL.String(), 22),
			row.ReverseHue,
		))
	}
	return lines, nil
}

// themeLines shows every role of th as a swatch
func themeLines(st *console.State, th *theme.Theme) []string {
	lines := []string{"theme " + th.Name()}
	var b strings.Builder
	for i, r := range theme.Roles() {
		if i > 0 && i%4 == 0 {
			lines = append(lines, b.String())
			b.Reset()
		}
		b.WriteString(swatch(st, th.Color(r), " "+r.String(), 12))
		b.WriteByte(' ')
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}

func statusLine(st *console.State, sel selection) string {
	return fmt.Sprintf("[%d/%d] mode %s  sim %s  bg %t  writes %d",
		sel.index+1, sel.count, st.ColorMode(), st.Simulation(), st.PaintBackground(), st.Writes())
}

// placed positions each line absolutely, raw mode output has no newline translation
func placed(x, y int, lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		b.WriteString(terminal.CursorPos(x, y+i))
		b.WriteString(l)
	}
	return b.String()
}

// buildScreen lays out the interactive inspector
func buildScreen(comp *screen.Compositor, in *inspector) *screen.Screen {
	st := comp.State()
	s := screen.NewScreen("palette")

	s.AddPart("header", screen.NewPart(
		screen.Clear(),
		screen.Dynamic(func() (string, error) {
			th := in.snapshot().theme
			title := st.Escape(th.Color(theme.Accent), console.Fg) + "termcore palette" + terminal.SeqReset
			help := "  ←/→ color  s sim  +/- severity  b background  m mode  q quit"
			return placed(0, 0, []string{title + help}), nil
		}),
	))

	s.AddPart("spaces", screen.NewPart(screen.Dynamic(func() (string, error) {
		sel := in.snapshot()
		return placed(0, 2, spaceLines(st, sel.spec, sel.color)), nil
	})).WithOrder(1))

	s.AddPart("vision", screen.NewPart(screen.Dynamic(func() (string, error) {
		sel := in.snapshot()
		lines, err := reportLines(st, sel.color, sel.severity)
		if err != nil {
			return "", err
		}
		return placed(reportX, 2, lines), nil
	})).WithOrder(2))

	s.AddPart("theme", screen.NewPart(screen.Dynamic(func() (string, error) {
		return placed(0, themeY, themeLines(st, in.snapshot().theme)), nil
	})).WithOrder(3))

	s.AddPart("status", screen.NewPart(screen.Dynamic(func() (string, error) {
		_, h := comp.Size()
		line := statusLine(st, in.snapshot())
		return terminal.CursorPos(0, h-1) + terminal.SeqEraseLine + line, nil
	})).WithOrder(4))

	return s
}

// plainPart formats one color for line-oriented output
func plainPart(st *console.State, spec string, c color.Color, severity float64) *screen.Part {
	return screen.NewPart(screen.Dynamic(func() (string, error) {
		lines := spaceLines(st, spec, c)
		report, err := reportLines(st, c, severity)
		if err != nil {
			return "", err
		}
		lines = append(lines, report...)
		return strings.Join(lines, "\n") + "\n\n", nil
	}))
}

var modeCycle = []terminal.ColorMode{terminal.ColorModeTrueColor, terminal.ColorMode256, terminal.ColorMode16}

func nextMode(m terminal.ColorMode) terminal.ColorMode {
	for i, mm := range modeCycle {
		if mm == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return terminal.ColorModeTrueColor
}

// nextSimulation cycles none, then each deficiency
func nextSimulation(cur vision.Simulation, severity float64) vision.Simulation {
	order := append([]vision.Deficiency{vision.None}, vision.Deficiencies...)
	for i, d := range order {
		if d == cur.Deficiency {
			return vision.Simulation{Deficiency: order[(i+1)%len(order)], Severity: severity}
		}
	}
	return vision.Simulation{Severity: severity}
}
