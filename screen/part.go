package screen

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/termcore/terminal"
)

// Producer returns fresh text on every render pass
type Producer func() (string, error)

// Segment is either static text or a producer
type Segment struct {
	Text    string
	Produce Producer
}

// Text returns a static segment
func Text(s string) Segment { return Segment{Text: s} }

// Dynamic returns a producer segment
func Dynamic(p Producer) Segment { return Segment{Produce: p} }

// At returns a cursor positioning segment, 0-based
func At(x, y int) Segment { return Segment{Text: terminal.CursorPos(x, y)} }

// Clear returns an erase-display-and-home segment
func Clear() Segment { return Segment{Text: terminal.SeqClear} }

// Part is a named unit of screen output. Parts are additive: nothing is erased
// between parts unless a part's own text carries an erase sequence.
type Part struct {
	// Order overrides paint order; ties fall back to insertion order
	Order    int
	Segments []Segment
}

// NewPart creates a part from segments in paint order
func NewPart(segs ...Segment) *Part {
	return &Part{Segments: segs}
}

// StaticPart is a part holding one fixed text
func StaticPart(text string) *Part {
	return NewPart(Text(text))
}

// Add appends segments
func (p *Part) Add(segs ...Segment) *Part {
	p.Segments = append(p.Segments, segs...)
	return p
}

// WithOrder sets the paint order
func (p *Part) WithOrder(order int) *Part {
	p.Order = order
	return p
}

// segmentFailure is a producer that failed or panicked during one pass
type segmentFailure struct {
	index int
	err   error
}

// render appends the part text to b. A failing producer contributes nothing;
// the remaining segments still render.
func (p *Part) render(b *strings.Builder) []segmentFailure {
	var failures []segmentFailure
	for i, seg := range p.Segments {
		if seg.Produce == nil {
			b.WriteString(seg.Text)
			continue
		}
		text, err := produce(seg.Produce)
		if err != nil {
			failures = append(failures, segmentFailure{index: i, err: err})
			continue
		}
		b.WriteString(text)
	}
	return failures
}

// produce runs f, converting a panic into an error
func produce(f Producer) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrProducerPanic, r)
		}
	}()
	return f()
}
