// Package screen composes named text parts into one terminal write per render pass.
//
// A Compositor owns the console color state and a stack of screens. The top of the stack
// is the current screen; with an empty stack output is written directly (plain mode).
package screen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/console"
	"github.com/lixenwraith/termcore/terminal"
)

// KeySource yields key events, terminal.KeyReader satisfies it
type KeySource interface {
	NextKey(ctx context.Context) (*tcell.EventKey, error)
}

// Handler reacts to one key; returning bail stops Run without error
type Handler func(ev *tcell.EventKey) (bail bool, err error)

// Options configures a Compositor; the zero value is usable
type Options struct {
	// SkipUnchanged suppresses a frame identical to the last one written for that screen
	SkipUnchanged bool
	// ExitKeys stop Run; default Escape and Ctrl+C
	ExitKeys []tcell.Key
	// Logger receives part failures; default log.Default()
	Logger *log.Logger
	// SizeFunc polls the window size; default terminal.Size
	SizeFunc func() (width, height int)
}

// DefaultExitKeys are used when Options.ExitKeys is empty
var DefaultExitKeys = []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC}

// Compositor serialises screen stack changes, render passes and console writes.
// Lock order is renderMu, then mu, then a Screen's own lock. Producers run holding only
// renderMu, so they may read the stack and screens but must not call Render or Draw.
type Compositor struct {
	// renderMu serialises passes, console writes and the per-screen last frame
	renderMu sync.Mutex
	// mu guards the stack
	mu     sync.Mutex
	state  *console.State
	stack  []*Screen
	opts   Options
	logger *log.Logger
}

// New creates a compositor writing through state
func New(state *console.State, opts Options) *Compositor {
	if len(opts.ExitKeys) == 0 {
		opts.ExitKeys = DefaultExitKeys
	}
	if opts.SizeFunc == nil {
		opts.SizeFunc = terminal.Size
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Compositor{
		state:  state,
		opts:   opts,
		logger: logger,
	}
}

// State returns the console state; callers outside Render must not use it concurrently
func (c *Compositor) State() *console.State { return c.state }

// Push makes s current; the previous screen is restored by Pop
func (c *Compositor) Push(s *Screen) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stack = append(c.stack, s)
	c.logger.Printf("screen: push %s (%s) depth=%d", s.name, s.id, len(c.stack))
}

// Pop removes the current screen and returns it
func (c *Compositor) Pop() (*Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return nil, ErrNoActiveScreen
	}
	s := c.stack[len(c.stack)-1]
	c.stack[len(c.stack)-1] = nil
	c.stack = c.stack[:len(c.stack)-1]
	c.logger.Printf("screen: pop %s (%s) depth=%d", s.name, s.id, len(c.stack))
	return s, nil
}

// Current returns the top screen, nil in plain mode
func (c *Compositor) Current() *Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

func (c *Compositor) current() *Screen {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Depth returns the stack size
func (c *Compositor) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stack)
}

// Render paints the current screen with one console write. Failed producers are logged
// and skipped; their errors are returned joined after the write. Without a current
// screen Render does nothing.
func (c *Compositor) Render() error {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	s := c.Current()
	if s == nil {
		return nil
	}

	frame, partErrs := s.compose()
	errs := make([]error, 0, len(partErrs)+1)
	for _, pe := range partErrs {
		c.logger.Printf("screen: %v", pe)
		errs = append(errs, pe)
	}

	if c.opts.SkipUnchanged && s.hasLast && s.lastFrame == frame {
		return errors.Join(errs...)
	}
	if err := c.state.Write(frame); err != nil {
		return fmt.Errorf("screen %s: write frame: %w", s.name, err)
	}
	s.lastFrame, s.hasLast = frame, true
	return errors.Join(errs...)
}

// Draw adds part to the current screen, or in plain mode writes it immediately
func (c *Compositor) Draw(name string, part *Part) error {
	if part == nil {
		return nil
	}
	if s := c.Current(); s != nil {
		s.AddPart(name, part)
		return nil
	}

	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	var b strings.Builder
	failures := part.render(&b)
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		pe := &PartError{Part: name, Segment: f.index, Err: f.err}
		c.logger.Printf("screen: plain: %v", pe)
		errs = append(errs, pe)
	}
	if err := c.state.Write(b.String()); err != nil {
		return fmt.Errorf("plain write %q: %w", name, err)
	}
	return errors.Join(errs...)
}

// Invalidate forces the next Render of every stacked screen to write
func (c *Compositor) Invalidate() {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.mu.Lock()
	stack := append([]*Screen(nil), c.stack...)
	c.mu.Unlock()
	for _, s := range stack {
		s.lastFrame, s.hasLast = "", false
	}
}

// Size polls the terminal window size
func (c *Compositor) Size() (width, height int) {
	return c.opts.SizeFunc()
}

// Colored returns a segment selecting fg before text, resolved through the console
// state at render time so simulation and color mode apply
func (c *Compositor) Colored(fg color.Color, text string) Segment {
	return Dynamic(func() (string, error) {
		return c.state.Escape(fg, console.Fg) + text, nil
	})
}

// ColoredOn is Colored with a background, subject to the background painting gate
func (c *Compositor) ColoredOn(fg, bg color.Color, text string) Segment {
	return Dynamic(func() (string, error) {
		return c.state.Escape(fg, console.Fg) + c.state.BackgroundEscape(bg) + text, nil
	})
}

// Run renders, then waits for a key, until an exit key, a bail from handler, an error,
// or ctx cancellation between frames. Part failures are logged and do not stop the loop.
func (c *Compositor) Run(ctx context.Context, keys KeySource, handler Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.Render(); err != nil && !errors.Is(err, ErrRenderPartFailure) {
			return err
		}

		ev, err := keys.NextKey(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("read key: %w", err)
		}
		if ev == nil {
			continue
		}
		if c.isExitKey(ev) {
			return nil
		}
		if handler == nil {
			continue
		}
		bail, err := handler(ev)
		if err != nil {
			return err
		}
		if bail {
			return nil
		}
	}
}

func (c *Compositor) isExitKey(ev *tcell.EventKey) bool {
	for _, k := range c.opts.ExitKeys {
		if ev.Key() == k {
			return true
		}
	}
	return false
}
