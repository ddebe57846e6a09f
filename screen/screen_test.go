package screen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/console"
	"github.com/lixenwraith/termcore/terminal"
)

type recorder struct {
	buf   bytes.Buffer
	calls int
}

func (r *recorder) Write(p []byte) (int, error) {
	r.calls++
	return r.buf.Write(p)
}

func newTestCompositor(opts Options) (*Compositor, *recorder) {
	rec := &recorder{}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	opts.SizeFunc = func() (int, int) { return 100, 40 }
	return New(console.New(rec), opts), rec
}

func TestPartOrdering(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	s := NewScreen("main")
	s.AddPart("C", StaticPart("c").WithOrder(2))
	s.AddPart("A", StaticPart("a").WithOrder(0))
	s.AddPart("B", StaticPart("b").WithOrder(1))
	c.Push(s)

	if err := c.Render(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec.buf.String() != "abc" {
		t.Errorf("Expected abc, got %q", rec.buf.String())
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Expected paint order A,B,C, got %v", got)
	}
}

func TestScreenPartLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Screen)
		want  []string
	}{
		{
			name:  "Ties keep insertion order",
			setup: func(s *Screen) {},
			want:  []string{"one", "two", "three"},
		},
		{
			name: "Replace keeps slot",
			setup: func(s *Screen) {
				s.AddPart("one", StaticPart("1!"))
			},
			want: []string{"one", "two", "three"},
		},
		{
			name: "SetOrder moves without reinsertion",
			setup: func(s *Screen) {
				s.SetOrder("one", 5)
			},
			want: []string{"two", "three", "one"},
		},
		{
			name: "Remove is idempotent",
			setup: func(s *Screen) {
				s.RemovePart("two")
				s.RemovePart("two")
				s.RemovePart("missing")
			},
			want: []string{"one", "three"},
		},
		{
			name: "Remove all",
			setup: func(s *Screen) {
				s.RemoveAllParts()
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen("lifecycle")
			s.AddPart("one", StaticPart("1"))
			s.AddPart("two", StaticPart("2"))
			s.AddPart("three", StaticPart("3"))
			tt.setup(s)
			if got := s.Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReplaceContent(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	s := NewScreen("main")
	s.AddPart("a", StaticPart("a"))
	s.AddPart("b", StaticPart("b"))
	s.AddPart("a", StaticPart("x"))
	c.Push(s)
	c.Render()
	if rec.buf.String() != "xb" {
		t.Errorf("Expected replaced part in original slot, got %q", rec.buf.String())
	}
	if s.SetOrder("missing", 1) {
		t.Error("Expected SetOrder on missing part to report false")
	}
}

var errBroken = errors.New("broken producer")

func TestPartIsolation(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	s := NewScreen("main")
	s.AddPart("head", StaticPart("[head]"))
	s.AddPart("bad", NewPart(
		Text("<"),
		Dynamic(func() (string, error) { return "lost", errBroken }),
		Text(">"),
	))
	s.AddPart("panicky", NewPart(Dynamic(func() (string, error) { panic("boom") })))
	s.AddPart("tail", StaticPart("[tail]"))
	c.Push(s)

	err := c.Render()
	if rec.buf.String() != "[head]<>[tail]" {
		t.Errorf("Expected failures to render empty, got %q", rec.buf.String())
	}
	if rec.calls != 1 {
		t.Errorf("Expected exactly one write, got %d", rec.calls)
	}
	if !errors.Is(err, ErrRenderPartFailure) {
		t.Fatalf("Expected ErrRenderPartFailure, got %v", err)
	}
	if !errors.Is(err, errBroken) || !errors.Is(err, ErrProducerPanic) {
		t.Errorf("Expected producer errors in chain, got %v", err)
	}

	var pe *PartError
	if !errors.As(err, &pe) || pe.Part != "bad" || pe.Segment != 1 || pe.ScreenID != s.ID() {
		t.Errorf("Unexpected part error %+v", pe)
	}
}

func TestProducersEvaluatedEachPass(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	n := 0
	s := NewScreen("counter")
	s.AddPart("n", NewPart(Dynamic(func() (string, error) {
		n++
		return string(rune('0' + n)), nil
	})))
	c.Push(s)
	c.Render()
	c.Render()
	if rec.buf.String() != "12" || rec.calls != 2 {
		t.Errorf("Expected fresh output per pass, got %q in %d writes", rec.buf.String(), rec.calls)
	}
}

func TestRenderWithoutScreen(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	if err := c.Render(); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("Expected no write, got %d", rec.calls)
	}
}

func TestScreenStack(t *testing.T) {
	c, _ := newTestCompositor(Options{})
	if c.Current() != nil {
		t.Fatal("Expected empty stack")
	}

	base := NewScreen("base")
	modal := NewScreen("modal")
	c.Push(base)
	c.Push(modal)
	if c.Current() != modal || c.Depth() != 2 {
		t.Fatalf("Expected modal on top of 2, got %v depth %d", c.Current(), c.Depth())
	}

	popped, err := c.Pop()
	if err != nil || popped != modal {
		t.Fatalf("Expected modal popped, got %v %v", popped, err)
	}
	if c.Current() != base {
		t.Errorf("Expected base restored")
	}

	c.Pop()
	if _, err := c.Pop(); !errors.Is(err, ErrNoActiveScreen) {
		t.Errorf("Expected ErrNoActiveScreen, got %v", err)
	}
	if base.ID() == modal.ID() {
		t.Error("Expected distinct screen IDs")
	}
}

func TestDraw(t *testing.T) {
	t.Run("Plain mode writes immediately", func(t *testing.T) {
		c, rec := newTestCompositor(Options{})
		if err := c.Draw("msg", StaticPart("hello")); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if rec.buf.String() != "hello" || rec.calls != 1 {
			t.Errorf("Expected direct write, got %q in %d", rec.buf.String(), rec.calls)
		}
	})

	t.Run("Screen mode buffers", func(t *testing.T) {
		c, rec := newTestCompositor(Options{})
		s := NewScreen("main")
		c.Push(s)
		c.Draw("msg", StaticPart("hello"))
		if rec.calls != 0 {
			t.Fatalf("Expected no write before Render, got %d", rec.calls)
		}
		if _, ok := s.Part("msg"); !ok {
			t.Fatal("Expected part on current screen")
		}
		c.Render()
		if rec.buf.String() != "hello" {
			t.Errorf("Expected buffered text, got %q", rec.buf.String())
		}
	})

	t.Run("Plain mode reports producer failure", func(t *testing.T) {
		c, rec := newTestCompositor(Options{})
		err := c.Draw("x", NewPart(Text("ok"), Dynamic(func() (string, error) { return "", errBroken })))
		if !errors.Is(err, errBroken) || rec.buf.String() != "ok" {
			t.Errorf("Expected partial write and error, got %q %v", rec.buf.String(), err)
		}
	})
}

func TestSkipUnchanged(t *testing.T) {
	c, rec := newTestCompositor(Options{SkipUnchanged: true})
	s := NewScreen("main")
	s.AddPart("a", StaticPart("same"))
	c.Push(s)

	c.Render()
	c.Render()
	if rec.calls != 1 {
		t.Errorf("Expected identical frame skipped, got %d writes", rec.calls)
	}
	c.Invalidate()
	c.Render()
	if rec.calls != 2 {
		t.Errorf("Expected write after Invalidate, got %d", rec.calls)
	}
}

func TestColoredSegments(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	red := color.FromRGB(255, 0, 0)
	s := NewScreen("main")
	s.AddPart("label", NewPart(c.ColoredOn(red, color.Black, "x")))
	c.Push(s)
	c.Render()

	want := red.Foreground() + color.Black.Background() + "x"
	if rec.buf.String() != want {
		t.Errorf("Expected %q, got %q", want, rec.buf.String())
	}
	if c.State().Foreground() != red.Foreground() {
		t.Errorf("Expected console cache to follow frame, got %q", c.State().Foreground())
	}

	// Cache follows the frame, so the explicit set is suppressed
	c.State().SetForeground(red)
	if rec.calls != 1 {
		t.Errorf("Expected no extra write, got %d", rec.calls)
	}
}

// scriptedKeys replays events then reports io.EOF
type scriptedKeys struct {
	events []*tcell.EventKey
}

func (k *scriptedKeys) NextKey(ctx context.Context) (*tcell.EventKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(k.events) == 0 {
		return nil, io.EOF
	}
	ev := k.events[0]
	k.events = k.events[1:]
	return ev, nil
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestRun(t *testing.T) {
	errHandler := errors.New("handler failed")

	tests := []struct {
		name       string
		events     []*tcell.EventKey
		handler    Handler
		wantErr    error
		wantSeen   int
		wantFrames int
	}{
		{
			name:       "Escape exits",
			events:     []*tcell.EventKey{runeKey('a'), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), runeKey('b')},
			wantSeen:   1,
			wantFrames: 2,
		},
		{
			name:       "Ctrl+C exits",
			events:     []*tcell.EventKey{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
			wantSeen:   0,
			wantFrames: 1,
		},
		{
			name:   "Handler bails",
			events: []*tcell.EventKey{runeKey('a'), runeKey('q'), runeKey('z')},
			handler: func(ev *tcell.EventKey) (bool, error) {
				return ev.Rune() == 'q', nil
			},
			wantSeen:   2,
			wantFrames: 2,
		},
		{
			name:   "Handler error stops",
			events: []*tcell.EventKey{runeKey('a')},
			handler: func(ev *tcell.EventKey) (bool, error) {
				return false, errHandler
			},
			wantErr:    errHandler,
			wantSeen:   1,
			wantFrames: 1,
		},
		{
			name:       "Key source error",
			events:     []*tcell.EventKey{runeKey('a')},
			wantErr:    io.EOF,
			wantSeen:   1,
			wantFrames: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestCompositor(Options{})
			s := NewScreen("loop")
			s.AddPart("frame", StaticPart("."))
			c.Push(s)

			seen := 0
			handler := func(ev *tcell.EventKey) (bool, error) {
				seen++
				if tt.handler != nil {
					return tt.handler(ev)
				}
				return false, nil
			}

			err := c.Run(context.Background(), &scriptedKeys{events: tt.events}, handler)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if seen != tt.wantSeen {
				t.Errorf("Expected handler called %d times, got %d", tt.wantSeen, seen)
			}
			if rec.calls != tt.wantFrames {
				t.Errorf("Expected %d frames, got %d", tt.wantFrames, rec.calls)
			}
		})
	}
}

func TestRunCustomExitKeys(t *testing.T) {
	c, _ := newTestCompositor(Options{ExitKeys: []tcell.Key{tcell.KeyF10}})
	keys := &scriptedKeys{events: []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF10, 0, tcell.ModNone),
	}}
	seen := 0
	err := c.Run(context.Background(), keys, func(ev *tcell.EventKey) (bool, error) {
		seen++
		return false, nil
	})
	if err != nil || seen != 1 {
		t.Errorf("Expected Escape handled and F10 to exit, got seen=%d err=%v", seen, err)
	}
}

func TestRunCancelled(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	c.Push(NewScreen("loop"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, &scriptedKeys{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("Expected no frame after cancellation, got %d", rec.calls)
	}
}

func TestSize(t *testing.T) {
	c, _ := newTestCompositor(Options{})
	if w, h := c.Size(); w != 100 || h != 40 {
		t.Errorf("Expected injected size 100x40, got %dx%d", w, h)
	}
}

func TestRunExitsOnDecodedCtrlC(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	s := NewScreen("loop")
	s.AddPart("frame", StaticPart("."))
	c.Push(s)

	events, _ := terminal.DecodeKeys([]byte{'a', 0x03})
	seen := 0
	err := c.Run(context.Background(), &scriptedKeys{events: events}, func(ev *tcell.EventKey) (bool, error) {
		seen++
		return false, nil
	})
	if err != nil {
		t.Fatalf("Expected raw 0x03 to exit cleanly, got %v", err)
	}
	if seen != 1 || rec.calls != 2 {
		t.Errorf("Expected 1 handled key and 2 frames, got seen=%d frames=%d", seen, rec.calls)
	}
}

func TestProducerMayReadScreenAndStack(t *testing.T) {
	c, rec := newTestCompositor(Options{})
	s := NewScreen("reader")
	s.AddPart("info", NewPart(Dynamic(func() (string, error) {
		_, ok := s.Part("info")
		if !ok || s.Len() != 1 || len(s.Names()) != 1 || c.Depth() != 1 || c.Current() != s {
			return "", errors.New("unexpected view from producer")
		}
		return "ok", nil
	})))
	c.Push(s)

	done := make(chan error, 1)
	go func() { done <- c.Render() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Unexpected render error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Render blocked while a producer read the screen")
	}
	if rec.buf.String() != "ok" {
		t.Errorf("Expected frame \"ok\", got %q", rec.buf.String())
	}
}

func TestSetOrderKeepsSharedPart(t *testing.T) {
	shared := StaticPart("m").WithOrder(3)

	a := NewScreen("a")
	a.AddPart("modal", shared)
	a.AddPart("base", StaticPart("b").WithOrder(1))
	if !a.SetOrder("modal", 0) {
		t.Fatal("Expected SetOrder to find modal")
	}
	if shared.Order != 3 {
		t.Errorf("Expected shared part order untouched, got %d", shared.Order)
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"modal", "base"}) {
		t.Errorf("Expected modal first on a, got %v", got)
	}

	b := NewScreen("b")
	b.AddPart("base", StaticPart("b").WithOrder(1))
	b.AddPart("modal", shared)
	if got := b.Names(); !reflect.DeepEqual(got, []string{"base", "modal"}) {
		t.Errorf("Expected modal after base on b, got %v", got)
	}
}
