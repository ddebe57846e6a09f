package terminal

import (
	"context"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// escapeSequence maps the bytes after ESC [ or ESC O to a key
type escapeSequence struct {
	seq string
	key tcell.Key
	mod tcell.ModMask
}

// Known escape sequences (CSI sequences: ESC [ ...)
var csiSequences = []escapeSequence{
	// Arrow keys
	{"A", tcell.KeyUp, tcell.ModNone},
	{"B", tcell.KeyDown, tcell.ModNone},
	{"C", tcell.KeyRight, tcell.ModNone},
	{"D", tcell.KeyLeft, tcell.ModNone},
	{"Z", tcell.KeyBacktab, tcell.ModShift},

	// Arrow keys with modifiers (xterm style: ESC [ 1 ; mod X)
	{"1;2A", tcell.KeyUp, tcell.ModShift},
	{"1;2B", tcell.KeyDown, tcell.ModShift},
	{"1;2C", tcell.KeyRight, tcell.ModShift},
	{"1;2D", tcell.KeyLeft, tcell.ModShift},
	{"1;3A", tcell.KeyUp, tcell.ModAlt},
	{"1;3B", tcell.KeyDown, tcell.ModAlt},
	{"1;3C", tcell.KeyRight, tcell.ModAlt},
	{"1;3D", tcell.KeyLeft, tcell.ModAlt},
	{"1;5A", tcell.KeyUp, tcell.ModCtrl},
	{"1;5B", tcell.KeyDown, tcell.ModCtrl},
	{"1;5C", tcell.KeyRight, tcell.ModCtrl},
	{"1;5D", tcell.KeyLeft, tcell.ModCtrl},

	// Navigation
	{"H", tcell.KeyHome, tcell.ModNone},
	{"F", tcell.KeyEnd, tcell.ModNone},
	{"1~", tcell.KeyHome, tcell.ModNone},
	{"4~", tcell.KeyEnd, tcell.ModNone},
	{"5~", tcell.KeyPgUp, tcell.ModNone},
	{"6~", tcell.KeyPgDn, tcell.ModNone},
	{"2~", tcell.KeyInsert, tcell.ModNone},
	{"3~", tcell.KeyDelete, tcell.ModNone},

	// Function keys (xterm)
	{"11~", tcell.KeyF1, tcell.ModNone},
	{"12~", tcell.KeyF2, tcell.ModNone},
	{"13~", tcell.KeyF3, tcell.ModNone},
	{"14~", tcell.KeyF4, tcell.ModNone},
	{"15~", tcell.KeyF5, tcell.ModNone},
	{"17~", tcell.KeyF6, tcell.ModNone},
	{"18~", tcell.KeyF7, tcell.ModNone},
	{"19~", tcell.KeyF8, tcell.ModNone},
	{"20~", tcell.KeyF9, tcell.ModNone},
	{"21~", tcell.KeyF10, tcell.ModNone},
	{"23~", tcell.KeyF11, tcell.ModNone},
	{"24~", tcell.KeyF12, tcell.ModNone},
}

// SS3 sequences (ESC O ...)
var ss3Sequences = []escapeSequence{
	{"A", tcell.KeyUp, tcell.ModNone},
	{"B", tcell.KeyDown, tcell.ModNone},
	{"C", tcell.KeyRight, tcell.ModNone},
	{"D", tcell.KeyLeft, tcell.ModNone},
	{"H", tcell.KeyHome, tcell.ModNone},
	{"F", tcell.KeyEnd, tcell.ModNone},
	{"P", tcell.KeyF1, tcell.ModNone},
	{"Q", tcell.KeyF2, tcell.ModNone},
	{"R", tcell.KeyF3, tcell.ModNone},
	{"S", tcell.KeyF4, tcell.ModNone},
}

var csiMap = buildSequenceMap(csiSequences)
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s
	}
	return m
}

// KeyReader turns raw terminal input into key events, one at a time.
// It is not safe for concurrent use; the render loop owns it.
type KeyReader struct {
	backend Backend
	buf     []byte
	queue   []*tcell.EventKey
}

// NewKeyReader wraps a backend whose Init has already entered raw mode
func NewKeyReader(b Backend) *KeyReader {
	return &KeyReader{
		backend: b,
		buf:     make([]byte, 0, 256),
	}
}

// NextKey blocks until a key is decoded, the backend fails, or ctx is done
func (r *KeyReader) NextKey(ctx context.Context) (*tcell.EventKey, error) {
	for {
		if len(r.queue) > 0 {
			ev := r.queue[0]
			r.queue = r.queue[1:]
			return ev, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := r.backend.Read(ctx.Done())
		if err != nil {
			return nil, err
		}

		if len(data) == 0 {
			// Timeout: a lone ESC with nothing following is the Escape key
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.buf = r.buf[:0]
				return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil
			}
			continue
		}

		r.buf = append(r.buf, data...)
		events, consumed := DecodeKeys(r.buf)
		r.queue = append(r.queue, events...)

		// Compact buffer
		if consumed >= len(r.buf) {
			r.buf = r.buf[:0]
		} else if consumed > 0 {
			copy(r.buf, r.buf[consumed:])
			r.buf = r.buf[:len(r.buf)-consumed]
		}
	}
}

// DecodeKeys parses raw bytes into key events and returns bytes consumed.
// Decoding stops at an incomplete escape or UTF-8 sequence.
func DecodeKeys(data []byte) ([]*tcell.EventKey, int) {
	var events []*tcell.EventKey
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			events = append(events, tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone))
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return events, i
			}

			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return events, i
			}
			// Unknown but well-formed sequences are swallowed
			if ev != nil {
				events = append(events, ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			events = append(events, parseControl(b, tcell.ModNone))
			i++
			continue
		}

		// DEL, tcell canonicalizes it to KeyBackspace
		if b == 0x7f {
			events = append(events, tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone))
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return events, i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn != utf8.RuneError {
			events = append(events, tcell.NewEventKey(tcell.KeyRune, rn, tcell.ModNone))
		}
		i += size
	}
	return events, i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, *tcell.EventKey) {
	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModAlt)
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		if len(data) < 3 {
			return 0, nil
		}
		if s, ok := ss3Map[string(data[2:3])]; ok {
			return 3, tcell.NewEventKey(s.key, 0, s.mod)
		}
		return 3, nil
	}

	// Alt+Control character
	if data[1] < 0x20 {
		return 2, parseControl(data[1], tcell.ModAlt)
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, tcell.NewEventKey(tcell.KeyRune, rune(data[1]), tcell.ModAlt)
	}

	// ESC followed by something else: report Escape, leave the byte for the next pass
	return 1, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
}

// parseCSI parses ESC [ params final
func parseCSI(data []byte) (int, *tcell.EventKey) {
	const maxScan = 16
	end := 2
	for end < len(data) && end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			seq := string(data[2 : end+1])
			if s, ok := csiMap[seq]; ok {
				return end + 1, tcell.NewEventKey(s.key, 0, s.mod)
			}
			return end + 1, nil
		}
		if b < 0x20 || b > 0x7e {
			// Corrupt sequence: drop the introducer only
			return 2, nil
		}
		end++
	}
	if end >= maxScan {
		return end, nil
	}
	return 0, nil
}

// parseControl maps control characters to keys. Other than the directly typeable ones,
// bytes go through tcell as runes so they come back as its KeyCtrl* codes.
func parseControl(b byte, mod tcell.ModMask) *tcell.EventKey {
	switch b {
	case 0x08:
		return tcell.NewEventKey(tcell.KeyBackspace, 0, mod)
	case 0x09:
		return tcell.NewEventKey(tcell.KeyTab, 0, mod)
	case 0x0a, 0x0d:
		return tcell.NewEventKey(tcell.KeyEnter, 0, mod)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone)
	if mod == tcell.ModNone {
		return ev
	}
	return tcell.NewEventKey(ev.Key(), 0, ev.Modifiers()|mod)
}
