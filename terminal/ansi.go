package terminal

// Pre-allocated ANSI sequence fragments
var (
	// CSI sequences
	csi      = []byte("\x1b[")
	csiReset = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiHome  = []byte("\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiAutoWrapOn     = []byte("\x1b[?7h")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N;m
	csiBg256 = []byte("\x1b[48;5;") // followed by N;m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
	csiBgRGB = []byte("\x1b[48;2;") // followed by R;G;B;m
)

// Exported sequence text for callers that compose strings
const (
	SeqReset        = "\x1b[0m"
	SeqDefaultFg    = "\x1b[39m"
	SeqDefaultBg    = "\x1b[49m"
	SeqClear        = "\x1b[2J\x1b[H"
	SeqEraseDown    = "\x1b[J"
	SeqEraseLine    = "\x1b[2K"
	SeqHome         = "\x1b[H"
	SeqCursorHide   = "\x1b[?25l"
	SeqCursorShow   = "\x1b[?25h"
	SeqAltScreenOn  = "\x1b[?1049h"
	SeqAltScreenOff = "\x1b[?1049l"
)

// appendInt appends a non-negative integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// AppendFgRGB appends ESC[38;2;R;G;Bm
func AppendFgRGB(dst []byte, c RGB) []byte {
	return appendRGB(append(dst, csiFgRGB...), c)
}

// AppendBgRGB appends ESC[48;2;R;G;Bm
func AppendBgRGB(dst []byte, c RGB) []byte {
	return appendRGB(append(dst, csiBgRGB...), c)
}

func appendRGB(dst []byte, c RGB) []byte {
	dst = appendInt(dst, int(c.R))
	dst = append(dst, ';')
	dst = appendInt(dst, int(c.G))
	dst = append(dst, ';')
	dst = appendInt(dst, int(c.B))
	return append(dst, 'm')
}

// AppendFg256 appends ESC[38;5;Nm
func AppendFg256(dst []byte, index uint8) []byte {
	dst = appendInt(append(dst, csiFg256...), int(index))
	return append(dst, 'm')
}

// AppendBg256 appends ESC[48;5;Nm
func AppendBg256(dst []byte, index uint8) []byte {
	dst = appendInt(append(dst, csiBg256...), int(index))
	return append(dst, 'm')
}

// AppendFg16 appends the legacy SGR 30-37 / 90-97 sequence
func AppendFg16(dst []byte, b Basic16) []byte {
	code := 30 + int(b&0x07)
	if b.Bright() {
		code = 90 + int(b&0x07)
	}
	dst = appendInt(append(dst, csi...), code)
	return append(dst, 'm')
}

// AppendBg16 appends the legacy SGR 40-47 / 100-107 sequence
func AppendBg16(dst []byte, b Basic16) []byte {
	code := 40 + int(b&0x07)
	if b.Bright() {
		code = 100 + int(b&0x07)
	}
	dst = appendInt(append(dst, csi...), code)
	return append(dst, 'm')
}

// AppendCursorPos appends a cursor positioning sequence (0-indexed input)
func AppendCursorPos(dst []byte, x, y int) []byte {
	dst = append(dst, csi...)
	dst = appendInt(dst, y+1)
	dst = append(dst, ';')
	dst = appendInt(dst, x+1)
	return append(dst, 'H')
}

// CursorPos returns the cursor positioning sequence for 0-indexed x, y
func CursorPos(x, y int) string {
	var buf [16]byte
	return string(AppendCursorPos(buf[:0], x, y))
}
