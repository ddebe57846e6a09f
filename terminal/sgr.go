package terminal

import "strings"

// SGRState is the color outcome of a run of terminal output.
// Fg/Bg hold the canonical single-slot sequence that the terminal is left in, valid only
// when the matching Set flag is true.
type SGRState struct {
	Fg, Bg       string
	FgSet, BgSet bool
}

// ScanSGR walks text and records the last foreground and background selected by SGR
// sequences. Resets (ESC[m, ESC[0m) leave both slots at the default sequences.
// Non-SGR CSI sequences and attribute parameters are skipped.
func ScanSGR(text string) SGRState {
	var st SGRState
	n := len(text)
	for i := 0; i < n; i++ {
		if text[i] != 0x1b || i+1 >= n || text[i+1] != '[' {
			continue
		}

		// Find final byte
		end := i + 2
		for end < n && text[end] >= 0x20 && text[end] < 0x40 {
			end++
		}
		if end >= n {
			// Truncated sequence
			return st
		}
		if text[end] == 'm' {
			st.apply(text[i+2 : end])
		}
		i = end
	}
	return st
}

// apply interprets one SGR parameter string
func (st *SGRState) apply(params string) {
	if params == "" {
		st.reset()
		return
	}
	ps := strings.Split(params, ";")
	for j := 0; j < len(ps); j++ {
		p := ps[j]
		switch {
		case p == "" || p == "0":
			st.reset()
		case p == "38" || p == "48":
			seq, used := extendedColor(p, ps[j+1:])
			if used == 0 {
				// Malformed extended color consumes the rest
				return
			}
			if p == "38" {
				st.Fg, st.FgSet = seq, true
			} else {
				st.Bg, st.BgSet = seq, true
			}
			j += used
		case p == "39":
			st.Fg, st.FgSet = SeqDefaultFg, true
		case p == "49":
			st.Bg, st.BgSet = SeqDefaultBg, true
		case isBasicFg(p):
			st.Fg, st.FgSet = "\x1b["+p+"m", true
		case isBasicBg(p):
			st.Bg, st.BgSet = "\x1b["+p+"m", true
		}
	}
}

func (st *SGRState) reset() {
	st.Fg, st.FgSet = SeqDefaultFg, true
	st.Bg, st.BgSet = SeqDefaultBg, true
}

// extendedColor decodes the 5;N or 2;R;G;B tail of 38/48, returning parameters consumed
func extendedColor(slot string, rest []string) (string, int) {
	if len(rest) == 0 {
		return "", 0
	}
	switch rest[0] {
	case "5":
		if len(rest) < 2 {
			return "", 0
		}
		return "\x1b[" + slot + ";5;" + rest[1] + "m", 2
	case "2":
		if len(rest) < 4 {
			return "", 0
		}
		return "\x1b[" + slot + ";2;" + rest[1] + ";" + rest[2] + ";" + rest[3] + "m", 4
	}
	return "", 0
}

func isBasicFg(p string) bool {
	return len(p) == 2 && (p[0] == '3' || p[0] == '9') && p[1] >= '0' && p[1] <= '7'
}

func isBasicBg(p string) bool {
	if len(p) == 2 {
		return p[0] == '4' && p[1] >= '0' && p[1] <= '7'
	}
	return len(p) == 3 && p[0] == '1' && p[1] == '0' && p[2] >= '0' && p[2] <= '7'
}
