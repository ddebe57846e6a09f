package terminal

import "strings"

// detectFromEnv classifies the terminal from its environment, getenv is injectable for tests
func detectFromEnv(getenv func(string) string) ColorMode {
	// 1. Check COLORTERM (highest priority, set by modern terminals)
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	// 2. Check terminal-specific env vars
	for _, v := range []string{
		"KITTY_WINDOW_ID",
		"KONSOLE_VERSION",
		"ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID",
		"ALACRITTY_LOG",
		"WEZTERM_PANE",
	} {
		if getenv(v) != "" {
			return ColorModeTrueColor
		}
	}

	// 3. Check TERM for known capability markers
	termLower := strings.ToLower(getenv("TERM"))
	switch {
	case strings.Contains(termLower, "truecolor"),
		strings.Contains(termLower, "24bit"),
		strings.Contains(termLower, "direct"):
		return ColorModeTrueColor
	case strings.Contains(termLower, "256"):
		return ColorMode256
	case termLower == "linux",
		termLower == "ansi",
		termLower == "cygwin",
		termLower == "dumb",
		strings.HasPrefix(termLower, "vt"):
		return ColorMode16
	}

	// 4. Default to 256-color
	return ColorMode256
}
