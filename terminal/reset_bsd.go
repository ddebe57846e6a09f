//go:build unix && !linux

package terminal

// resetTerminalMode is a no-op where TCGETS is unavailable; Fini restores via x/term
func resetTerminalMode() {}
