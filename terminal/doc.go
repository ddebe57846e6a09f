// Package terminal provides direct ANSI terminal primitives.
//
// Features:
//   - True color (24-bit), 256-color and legacy 16-color palette support
//   - Nearest palette matching for RGB values
//   - Allocation-free SGR/CSI sequence builders and an SGR scanner
//   - Raw stdin key decoding into tcell key events
//   - Window size polling and clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
