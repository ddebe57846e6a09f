package terminal

import (
	"errors"
	"io"
	"os"
)

var (
	// ErrNotTerminal is returned by Init when input is not an interactive terminal
	ErrNotTerminal = errors.New("not a terminal")
	// ErrInputClosed is returned by Read at end of input
	ErrInputClosed = errors.New("terminal input closed")
)

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Lifecycle
	// Init enters raw mode on the input side
	Init() error
	Fini()

	// Capabilities
	Size() (width, height int)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs.
	// A nil slice with nil error means timeout or stop.
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// NewBackend returns the platform backend bound to stdin/stdout
func NewBackend() Backend {
	return newBackend()
}

// Size polls the window size of the controlling terminal on stdout, 80x24 when unknown
func Size() (width, height int) {
	return getTerminalSize(int(os.Stdout.Fd()))
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiReset)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
