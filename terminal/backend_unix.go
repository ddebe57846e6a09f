//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// escTimeoutMs bounds one poll of stdin; an empty Read after it lets KeyReader
// resolve a pending lone ESC as the Escape key
const escTimeoutMs = 100

type unixBackend struct {
	out     *os.File
	inFd    int
	outFd   int
	saved   *term.State
	readBuf [256]byte
}

func newBackend() Backend {
	return &unixBackend{
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// Init switches stdin to raw mode; output processing is left to the caller, which
// positions every line explicitly
func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("%w: stdin", ErrNotTerminal)
	}
	saved, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	b.saved = saved
	return nil
}

// Fini restores the saved mode; calling it twice is harmless
func (b *unixBackend) Fini() {
	if b.saved == nil {
		return
	}
	term.Restore(b.inFd, b.saved)
	b.saved = nil
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read returns the next chunk of input, or nil after escTimeoutMs of silence or once
// stopCh is closed. End of input is ErrInputClosed.
func (b *unixBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		ready, err := unix.Poll(fds, escTimeoutMs)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return nil, fmt.Errorf("poll stdin: %w", err)
		case ready == 0:
			return nil, nil
		}

		n, err := unix.Read(b.inFd, b.readBuf[:])
		switch {
		case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
			continue
		case err != nil:
			return nil, fmt.Errorf("read stdin: %w", err)
		case n == 0:
			return nil, ErrInputClosed
		}
		return append([]byte(nil), b.readBuf[:n]...), nil
	}
}

// getTerminalSize asks the kernel for the window of fd, 80x24 when unknown
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}
