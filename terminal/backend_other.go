//go:build !unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// fallbackBackend supports output and size queries; raw input is unavailable
type fallbackBackend struct{}

func newBackend() Backend {
	return fallbackBackend{}
}

func (fallbackBackend) Init() error {
	return fmt.Errorf("%w: raw input is not supported on this platform", ErrNotTerminal)
}

func (fallbackBackend) Fini() {}

func (fallbackBackend) Size() (int, int) {
	return getTerminalSize(int(os.Stdout.Fd()))
}

func (fallbackBackend) Write(p []byte) error {
	_, err := os.Stdout.Write(p)
	return err
}

func (fallbackBackend) Read(<-chan struct{}) ([]byte, error) {
	return nil, fmt.Errorf("raw terminal input is not supported on this platform")
}

func getTerminalSize(fd int) (int, int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w == 0 || h == 0 {
		return 80, 24
	}
	return w, h
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return detectFromEnv(os.Getenv)
}

func resetTerminalMode() {}
