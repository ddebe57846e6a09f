//go:build unix

package terminal

import "os"

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return detectFromEnv(os.Getenv)
}
