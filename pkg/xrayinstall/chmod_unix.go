//go:build !windows

package xrayinstall

import "os"

// chmodExecutable sets the engine binary's permissions to 0755 on Unix.
func chmodExecutable(path string) error {
	return os.Chmod(path, 0o755)
}
