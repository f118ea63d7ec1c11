//go:build !unix

package session

import "os"

// inputReady reports whether f is a pipe or regular file. Platforms without
// poll(2) cannot probe a pipe for pending data.
func inputReady(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	return info.Mode()&os.ModeCharDevice == 0, nil
}
