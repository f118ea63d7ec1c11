//go:build unix

package session

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// inputReady performs one zero-timeout poll on f. A hung-up pipe counts as
// ready so the reader observes EOF instead of waiting.
func inputReady(f *os.File) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(f.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
}
