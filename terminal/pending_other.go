//go:build unix && !linux

package terminal

import (
	"golang.org/x/sys/unix"
)

// termios.Tiocinq is a stub outside Linux, so ask poll(2) instead.
func pending(fd uintptr) (int, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		return 0, err
	}
	if n > 0 && fds[0].Revents&unix.POLLIN != 0 {
		return 1, nil
	}
	return 0, nil
}
