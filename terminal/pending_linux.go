//go:build linux

package terminal

import (
	"github.com/pkg/term/termios"
)

// pending returns the number of bytes in the input queue.
func pending(fd uintptr) (int, error) {
	return termios.Tiocinq(fd)
}
