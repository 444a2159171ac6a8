//go:build unix

// Package terminal drives the controlling terminal for the console: raw
// mode while the machine runs, key polling and single character reads.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var ErrRawMode = errors.New("cannot configure terminal")

// Terminal is a keyboard backed by a file, normally os.Stdin.
type Terminal struct {
	in  *os.File
	fd  uintptr
	log logrus.FieldLogger

	originalTerminalConfig unix.Termios
	raw                    bool
}

func New(in *os.File, log logrus.FieldLogger) *Terminal {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Terminal{in: in, fd: in.Fd(), log: log}
}

// IsTerminal reports whether the input is an interactive terminal.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.fd))
}

// EnableRawMode turns off line buffering and echo. Input that is not a
// terminal is left alone.
func (t *Terminal) EnableRawMode() error {
	if t.raw || !t.IsTerminal() {
		return nil
	}

	t.log.Debug("enabling raw mode...")
	if err := termios.Tcgetattr(t.fd, &t.originalTerminalConfig); err != nil {
		return fmt.Errorf("%w: %w", ErrRawMode, err)
	}
	newTermios := t.originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(t.fd, termios.TCSANOW, &newTermios); err != nil {
		return fmt.Errorf("%w: %w", ErrRawMode, err)
	}

	t.raw = true
	return nil
}

// Restore puts back the settings saved by EnableRawMode.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}

	t.log.Debug("disabling raw mode...")
	if err := termios.Tcsetattr(t.fd, termios.TCSANOW, &t.originalTerminalConfig); err != nil {
		return fmt.Errorf("%w: %w", ErrRawMode, err)
	}
	t.raw = false
	return nil
}

// Poll reports whether input is waiting without consuming it.
func (t *Terminal) Poll() bool {
	n, err := pending(t.fd)
	if err != nil {
		t.log.WithError(err).Debug("keyboard poll failed")
		return false
	}
	return n > 0
}

// ReadChar blocks for one byte of input.
func (t *Terminal) ReadChar() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
