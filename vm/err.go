package vm

import (
	"errors"

	"github.com/aryanA101a/lc3-vm-go/translate"
)

var f = translate.From

var (
	ErrImageTooShort = errors.New(f("image too short for origin header"))
	ErrNoKeyboard    = errors.New(f("no keyboard attached"))
)

// ErrImage reports an image that could not be loaded.
type ErrImage struct {
	Path string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("load image %v: %v", err.Path, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}

// ErrTrap reports a console failure inside a trap routine.
type ErrTrap struct {
	Vector TrapVector
	Err    error
}

func (err *ErrTrap) Error() string {
	return f("trap %v: %v", err.Vector, err.Err)
}

func (err *ErrTrap) Unwrap() error {
	return err.Err
}
