package vm

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

const MemorySize = 1 << 16

const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
)

const kbsrReady = 0x8000

// Keyboard is the console input device behind KBSR/KBDR and the input traps.
type Keyboard interface {
	// Poll reports whether a key is waiting, without blocking.
	Poll() bool
	// ReadChar blocks until a key is available.
	ReadChar() (byte, error)
}

// Memory is the 64K-word LC-3 address space.
type Memory struct {
	cells    [MemorySize]uint16
	keyboard Keyboard
	log      logrus.FieldLogger
}

// NewMemory returns zeroed memory. A nil keyboard leaves KBSR as plain storage.
func NewMemory(keyboard Keyboard, log logrus.FieldLogger) *Memory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Memory{keyboard: keyboard, log: log}
}

func (mem *Memory) Write(addr, value uint16) {
	mem.cells[addr] = value
}

func (mem *Memory) Read(addr uint16) uint16 {
	if addr == KBSR && mem.keyboard != nil {
		mem.pollKeyboard()
	}
	return mem.cells[addr]
}

// Peek returns a cell without touching the keyboard.
func (mem *Memory) Peek(addr uint16) uint16 {
	return mem.cells[addr]
}

func (mem *Memory) pollKeyboard() {
	if !mem.keyboard.Poll() {
		mem.cells[KBSR] = 0
		return
	}

	c, err := mem.keyboard.ReadChar()
	if err != nil {
		mem.log.WithError(err).Warn(f("keyboard read failed"))
		mem.cells[KBSR] = 0
		return
	}
	mem.cells[KBSR] = kbsrReady
	mem.cells[KBDR] = uint16(c)
}

// LoadImage copies an image into memory. The first big-endian word is the
// origin; the rest are stored from there on, wrapping past 0xFFFF.
func (mem *Memory) LoadImage(data []byte) (origin uint16, words int, err error) {
	if len(data) < 2 {
		return 0, 0, ErrImageTooShort
	}

	origin = binary.BigEndian.Uint16(data)
	addr := origin
	for j := 2; j+1 < len(data); j += 2 {
		mem.cells[addr] = binary.BigEndian.Uint16(data[j:])
		addr++
		words++
	}

	return origin, words, nil
}
