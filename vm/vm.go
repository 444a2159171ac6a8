package vm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// State of the execution engine.
type State int

const (
	StateRunning State = iota
	StateHalted
)

func (s State) String() string {
	if s == StateHalted {
		return "halted"
	}
	return "running"
}

// VM is an LC-3 machine: register file, memory and console.
type VM struct {
	Registers Registers
	Memory    *Memory

	state    State
	keyboard Keyboard
	output   io.Writer
	log      *logrus.Entry
}

// Option configures a VM.
type Option func(vm *VM)

// WithKeyboard attaches the console input device.
func WithKeyboard(keyboard Keyboard) Option {
	return func(vm *VM) { vm.keyboard = keyboard }
}

// WithOutput sets the console output. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) { vm.output = w }
}

// WithLogger sets the logger for traces and diagnostics.
func WithLogger(logger *logrus.Logger) Option {
	return func(vm *VM) { vm.log = logrus.NewEntry(logger) }
}

func NewVM(opts ...Option) *VM {
	vm := &VM{
		Registers: NewRegisters(),
		output:    os.Stdout,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.Memory = NewMemory(vm.keyboard, vm.log)
	return vm
}

func (vm *VM) State() State {
	return vm.state
}

// LoadImage loads an in-memory image.
func (vm *VM) LoadImage(data []byte) error {
	return vm.loadImage("-", data)
}

// LoadImageFile loads the image stored at path.
func (vm *VM) LoadImageFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ErrImage{Path: path, Err: err}
	}
	return vm.loadImage(path, data)
}

func (vm *VM) loadImage(path string, data []byte) error {
	origin, words, err := vm.Memory.LoadImage(data)
	if err != nil {
		return &ErrImage{Path: path, Err: err}
	}

	vm.log.WithFields(logrus.Fields{
		"image":  path,
		"origin": hex4(origin),
		"words":  words,
	}).Info(f("image loaded"))
	return nil
}

// Run executes instructions until HALT, a console error, or ctx is done.
func (vm *VM) Run(ctx context.Context) error {
	done := ctx.Done()
	for vm.state == StateRunning {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction.
func (vm *VM) Step() error {
	if vm.state == StateHalted {
		return nil
	}

	pc := vm.Registers.Read(PC)
	word := vm.Memory.Read(pc)
	vm.Registers.Write(PC, pc+1)

	inst := Decode(word)
	if vm.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		vm.log.WithFields(logrus.Fields{
			"pc":   hex4(pc),
			"word": hex4(word),
		}).Debug(inst)
	}

	return vm.execute(pc, word, inst)
}

// execute applies inst. PC has already been advanced past it.
func (vm *VM) execute(pc, word uint16, inst Instruction) error {
	regs := &vm.Registers
	mem := vm.Memory

	switch i := inst.(type) {
	case AddReg:
		regs.Write(i.DR, regs.Read(i.SR1)+regs.Read(i.SR2))
		regs.UpdateFlags(i.DR)

	case AddImm:
		regs.Write(i.DR, regs.Read(i.SR)+i.Imm)
		regs.UpdateFlags(i.DR)

	case AndReg:
		regs.Write(i.DR, regs.Read(i.SR1)&regs.Read(i.SR2))
		regs.UpdateFlags(i.DR)

	case AndImm:
		regs.Write(i.DR, regs.Read(i.SR)&i.Imm)
		regs.UpdateFlags(i.DR)

	case Not:
		regs.Write(i.DR, ^regs.Read(i.SR))
		regs.UpdateFlags(i.DR)

	case Br:
		if i.NZP&regs.Flags() != 0 {
			regs.Write(PC, regs.Read(PC)+i.Offset)
		}

	case Jmp:
		regs.Write(PC, regs.Read(i.Base))

	case Jsr:
		regs.Write(R7, regs.Read(PC))
		regs.Write(PC, regs.Read(PC)+i.Offset)

	case Jsrr:
		// read the base first: JSRR R7 jumps to the old R7
		target := regs.Read(i.Base)
		regs.Write(R7, regs.Read(PC))
		regs.Write(PC, target)

	case Ld:
		regs.Write(i.DR, mem.Read(regs.Read(PC)+i.Offset))
		regs.UpdateFlags(i.DR)

	case Ldi:
		regs.Write(i.DR, mem.Read(mem.Read(regs.Read(PC)+i.Offset)))
		regs.UpdateFlags(i.DR)

	case Ldr:
		regs.Write(i.DR, mem.Read(regs.Read(i.Base)+i.Offset))
		regs.UpdateFlags(i.DR)

	case Lea:
		regs.Write(i.DR, regs.Read(PC)+i.Offset)
		regs.UpdateFlags(i.DR)

	case St:
		mem.Write(regs.Read(PC)+i.Offset, regs.Read(i.SR))

	case Sti:
		mem.Write(mem.Read(regs.Read(PC)+i.Offset), regs.Read(i.SR))

	case Str:
		mem.Write(regs.Read(i.Base)+i.Offset, regs.Read(i.SR))

	case Trap:
		return vm.trap(i.Vector)

	case Rti, Invalid:
		vm.log.WithFields(logrus.Fields{
			"pc":   hex4(pc),
			"word": hex4(word),
		}).Warn(f("unsupported instruction %v", inst))
	}

	return nil
}

func hex4(x uint16) string {
	return fmt.Sprintf("x%04X", x)
}
