package vm

import (
	"fmt"

	"github.com/aryanA101a/lc3-vm-go/translate"
)

type TrapVector uint8

const (
	TrapGetc  TrapVector = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TrapOut   TrapVector = 0x21 /* output a character */
	TrapPuts  TrapVector = 0x22 /* output a word string */
	TrapIn    TrapVector = 0x23 /* get character from keyboard, echoed onto the terminal */
	TrapPutsp TrapVector = 0x24 /* output a byte string */
	TrapHalt  TrapVector = 0x25 /* halt the program */
)

var trapNames = map[TrapVector]string{
	TrapGetc:  "GETC",
	TrapOut:   "OUT",
	TrapPuts:  "PUTS",
	TrapIn:    "IN",
	TrapPutsp: "PUTSP",
	TrapHalt:  "HALT",
}

func (t TrapVector) String() string {
	if name, ok := trapNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TRAP x%02X", uint8(t))
}

func (t TrapVector) valid() bool {
	_, ok := trapNames[t]
	return ok
}

func (vm *VM) trap(vector TrapVector) (err error) {
	defer func() {
		if err != nil {
			err = &ErrTrap{Vector: vector, Err: err}
		}
	}()

	switch vector {
	case TrapGetc:
		var c byte
		c, err = vm.readChar()
		if err != nil {
			return
		}
		vm.Registers.Write(R0, uint16(c))
		vm.Registers.UpdateFlags(R0)

	case TrapOut:
		_, err = vm.output.Write([]byte{byte(vm.Registers.Read(R0))})

	case TrapPuts:
		var out []byte
		for addr := vm.Registers.Read(R0); ; addr++ {
			c := vm.Memory.Peek(addr)
			if c == 0 {
				break
			}
			out = append(out, byte(c))
		}
		_, err = vm.output.Write(out)

	case TrapIn:
		_, err = vm.output.Write([]byte(translate.From("Enter a character: ")))
		if err != nil {
			return
		}
		var c byte
		c, err = vm.readChar()
		if err != nil {
			return
		}
		vm.Registers.Write(R0, uint16(c))
		vm.Registers.UpdateFlags(R0)

	case TrapPutsp:
		var out []byte
		for addr := vm.Registers.Read(R0); ; addr++ {
			w := vm.Memory.Peek(addr)
			if w == 0 {
				break
			}
			out = append(out, byte(w))
			if w>>8 != 0 {
				out = append(out, byte(w>>8))
			}
		}
		_, err = vm.output.Write(out)

	case TrapHalt:
		vm.state = StateHalted
		_, err = vm.output.Write([]byte(translate.From("HALT") + "\n"))
	}

	return
}

func (vm *VM) readChar() (byte, error) {
	if vm.keyboard == nil {
		return 0, ErrNoKeyboard
	}
	return vm.keyboard.ReadChar()
}
