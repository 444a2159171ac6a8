package vm

// Reg indexes the register file.
type Reg uint8

// general purpose registers, then the internal ones
const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC   // program counter
	COND // condition flags
	registerCount
)

var regNames = [registerCount]string{"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7", "PC", "COND"}

func (r Reg) String() string {
	return regNames[r]
}

// Flag is a condition code held in COND.
type Flag uint16

const (
	FlagPos Flag = 0b001
	FlagZro Flag = 0b010
	FlagNeg Flag = 0b100
)

func (f Flag) String() string {
	s := ""
	if f&FlagNeg != 0 {
		s += "n"
	}
	if f&FlagZro != 0 {
		s += "z"
	}
	if f&FlagPos != 0 {
		s += "p"
	}
	return s
}

// UserSpaceStart is where PC points after reset.
const UserSpaceStart = 0x3000

// Registers is the LC-3 register file.
type Registers [registerCount]uint16

// NewRegisters returns a register file in its reset state.
func NewRegisters() Registers {
	var regs Registers
	regs[PC] = UserSpaceStart
	regs[COND] = uint16(FlagZro)
	return regs
}

func (regs *Registers) Read(r Reg) uint16 {
	return regs[r]
}

func (regs *Registers) Write(r Reg, value uint16) {
	regs[r] = value
}

// Flags returns the current condition code.
func (regs *Registers) Flags() Flag {
	return Flag(regs[COND])
}

// UpdateFlags recomputes COND from the signed value of r.
func (regs *Registers) UpdateFlags(r Reg) {
	switch v := regs[r]; {
	case v == 0:
		regs[COND] = uint16(FlagZro)
	case v>>15 != 0:
		regs[COND] = uint16(FlagNeg)
	default:
		regs[COND] = uint16(FlagPos)
	}
}
