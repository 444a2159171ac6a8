package vm

import (
	"fmt"
)

// opcodes
const (
	opBR uint16 = iota
	opADD
	opLD
	opST
	opJSR
	opAND
	opLDR
	opSTR
	opRTI
	opNOT
	opLDI
	opSTI
	opJMP
	opRES
	opLEA
	opTRAP
)

// Instruction is one decoded LC-3 instruction. Offsets and immediates are
// already sign extended to 16 bits.
type Instruction interface {
	fmt.Stringer
	instruction()
}

type (
	AddReg struct{ DR, SR1, SR2 Reg }
	AddImm struct {
		DR, SR Reg
		Imm    uint16
	}
	AndReg struct{ DR, SR1, SR2 Reg }
	AndImm struct {
		DR, SR Reg
		Imm    uint16
	}
	Not struct{ DR, SR Reg }
	Br  struct {
		NZP    Flag
		Offset uint16
	}
	Jmp  struct{ Base Reg }
	Jsr  struct{ Offset uint16 }
	Jsrr struct{ Base Reg }
	Ld   struct {
		DR     Reg
		Offset uint16
	}
	Ldi struct {
		DR     Reg
		Offset uint16
	}
	Ldr struct {
		DR, Base Reg
		Offset   uint16
	}
	Lea struct {
		DR     Reg
		Offset uint16
	}
	St struct {
		SR     Reg
		Offset uint16
	}
	Sti struct {
		SR     Reg
		Offset uint16
	}
	Str struct {
		SR, Base Reg
		Offset   uint16
	}
	Trap struct{ Vector TrapVector }
	Rti  struct{}
	// Invalid holds a word with a reserved opcode or unknown trap vector.
	Invalid struct{ Word uint16 }
)

func (AddReg) instruction()  {}
func (AddImm) instruction()  {}
func (AndReg) instruction()  {}
func (AndImm) instruction()  {}
func (Not) instruction()     {}
func (Br) instruction()      {}
func (Jmp) instruction()     {}
func (Jsr) instruction()     {}
func (Jsrr) instruction()    {}
func (Ld) instruction()      {}
func (Ldi) instruction()     {}
func (Ldr) instruction()     {}
func (Lea) instruction()     {}
func (St) instruction()      {}
func (Sti) instruction()     {}
func (Str) instruction()     {}
func (Trap) instruction()    {}
func (Rti) instruction()     {}
func (Invalid) instruction() {}

// SignExtend widens the low width bits of x to 16 bits.
func SignExtend(x uint16, width uint) uint16 {
	x &= 0xFFFF >> (16 - width)
	if (x>>(width-1))&0b1 != 0 {
		x |= 0xFFFF << width
	}
	return x
}

func reg(instruction uint16, shift uint) Reg {
	return Reg((instruction >> shift) & 0b111)
}

// Decode classifies an instruction word. It never fails: unknown encodings
// come back as Invalid.
func Decode(instruction uint16) Instruction {
	switch instruction >> 12 {
	case opADD:
		if (instruction>>5)&0b1 == 1 {
			return AddImm{DR: reg(instruction, 9), SR: reg(instruction, 6), Imm: SignExtend(instruction, 5)}
		}
		return AddReg{DR: reg(instruction, 9), SR1: reg(instruction, 6), SR2: reg(instruction, 0)}

	case opAND:
		if (instruction>>5)&0b1 == 1 {
			return AndImm{DR: reg(instruction, 9), SR: reg(instruction, 6), Imm: SignExtend(instruction, 5)}
		}
		return AndReg{DR: reg(instruction, 9), SR1: reg(instruction, 6), SR2: reg(instruction, 0)}

	case opNOT:
		return Not{DR: reg(instruction, 9), SR: reg(instruction, 6)}

	case opBR:
		return Br{NZP: Flag((instruction >> 9) & 0b111), Offset: SignExtend(instruction, 9)}

	case opJMP:
		return Jmp{Base: reg(instruction, 6)}

	case opJSR:
		if (instruction>>11)&0b1 == 1 {
			return Jsr{Offset: SignExtend(instruction, 11)}
		}
		return Jsrr{Base: reg(instruction, 6)}

	case opLD:
		return Ld{DR: reg(instruction, 9), Offset: SignExtend(instruction, 9)}

	case opLDI:
		return Ldi{DR: reg(instruction, 9), Offset: SignExtend(instruction, 9)}

	case opLDR:
		return Ldr{DR: reg(instruction, 9), Base: reg(instruction, 6), Offset: SignExtend(instruction, 6)}

	case opLEA:
		return Lea{DR: reg(instruction, 9), Offset: SignExtend(instruction, 9)}

	case opST:
		return St{SR: reg(instruction, 9), Offset: SignExtend(instruction, 9)}

	case opSTI:
		return Sti{SR: reg(instruction, 9), Offset: SignExtend(instruction, 9)}

	case opSTR:
		return Str{SR: reg(instruction, 9), Base: reg(instruction, 6), Offset: SignExtend(instruction, 6)}

	case opTRAP:
		vector := TrapVector(instruction & 0xFF)
		if !vector.valid() {
			return Invalid{Word: instruction}
		}
		return Trap{Vector: vector}

	case opRTI:
		return Rti{}
	}

	return Invalid{Word: instruction}
}

// offset renders a sign-extended offset as signed decimal.
func offset(x uint16) string {
	return fmt.Sprintf("#%d", int16(x))
}

func (i AddReg) String() string { return fmt.Sprintf("ADD %v, %v, %v", i.DR, i.SR1, i.SR2) }
func (i AddImm) String() string { return fmt.Sprintf("ADD %v, %v, %v", i.DR, i.SR, offset(i.Imm)) }
func (i AndReg) String() string { return fmt.Sprintf("AND %v, %v, %v", i.DR, i.SR1, i.SR2) }
func (i AndImm) String() string { return fmt.Sprintf("AND %v, %v, %v", i.DR, i.SR, offset(i.Imm)) }
func (i Not) String() string    { return fmt.Sprintf("NOT %v, %v", i.DR, i.SR) }
func (i Br) String() string     { return fmt.Sprintf("BR%v %v", i.NZP, offset(i.Offset)) }
func (i Jmp) String() string {
	if i.Base == R7 {
		return "RET"
	}
	return fmt.Sprintf("JMP %v", i.Base)
}
func (i Jsr) String() string  { return fmt.Sprintf("JSR %v", offset(i.Offset)) }
func (i Jsrr) String() string { return fmt.Sprintf("JSRR %v", i.Base) }
func (i Ld) String() string   { return fmt.Sprintf("LD %v, %v", i.DR, offset(i.Offset)) }
func (i Ldi) String() string  { return fmt.Sprintf("LDI %v, %v", i.DR, offset(i.Offset)) }
func (i Ldr) String() string {
	return fmt.Sprintf("LDR %v, %v, %v", i.DR, i.Base, offset(i.Offset))
}
func (i Lea) String() string { return fmt.Sprintf("LEA %v, %v", i.DR, offset(i.Offset)) }
func (i St) String() string  { return fmt.Sprintf("ST %v, %v", i.SR, offset(i.Offset)) }
func (i Sti) String() string { return fmt.Sprintf("STI %v, %v", i.SR, offset(i.Offset)) }
func (i Str) String() string {
	return fmt.Sprintf("STR %v, %v, %v", i.SR, i.Base, offset(i.Offset))
}
func (i Trap) String() string    { return fmt.Sprintf("TRAP x%02X", uint8(i.Vector)) }
func (Rti) String() string       { return "RTI" }
func (i Invalid) String() string { return fmt.Sprintf(".FILL x%04X", i.Word) }
