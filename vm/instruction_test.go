package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTotal(t *testing.T) {
	assert := assert.New(t)

	for w := 0; w < MemorySize; w++ {
		word := uint16(w)
		inst := Decode(word)
		assert.NotNil(inst)

		switch word >> 12 {
		case opRES:
			assert.Equal(Invalid{Word: word}, inst, "x%04X", word)
		case opRTI:
			assert.Equal(Rti{}, inst, "x%04X", word)
		case opTRAP:
			vector := TrapVector(word & 0xFF)
			if vector >= TrapGetc && vector <= TrapHalt {
				assert.Equal(Trap{Vector: vector}, inst, "x%04X", word)
			} else {
				assert.Equal(Invalid{Word: word}, inst, "x%04X", word)
			}
		default:
			assert.NotEqual(Invalid{Word: word}, inst, "x%04X", word)
		}
	}
}

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0xFFFB), SignExtend(0b1011, 4))
	assert.Equal(uint16(0b01011), SignExtend(0b01011, 5))
	assert.Equal(uint16(0xFFF5), SignExtend(0b10101, 5))
	assert.Equal(uint16(0xFFFF), SignExtend(0x1FF, 9))
	assert.Equal(uint16(0x00FF), SignExtend(0x0FF, 9))
	assert.Equal(uint16(0xFC00), SignExtend(0x400, 11))
	assert.Equal(uint16(0xFFE0), SignExtend(0x20, 6))

	// bits above the field are ignored
	assert.Equal(uint16(0x0001), SignExtend(0xFFC1, 6))

	for _, width := range []uint{5, 6, 9, 11} {
		for v := uint16(0); v < 1<<width; v++ {
			got := SignExtend(v, width)
			if v>>(width-1) == 1 {
				assert.Equal(int(v)-(1<<width), int(int16(got)), "width %d value %d", width, v)
			} else {
				assert.Equal(v, got, "width %d value %d", width, v)
			}
		}
	}
}

// encode builds instruction words from fields.
func encode(op uint16, fields ...uint16) uint16 {
	word := op << 12
	for i := 0; i+1 < len(fields); i += 2 {
		word |= fields[i] << fields[i+1]
	}
	return word
}

func TestDecodeFields(t *testing.T) {
	table := []struct {
		word uint16
		want Instruction
	}{
		{encode(opADD, 3, 9, 1, 6, 2, 0), AddReg{DR: R3, SR1: R1, SR2: R2}},
		{encode(opADD, 3, 9, 1, 6, 1, 5, 0x1F, 0), AddImm{DR: R3, SR: R1, Imm: 0xFFFF}},
		{encode(opADD, 0, 9, 7, 6, 1, 5, 0x0F, 0), AddImm{DR: R0, SR: R7, Imm: 15}},
		{encode(opAND, 1, 9, 2, 6, 1, 5, 0b01001, 0), AndImm{DR: R1, SR: R2, Imm: 9}},
		{encode(opAND, 4, 9, 5, 6, 6, 0), AndReg{DR: R4, SR1: R5, SR2: R6}},
		{encode(opNOT, 6, 9, 5, 6, 0x3F, 0), Not{DR: R6, SR: R5}},
		{encode(opBR, 0b101, 9, 0x1FE, 0), Br{NZP: FlagNeg | FlagPos, Offset: 0xFFFE}},
		{encode(opBR, 0b010, 9, 0x005, 0), Br{NZP: FlagZro, Offset: 5}},
		{encode(opJMP, 3, 6), Jmp{Base: R3}},
		{encode(opJMP, 7, 6), Jmp{Base: R7}},
		{encode(opJSR, 1, 11, 0x7FF, 0), Jsr{Offset: 0xFFFF}},
		{encode(opJSR, 1, 11, 0x3FF, 0), Jsr{Offset: 0x3FF}},
		{encode(opJSR, 4, 6), Jsrr{Base: R4}},
		{encode(opLD, 2, 9, 0x100, 0), Ld{DR: R2, Offset: 0xFF00}},
		{encode(opLDI, 5, 9, 0x0AA, 0), Ldi{DR: R5, Offset: 0xAA}},
		{encode(opLDR, 1, 9, 6, 6, 0x3F, 0), Ldr{DR: R1, Base: R6, Offset: 0xFFFF}},
		{encode(opLEA, 0, 9), Lea{DR: R0, Offset: 0}},
		{encode(opST, 7, 9, 0x010, 0), St{SR: R7, Offset: 0x10}},
		{encode(opSTI, 3, 9, 0x1F0, 0), Sti{SR: R3, Offset: 0xFFF0}},
		{encode(opSTR, 2, 9, 1, 6, 0x1F, 0), Str{SR: R2, Base: R1, Offset: 0x1F}},
		{encode(opTRAP, 0x25, 0), Trap{Vector: TrapHalt}},
		{encode(opTRAP, 0x20, 0), Trap{Vector: TrapGetc}},
		{encode(opTRAP, 0x26, 0), Invalid{Word: 0xF026}},
		{encode(opRTI), Rti{}},
		{encode(opRES, 0xABC, 0), Invalid{Word: 0xDABC}},
	}

	for _, tt := range table {
		assert.Equal(t, tt.want, Decode(tt.word), "x%04X", tt.word)
	}
}

func TestInstructionString(t *testing.T) {
	table := []struct {
		word uint16
		want string
	}{
		{0x1261, "ADD R1, R1, #1"},
		{0x127F, "ADD R1, R1, #-1"},
		{0x5020, "AND R0, R0, #0"},
		{0x1042, "ADD R0, R1, R2"},
		{0x0FFE, "BRnzp #-2"},
		{0x0402, "BRz #2"},
		{0xC1C0, "RET"},
		{0xC080, "JMP R2"},
		{0x4802, "JSR #2"},
		{0x4100, "JSRR R4"},
		{0xE002, "LEA R0, #2"},
		{0x6283, "LDR R1, R2, #3"},
		{0xF025, "TRAP x25"},
		{0x8000, "RTI"},
		{0xD123, ".FILL xD123"},
	}

	for _, tt := range table {
		assert.Equal(t, tt.want, Decode(tt.word).String(), "x%04X", tt.word)
	}
}

func TestTrapVectorString(t *testing.T) {
	assert.Equal(t, "PUTSP", TrapPutsp.String())
	assert.Equal(t, "TRAP x30", TrapVector(0x30).String())
}
