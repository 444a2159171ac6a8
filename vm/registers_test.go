package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegisters(t *testing.T) {
	assert := assert.New(t)

	regs := NewRegisters()
	for r := R0; r <= R7; r++ {
		assert.Zero(regs.Read(r), r.String())
	}
	assert.Equal(uint16(0x3000), regs.Read(PC))
	assert.Equal(FlagZro, regs.Flags())
}

func TestUpdateFlags(t *testing.T) {
	table := []struct {
		value uint16
		flag  Flag
	}{
		{0x0000, FlagZro},
		{0x8000, FlagNeg},
		{0x0001, FlagPos},
		{0x7FFF, FlagPos},
		{0xFFFF, FlagNeg},
	}

	for _, tt := range table {
		regs := NewRegisters()
		regs.Write(R3, tt.value)
		regs.UpdateFlags(R3)
		assert.Equal(t, tt.flag, regs.Flags(), "x%04X", tt.value)
	}
}

func TestRegisterOutOfRange(t *testing.T) {
	regs := NewRegisters()
	assert.Panics(t, func() { regs.Read(registerCount) })
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "p", FlagPos.String())
	assert.Equal(t, "nz", (FlagNeg | FlagZro).String())
	assert.Equal(t, "COND", COND.String())
}
