// Package vm implements the LC-3 virtual machine.
//
// The machine has eight general purpose registers (R0-R7), a program counter
// and a condition code register, 64K words of memory and a console. Keyboard
// input is memory mapped at KBSR/KBDR; console output and blocking input go
// through the TRAP routines GETC, OUT, PUTS, IN, PUTSP and HALT.
//
// All address and value arithmetic is 16 bit and wraps.
package vm
