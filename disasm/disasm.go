// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
package disasm

import (
	"fmt"

	"github.com/beevik/clock6502/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = [...]string{
	cpu.IMM: "#$%s",
	cpu.IMP: "%s",
	cpu.REL: "$%s",
	cpu.ZPG: "$%s",
	cpu.ZPX: "$%s,X",
	cpu.ZPY: "$%s,Y",
	cpu.ABS: "$%s",
	cpu.ABX: "$%s,X",
	cpu.ABY: "$%s,Y",
	cpu.IND: "($%s)",
	cpu.IDX: "($%s,X)",
	cpu.IDY: "($%s),Y",
}

// Opcodes whose implied operand is the accumulator.
var accumulatorOps = map[byte]bool{
	0x0a: true, // ASL A
	0x2a: true, // ROL A
	0x4a: true, // LSR A
	0x6a: true, // ROR A
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the little-endian byte
// slice, most significant byte first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code on bus 'b' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(b cpu.Bus, addr uint16) (line string, next uint16) {
	opcode := b.Read(addr)
	inst := cpu.GetInstructionSet().Lookup(opcode)

	var buf [2]byte
	operand := buf[:inst.Length-1]
	for i := range operand {
		operand[i] = b.Read(addr + 1 + uint16(i))
	}

	switch {
	case inst.Mode == cpu.REL:
		// Convert relative offset to absolute address.
		braddr := addr + uint16(inst.Length) + uint16(int8(operand[0]))
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	case accumulatorOps[opcode]:
		return inst.Name + " A", addr + uint16(inst.Length)
	}

	format := "%s " + modeFormat[inst.Mode]
	if inst.Mode == cpu.IMP {
		format = "%s%s"
	}
	line = fmt.Sprintf(format, inst.Name, hexString(operand))
	next = addr + uint16(inst.Length)
	return line, next
}

// GetRegisterString returns a string describing the contents of the 6502
// registers.
func GetRegisterString(r *cpu.Registers) string {
	return r.String()
}
