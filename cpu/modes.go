// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand, or the accumulator)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
)

var modeNames = [...]string{
	IMM: "IMM",
	IMP: "IMP",
	REL: "REL",
	ZPG: "ZPG",
	ZPX: "ZPX",
	ZPY: "ZPY",
	ABS: "ABS",
	ABX: "ABX",
	ABY: "ABY",
	IND: "IND",
	IDX: "IDX",
	IDY: "IDY",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "???"
}

// OperandWidth returns the number of operand bytes following the opcode
// for an instruction using the addressing mode.
func (m Mode) OperandWidth() int {
	switch m {
	case IMP:
		return 0
	case ABS, ABX, ABY, IND:
		return 2
	default:
		return 1
	}
}

// A modefunc resolves the operand location of the current instruction.
// It consumes operand bytes at PC and returns 1 if the mode may cost an
// additional cycle (a page boundary was crossed), 0 otherwise.
type modefunc func(cpu *CPU) byte

var modeImpl = [...]modefunc{
	IMM: (*CPU).imm,
	IMP: (*CPU).imp,
	REL: (*CPU).rel,
	ZPG: (*CPU).zpg,
	ZPX: (*CPU).zpx,
	ZPY: (*CPU).zpy,
	ABS: (*CPU).abs,
	ABX: (*CPU).abx,
	ABY: (*CPU).aby,
	IND: (*CPU).ind,
	IDX: (*CPU).idx,
	IDY: (*CPU).idy,
}

// Read the operand byte at PC and advance the PC past it.
func (cpu *CPU) nextByte() byte {
	v := cpu.read(cpu.Reg.PC)
	cpu.Reg.PC++
	return v
}

// Read a little-endian 16-bit operand at PC and advance the PC past it.
func (cpu *CPU) nextAddress() uint16 {
	lo := cpu.nextByte()
	hi := cpu.nextByte()
	return uint16(lo) | uint16(hi)<<8
}

// Offset an address 'addr' by a byte value 'offset', returning the
// resulting address and whether it landed on a different page.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = ((newAddr & 0xff00) != (addr & 0xff00))
	return newAddr, pageCrossed
}

// Offset a zero-page address 'addr' by a byte value 'offset'. The result
// wraps within the zero page.
func offsetZeroPage(addr byte, offset byte) uint16 {
	return uint16(addr+offset) & 0x00ff
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// The operand is the accumulator, or there is none.
func (cpu *CPU) imp() byte {
	cpu.fetched = cpu.Reg.A
	return 0
}

func (cpu *CPU) imm() byte {
	cpu.addrAbs = cpu.Reg.PC
	cpu.Reg.PC++
	return 0
}

func (cpu *CPU) zpg() byte {
	cpu.addrAbs = uint16(cpu.nextByte())
	return 0
}

func (cpu *CPU) zpx() byte {
	cpu.addrAbs = offsetZeroPage(cpu.nextByte(), cpu.Reg.X)
	return 0
}

func (cpu *CPU) zpy() byte {
	cpu.addrAbs = offsetZeroPage(cpu.nextByte(), cpu.Reg.Y)
	return 0
}

// The signed 8-bit displacement is stored sign-extended to 16 bits, so
// adding it to the PC performs the two's complement branch.
func (cpu *CPU) rel() byte {
	cpu.addrRel = uint16(cpu.nextByte())
	if cpu.addrRel&0x80 != 0 {
		cpu.addrRel |= 0xff00
	}
	return 0
}

func (cpu *CPU) abs() byte {
	cpu.addrAbs = cpu.nextAddress()
	return 0
}

func (cpu *CPU) abx() byte {
	var crossed bool
	cpu.addrAbs, crossed = offsetAddress(cpu.nextAddress(), cpu.Reg.X)
	return boolToByte(crossed)
}

func (cpu *CPU) aby() byte {
	var crossed bool
	cpu.addrAbs, crossed = offsetAddress(cpu.nextAddress(), cpu.Reg.Y)
	return boolToByte(crossed)
}

// A pointer whose low byte is $FF fetches its high byte from the start of
// the same page instead of the next one.
func (cpu *CPU) ind() byte {
	ptr := cpu.nextAddress()
	hiAddr := ptr + 1
	if ptr&0x00ff == 0x00ff {
		hiAddr = ptr & 0xff00
	}
	lo := cpu.read(ptr)
	hi := cpu.read(hiAddr)
	cpu.addrAbs = uint16(lo) | uint16(hi)<<8
	return 0
}

func (cpu *CPU) idx() byte {
	t := cpu.nextByte()
	lo := cpu.read(offsetZeroPage(t, cpu.Reg.X))
	hi := cpu.read(offsetZeroPage(t, cpu.Reg.X+1))
	cpu.addrAbs = uint16(lo) | uint16(hi)<<8
	return 0
}

func (cpu *CPU) idy() byte {
	t := cpu.nextByte()
	lo := cpu.read(uint16(t))
	hi := cpu.read(offsetZeroPage(t, 1))
	var crossed bool
	cpu.addrAbs, crossed = offsetAddress(uint16(lo)|uint16(hi)<<8, cpu.Reg.Y)
	return boolToByte(crossed)
}
