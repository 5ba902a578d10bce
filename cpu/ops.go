// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Load the operand of the current instruction into cpu.fetched. In
// implied mode the operand is already the accumulator.
func (cpu *CPU) fetch() byte {
	if cpu.inst.Mode != IMP {
		cpu.fetched = cpu.read(cpu.addrAbs)
	}
	return cpu.fetched
}

// Write the result of a read-modify-write instruction back to where its
// operand came from.
func (cpu *CPU) writeBack(v byte) {
	if cpu.inst.Mode == IMP {
		cpu.Reg.A = v
	} else {
		cpu.write(cpu.addrAbs, v)
	}
}

// Add 'v' and the carry bit to the accumulator. Also used by SBC, which
// passes the complement of its operand.
func (cpu *CPU) addWithCarry(v byte) {
	acc := uint16(cpu.Reg.A)
	add := uint16(v)
	t := acc + add + uint16(cpu.Reg.flagBit(Carry))

	cpu.Reg.SetFlag(Carry, t > 0xff)
	cpu.Reg.SetFlag(Overflow, (^(acc^add)&(acc^t))&0x80 != 0)
	cpu.Reg.A = byte(t)
	cpu.Reg.updateNZ(cpu.Reg.A)
}

// Execute a branch if 'cond' holds. A taken branch costs one cycle, and
// another if it lands on a different page.
func (cpu *CPU) branch(cond bool) byte {
	if cond {
		cpu.remaining++
		target := cpu.Reg.PC + cpu.addrRel
		if (target & 0xff00) != (cpu.Reg.PC & 0xff00) {
			cpu.remaining++
		}
		cpu.Reg.PC = target
	}
	return 0
}

// Compare register 'r' with the operand.
func (cpu *CPU) compare(r byte) {
	v := cpu.fetch()
	cpu.Reg.SetFlag(Carry, r >= v)
	cpu.Reg.updateNZ(r - v)
}

// Add with carry
func (cpu *CPU) adc() byte {
	cpu.addWithCarry(cpu.fetch())
	return 1
}

// Boolean AND
func (cpu *CPU) and() byte {
	cpu.Reg.A &= cpu.fetch()
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 1
}

// Arithmetic Shift Left
func (cpu *CPU) asl() byte {
	v := cpu.fetch()
	cpu.Reg.SetFlag(Carry, (v&0x80) == 0x80)
	v <<= 1
	cpu.Reg.updateNZ(v)
	cpu.writeBack(v)
	return 0
}

// Branch if Carry Clear
func (cpu *CPU) bcc() byte {
	return cpu.branch(!cpu.Reg.Flag(Carry))
}

// Branch if Carry Set
func (cpu *CPU) bcs() byte {
	return cpu.branch(cpu.Reg.Flag(Carry))
}

// Branch if EQual (to zero)
func (cpu *CPU) beq() byte {
	return cpu.branch(cpu.Reg.Flag(Zero))
}

// Bit Test
func (cpu *CPU) bit() byte {
	v := cpu.fetch()
	cpu.Reg.SetFlag(Zero, (v&cpu.Reg.A) == 0)
	cpu.Reg.SetFlag(Negative, (v&0x80) != 0)
	cpu.Reg.SetFlag(Overflow, (v&0x40) != 0)
	return 0
}

// Branch if MInus (negative)
func (cpu *CPU) bmi() byte {
	return cpu.branch(cpu.Reg.Flag(Negative))
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne() byte {
	return cpu.branch(!cpu.Reg.Flag(Zero))
}

// Branch if PLus (positive)
func (cpu *CPU) bpl() byte {
	return cpu.branch(!cpu.Reg.Flag(Negative))
}

// Break. The byte after the opcode is skipped, so the return address on
// the stack is the opcode address plus two.
func (cpu *CPU) brk() byte {
	cpu.Reg.PC++
	cpu.handleInterrupt(vectorBRK, Break|Unused)
	return 0
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc() byte {
	return cpu.branch(!cpu.Reg.Flag(Overflow))
}

// Branch if oVerflow Set
func (cpu *CPU) bvs() byte {
	return cpu.branch(cpu.Reg.Flag(Overflow))
}

// Clear Carry flag
func (cpu *CPU) clc() byte {
	cpu.Reg.SetFlag(Carry, false)
	return 0
}

// Clear Decimal flag
func (cpu *CPU) cld() byte {
	cpu.Reg.SetFlag(Decimal, false)
	return 0
}

// Clear InterruptDisable flag
func (cpu *CPU) cli() byte {
	cpu.Reg.SetFlag(InterruptDisable, false)
	return 0
}

// Clear oVerflow flag
func (cpu *CPU) clv() byte {
	cpu.Reg.SetFlag(Overflow, false)
	return 0
}

// Compare to accumulator
func (cpu *CPU) cmp() byte {
	cpu.compare(cpu.Reg.A)
	return 1
}

// Compare to X register
func (cpu *CPU) cpx() byte {
	cpu.compare(cpu.Reg.X)
	return 0
}

// Compare to Y register
func (cpu *CPU) cpy() byte {
	cpu.compare(cpu.Reg.Y)
	return 0
}

// Decrement memory value
func (cpu *CPU) dec() byte {
	v := cpu.fetch() - 1
	cpu.write(cpu.addrAbs, v)
	cpu.Reg.updateNZ(v)
	return 0
}

// Decrement X register
func (cpu *CPU) dex() byte {
	cpu.Reg.X--
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 0
}

// Decrement Y register
func (cpu *CPU) dey() byte {
	cpu.Reg.Y--
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 0
}

// Boolean XOR
func (cpu *CPU) eor() byte {
	cpu.Reg.A ^= cpu.fetch()
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 1
}

// Increment memory value
func (cpu *CPU) inc() byte {
	v := cpu.fetch() + 1
	cpu.write(cpu.addrAbs, v)
	cpu.Reg.updateNZ(v)
	return 0
}

// Increment X register
func (cpu *CPU) inx() byte {
	cpu.Reg.X++
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 0
}

// Increment Y register
func (cpu *CPU) iny() byte {
	cpu.Reg.Y++
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 0
}

// Jump to memory address
func (cpu *CPU) jmp() byte {
	cpu.Reg.PC = cpu.addrAbs
	return 0
}

// Jump to subroutine
func (cpu *CPU) jsr() byte {
	cpu.pushAddress(cpu.Reg.PC - 1)
	cpu.Reg.PC = cpu.addrAbs
	return 0
}

// load Accumulator
func (cpu *CPU) lda() byte {
	cpu.Reg.A = cpu.fetch()
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 1
}

// load the X register
func (cpu *CPU) ldx() byte {
	cpu.Reg.X = cpu.fetch()
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 1
}

// load the Y register
func (cpu *CPU) ldy() byte {
	cpu.Reg.Y = cpu.fetch()
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 1
}

// Logical Shift Right
func (cpu *CPU) lsr() byte {
	v := cpu.fetch()
	cpu.Reg.SetFlag(Carry, (v&1) == 1)
	v >>= 1
	cpu.Reg.updateNZ(v)
	cpu.writeBack(v)
	return 0
}

// No-operation. The undocumented absolute,X forms pay for a page
// crossing just like a load would.
func (cpu *CPU) nop() byte {
	switch cpu.opcode {
	case 0x1c, 0x3c, 0x5c, 0x7c, 0xdc, 0xfc:
		return 1
	}
	return 0
}

// Boolean OR
func (cpu *CPU) ora() byte {
	cpu.Reg.A |= cpu.fetch()
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 1
}

// Push Accumulator
func (cpu *CPU) pha() byte {
	cpu.push(cpu.Reg.A)
	return 0
}

// Push Processor flags
func (cpu *CPU) php() byte {
	cpu.push(cpu.Reg.PS | byte(Break) | byte(Unused))
	cpu.Reg.SetFlag(Break, false)
	cpu.Reg.SetFlag(Unused, false)
	return 0
}

// Pull (pop) Accumulator
func (cpu *CPU) pla() byte {
	cpu.Reg.A = cpu.pop()
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 0
}

// Pull (pop) Processor flags
func (cpu *CPU) plp() byte {
	cpu.Reg.PS = cpu.pop() | byte(Unused)
	return 0
}

// Rotate Left
func (cpu *CPU) rol() byte {
	v := cpu.fetch()
	c := cpu.Reg.flagBit(Carry)
	cpu.Reg.SetFlag(Carry, (v&0x80) == 0x80)
	v = (v << 1) | c
	cpu.Reg.updateNZ(v)
	cpu.writeBack(v)
	return 0
}

// Rotate Right
func (cpu *CPU) ror() byte {
	v := cpu.fetch()
	c := cpu.Reg.flagBit(Carry)
	cpu.Reg.SetFlag(Carry, (v&1) == 1)
	v = (v >> 1) | (c << 7)
	cpu.Reg.updateNZ(v)
	cpu.writeBack(v)
	return 0
}

// Return from Interrupt
func (cpu *CPU) rti() byte {
	cpu.Reg.PS = cpu.pop() &^ (byte(Break) | byte(Unused))
	cpu.Reg.PC = cpu.popAddress()
	return 0
}

// Return from Subroutine
func (cpu *CPU) rts() byte {
	cpu.Reg.PC = cpu.popAddress() + 1
	return 0
}

// Subtract with Carry
func (cpu *CPU) sbc() byte {
	cpu.addWithCarry(cpu.fetch() ^ 0xff)
	return 1
}

// Set Carry flag
func (cpu *CPU) sec() byte {
	cpu.Reg.SetFlag(Carry, true)
	return 0
}

// Set Decimal flag
func (cpu *CPU) sed() byte {
	cpu.Reg.SetFlag(Decimal, true)
	return 0
}

// Set InterruptDisable flag
func (cpu *CPU) sei() byte {
	cpu.Reg.SetFlag(InterruptDisable, true)
	return 0
}

// Store Accumulator
func (cpu *CPU) sta() byte {
	cpu.write(cpu.addrAbs, cpu.Reg.A)
	return 0
}

// Store X register
func (cpu *CPU) stx() byte {
	cpu.write(cpu.addrAbs, cpu.Reg.X)
	return 0
}

// Store Y register
func (cpu *CPU) sty() byte {
	cpu.write(cpu.addrAbs, cpu.Reg.Y)
	return 0
}

// Transfer Accumulator to X register
func (cpu *CPU) tax() byte {
	cpu.Reg.X = cpu.Reg.A
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 0
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay() byte {
	cpu.Reg.Y = cpu.Reg.A
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 0
}

// Transfer Stack pointer to X register
func (cpu *CPU) tsx() byte {
	cpu.Reg.X = cpu.Reg.SP
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 0
}

// Transfer X register to Accumulator
func (cpu *CPU) txa() byte {
	cpu.Reg.A = cpu.Reg.X
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 0
}

// Transfer X register to the Stack pointer
func (cpu *CPU) txs() byte {
	cpu.Reg.SP = cpu.Reg.X
	return 0
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya() byte {
	cpu.Reg.A = cpu.Reg.Y
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 0
}

// Undocumented opcode with no modeled behavior. It only takes time.
func (cpu *CPU) illegal() byte {
	return 0
}
