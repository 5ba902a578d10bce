// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a cycle-counted 6502 CPU instruction
// set and emulator.
package cpu

// CPU represents a single 6502 CPU. It reaches memory only through the
// Bus supplied by its owner.
type CPU struct {
	Reg       Registers       // CPU registers
	Bus       Bus             // assigned bus
	Cycles    uint64          // total number of ticks since creation
	LastPC    uint16          // address of the most recently executed opcode
	LastEvent Event           // what happened at the most recent boundary
	InstSet   *InstructionSet // Instruction set used by the CPU

	fetched   byte         // operand byte loaded by fetch
	addrAbs   uint16       // resolved absolute address
	addrRel   uint16       // resolved branch displacement, sign-extended
	opcode    byte         // opcode of the current instruction
	inst      *Instruction // descriptor of the current instruction
	remaining int          // ticks left in the current instruction

	irqPending bool
	nmiPending bool

	debugger  *Debugger
	storeByte func(cpu *CPU, addr uint16, v byte)
}

// NewCPU creates an emulated 6502 CPU bound to the specified bus.
func NewCPU(bus Bus) *CPU {
	cpu := &CPU{
		Bus:       bus,
		InstSet:   GetInstructionSet(),
		storeByte: (*CPU).storeByteNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// Tick advances the CPU by a single clock cycle. When the CPU is at an
// instruction boundary, the next instruction (or a pending interrupt
// entry) is carried out in full on this tick, and the ticks that follow
// account for the rest of its latency.
func (cpu *CPU) Tick() {
	if cpu.remaining == 0 {
		cpu.boundary()
	}
	if cpu.remaining > 0 {
		cpu.remaining--
	}
	cpu.Cycles++
}

// Complete returns true if the CPU is at an instruction boundary.
func (cpu *CPU) Complete() bool {
	return cpu.remaining == 0
}

// Step finishes the instruction in progress, then ticks the CPU through
// exactly one more instruction or interrupt entry. It returns the number
// of cycles that elapsed.
func (cpu *CPU) Step() int {
	start := cpu.Cycles
	for cpu.remaining > 0 {
		cpu.Tick()
	}
	cpu.Tick()
	for cpu.remaining > 0 {
		cpu.Tick()
	}
	return int(cpu.Cycles - start)
}

// Service pending interrupts, or decode and execute the instruction at PC.
func (cpu *CPU) boundary() {
	switch {
	case cpu.nmiPending:
		cpu.nmiPending = false
		cpu.nmi()
	case cpu.irqPending && !cpu.Reg.Flag(InterruptDisable):
		cpu.irqPending = false
		cpu.irq()
	default:
		// A masked IRQ request is dropped.
		cpu.irqPending = false
		cpu.execute()
	}

	// Update the debugger so it can handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
}

// Fetch, decode and execute a single instruction.
func (cpu *CPU) execute() {
	cpu.LastPC = cpu.Reg.PC
	cpu.LastEvent = EventInstruction
	cpu.opcode = cpu.nextByte()
	cpu.inst = cpu.InstSet.Lookup(cpu.opcode)
	cpu.remaining = int(cpu.inst.Cycles)

	extra := modeImpl[cpu.inst.Mode](cpu)
	extra &= cpu.inst.fn(cpu)
	cpu.remaining += int(extra)
}

// A returns the accumulator.
func (cpu *CPU) A() byte { return cpu.Reg.A }

// X returns the X index register.
func (cpu *CPU) X() byte { return cpu.Reg.X }

// Y returns the Y index register.
func (cpu *CPU) Y() byte { return cpu.Reg.Y }

// SP returns the stack pointer.
func (cpu *CPU) SP() byte { return cpu.Reg.SP }

// PC returns the program counter.
func (cpu *CPU) PC() uint16 { return cpu.Reg.PC }

// Status returns the packed processor status byte.
func (cpu *CPU) Status() byte { return cpu.Reg.PS }

// Flag returns true if the status bit 's' is set.
func (cpu *CPU) Flag(s Status) bool { return cpu.Reg.Flag(s) }

// Opcode returns the opcode of the most recently started instruction.
func (cpu *CPU) Opcode() byte { return cpu.opcode }

// Remaining returns the number of ticks left before the next
// instruction boundary.
func (cpu *CPU) Remaining() int { return cpu.remaining }

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Bus.Read(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	inst := cpu.GetInstruction(addr)
	return addr + uint16(inst.Length)
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

func (cpu *CPU) read(addr uint16) byte {
	return cpu.Bus.Read(addr)
}

// Read a little-endian 16-bit value at 'addr'.
func (cpu *CPU) readAddress(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (cpu *CPU) write(addr uint16, v byte) {
	cpu.storeByte(cpu, addr, v)
}

// Store the byte value 'v' add the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Bus.Write(addr, v)
}

// Store the byte value 'v' add the address 'addr', notifying the
// debugger first.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Bus.Write(addr, v)
}

// Push a value 'v' onto the stack.
func (cpu *CPU) push(v byte) {
	cpu.write(stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// Push the address 'addr' onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pop a value from the stack and return it.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.read(stackAddress(cpu.Reg.SP))
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | (uint16(hi) << 8)
}
