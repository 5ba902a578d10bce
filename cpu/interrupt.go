// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Interrupt vectors
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// Fixed latencies, in cycles
const (
	resetCycles = 8
	irqCycles   = 7
	nmiCycles   = 8
)

// Stack pointer value left by the reset sequence.
const resetSP = 0xfd

// An Event identifies what the CPU did at its most recent instruction
// boundary.
type Event byte

// Boundary events
const (
	EventNone        Event = iota // nothing yet, or a reset is in progress
	EventInstruction              // an instruction was executed
	EventIRQ                      // a maskable interrupt was entered
	EventNMI                      // a non-maskable interrupt was entered
)

var eventNames = [...]string{
	EventNone:        "none",
	EventInstruction: "instruction",
	EventIRQ:         "IRQ",
	EventNMI:         "NMI",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Reset puts the CPU into its power-on state. The registers are cleared,
// the program counter is loaded from the reset vector at $FFFC, and any
// pending interrupt requests are discarded. The CPU spends the next eight
// ticks completing the reset.
func (cpu *CPU) Reset() {
	cpu.Reg.A = 0
	cpu.Reg.X = 0
	cpu.Reg.Y = 0
	cpu.Reg.SP = resetSP
	cpu.Reg.PS = byte(Unused)
	cpu.loadVector(vectorReset)

	cpu.fetched = 0
	cpu.addrAbs = 0
	cpu.addrRel = 0
	cpu.opcode = 0
	cpu.inst = nil
	cpu.irqPending = false
	cpu.nmiPending = false
	cpu.LastEvent = EventNone

	cpu.remaining = resetCycles
}

// RequestInterrupt raises the maskable IRQ line. The request is sampled
// at the next instruction boundary, and is discarded if the
// InterruptDisable flag is set at that time.
func (cpu *CPU) RequestInterrupt() {
	cpu.irqPending = true
}

// RequestNonMaskableInterrupt raises the NMI line. The interrupt is taken
// at the next instruction boundary, ahead of any pending IRQ.
func (cpu *CPU) RequestNonMaskableInterrupt() {
	cpu.nmiPending = true
}

// Enter an interrupt handler. The program counter and a copy of the
// status register are pushed, InterruptDisable is set, and the program
// counter is loaded from 'vector'. The pushed copy has Break cleared and
// the bits in 'pushed' set. The live register only gains InterruptDisable.
func (cpu *CPU) handleInterrupt(vector uint16, pushed Status) {
	cpu.pushAddress(cpu.Reg.PC)
	cpu.push(cpu.Reg.PS&^byte(Break) | byte(pushed))
	cpu.Reg.SetFlag(InterruptDisable, true)
	cpu.loadVector(vector)
}

func (cpu *CPU) loadVector(vector uint16) {
	cpu.Reg.PC = cpu.readAddress(vector)
}

func (cpu *CPU) irq() {
	cpu.handleInterrupt(vectorIRQ, Unused|InterruptDisable)
	cpu.remaining = irqCycles
	cpu.LastEvent = EventIRQ
}

func (cpu *CPU) nmi() {
	cpu.handleInterrupt(vectorNMI, Unused|InterruptDisable)
	cpu.remaining = nmiCycles
	cpu.LastEvent = EventNMI
}
