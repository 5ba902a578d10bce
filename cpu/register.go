// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// Status identifies a single bit of the processor status byte.
type Status byte

// Bits assigned to the processor status byte
const (
	Carry            Status = 1 << 0 // C
	Zero             Status = 1 << 1 // Z
	InterruptDisable Status = 1 << 2 // I
	Decimal          Status = 1 << 3 // D
	Break            Status = 1 << 4 // B
	Unused           Status = 1 << 5 // U
	Overflow         Status = 1 << 6 // V
	Negative         Status = 1 << 7 // N
)

// Registers contains the state of all 6502 registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	SP byte   // stack pointer ($100 + SP = stack memory location)
	PC uint16 // program counter
	PS byte   // processor status bits
}

// Init initializes all registers. A, X, Y = 0. SP = 0xff. PC = 0.
// PS = Unused.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xff
	r.PC = 0
	r.PS = byte(Unused)
}

// Flag returns true if the processor status bit 's' is set.
func (r *Registers) Flag(s Status) bool {
	return (r.PS & byte(s)) != 0
}

// SetFlag sets the processor status bit 's' to 1 if 'on' is true.
// Otherwise it sets it to 0. No other bits are touched.
func (r *Registers) SetFlag(s Status, on bool) {
	if on {
		r.PS |= byte(s)
	} else {
		r.PS &^= byte(s)
	}
}

// Return 1 if the processor status bit 's' is set. Otherwise return 0.
func (r *Registers) flagBit(s Status) byte {
	if (r.PS & byte(s)) == 0 {
		return 0
	}
	return 1
}

// Update the Zero and Negative flags based on the value of 'v'.
func (r *Registers) updateNZ(v byte) {
	r.SetFlag(Zero, v == 0)
	r.SetFlag(Negative, (v&0x80) != 0)
}

// String returns a one-line summary of the register contents, e.g.
// "A=00 X=00 Y=00 PS=[--U-----] SP=FD PC=1000".
func (r *Registers) String() string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, r.FlagString(), r.SP, r.PC)
}

// FlagString renders the status byte from bit 7 down to bit 0 using the
// letters NVUBDIZC, with '-' for each clear bit.
func (r *Registers) FlagString() string {
	const names = "NVUBDIZC"
	b := []byte("--------")
	for i := 0; i < 8; i++ {
		if r.PS&(1<<(7-uint(i))) != 0 {
			b[i] = names[i]
		}
	}
	return string(b)
}
