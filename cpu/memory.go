// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Errors
var (
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
)

// The Bus interface is the only path through which the CPU reaches memory
// and memory-mapped devices. The CPU never owns it; the caller supplies it
// to NewCPU and keeps it alive for the CPU's lifetime.
type Bus interface {
	// Read loads a single byte from the address and returns it.
	Read(addr uint16) byte

	// Write stores a byte to the address.
	Write(addr uint16, v byte)
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Read loads a single byte from the address and returns it.
func (m *FlatMemory) Read(addr uint16) byte {
	return m.b[addr]
}

// Write stores a byte at the requested address.
func (m *FlatMemory) Write(addr uint16, v byte) {
	m.b[addr] = v
}

// LoadBytes loads multiple bytes from the address into the buffer 'b'.
// Bytes past the end of the address space read as zero.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	n := copy(b, m.b[addr:])
	clear(b[n:])
}

// StoreBytes stores multiple bytes starting at the requested address. It
// returns ErrMemoryOutOfBounds if the bytes would run past $FFFF.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) error {
	if int(addr)+len(b) > len(m.b) {
		return ErrMemoryOutOfBounds
	}
	copy(m.b[addr:], b)
	return nil
}

// StoreAddress stores a 16-bit little-endian address value to the
// requested address and the one following it.
func (m *FlatMemory) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = byte(v & 0xff)
	m.b[addr+1] = byte(v >> 8)
}

// LoadFile reads the binary file at 'filename' and stores its contents
// into memory starting at address 'addr'. It returns the number of bytes
// loaded.
func (m *FlatMemory) LoadFile(filename string, addr uint16) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return 0, err
	}

	if err := m.StoreBytes(addr, data); err != nil {
		return 0, fmt.Errorf("loading %d bytes at $%04X: %w", len(data), addr, err)
	}
	return len(data), nil
}

// Given a 1-byte stack pointer register, return the stack
// corresponding memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) + uint16(offset)
}
