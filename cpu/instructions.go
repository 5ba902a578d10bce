// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// An opsym is an internal symbol used to associate an opcode's data
// with its instructions.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPLA
	symPLP
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTX
	symSTY
	symTAX
	symTAY
	symTSX
	symTXA
	symTXS
	symTYA
	symXXX
)

// An instfunc carries out an instruction after its addressing mode has
// been resolved. It returns 1 if the instruction pays the extra cycle
// signaled by its addressing mode, 0 otherwise.
type instfunc func(cpu *CPU) byte

// Emulator implementation for each opcode
type opcodeImpl struct {
	sym  opsym
	name string
	fn   instfunc
}

var impl = []opcodeImpl{
	{symADC, "ADC", (*CPU).adc},
	{symAND, "AND", (*CPU).and},
	{symASL, "ASL", (*CPU).asl},
	{symBCC, "BCC", (*CPU).bcc},
	{symBCS, "BCS", (*CPU).bcs},
	{symBEQ, "BEQ", (*CPU).beq},
	{symBIT, "BIT", (*CPU).bit},
	{symBMI, "BMI", (*CPU).bmi},
	{symBNE, "BNE", (*CPU).bne},
	{symBPL, "BPL", (*CPU).bpl},
	{symBRK, "BRK", (*CPU).brk},
	{symBVC, "BVC", (*CPU).bvc},
	{symBVS, "BVS", (*CPU).bvs},
	{symCLC, "CLC", (*CPU).clc},
	{symCLD, "CLD", (*CPU).cld},
	{symCLI, "CLI", (*CPU).cli},
	{symCLV, "CLV", (*CPU).clv},
	{symCMP, "CMP", (*CPU).cmp},
	{symCPX, "CPX", (*CPU).cpx},
	{symCPY, "CPY", (*CPU).cpy},
	{symDEC, "DEC", (*CPU).dec},
	{symDEX, "DEX", (*CPU).dex},
	{symDEY, "DEY", (*CPU).dey},
	{symEOR, "EOR", (*CPU).eor},
	{symINC, "INC", (*CPU).inc},
	{symINX, "INX", (*CPU).inx},
	{symINY, "INY", (*CPU).iny},
	{symJMP, "JMP", (*CPU).jmp},
	{symJSR, "JSR", (*CPU).jsr},
	{symLDA, "LDA", (*CPU).lda},
	{symLDX, "LDX", (*CPU).ldx},
	{symLDY, "LDY", (*CPU).ldy},
	{symLSR, "LSR", (*CPU).lsr},
	{symNOP, "NOP", (*CPU).nop},
	{symORA, "ORA", (*CPU).ora},
	{symPHA, "PHA", (*CPU).pha},
	{symPHP, "PHP", (*CPU).php},
	{symPLA, "PLA", (*CPU).pla},
	{symPLP, "PLP", (*CPU).plp},
	{symROL, "ROL", (*CPU).rol},
	{symROR, "ROR", (*CPU).ror},
	{symRTI, "RTI", (*CPU).rti},
	{symRTS, "RTS", (*CPU).rts},
	{symSBC, "SBC", (*CPU).sbc},
	{symSEC, "SEC", (*CPU).sec},
	{symSED, "SED", (*CPU).sed},
	{symSEI, "SEI", (*CPU).sei},
	{symSTA, "STA", (*CPU).sta},
	{symSTX, "STX", (*CPU).stx},
	{symSTY, "STY", (*CPU).sty},
	{symTAX, "TAX", (*CPU).tax},
	{symTAY, "TAY", (*CPU).tay},
	{symTSX, "TSX", (*CPU).tsx},
	{symTXA, "TXA", (*CPU).txa},
	{symTXS, "TXS", (*CPU).txs},
	{symTYA, "TYA", (*CPU).tya},
	{symXXX, "???", (*CPU).illegal},
}

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	sym    opsym // internal opcode symbol
	mode   Mode  // addressing mode
	opcode byte  // opcode hex value
	cycles byte  // base number of CPU cycles to execute command
}

// All documented (opcode, mode) pairs
var data = []opcodeData{
	{symLDA, IMM, 0xa9, 2},
	{symLDA, ZPG, 0xa5, 3},
	{symLDA, ZPX, 0xb5, 4},
	{symLDA, ABS, 0xad, 4},
	{symLDA, ABX, 0xbd, 4},
	{symLDA, ABY, 0xb9, 4},
	{symLDA, IDX, 0xa1, 6},
	{symLDA, IDY, 0xb1, 5},

	{symLDX, IMM, 0xa2, 2},
	{symLDX, ZPG, 0xa6, 3},
	{symLDX, ZPY, 0xb6, 4},
	{symLDX, ABS, 0xae, 4},
	{symLDX, ABY, 0xbe, 4},

	{symLDY, IMM, 0xa0, 2},
	{symLDY, ZPG, 0xa4, 3},
	{symLDY, ZPX, 0xb4, 4},
	{symLDY, ABS, 0xac, 4},
	{symLDY, ABX, 0xbc, 4},

	{symSTA, ZPG, 0x85, 3},
	{symSTA, ZPX, 0x95, 4},
	{symSTA, ABS, 0x8d, 4},
	{symSTA, ABX, 0x9d, 5},
	{symSTA, ABY, 0x99, 5},
	{symSTA, IDX, 0x81, 6},
	{symSTA, IDY, 0x91, 6},

	{symSTX, ZPG, 0x86, 3},
	{symSTX, ZPY, 0x96, 4},
	{symSTX, ABS, 0x8e, 4},

	{symSTY, ZPG, 0x84, 3},
	{symSTY, ZPX, 0x94, 4},
	{symSTY, ABS, 0x8c, 4},

	{symADC, IMM, 0x69, 2},
	{symADC, ZPG, 0x65, 3},
	{symADC, ZPX, 0x75, 4},
	{symADC, ABS, 0x6d, 4},
	{symADC, ABX, 0x7d, 4},
	{symADC, ABY, 0x79, 4},
	{symADC, IDX, 0x61, 6},
	{symADC, IDY, 0x71, 5},

	{symSBC, IMM, 0xe9, 2},
	{symSBC, ZPG, 0xe5, 3},
	{symSBC, ZPX, 0xf5, 4},
	{symSBC, ABS, 0xed, 4},
	{symSBC, ABX, 0xfd, 4},
	{symSBC, ABY, 0xf9, 4},
	{symSBC, IDX, 0xe1, 6},
	{symSBC, IDY, 0xf1, 5},

	{symCMP, IMM, 0xc9, 2},
	{symCMP, ZPG, 0xc5, 3},
	{symCMP, ZPX, 0xd5, 4},
	{symCMP, ABS, 0xcd, 4},
	{symCMP, ABX, 0xdd, 4},
	{symCMP, ABY, 0xd9, 4},
	{symCMP, IDX, 0xc1, 6},
	{symCMP, IDY, 0xd1, 5},

	{symCPX, IMM, 0xe0, 2},
	{symCPX, ZPG, 0xe4, 3},
	{symCPX, ABS, 0xec, 4},

	{symCPY, IMM, 0xc0, 2},
	{symCPY, ZPG, 0xc4, 3},
	{symCPY, ABS, 0xcc, 4},

	{symBIT, ZPG, 0x24, 3},
	{symBIT, ABS, 0x2c, 4},

	{symCLC, IMP, 0x18, 2},
	{symSEC, IMP, 0x38, 2},
	{symCLI, IMP, 0x58, 2},
	{symSEI, IMP, 0x78, 2},
	{symCLD, IMP, 0xd8, 2},
	{symSED, IMP, 0xf8, 2},
	{symCLV, IMP, 0xb8, 2},

	{symBCC, REL, 0x90, 2},
	{symBCS, REL, 0xb0, 2},
	{symBEQ, REL, 0xf0, 2},
	{symBNE, REL, 0xd0, 2},
	{symBMI, REL, 0x30, 2},
	{symBPL, REL, 0x10, 2},
	{symBVC, REL, 0x50, 2},
	{symBVS, REL, 0x70, 2},

	{symBRK, IMP, 0x00, 7},

	{symAND, IMM, 0x29, 2},
	{symAND, ZPG, 0x25, 3},
	{symAND, ZPX, 0x35, 4},
	{symAND, ABS, 0x2d, 4},
	{symAND, ABX, 0x3d, 4},
	{symAND, ABY, 0x39, 4},
	{symAND, IDX, 0x21, 6},
	{symAND, IDY, 0x31, 5},

	{symORA, IMM, 0x09, 2},
	{symORA, ZPG, 0x05, 3},
	{symORA, ZPX, 0x15, 4},
	{symORA, ABS, 0x0d, 4},
	{symORA, ABX, 0x1d, 4},
	{symORA, ABY, 0x19, 4},
	{symORA, IDX, 0x01, 6},
	{symORA, IDY, 0x11, 5},

	{symEOR, IMM, 0x49, 2},
	{symEOR, ZPG, 0x45, 3},
	{symEOR, ZPX, 0x55, 4},
	{symEOR, ABS, 0x4d, 4},
	{symEOR, ABX, 0x5d, 4},
	{symEOR, ABY, 0x59, 4},
	{symEOR, IDX, 0x41, 6},
	{symEOR, IDY, 0x51, 5},

	{symINC, ZPG, 0xe6, 5},
	{symINC, ZPX, 0xf6, 6},
	{symINC, ABS, 0xee, 6},
	{symINC, ABX, 0xfe, 7},

	{symDEC, ZPG, 0xc6, 5},
	{symDEC, ZPX, 0xd6, 6},
	{symDEC, ABS, 0xce, 6},
	{symDEC, ABX, 0xde, 7},

	{symINX, IMP, 0xe8, 2},
	{symINY, IMP, 0xc8, 2},

	{symDEX, IMP, 0xca, 2},
	{symDEY, IMP, 0x88, 2},

	{symJMP, ABS, 0x4c, 3},
	{symJMP, IND, 0x6c, 5},

	{symJSR, ABS, 0x20, 6},
	{symRTS, IMP, 0x60, 6},

	{symRTI, IMP, 0x40, 6},

	{symNOP, IMP, 0xea, 2},

	{symTAX, IMP, 0xaa, 2},
	{symTXA, IMP, 0x8a, 2},
	{symTAY, IMP, 0xa8, 2},
	{symTYA, IMP, 0x98, 2},
	{symTXS, IMP, 0x9a, 2},
	{symTSX, IMP, 0xba, 2},

	{symPHA, IMP, 0x48, 3},
	{symPLA, IMP, 0x68, 4},
	{symPHP, IMP, 0x08, 3},
	{symPLP, IMP, 0x28, 4},

	{symASL, IMP, 0x0a, 2},
	{symASL, ZPG, 0x06, 5},
	{symASL, ZPX, 0x16, 6},
	{symASL, ABS, 0x0e, 6},
	{symASL, ABX, 0x1e, 7},

	{symLSR, IMP, 0x4a, 2},
	{symLSR, ZPG, 0x46, 5},
	{symLSR, ZPX, 0x56, 6},
	{symLSR, ABS, 0x4e, 6},
	{symLSR, ABX, 0x5e, 7},

	{symROL, IMP, 0x2a, 2},
	{symROL, ZPG, 0x26, 5},
	{symROL, ZPX, 0x36, 6},
	{symROL, ABS, 0x2e, 6},
	{symROL, ABX, 0x3e, 7},

	{symROR, IMP, 0x6a, 2},
	{symROR, ZPG, 0x66, 5},
	{symROR, ZPX, 0x76, 6},
	{symROR, ABS, 0x6e, 6},
	{symROR, ABX, 0x7e, 7},
}

// Undocumented opcodes that behave as a NOP on hardware. They still
// resolve their operand, so each consumes the bytes of its mode.
var unofficialNOPData = []opcodeData{
	{symNOP, IMP, 0x1a, 2},
	{symNOP, IMP, 0x3a, 2},
	{symNOP, IMP, 0x5a, 2},
	{symNOP, IMP, 0x7a, 2},
	{symNOP, IMP, 0xda, 2},
	{symNOP, IMP, 0xfa, 2},

	{symNOP, IMM, 0x80, 2},
	{symNOP, IMM, 0x82, 2},
	{symNOP, IMM, 0x89, 2},
	{symNOP, IMM, 0xc2, 2},
	{symNOP, IMM, 0xe2, 2},

	{symNOP, ZPG, 0x04, 3},
	{symNOP, ZPG, 0x44, 3},
	{symNOP, ZPG, 0x64, 3},

	{symNOP, ZPX, 0x14, 4},
	{symNOP, ZPX, 0x34, 4},
	{symNOP, ZPX, 0x54, 4},
	{symNOP, ZPX, 0x74, 4},
	{symNOP, ZPX, 0xd4, 4},
	{symNOP, ZPX, 0xf4, 4},

	{symNOP, ABS, 0x0c, 4},

	{symNOP, ABX, 0x1c, 4},
	{symNOP, ABX, 0x3c, 4},
	{symNOP, ABX, 0x5c, 4},
	{symNOP, ABX, 0x7c, 4},
	{symNOP, ABX, 0xdc, 4},
	{symNOP, ABX, 0xfc, 4},
}

// Base cycle counts for every remaining opcode. These execute the illegal
// handler in implied mode: they take time but change nothing else.
var illegalCycles = []struct {
	opcode byte
	cycles byte
}{
	{0x02, 2}, {0x12, 2}, {0x22, 2}, {0x32, 2}, {0x42, 2}, {0x52, 2},
	{0x62, 2}, {0x72, 2}, {0x92, 2}, {0xb2, 2}, {0xd2, 2}, {0xf2, 2},

	{0x03, 8}, {0x13, 8}, {0x23, 8}, {0x33, 8}, {0x43, 8}, {0x53, 8},
	{0x63, 8}, {0x73, 8}, {0x83, 6}, {0x93, 6}, {0xa3, 6}, {0xb3, 5},
	{0xc3, 8}, {0xd3, 8}, {0xe3, 8}, {0xf3, 8},

	{0x07, 5}, {0x17, 6}, {0x27, 5}, {0x37, 6}, {0x47, 5}, {0x57, 6},
	{0x67, 5}, {0x77, 6}, {0x87, 3}, {0x97, 4}, {0xa7, 3}, {0xb7, 4},
	{0xc7, 5}, {0xd7, 6}, {0xe7, 5}, {0xf7, 6},

	{0x0b, 2}, {0x1b, 7}, {0x2b, 2}, {0x3b, 7}, {0x4b, 2}, {0x5b, 7},
	{0x6b, 2}, {0x7b, 7}, {0x8b, 2}, {0x9b, 5}, {0xab, 2}, {0xbb, 4},
	{0xcb, 2}, {0xdb, 7}, {0xeb, 2}, {0xfb, 7},

	{0x0f, 6}, {0x1f, 7}, {0x2f, 6}, {0x3f, 7}, {0x4f, 6}, {0x5f, 7},
	{0x6f, 6}, {0x7f, 7}, {0x8f, 4}, {0x9f, 5}, {0xaf, 4}, {0xbf, 4},
	{0xcf, 6}, {0xdf, 7}, {0xef, 6}, {0xff, 7},

	{0x9c, 5}, {0x9e, 5},
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name    string // all-caps name of the instruction
	Mode    Mode   // addressing mode
	Opcode  byte   // hexadecimal opcode value
	Length  byte   // combined size of opcode and operand, in bytes
	Cycles  byte   // base number of CPU cycles to execute the instruction
	Illegal bool   // true if the opcode is undocumented
	fn      instfunc
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	instructions [256]Instruction // all instructions by opcode
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// Create an instruction set by combining the opcode data tables with the
// handler implementations.
func newInstructionSet() *InstructionSet {
	set := &InstructionSet{}

	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	fill := func(d opcodeData, illegal bool) {
		inst := &set.instructions[d.opcode]
		if inst.fn != nil {
			panic("duplicate opcode")
		}
		im := symToImpl[d.sym]
		inst.Name = im.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = byte(1 + d.mode.OperandWidth())
		inst.Cycles = d.cycles
		inst.Illegal = illegal
		inst.fn = im.fn
	}

	for _, d := range data {
		fill(d, false)
	}
	for _, d := range unofficialNOPData {
		fill(d, true)
	}
	for _, u := range illegalCycles {
		fill(opcodeData{symXXX, IMP, u.opcode, u.cycles}, true)
	}

	for i := 0; i < 256; i++ {
		if set.instructions[i].fn == nil {
			panic("missing instruction")
		}
	}
	return set
}

var instructionSet = newInstructionSet()

// GetInstructionSet returns the instruction set shared by all emulated
// CPUs. It is built once, when the package is initialized, and is never
// modified afterward.
func GetInstructionSet() *InstructionSet {
	return instructionSet
}
