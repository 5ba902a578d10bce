package cpu_test

import (
	"testing"

	"github.com/beevik/clock6502/cpu"
)

func loadCPU(t *testing.T, origin uint16, code ...byte) (*cpu.CPU, *cpu.FlatMemory) {
	t.Helper()
	mem := cpu.NewFlatMemory()
	if err := mem.StoreBytes(origin, code); err != nil {
		t.Fatal(err)
	}
	c := cpu.NewCPU(mem)
	c.SetPC(origin)
	return c, mem
}

func stepCPU(c *cpu.CPU, steps int) int {
	cycles := 0
	for i := 0; i < steps; i++ {
		cycles += c.Step()
	}
	return cycles
}

func runCPU(t *testing.T, steps int, code ...byte) *cpu.CPU {
	c, _ := loadCPU(t, 0x1000, code...)
	stepCPU(c, steps)
	return c
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.PC() != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.PC())
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	t.Helper()
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.A() != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.A())
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.SP() != sp {
		t.Errorf("stack pointer incorrect. exp: %02X, got $%02X", sp, c.SP())
	}
}

func expectPS(t *testing.T, c *cpu.CPU, ps byte) {
	t.Helper()
	if c.Status() != ps {
		t.Errorf("status incorrect. exp: $%02X, got: $%02X", ps, c.Status())
	}
}

func expectFlag(t *testing.T, c *cpu.CPU, name string, s cpu.Status, on bool) {
	t.Helper()
	if c.Flag(s) != on {
		t.Errorf("%s flag incorrect. exp: %v, got: %v", name, on, c.Flag(s))
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := c.Bus.Read(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func TestAccumulator(t *testing.T) {
	c := runCPU(t, 3,
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	)

	expectPC(t, c, 0x1007)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	c, _ := loadCPU(t, 0x1000,
		0xa9, 0x11, // LDA #$11
		0x48,       // PHA
		0xa9, 0x12, // LDA #$12
		0x48,       // PHA
		0xa9, 0x13, // LDA #$13
		0x48, // PHA

		0x68,             // PLA
		0x8d, 0x00, 0x20, // STA $2000
		0x68,             // PLA
		0x8d, 0x01, 0x20, // STA $2001
		0x68,             // PLA
		0x8d, 0x02, 0x20, // STA $2002
	)

	stepCPU(c, 6)
	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x1ff, 0x11)
	expectMem(t, c, 0x1fe, 0x12)
	expectMem(t, c, 0x1fd, 0x13)

	stepCPU(c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x13)
	expectMem(t, c, 0x2001, 0x12)
	expectMem(t, c, 0x2002, 0x11)
}

func TestStackRoundTrip(t *testing.T) {
	c := runCPU(t, 4,
		0xa9, 0x80, // LDA #$80
		0x48,       // PHA
		0xa9, 0x01, // LDA #$01
		0x68, // PLA
	)
	expectACC(t, c, 0x80)
	expectFlag(t, c, "Negative", cpu.Negative, true)
	expectFlag(t, c, "Zero", cpu.Zero, false)

	c = runCPU(t, 4,
		0xa9, 0x00, // LDA #$00
		0x48,       // PHA
		0xa9, 0x81, // LDA #$81
		0x68, // PLA
	)
	expectACC(t, c, 0x00)
	expectFlag(t, c, "Negative", cpu.Negative, false)
	expectFlag(t, c, "Zero", cpu.Zero, true)
}

func TestIndirect(t *testing.T) {
	c := runCPU(t, 14,
		0xa2, 0x80, // LDX #$80
		0xa0, 0x40, // LDY #$40
		0xa9, 0xee, // LDA #$EE
		0x9d, 0x00, 0x20, // STA $2000,X
		0x99, 0x00, 0x20, // STA $2000,Y

		0xa9, 0x11, // LDA #$11
		0x85, 0x06, // STA $06
		0xa9, 0x05, // LDA #$05
		0x85, 0x07, // STA $07
		0xa2, 0x01, // LDX #$01
		0xa0, 0x01, // LDY #$01
		0xa9, 0xbb, // LDA #$BB
		0x81, 0x05, // STA ($05,X)
		0x91, 0x06, // STA ($06),Y
	)

	expectMem(t, c, 0x2080, 0xee)
	expectMem(t, c, 0x2040, 0xee)
	expectMem(t, c, 0x0511, 0xbb)
	expectMem(t, c, 0x0512, 0xbb)
}

func TestZeroPageWrap(t *testing.T) {
	c, mem := loadCPU(t, 0x1000,
		0xa2, 0x10, // LDX #$10
		0xb5, 0xf8, // LDA $F8,X
		0xa1, 0xef, // LDA ($EF,X)
	)
	mem.Write(0x0008, 0x77)
	mem.Write(0x00ff, 0x00)
	mem.Write(0x0000, 0x40)
	mem.Write(0x4000, 0x99)

	stepCPU(c, 2)
	expectACC(t, c, 0x77)

	stepCPU(c, 1)
	expectACC(t, c, 0x99)
}

func TestPageCross(t *testing.T) {
	c := runCPU(t, 5,
		0xa9, 0x55, // LDA #$55		; 2 cycles
		0x8d, 0x01, 0x11, // STA $1101		; 4 cycles
		0xa9, 0x00, // LDA #$00		; 2 cycles
		0xa2, 0xff, // LDX #$FF		; 2 cycles
		0xbd, 0x02, 0x10, // LDA $1002,X	; 5 cycles
	)

	expectPC(t, c, 0x100c)
	expectCycles(t, c, 15)
	expectACC(t, c, 0x55)
	expectMem(t, c, 0x1101, 0x55)
}

func TestIndirectYPageCross(t *testing.T) {
	tests := []struct {
		base   uint16
		cycles int
	}{
		{0x2010, 5},
		{0x20ff, 6},
	}

	for _, test := range tests {
		c, mem := loadCPU(t, 0x1000, 0xb1, 0x40) // LDA ($40),Y
		mem.StoreAddress(0x40, test.base)
		mem.Write(test.base+1, 0x3c)
		c.Reg.Y = 1

		if got := c.Step(); got != test.cycles {
			t.Errorf("LDA ($40),Y with base $%04X took %d cycles, exp %d", test.base, got, test.cycles)
		}
		expectACC(t, c, 0x3c)
	}
}

func TestStoreNoPageCrossPenalty(t *testing.T) {
	c := runCPU(t, 1, 0x9d, 0xff, 0x20) // STA $20FF,X
	c2, _ := loadCPU(t, 0x1000, 0x9d, 0xff, 0x20)
	c2.Reg.X = 1
	stepCPU(c2, 1)

	expectCycles(t, c, 5)
	expectCycles(t, c2, 5)
}

func TestOperandWidth(t *testing.T) {
	widths := map[cpu.Mode]int{
		cpu.IMP: 0, cpu.IMM: 1, cpu.ZPG: 1, cpu.ZPX: 1, cpu.ZPY: 1,
		cpu.REL: 1, cpu.IDX: 1, cpu.IDY: 1, cpu.ABS: 2, cpu.ABX: 2,
		cpu.ABY: 2, cpu.IND: 2,
	}
	for m, w := range widths {
		if got := m.OperandWidth(); got != w {
			t.Errorf("%v operand width incorrect. exp: %d, got: %d", m, w, got)
		}
	}

	set := cpu.GetInstructionSet()
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		if int(inst.Length) != 1+inst.Mode.OperandWidth() {
			t.Errorf("opcode $%02X length %d does not match mode %v", i, inst.Length, inst.Mode)
		}
	}

	tests := []struct {
		mode   cpu.Mode
		opcode byte
	}{
		{cpu.IMP, 0xea}, // NOP
		{cpu.IMP, 0x0a}, // ASL A
		{cpu.IMM, 0xa9}, // LDA #
		{cpu.ZPG, 0xa5}, // LDA zp
		{cpu.ZPX, 0xb5}, // LDA zp,X
		{cpu.ZPY, 0xb6}, // LDX zp,Y
		{cpu.REL, 0xf0}, // BEQ (not taken)
		{cpu.ABS, 0xad}, // LDA abs
		{cpu.ABX, 0xbd}, // LDA abs,X
		{cpu.ABY, 0xb9}, // LDA abs,Y
		{cpu.IDX, 0xa1}, // LDA (zp,X)
		{cpu.IDY, 0xb1}, // LDA (zp),Y
	}
	for _, test := range tests {
		c, _ := loadCPU(t, 0x1000, test.opcode, 0x10, 0x20)
		c.Step()
		exp := 0x1001 + uint16(test.mode.OperandWidth())
		if c.PC() != exp {
			t.Errorf("%v (opcode $%02X) PC incorrect. exp: $%04X, got: $%04X",
				test.mode, test.opcode, exp, c.PC())
		}
	}
}

func TestADC(t *testing.T) {
	c := runCPU(t, 3,
		0xa9, 0x50, // LDA #$50
		0x18,       // CLC
		0x69, 0x10, // ADC #$10
	)
	expectACC(t, c, 0x60)
	expectFlag(t, c, "Carry", cpu.Carry, false)
	expectFlag(t, c, "Overflow", cpu.Overflow, false)
	expectFlag(t, c, "Negative", cpu.Negative, false)
	expectFlag(t, c, "Zero", cpu.Zero, false)

	c = runCPU(t, 3,
		0xa9, 0x50, // LDA #$50
		0x18,       // CLC
		0x69, 0x50, // ADC #$50
	)
	expectACC(t, c, 0xa0)
	expectFlag(t, c, "Overflow", cpu.Overflow, true)
	expectFlag(t, c, "Negative", cpu.Negative, true)

	c = runCPU(t, 3,
		0xa9, 0xff, // LDA #$FF
		0x38,       // SEC
		0x69, 0x00, // ADC #$00
	)
	expectACC(t, c, 0x00)
	expectFlag(t, c, "Carry", cpu.Carry, true)
	expectFlag(t, c, "Zero", cpu.Zero, true)
	expectFlag(t, c, "Overflow", cpu.Overflow, false)
}

func TestSBC(t *testing.T) {
	c := runCPU(t, 3,
		0x38,       // SEC
		0xa9, 0x50, // LDA #$50
		0xe9, 0x20, // SBC #$20
	)
	expectACC(t, c, 0x30)
	expectFlag(t, c, "Carry", cpu.Carry, true)
	expectFlag(t, c, "Overflow", cpu.Overflow, false)

	c = runCPU(t, 3,
		0x38,       // SEC
		0xa9, 0x50, // LDA #$50
		0xe9, 0xb0, // SBC #$B0
	)
	expectACC(t, c, 0xa0)
	expectFlag(t, c, "Carry", cpu.Carry, false)
	expectFlag(t, c, "Overflow", cpu.Overflow, true)
	expectFlag(t, c, "Negative", cpu.Negative, true)

	c = runCPU(t, 3,
		0x18,       // CLC
		0xa9, 0x05, // LDA #$05
		0xe9, 0x04, // SBC #$04
	)
	expectACC(t, c, 0x00)
	expectFlag(t, c, "Zero", cpu.Zero, true)
	expectFlag(t, c, "Carry", cpu.Carry, true)
}

func TestLogical(t *testing.T) {
	c := runCPU(t, 2, 0xa9, 0xf0, 0x29, 0x3c) // LDA #$F0, AND #$3C
	expectACC(t, c, 0x30)

	c = runCPU(t, 2, 0xa9, 0x80, 0x09, 0x01) // LDA #$80, ORA #$01
	expectACC(t, c, 0x81)
	expectFlag(t, c, "Negative", cpu.Negative, true)

	c = runCPU(t, 2, 0xa9, 0x5a, 0x49, 0x5a) // LDA #$5A, EOR #$5A
	expectACC(t, c, 0x00)
	expectFlag(t, c, "Zero", cpu.Zero, true)
}

func TestShift(t *testing.T) {
	c := runCPU(t, 2, 0xa9, 0x81, 0x0a) // LDA #$81, ASL A
	expectACC(t, c, 0x02)
	expectFlag(t, c, "Carry", cpu.Carry, true)

	c = runCPU(t, 3, 0xa9, 0x01, 0x4a, 0x6a) // LDA #$01, LSR A, ROR A
	expectACC(t, c, 0x80)
	expectFlag(t, c, "Carry", cpu.Carry, false)
	expectFlag(t, c, "Negative", cpu.Negative, true)

	c = runCPU(t, 2, 0x38, 0x2a) // SEC, ROL A
	expectACC(t, c, 0x01)
	expectFlag(t, c, "Carry", cpu.Carry, false)

	c, mem := loadCPU(t, 0x1000,
		0x06, 0x20, // ASL $20
		0x66, 0x20, // ROR $20
	)
	mem.Write(0x20, 0xc0)
	if got := stepCPU(c, 1); got != 5 {
		t.Errorf("ASL zp cycles incorrect. exp: 5, got: %d", got)
	}
	expectMem(t, c, 0x20, 0x80)
	expectFlag(t, c, "Carry", cpu.Carry, true)
	stepCPU(c, 1)
	expectMem(t, c, 0x20, 0xc0)
	expectACC(t, c, 0x00)
}

func TestCompare(t *testing.T) {
	c := runCPU(t, 2, 0xa9, 0x40, 0xc9, 0x40) // LDA #$40, CMP #$40
	expectFlag(t, c, "Zero", cpu.Zero, true)
	expectFlag(t, c, "Carry", cpu.Carry, true)
	expectFlag(t, c, "Negative", cpu.Negative, false)

	c = runCPU(t, 2, 0xa2, 0x40, 0xe0, 0x41) // LDX #$40, CPX #$41
	expectFlag(t, c, "Zero", cpu.Zero, false)
	expectFlag(t, c, "Carry", cpu.Carry, false)
	expectFlag(t, c, "Negative", cpu.Negative, true)

	c = runCPU(t, 2, 0xa0, 0x80, 0xc0, 0x01) // LDY #$80, CPY #$01
	expectFlag(t, c, "Carry", cpu.Carry, true)
	expectFlag(t, c, "Negative", cpu.Negative, false)
}

func TestBIT(t *testing.T) {
	c, mem := loadCPU(t, 0x1000,
		0xa9, 0x0f, // LDA #$0F
		0x24, 0x10, // BIT $10
	)
	mem.Write(0x10, 0xc0)
	stepCPU(c, 2)
	expectFlag(t, c, "Zero", cpu.Zero, true)
	expectFlag(t, c, "Negative", cpu.Negative, true)
	expectFlag(t, c, "Overflow", cpu.Overflow, true)
	expectACC(t, c, 0x0f)
}

func TestWraparound(t *testing.T) {
	c := runCPU(t, 2, 0xa2, 0x00, 0xca) // LDX #$00, DEX
	if c.X() != 0xff {
		t.Errorf("X incorrect. exp: $FF, got: $%02X", c.X())
	}
	expectFlag(t, c, "Negative", cpu.Negative, true)
	expectFlag(t, c, "Zero", cpu.Zero, false)

	c = runCPU(t, 2, 0xa0, 0xff, 0xc8) // LDY #$FF, INY
	if c.Y() != 0x00 {
		t.Errorf("Y incorrect. exp: $00, got: $%02X", c.Y())
	}
	expectFlag(t, c, "Zero", cpu.Zero, true)

	c, mem := loadCPU(t, 0x1000, 0xc6, 0x30, 0xe6, 0x31) // DEC $30, INC $31
	mem.Write(0x31, 0xff)
	stepCPU(c, 2)
	expectMem(t, c, 0x30, 0xff)
	expectMem(t, c, 0x31, 0x00)
	expectFlag(t, c, "Zero", cpu.Zero, true)
}

func TestTransfer(t *testing.T) {
	c := runCPU(t, 4,
		0xa9, 0x00, // LDA #$00
		0xa2, 0x80, // LDX #$80
		0x9a, // TXS
		0xba, // TSX
	)
	expectSP(t, c, 0x80)
	expectFlag(t, c, "Negative", cpu.Negative, true)

	c = runCPU(t, 3,
		0xa2, 0x00, // LDX #$00
		0xa9, 0x01, // LDA #$01
		0x9a, // TXS
	)
	expectSP(t, c, 0x00)
	expectFlag(t, c, "Zero", cpu.Zero, false)

	c = runCPU(t, 3, 0xa9, 0x42, 0xaa, 0xa8) // LDA #$42, TAX, TAY
	if c.X() != 0x42 || c.Y() != 0x42 {
		t.Errorf("transfer incorrect. X=$%02X Y=$%02X", c.X(), c.Y())
	}
}

func TestBranchTiming(t *testing.T) {
	// Not taken.
	c := runCPU(t, 1, 0xa9, 0x01) // LDA #$01
	c.Bus.Write(0x1002, 0xf0)     // BEQ +$10
	c.Bus.Write(0x1003, 0x10)
	if got := c.Step(); got != 2 {
		t.Errorf("untaken branch cycles incorrect. exp: 2, got: %d", got)
	}
	expectPC(t, c, 0x1004)

	// Taken, same page.
	c = runCPU(t, 1, 0xa9, 0x00, 0xf0, 0x02) // LDA #$00, BEQ +$02
	if got := c.Step(); got != 3 {
		t.Errorf("taken branch cycles incorrect. exp: 3, got: %d", got)
	}
	expectPC(t, c, 0x1006)

	// Taken, crossing a page.
	c, _ = loadCPU(t, 0x10f0, 0xa9, 0x00, 0xf0, 0x20) // LDA #$00, BEQ +$20
	stepCPU(c, 1)
	if got := c.Step(); got != 4 {
		t.Errorf("page-crossing branch cycles incorrect. exp: 4, got: %d", got)
	}
	expectPC(t, c, 0x1114)

	// Taken backwards, crossing a page.
	c, _ = loadCPU(t, 0x1000, 0xa9, 0x01, 0xd0, 0xfa) // LDA #$01, BNE -$06
	stepCPU(c, 1)
	if got := c.Step(); got != 4 {
		t.Errorf("backward branch cycles incorrect. exp: 4, got: %d", got)
	}
	expectPC(t, c, 0x0ffe)
}

func TestJSRRTS(t *testing.T) {
	c, mem := loadCPU(t, 0x1000,
		0x20, 0x10, 0x10, // JSR $1010
		0xea, // NOP
	)
	mem.Write(0x1010, 0x60) // RTS

	if got := c.Step(); got != 6 {
		t.Errorf("JSR cycles incorrect. exp: 6, got: %d", got)
	}
	expectPC(t, c, 0x1010)
	expectSP(t, c, 0xfd)
	expectMem(t, c, 0x1ff, 0x10)
	expectMem(t, c, 0x1fe, 0x02)

	if got := c.Step(); got != 6 {
		t.Errorf("RTS cycles incorrect. exp: 6, got: %d", got)
	}
	expectPC(t, c, 0x1003)
	expectSP(t, c, 0xff)
}

func TestJMP(t *testing.T) {
	c := runCPU(t, 1, 0x4c, 0x34, 0x12) // JMP $1234
	expectPC(t, c, 0x1234)
	expectCycles(t, c, 3)
}

func TestIndirectJumpBug(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0x6c, 0xff, 0x30) // JMP ($30FF)
	mem.Write(0x30ff, 0x40)
	mem.Write(0x3000, 0x12)
	mem.Write(0x3100, 0x56)

	stepCPU(c, 1)
	expectPC(t, c, 0x1240)
	expectCycles(t, c, 5)
}

func TestPHPPLP(t *testing.T) {
	c := runCPU(t, 3,
		0x38, // SEC
		0x08, // PHP
		0x18, // CLC
	)
	expectMem(t, c, 0x1ff, byte(cpu.Carry|cpu.Break|cpu.Unused))
	expectFlag(t, c, "Break", cpu.Break, false)
	expectFlag(t, c, "Unused", cpu.Unused, false)

	c.Bus.Write(0x1003, 0x28) // PLP
	stepCPU(c, 1)
	expectFlag(t, c, "Carry", cpu.Carry, true)
	expectFlag(t, c, "Unused", cpu.Unused, true)
	expectSP(t, c, 0xff)
}

func TestFlagInstructions(t *testing.T) {
	c := runCPU(t, 3, 0x78, 0xf8, 0x38) // SEI, SED, SEC
	expectPS(t, c, byte(cpu.InterruptDisable|cpu.Decimal|cpu.Carry|cpu.Unused))

	c.Reg.SetFlag(cpu.Overflow, true)
	for i, op := range []byte{0x58, 0xd8, 0x18, 0xb8} { // CLI, CLD, CLC, CLV
		c.Bus.Write(0x1003+uint16(i), op)
	}
	stepCPU(c, 4)
	expectPS(t, c, byte(cpu.Unused))
}

func TestBRKRTI(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0x00, 0xff) // BRK
	mem.StoreAddress(0xfffe, 0x2000)
	mem.Write(0x2000, 0x40) // RTI

	if got := c.Step(); got != 7 {
		t.Errorf("BRK cycles incorrect. exp: 7, got: %d", got)
	}
	expectPC(t, c, 0x2000)
	expectSP(t, c, 0xfc)
	expectMem(t, c, 0x1ff, 0x10)
	expectMem(t, c, 0x1fe, 0x02)
	expectMem(t, c, 0x1fd, byte(cpu.Break|cpu.Unused))
	expectFlag(t, c, "InterruptDisable", cpu.InterruptDisable, true)
	expectFlag(t, c, "Break", cpu.Break, false)

	if got := c.Step(); got != 6 {
		t.Errorf("RTI cycles incorrect. exp: 6, got: %d", got)
	}
	expectPC(t, c, 0x1002)
	expectSP(t, c, 0xff)
	expectPS(t, c, 0x00)
}

func TestReset(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0xa9, 0x55, 0xa2, 0x66) // LDA #$55, LDX #$66
	mem.Write(0xfffc, 0x34)
	mem.Write(0xfffd, 0x12)
	stepCPU(c, 2)
	c.RequestInterrupt()

	c.Reset()
	expectPC(t, c, 0x1234)
	expectSP(t, c, 0xfd)
	expectPS(t, c, byte(cpu.Unused))
	expectACC(t, c, 0)
	if c.X() != 0 || c.Y() != 0 {
		t.Errorf("index registers not cleared. X=$%02X Y=$%02X", c.X(), c.Y())
	}
	if c.Remaining() != 8 {
		t.Errorf("reset latency incorrect. exp: 8, got: %d", c.Remaining())
	}

	for i := 0; i < 8; i++ {
		if c.Complete() {
			t.Fatalf("reset completed early after %d ticks", i)
		}
		c.Tick()
	}
	if !c.Complete() {
		t.Error("reset did not complete after 8 ticks")
	}

	// The IRQ requested before the reset was discarded.
	mem.Write(0x1234, 0xea) // NOP
	c.Step()
	expectPC(t, c, 0x1235)
}

func TestIRQ(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0xea, 0xea) // NOP, NOP
	mem.StoreAddress(0xfffe, 0x2000)
	mem.Write(0x2000, 0xea)

	c.RequestInterrupt()
	if got := c.Step(); got != 7 {
		t.Errorf("IRQ latency incorrect. exp: 7, got: %d", got)
	}
	expectPC(t, c, 0x2000)
	expectSP(t, c, 0xfc)
	expectMem(t, c, 0x1ff, 0x10)
	expectMem(t, c, 0x1fe, 0x00)
	expectMem(t, c, 0x1fd, byte(cpu.Unused|cpu.InterruptDisable))
	expectFlag(t, c, "InterruptDisable", cpu.InterruptDisable, true)
}

func TestIRQMasked(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0x78, 0x58, 0xea) // SEI, CLI, NOP
	mem.StoreAddress(0xfffe, 0x2000)

	stepCPU(c, 1)
	c.RequestInterrupt()

	// The request arrives while interrupts are disabled and is dropped.
	stepCPU(c, 2)
	expectPC(t, c, 0x1003)
	expectSP(t, c, 0xff)
}

func TestNMI(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0xea)
	mem.StoreAddress(0xfffa, 0x3000)
	mem.StoreAddress(0xfffe, 0x2000)
	mem.Write(0x3000, 0xea)
	c.Reg.SetFlag(cpu.InterruptDisable, true)

	c.RequestInterrupt()
	c.RequestNonMaskableInterrupt()
	if got := c.Step(); got != 8 {
		t.Errorf("NMI latency incorrect. exp: 8, got: %d", got)
	}
	expectPC(t, c, 0x3000)
	expectMem(t, c, 0x1fd, byte(cpu.Unused|cpu.InterruptDisable))

	// The IRQ is masked by the NMI entry.
	stepCPU(c, 1)
	expectPC(t, c, 0x3001)
}

func TestIllegalOpcode(t *testing.T) {
	set := cpu.GetInstructionSet()
	count := 0
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		if inst.Name != "???" {
			continue
		}
		count++

		c, _ := loadCPU(t, 0x1000, inst.Opcode)
		c.Reg.A, c.Reg.X, c.Reg.Y, c.Reg.SP = 0x12, 0x34, 0x56, 0x78
		c.Reg.PS = byte(cpu.Carry | cpu.Overflow | cpu.Unused)
		before := c.Reg

		cycles := c.Step()

		exp := before
		exp.PC = 0x1001
		if c.Reg != exp {
			t.Errorf("opcode $%02X changed registers. exp: %s, got: %s", inst.Opcode, exp.String(), c.Reg.String())
		}
		if cycles != int(inst.Cycles) {
			t.Errorf("opcode $%02X cycles incorrect. exp: %d, got: %d", inst.Opcode, inst.Cycles, cycles)
		}
		if !inst.Illegal {
			t.Errorf("opcode $%02X not marked illegal", inst.Opcode)
		}
	}
	if count != 78 {
		t.Errorf("illegal opcode count incorrect. exp: 78, got: %d", count)
	}
}

func TestUnofficialNOP(t *testing.T) {
	tests := []struct {
		opcode byte
		x      byte
		length uint16
		cycles int
	}{
		{0x1a, 0, 1, 2},
		{0x80, 0, 2, 2},
		{0x04, 0, 2, 3},
		{0x14, 0, 2, 4},
		{0x0c, 0, 3, 4},
		{0x1c, 0x00, 3, 4},
		{0x1c, 0xff, 3, 5},
	}

	for _, test := range tests {
		c, _ := loadCPU(t, 0x1000, test.opcode, 0x10, 0x20)
		c.Reg.X = test.x
		cycles := c.Step()
		expectPC(t, c, 0x1000+test.length)
		if cycles != test.cycles {
			t.Errorf("NOP $%02X (X=$%02X) cycles incorrect. exp: %d, got: %d",
				test.opcode, test.x, test.cycles, cycles)
		}
	}
}

func TestTick(t *testing.T) {
	c, _ := loadCPU(t, 0x1000, 0xa9, 0x42, 0xea) // LDA #$42, NOP
	if !c.Complete() {
		t.Fatal("new CPU not at an instruction boundary")
	}

	c.Tick()
	// The instruction takes effect on its first tick.
	expectACC(t, c, 0x42)
	if c.Complete() || c.Remaining() != 1 {
		t.Errorf("remaining incorrect. exp: 1, got: %d", c.Remaining())
	}
	if c.Opcode() != 0xa9 {
		t.Errorf("opcode incorrect. exp: $A9, got: $%02X", c.Opcode())
	}

	c.Tick()
	if !c.Complete() {
		t.Error("LDA did not complete after 2 ticks")
	}

	for i := 0; i < 100; i++ {
		c.Tick()
		if c.Remaining() < 0 {
			t.Fatalf("remaining went negative: %d", c.Remaining())
		}
	}
	expectCycles(t, c, 102)
}

func TestInstructionSet(t *testing.T) {
	set := cpu.GetInstructionSet()
	lda, nop := 0, 0
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		if inst.Opcode != byte(i) {
			t.Errorf("opcode $%02X stored as $%02X", i, inst.Opcode)
		}
		switch {
		case inst.Name == "LDA":
			lda++
		case inst.Name == "NOP" && !inst.Illegal:
			nop++
		}
	}
	if lda != 8 {
		t.Errorf("LDA variant count incorrect. exp: 8, got: %d", lda)
	}
	if nop != 1 {
		t.Errorf("NOP variant count incorrect. exp: 1, got: %d", nop)
	}

	inst := set.Lookup(0x6c)
	if inst.Name != "JMP" || inst.Mode != cpu.IND || inst.Cycles != 5 || inst.Length != 3 {
		t.Errorf("opcode $6C incorrect: %+v", *inst)
	}
}

func TestRegisterString(t *testing.T) {
	var r cpu.Registers
	r.Init()
	exp := "A=00 X=00 Y=00 PS=[--U-----] SP=FF PC=0000"
	if got := r.String(); got != exp {
		t.Errorf("register string incorrect.\nexp: %s\ngot: %s", exp, got)
	}

	r.SetFlag(cpu.Negative, true)
	r.SetFlag(cpu.Carry, true)
	r.SetFlag(cpu.Unused, false)
	if got := r.FlagString(); got != "N------C" {
		t.Errorf("flag string incorrect. exp: N------C, got: %s", got)
	}
}

func TestStoreBytesOutOfBounds(t *testing.T) {
	mem := cpu.NewFlatMemory()
	if err := mem.StoreBytes(0xfffe, []byte{1, 2, 3}); err != cpu.ErrMemoryOutOfBounds {
		t.Errorf("expected ErrMemoryOutOfBounds, got %v", err)
	}
	if err := mem.StoreBytes(0xfffe, []byte{1, 2}); err != nil {
		t.Error(err)
	}

	b := make([]byte, 4)
	mem.LoadBytes(0xfffe, b)
	if b[0] != 1 || b[1] != 2 || b[2] != 0 || b[3] != 0 {
		t.Errorf("LoadBytes incorrect: %v", b)
	}
}

func TestInterruptStatus(t *testing.T) {
	// IRQ entry: only the pushed copy carries Unused.
	c, mem := loadCPU(t, 0x1000, 0xea)
	mem.StoreAddress(0xfffe, 0x2000)
	c.Reg.PS = 0
	c.RequestInterrupt()
	c.Step()
	expectMem(t, c, 0x1fd, byte(cpu.Unused|cpu.InterruptDisable))
	expectPS(t, c, byte(cpu.InterruptDisable))

	// BRK entry: the pushed copy carries Break and Unused.
	c, mem = loadCPU(t, 0x1000, 0x00, 0x00)
	mem.StoreAddress(0xfffe, 0x2000)
	c.Reg.PS = 0
	c.Step()
	expectPC(t, c, 0x2000)
	expectMem(t, c, 0x1fd, byte(cpu.Break|cpu.Unused))
	expectPS(t, c, byte(cpu.InterruptDisable))
}

func TestLastEvent(t *testing.T) {
	c, mem := loadCPU(t, 0x1000, 0xea, 0xea)
	mem.StoreAddress(0xfffe, 0x2000)
	mem.StoreAddress(0xfffa, 0x3000)

	if c.LastEvent != cpu.EventNone {
		t.Errorf("initial event incorrect. exp: none, got: %v", c.LastEvent)
	}

	stepCPU(c, 1)
	if c.LastEvent != cpu.EventInstruction || c.LastPC != 0x1000 {
		t.Errorf("event incorrect. exp: instruction at $1000, got: %v at $%04X", c.LastEvent, c.LastPC)
	}

	c.RequestInterrupt()
	stepCPU(c, 1)
	if c.LastEvent != cpu.EventIRQ {
		t.Errorf("event incorrect. exp: IRQ, got: %v", c.LastEvent)
	}
	if c.LastPC != 0x1000 {
		t.Errorf("IRQ entry changed LastPC to $%04X", c.LastPC)
	}

	c.RequestNonMaskableInterrupt()
	stepCPU(c, 1)
	if c.LastEvent != cpu.EventNMI || c.LastEvent.String() != "NMI" {
		t.Errorf("event incorrect. exp: NMI, got: %v", c.LastEvent)
	}
}

func TestNextAddr(t *testing.T) {
	c, _ := loadCPU(t, 0x1000,
		0x20, 0x00, 0x20, // JSR $2000
		0xa9, 0x01, // LDA #$01
		0xe8, // INX
	)

	tests := []struct{ addr, next uint16 }{
		{0x1000, 0x1003},
		{0x1003, 0x1005},
		{0x1005, 0x1006},
	}
	for _, tt := range tests {
		if got := c.NextAddr(tt.addr); got != tt.next {
			t.Errorf("NextAddr($%04X) incorrect. exp: $%04X, got: $%04X", tt.addr, tt.next, got)
		}
	}
}
