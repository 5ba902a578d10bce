// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive shell around an emulated 6502
// CPU and 64K of flat memory. The shell loads binaries, drives the CPU
// clock, manages breakpoints and raises interrupts.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/beevik/clock6502/cpu"
	"github.com/beevik/clock6502/disasm"
	"github.com/beevik/cmd"
	"github.com/sirupsen/logrus"
)

// ErrQuit is returned by RunCommands when the quit command is executed.
var ErrQuit = errors.New("exiting program")

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

// A Host represents a fully emulated 6502 system: a CPU, 64K of memory and
// a built-in debugger.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	log         *logrus.Logger
	exprParser  *exprParser
	lastCmd     *cmd.Command
	lastArgs    []string
	state       state
	interrupted atomic.Bool
	settings    *settings
}

// New creates a new 6502 host environment.
func New() *Host {
	h := &Host{
		output:     bufio.NewWriter(os.Stdout),
		state:      stateProcessingCommands,
		settings:   newSettings(),
		exprParser: newExprParser(),
		log:        newLogger(os.Stderr),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(h.mem)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// CPU returns the emulated CPU.
func (h *Host) CPU() *cpu.CPU {
	return h.cpu
}

// Memory returns the emulated system's memory.
func (h *Host) Memory() *cpu.FlatMemory {
	return h.mem
}

// SetLogOutput redirects diagnostic and trace logging to w.
func (h *Host) SetLogOutput(w io.Writer) {
	h.log.SetOutput(w)
}

// SetTrace turns instruction tracing on or off.
func (h *Host) SetTrace(on bool) {
	h.settings.Trace = on
	h.onSettingsUpdate()
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered. It returns ErrQuit
// if the quit command was executed, or nil when the reader is exhausted.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) error {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	return h.processCommands()
}

func (h *Host) processCommands() error {
	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		c, args := h.lastCmd, h.lastArgs
		if line == "" {
			if c == nil || !h.interactive {
				continue
			}
		} else {
			var n cmd.Node
			n, args, err = cmds.Lookup(line)
			if err != nil {
				h.printf("%v.\n", err)
				continue
			}

			// A subtree without a subcommand lists its commands.
			if t, ok := n.(*cmd.Tree); ok {
				t.DisplayHelp(h.output)
				h.flush()
				continue
			}
			c = n.(*cmd.Command)
		}

		handler, ok := c.Data.(func(*Host, *cmd.Command, []string) error)
		if !ok {
			continue
		}
		h.lastCmd, h.lastArgs = c, args

		if err := handler(h, c, args); err != nil {
			return err
		}
	}
}

// Break interrupts a running CPU. It is safe to call from another
// goroutine, such as a signal handler.
func (h *Host) Break() {
	h.interrupted.Store(true)
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) displayPC() {
	d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
	h.println(d)
}

func (h *Host) cmdBreakpointList(c *cmd.Command, args []string) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c *cmd.Command, args []string) error {
	addr, ok := h.parseAddrArg(c, args)
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c *cmd.Command, args []string) error {
	addr, ok := h.parseAddrArg(c, args)
	if !ok {
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c *cmd.Command, args []string) error {
	return h.enableBreakpoint(c, args, true)
}

func (h *Host) cmdBreakpointDisable(c *cmd.Command, args []string) error {
	return h.enableBreakpoint(c, args, false)
}

func (h *Host) enableBreakpoint(c *cmd.Command, args []string, enable bool) error {
	addr, ok := h.parseAddrArg(c, args)
	if !ok {
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDataBreakpointList(c *cmd.Command, args []string) error {
	h.println("Addr  Enabled  Value")
	h.println("----- -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c *cmd.Command, args []string) error {
	addr, ok := h.parseAddrArg(c, args)
	if !ok {
		return nil
	}

	if len(args) > 1 {
		value, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}

	return nil
}

func (h *Host) cmdDataBreakpointRemove(c *cmd.Command, args []string) error {
	addr, ok := h.parseAddrArg(c, args)
	if !ok {
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c *cmd.Command, args []string) error {
	return h.enableDataBreakpoint(c, args, true)
}

func (h *Host) cmdDataBreakpointDisable(c *cmd.Command, args []string) error {
	return h.enableDataBreakpoint(c, args, false)
}

func (h *Host) enableDataBreakpoint(c *cmd.Command, args []string, enable bool) error {
	addr, ok := h.parseAddrArg(c, args)
	if !ok {
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Data breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDisassemble(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	addr, ok := h.parseStartAddr(args[0], h.settings.NextDisasmAddr)
	if !ok {
		return nil
	}

	lines := h.settings.DisasmLines
	if len(args) > 1 {
		l, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastArgs = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdExecute(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}
	defer file.Close()

	// Run the script's commands, then resume reading from the current
	// input.
	input, interactive := h.input, h.interactive
	lastCmd, lastArgs := h.lastCmd, h.lastArgs
	h.input, h.interactive = bufio.NewScanner(file), false
	err = h.processCommands()
	h.input, h.interactive = input, interactive
	h.lastCmd, h.lastArgs = lastCmd, lastArgs
	return err
}

func (h *Host) cmdEvaluate(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	v, err := h.exprParser.Parse(strings.Join(args, " "), h)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X (%d)\n", uint16(v), v)
	return nil
}

func (h *Host) cmdHelp(c *cmd.Command, args []string) error {
	if err := cmds.GetHelp(h.output, args); err != nil {
		h.printf("%v.\n", err)
	}
	h.flush()
	return nil
}

func (h *Host) cmdInterruptIRQ(c *cmd.Command, args []string) error {
	h.cpu.RequestInterrupt()
	if h.cpu.Flag(cpu.InterruptDisable) {
		h.println("IRQ requested. Interrupts are currently disabled.")
	} else {
		h.println("IRQ requested.")
	}
	return nil
}

func (h *Host) cmdInterruptNMI(c *cmd.Command, args []string) error {
	h.cpu.RequestNonMaskableInterrupt()
	h.println("NMI requested.")
	return nil
}

func (h *Host) cmdLoad(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	filename := args[0]
	addr, err := h.parseExpr(args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	n, err := h.mem.LoadFile(filename, addr)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	if n == 0 {
		h.printf("File '%s' is empty.\n", filepath.Base(filename))
		return nil
	}

	h.printf("Loaded '%s' to $%04X..$%04X.\n", filepath.Base(filename), addr, int(addr)+n-1)
	h.log.WithFields(logrus.Fields{
		"file":  filename,
		"addr":  fmt.Sprintf("$%04X", addr),
		"bytes": n,
	}).Info("binary loaded")

	h.cpu.SetPC(addr)
	h.settings.NextDisasmAddr = addr
	return nil
}

func (h *Host) cmdMemoryDump(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	addr, ok := h.parseStartAddr(args[0], h.settings.NextMemDumpAddr)
	if !ok {
		return nil
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(args) >= 2 {
		var err error
		bytes, err = h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastArgs = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	values := make([]byte, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		values = append(values, byte(v))
	}

	if err := h.mem.StoreBytes(addr, values); err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("Memory set at $%04X..$%04X.\n", addr, int(addr)+len(values)-1)
	return nil
}

func (h *Host) cmdQuit(c *cmd.Command, args []string) error {
	return ErrQuit
}

func (h *Host) cmdRegister(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		h.displayPC()
		return nil
	}
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	key := strings.ToLower(args[0])
	v, err := h.parseExpr(strings.Join(args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	reg := &h.cpu.Reg
	switch key {
	case "a":
		reg.A = byte(v)
	case "x":
		reg.X = byte(v)
	case "y":
		reg.Y = byte(v)
	case "sp":
		reg.SP = byte(v)
	case "ps":
		reg.PS = byte(v)
	case "pc", ".":
		key = "pc"
		reg.PC = v
	default:
		flag, ok := flagNames[key]
		if !ok {
			h.printf("Unknown register '%s'.\n", args[0])
			return nil
		}
		reg.SetFlag(flag, v != 0)
		h.printf("Flag %s set to %v.\n", strings.ToUpper(key), v != 0)
		return nil
	}

	if key == "pc" {
		h.printf("Register PC set to $%04X.\n", v)
		h.settings.NextDisasmAddr = v
	} else {
		h.printf("Register %s set to $%02X.\n", strings.ToUpper(key), byte(v))
	}
	return nil
}

var flagNames = map[string]cpu.Status{
	"n": cpu.Negative,
	"v": cpu.Overflow,
	"b": cpu.Break,
	"d": cpu.Decimal,
	"i": cpu.InterruptDisable,
	"z": cpu.Zero,
	"c": cpu.Carry,
}

func (h *Host) cmdReset(c *cmd.Command, args []string) error {
	h.cpu.Reset()
	h.printf("CPU reset. PC=$%04X.\n", h.cpu.Reg.PC)
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdRun(c *cmd.Command, args []string) error {
	if len(args) > 0 {
		pc, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.interrupted.Store(false)
	h.state = stateRunning
	for h.state == stateRunning {
		h.step()
		h.checkInterrupted()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c)

	default:
		key, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var b bool
			b, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, b)
			}
		default:
			var v int64
			v, err = h.exprParser.Parse(value, h)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c *cmd.Command, args []string) error {
	return h.stepCount(args, (*Host).step)
}

func (h *Host) cmdStepOver(c *cmd.Command, args []string) error {
	return h.stepCount(args, (*Host).stepOver)
}

// Step the CPU the number of times requested by the command's first
// argument, displaying up to MaxStepLines of the final steps.
func (h *Host) stepCount(args []string, stepFn func(h *Host)) error {
	count := 1
	if len(args) > 0 {
		n, err := h.parseExpr(args[0])
		if err == nil {
			count = int(n)
		}
	}

	h.interrupted.Store(false)
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		stepFn(h)
		h.checkInterrupted()
		switch {
		case h.state != stateRunning:
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdTick(c *cmd.Command, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	h.interrupted.Store(false)
	h.state = stateRunning
	for i := 0; i < count && h.state == stateRunning; i++ {
		boundary := h.cpu.Complete()
		h.cpu.Tick()
		if boundary {
			h.trace()
		}
		h.checkInterrupted()
	}
	h.state = stateProcessingCommands

	h.printf("C=%d remaining=%d %s\n", h.cpu.Cycles, h.cpu.Remaining(),
		disasm.GetRegisterString(&h.cpu.Reg))
	return nil
}

func (h *Host) step() {
	h.cpu.Step()
	h.trace()
}

func (h *Host) stepOver() {
	cpu := h.cpu

	// JSR instructions need to be handled specially.
	inst := cpu.GetInstruction(cpu.Reg.PC)
	if inst.Name != "JSR" {
		h.step()
		return
	}

	// Run until the subroutine returns to the instruction following the
	// JSR, or until interrupted.
	next := cpu.NextAddr(cpu.Reg.PC)
	for h.state == stateRunning {
		h.step()
		if cpu.Reg.PC == next {
			break
		}
		h.checkInterrupted()
	}
}

func (h *Host) checkInterrupted() {
	if h.interrupted.Swap(false) && h.state == stateRunning {
		h.state = stateBreakpoint
		h.println()
		h.displayPC()
	}
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode

	if h.settings.Trace {
		h.log.SetLevel(logrus.DebugLevel)
	} else {
		h.log.SetLevel(logrus.InfoLevel)
	}
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

// Parse the address argument of a command that requires one.
func (h *Host) parseAddrArg(c *cmd.Command, args []string) (uint16, bool) {
	if len(args) < 1 {
		h.displayHelpText(c)
		return 0, false
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

// Parse the starting address of a listing command. "$" continues from
// 'next', and "." starts at the program counter.
func (h *Host) parseStartAddr(arg string, next uint16) (uint16, bool) {
	switch arg {
	case "$":
		if next == 0 {
			next = h.cpu.Reg.PC
		}
		return next, true
	case ".":
		return h.cpu.Reg.PC, true
	default:
		a, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return 0, false
		}
		return a, true
	}
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.mem, addr)

	l := next - addr
	b := make([]byte, l)
	h.mem.LoadBytes(addr, b)

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b[:l]), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.GetRegisterString(&h.cpu.Reg)
	}

	if (flags&displayCycles) != 0 && h.settings.ShowCycles {
		str += fmt.Sprintf(" C=%d", h.cpu.Cycles)
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.Read(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(strings.TrimRight(string(buf), " "))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := start
	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(a), buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.mem.Read(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(strings.TrimRight(string(buf), " "))
	}
}

func (h *Host) displayHelpText(c *cmd.Command) {
	c.DisplayUsage(h.output)
	h.flush()
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	s = strings.ToLower(s)

	switch s {
	case "a":
		return int64(h.cpu.Reg.A), nil
	case "x":
		return int64(h.cpu.Reg.X), nil
	case "y":
		return int64(h.cpu.Reg.Y), nil
	case "sp":
		return int64(h.cpu.Reg.SP) | 0x0100, nil
	case "ps":
		return int64(h.cpu.Reg.PS), nil
	case ".", "pc":
		return int64(h.cpu.Reg.PC), nil
	}

	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func (h *Host) onBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	if h.state != stateRunning {
		return
	}
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(cpu *cpu.CPU, b *cpu.DataBreakpoint) {
	if h.state != stateRunning {
		return
	}
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)

	h.state = stateBreakpoint

	d, _ := h.disassemble(cpu.LastPC, 0)
	h.println(d)
}

func enabledString(enable bool) string {
	if enable {
		return "enabled"
	}
	return "disabled"
}
