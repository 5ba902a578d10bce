// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"

	"github.com/beevik/clock6502/cpu"
	"github.com/beevik/clock6502/disasm"
	"github.com/sirupsen/logrus"
)

// The debugHandler receives notifications from the cpu debugger, logs
// them and forwards them to the host.
type debugHandler struct {
	host *Host
}

func newDebugHandler(h *Host) *debugHandler {
	return &debugHandler{host: h}
}

func (d *debugHandler) OnBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	d.host.log.WithFields(logrus.Fields{
		"addr":   fmt.Sprintf("$%04X", b.Address),
		"cycles": cpu.Cycles,
	}).Info("breakpoint hit")
	d.host.onBreakpoint(cpu, b)
}

func (d *debugHandler) OnDataBreakpoint(cpu *cpu.CPU, b *cpu.DataBreakpoint) {
	d.host.log.WithFields(logrus.Fields{
		"addr":   fmt.Sprintf("$%04X", b.Address),
		"pc":     fmt.Sprintf("$%04X", cpu.LastPC),
		"cycles": cpu.Cycles,
	}).Info("data breakpoint hit")
	d.host.onDataBreakpoint(cpu, b)
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return log
}

// Log the most recent boundary event: the instruction just executed, or
// the entry into an interrupt handler.
func (h *Host) trace() {
	if !h.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	c := h.cpu
	fields := logrus.Fields{
		"a":      fmt.Sprintf("%02X", c.Reg.A),
		"x":      fmt.Sprintf("%02X", c.Reg.X),
		"y":      fmt.Sprintf("%02X", c.Reg.Y),
		"sp":     fmt.Sprintf("%02X", c.Reg.SP),
		"ps":     c.Reg.FlagString(),
		"cycles": c.Cycles,
	}

	switch c.LastEvent {
	case cpu.EventInstruction:
		line, _ := disasm.Disassemble(h.mem, c.LastPC)
		fields["pc"] = fmt.Sprintf("%04X", c.LastPC)
		h.log.WithFields(fields).Debug(line)
	case cpu.EventIRQ, cpu.EventNMI:
		fields["handler"] = fmt.Sprintf("%04X", c.Reg.PC)
		h.log.WithFields(fields).Debug(c.LastEvent.String() + " entry")
	}
}
