// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive monitor for the 2A03 CPU.
//
// The host owns an NES console whose cartridge slot holds a flat RAM
// image. Within the host it is possible to load machine code, step and
// run it, trace every instruction with its cycle count, set address and
// data breakpoints, raise interrupts, dump and modify memory and
// registers, save and restore snapshots, and drive the machine from Lua
// scripts.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/beevik/go2a03/cpu"
	"github.com/beevik/go2a03/disasm"
	"github.com/beevik/go2a03/nes"
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

// Errors
var (
	errQuit            = errors.New("exiting program")
	errUnknownRegister = errors.New("unknown register")
	errDeviceRegion    = errors.New("image overlaps device registers at $2000-$401F")
)

var flagNames = map[string]cpu.Status{
	"n": cpu.Negative,
	"v": cpu.Overflow,
	"d": cpu.Decimal,
	"i": cpu.InterruptDisable,
	"z": cpu.Zero,
	"c": cpu.Carry,
}

// A Host is an NES console with a flat cartridge RAM, a debugger and the
// command interpreter that drives them.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	console     *nes.Console
	cart        *nes.CartridgeRAM
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastLine    string
	state       state
	settings    *settings
	breakFlag   atomic.Bool
}

// New creates a new host. The console is powered on before it is
// returned.
func New() *Host {
	h := &Host{
		output:   bufio.NewWriter(os.Stdout),
		state:    stateProcessingCommands,
		settings: newSettings(),
	}

	h.cart = nes.NewCartridgeRAM()
	h.console = nes.NewConsole(nes.Devices{Mapper: h.cart})
	h.cpu = h.console.CPU
	h.console.PowerOn()

	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered. An empty line
// repeats the previous command.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		if strings.TrimSpace(line) == "" {
			line = h.lastLine
		}
		if line == "" {
			continue
		}

		n, args, err := cmds.Lookup(line)
		if err != nil {
			h.printf("%v.\n", err)
			continue
		}

		c, ok := n.(*cmd.Command)
		if !ok {
			n.DisplayHelp(h.output)
			h.flush()
			continue
		}
		h.lastLine = line

		handler := c.Data.(handlerFunc)
		if err := handler(h, c, args); err != nil {
			break
		}
	}
	h.flush()
}

// Break interrupts a running CPU. It may be called from any goroutine.
func (h *Host) Break() {
	h.breakFlag.Store(true)
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

// step executes one instruction, printing a trace line first when
// tracing is enabled.
func (h *Host) step() {
	if h.settings.TraceEnabled {
		h.println(disasm.Trace(h.cpu))
	}
	h.cpu.Step()
}

// stepOver executes one instruction. A JSR is run until its subroutine
// returns to the instruction that follows it.
func (h *Host) stepOver() {
	inst := h.cpu.GetInstruction(h.cpu.Reg.PC)
	if inst.Mnemonic != cpu.JSR {
		h.step()
		return
	}

	next := h.cpu.Reg.PC + uint16(inst.Length)
	sp := h.cpu.Reg.SP
	h.step()
	for h.state == stateRunning && !h.breakFlag.Load() {
		if h.cpu.Reg.PC == next && h.cpu.Reg.SP == sp {
			return
		}
		h.step()
	}
}

// stepOut runs until an RTS or RTI pops the stack above the level it had
// when stepping began.
func (h *Host) stepOut() {
	sp := h.cpu.Reg.SP
	for h.state == stateRunning && !h.breakFlag.Load() {
		m := h.cpu.GetInstruction(h.cpu.Reg.PC).Mnemonic
		h.step()
		if (m == cpu.RTS || m == cpu.RTI) && h.cpu.Reg.SP > sp {
			return
		}
	}
}

// run steps the CPU until a breakpoint, a break request or the step
// limit stops it. It returns the number of instructions executed.
func (h *Host) run(limit int) int {
	h.breakFlag.Store(false)
	h.state = stateRunning

	n := 0
	for h.state == stateRunning {
		if limit > 0 && n >= limit {
			break
		}
		h.step()
		n++
		if h.breakFlag.Swap(false) {
			break
		}
	}

	h.state = stateProcessingCommands
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return n
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.console.Bus, addr)

	code := make([]string, 0, 3)
	for a := addr; a != next; a++ {
		code = append(code, fmt.Sprintf("%02X", h.console.Bus.Read(a)))
	}

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, strings.Join(code, " "), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.RegisterString(&h.cpu.Reg)
	}

	if (flags & displayCycles) != 0 {
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
			m := h.console.Bus.Read(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0x1fff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(r), buf[0:4])
		for i, c1, c2 := uint32(0), 6, 32; i < 8; i, c1, c2 = i+1, c1+3, c2+1 {
			a := r + i
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.console.Bus.Read(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

// loadBytes copies 'b' into internal RAM or cartridge RAM starting at
// 'addr'. Bytes that would run past $FFFF are dropped. Images that would
// overlap the device registers are refused. It returns the number of bytes
// stored.
func (h *Host) loadBytes(addr uint16, b []byte) (int, error) {
	n := min(len(b), 0x10000-int(addr))
	if int(addr) < 0x4020 && int(addr)+n > 0x2000 {
		return 0, errDeviceRegion
	}
	if addr >= 0x4020 {
		return h.cart.Load(addr, b), nil
	}
	for i := 0; i < n; i++ {
		h.console.Bus.Write(addr+uint16(i), b[i])
	}
	return n, nil
}

// register returns the value of a register or status flag by name.
func (h *Host) register(name string) (int, error) {
	r := &h.cpu.Reg
	switch strings.ToLower(name) {
	case "a":
		return int(r.A), nil
	case "x":
		return int(r.X), nil
	case "y":
		return int(r.Y), nil
	case "sp":
		return int(r.SP), nil
	case "pc":
		return int(r.PC), nil
	case "p", "ps":
		return int(r.PS), nil
	}
	if flag, ok := flagNames[strings.ToLower(name)]; ok {
		if r.IsSet(flag) {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errUnknownRegister
}

// setRegister assigns a register or status flag by name. Flags are set
// by any non-zero value.
func (h *Host) setRegister(name string, v int) error {
	r := &h.cpu.Reg
	switch strings.ToLower(name) {
	case "a":
		r.A = byte(v)
	case "x":
		r.X = byte(v)
	case "y":
		r.Y = byte(v)
	case "sp":
		r.SP = byte(v)
	case "pc":
		r.PC = uint16(v)
		h.settings.NextDisasmAddr = r.PC
	case "p", "ps":
		r.PS = cpu.Status(v)
	default:
		flag, ok := flagNames[strings.ToLower(name)]
		if !ok {
			return errUnknownRegister
		}
		r.Set(flag, v != 0)
	}
	return nil
}

func (h *Host) displayUsage(c *cmd.Command) {
	c.DisplayUsage(h.output)
	h.flush()
}

func (h *Host) onBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
}

func (h *Host) onDataBreakpoint(cpu *cpu.CPU, b *cpu.DataBreakpoint) {
	h.state = stateBreakpoint
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)
	if cpu.LastPC != cpu.Reg.PC {
		d, _ := h.disassemble(cpu.LastPC, 0)
		h.println(d)
	}
}
