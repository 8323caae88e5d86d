// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/go2a03/cpu"
)

// A handlerFunc implements a command. It is stored in the command's Data
// field.
type handlerFunc = func(h *Host, c *cmd.Command, args []string) error

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "go2a03"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})

	// Breakpoint commands
	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
		Data:        (*Host).cmdBreakpointList,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
		Data:  (*Host).cmdBreakpointAdd,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove the breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
		Data:        (*Host).cmdBreakpointRemove,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
		Data:        (*Host).cmdBreakpointEnable,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint so that" +
			" running code no longer stops on it.",
		Usage: "breakpoint disable <address>",
		Data:  (*Host).cmdBreakpointDisable,
	})

	// Data breakpoint commands
	db := root.AddSubtree(cmd.TreeDescriptor{Name: "databreakpoint", Brief: "Data breakpoint commands"})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints.",
		Usage:       "databreakpoint list",
		Data:        (*Host).cmdDataBreakpointList,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a data breakpoint at the specified memory" +
			" address. When the CPU stores a byte at this address the" +
			" breakpoint stops the CPU. If a value is given, the CPU" +
			" stops only when that value is stored.",
		Usage: "databreakpoint add <address> [<value>]",
		Data:  (*Host).cmdDataBreakpointAdd,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a data breakpoint",
		Description: "Remove the data breakpoint at the specified address.",
		Usage:       "databreakpoint remove <address>",
		Data:        (*Host).cmdDataBreakpointRemove,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a data breakpoint",
		Description: "Enable a previously added data breakpoint.",
		Usage:       "databreakpoint enable <address>",
		Data:        (*Host).cmdDataBreakpointEnable,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "disable",
		Brief:       "Disable a data breakpoint",
		Description: "Disable a previously added data breakpoint.",
		Usage:       "databreakpoint disable <address>",
		Data:        (*Host).cmdDataBreakpointDisable,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the" +
			" requested address. The number of lines defaults to the" +
			" DisasmLines setting. If no address is given, disassembly" +
			" continues where the last one stopped.",
		Usage: "disassemble [<address>] [<lines>]",
		Data:  (*Host).cmdDisassemble,
	})

	// Interrupt commands
	in := root.AddSubtree(cmd.TreeDescriptor{Name: "interrupt", Brief: "Interrupt commands"})
	in.AddCommand(cmd.CommandDescriptor{
		Name:        "nmi",
		Brief:       "Raise a non-maskable interrupt",
		Description: "Request an NMI. It is serviced after the next instruction.",
		Usage:       "interrupt nmi",
		Data:        (*Host).cmdInterruptNMI,
	})
	in.AddCommand(cmd.CommandDescriptor{
		Name:  "irq",
		Brief: "Raise a maskable interrupt",
		Description: "Request an IRQ. It is serviced after the next" +
			" instruction that completes with the interrupt disable" +
			" flag clear.",
		Usage: "interrupt irq",
		Data:  (*Host).cmdInterruptIRQ,
	})
	in.AddCommand(cmd.CommandDescriptor{
		Name:        "clear",
		Brief:       "Withdraw a pending interrupt",
		Description: "Withdraw any interrupt request that has not been serviced.",
		Usage:       "interrupt clear",
		Data:        (*Host).cmdInterruptClear,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load the contents of a binary file into internal" +
			" RAM or cartridge RAM at the specified address, $8000 by" +
			" default. Images that would overlap the device registers at" +
			" $2000-$401F are refused. If the image covers the reset" +
			" vector the CPU is reset through it; otherwise the program" +
			" counter is set to the load address.",
		Usage: "load <filename> [<address>]",
		Data:  (*Host).cmdLoad,
	})

	// Memory commands
	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	me.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory",
		Description: "Dump the contents of memory starting at the" +
			" specified address. The number of bytes defaults to the" +
			" MemDumpBytes setting.",
		Usage: "memory dump [<address>] [<bytes>]",
		Data:  (*Host).cmdMemoryDump,
	})
	me.AddCommand(cmd.CommandDescriptor{
		Name:        "set",
		Brief:       "Set memory",
		Description: "Store one or more bytes starting at the specified address.",
		Usage:       "memory set <address> <byte> [<byte> ...]",
		Data:        (*Host).cmdMemorySet,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "register",
		Brief: "View or change register values",
		Description: "When used without arguments, this command" +
			" displays the current register values and cycle count." +
			" Otherwise it sets a register or status flag. Registers" +
			" are A, X, Y, SP, PC and P. Flags are N, V, D, I, Z and C.",
		Usage: "register [<name> <value>]",
		Data:  (*Host).cmdRegister,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Power on the console",
		Description: "Run the power-on sequence and load the program" +
			" counter from the reset vector.",
		Usage: "reset",
		Data:  (*Host).cmdReset,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run the CPU",
		Description: "Run the CPU until a breakpoint is hit, the" +
			" program is interrupted or MaxRunSteps instructions have" +
			" executed. If an address is given, the program counter is" +
			" set to it first.",
		Usage: "run [<address>]",
		Data:  (*Host).cmdRun,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "script",
		Brief: "Run a Lua script",
		Description: "Run a Lua script file. Scripts drive the machine" +
			" through the step, run, reg, setreg, peek, poke, cycles, nmi" +
			" and irq functions.",
		Usage: "script <filename>",
		Data:  (*Host).cmdScript,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To" +
			" see the current values of all configuration variables," +
			" type set without any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})

	// Snapshot commands
	sn := root.AddSubtree(cmd.TreeDescriptor{Name: "snapshot", Brief: "Snapshot commands"})
	sn.AddCommand(cmd.CommandDescriptor{
		Name:  "save",
		Brief: "Save a snapshot",
		Description: "Save the CPU registers, internal RAM and" +
			" cartridge RAM to a compressed snapshot file.",
		Usage: "snapshot save <filename>",
		Data:  (*Host).cmdSnapshotSave,
	})
	sn.AddCommand(cmd.CommandDescriptor{
		Name:        "load",
		Brief:       "Load a snapshot",
		Description: "Restore the machine from a snapshot file.",
		Usage:       "snapshot load <filename>",
		Data:        (*Host).cmdSnapshotLoad,
	})

	// Step commands
	st := root.AddSubtree(cmd.TreeDescriptor{Name: "step", Brief: "Step the CPU"})
	st.AddCommand(cmd.CommandDescriptor{
		Name:  "in",
		Brief: "Step into next instruction",
		Description: "Execute one or more instructions, displaying" +
			" each one along with the registers and cycle count.",
		Usage: "step in [<count>]",
		Data:  (*Host).cmdStepIn,
	})
	st.AddCommand(cmd.CommandDescriptor{
		Name:  "over",
		Brief: "Step over next instruction",
		Description: "Step the CPU one or more instructions. A JSR is" +
			" run until its subroutine returns.",
		Usage: "step over [<count>]",
		Data:  (*Host).cmdStepOver,
	})
	st.AddCommand(cmd.CommandDescriptor{
		Name:  "out",
		Brief: "Step out of the current subroutine",
		Description: "Run the CPU until an RTS or RTI returns from the" +
			" current subroutine or interrupt handler.",
		Usage: "step out",
		Data:  (*Host).cmdStepOut,
	})

	// Add command shortcuts.
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step over")
	root.AddShortcut("si", "step in")
	root.AddShortcut("so", "step out")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}

// parseAddr parses an address argument, reporting a failure to the user.
func (h *Host) parseAddr(s string) (uint16, bool) {
	v, err := parseNumber(s, h.settings.HexMode)
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return uint16(v), true
}

func (h *Host) cmdHelp(c *cmd.Command, args []string) error {
	if err := cmds.GetHelp(h.output, args); err != nil {
		h.printf("%v.\n", err)
	}
	h.flush()
	return nil
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
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, ok := h.parseAddr(args[0])
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c *cmd.Command, args []string) error {
	b := h.selectBreakpoint(c, args)
	if b == nil {
		return nil
	}

	h.debugger.RemoveBreakpoint(b.Address)
	h.printf("Breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointEnable(c *cmd.Command, args []string) error {
	if b := h.selectBreakpoint(c, args); b != nil {
		b.Disabled = false
		h.printf("Breakpoint at $%04X enabled.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdBreakpointDisable(c *cmd.Command, args []string) error {
	if b := h.selectBreakpoint(c, args); b != nil {
		b.Disabled = true
		h.printf("Breakpoint at $%04X disabled.\n", b.Address)
	}
	return nil
}

// selectBreakpoint returns the breakpoint named by the first argument, or
// nil after reporting why there isn't one.
func (h *Host) selectBreakpoint(c *cmd.Command, args []string) *cpu.Breakpoint {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, ok := h.parseAddr(args[0])
	if !ok {
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
	}
	return b
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
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, ok := h.parseAddr(args[0])
	if !ok {
		return nil
	}

	if len(args) > 1 {
		value, err := parseNumber(args[1], h.settings.HexMode)
		if err != nil || value > 0xff {
			h.printf("Invalid byte value '%s'.\n", args[1])
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c *cmd.Command, args []string) error {
	if b := h.selectDataBreakpoint(c, args); b != nil {
		h.debugger.RemoveDataBreakpoint(b.Address)
		h.printf("Data breakpoint at $%04X removed.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c *cmd.Command, args []string) error {
	if b := h.selectDataBreakpoint(c, args); b != nil {
		b.Disabled = false
		h.printf("Data breakpoint at $%04X enabled.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdDataBreakpointDisable(c *cmd.Command, args []string) error {
	if b := h.selectDataBreakpoint(c, args); b != nil {
		b.Disabled = true
		h.printf("Data breakpoint at $%04X disabled.\n", b.Address)
	}
	return nil
}

func (h *Host) selectDataBreakpoint(c *cmd.Command, args []string) *cpu.DataBreakpoint {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, ok := h.parseAddr(args[0])
	if !ok {
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDisassemble(c *cmd.Command, args []string) error {
	addr := h.settings.NextDisasmAddr
	lines := h.settings.DisasmLines

	if len(args) > 0 {
		var ok bool
		if addr, ok = h.parseAddr(args[0]); !ok {
			return nil
		}
	}
	if len(args) > 1 {
		n, err := parseNumber(args[1], false)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = n
	}

	for i := 0; i < lines; i++ {
		var d string
		d, addr = h.disassemble(addr, 0)
		h.println(d)
	}

	h.settings.NextDisasmAddr = addr
	return nil
}

func (h *Host) cmdInterruptNMI(c *cmd.Command, args []string) error {
	h.cpu.Interrupt(cpu.NMI)
	h.println("NMI requested.")
	return nil
}

func (h *Host) cmdInterruptIRQ(c *cmd.Command, args []string) error {
	h.cpu.Interrupt(cpu.IRQ)
	if h.cpu.Pending() != cpu.IRQ {
		h.printf("IRQ ignored; %v is pending.\n", h.cpu.Pending())
		return nil
	}
	h.println("IRQ requested.")
	return nil
}

func (h *Host) cmdInterruptClear(c *cmd.Command, args []string) error {
	h.cpu.Interrupt(cpu.NoInterrupt)
	h.println("Pending interrupt cleared.")
	return nil
}

func (h *Host) cmdLoad(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	filename := args[0]
	addr := uint16(0x8000)
	if len(args) > 1 {
		var ok bool
		if addr, ok = h.parseAddr(args[1]); !ok {
			return nil
		}
	}

	code, err := os.ReadFile(filename)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	if len(code) == 0 {
		h.printf("File '%s' is empty.\n", filepath.Base(filename))
		return nil
	}

	n, err := h.loadBytes(addr, code)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	h.printf("Loaded '%s' to $%04X..$%04X.\n", filepath.Base(filename), addr, int(addr)+n-1)

	if int(addr) <= cpu.VectorReset && int(addr)+n > cpu.VectorReset+1 {
		h.console.Reset()
	} else {
		h.cpu.SetPC(addr)
	}
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.displayPC()
	return nil
}

func (h *Host) cmdMemoryDump(c *cmd.Command, args []string) error {
	addr := h.settings.NextMemDumpAddr
	bytes := h.settings.MemDumpBytes

	if len(args) > 0 {
		var ok bool
		if addr, ok = h.parseAddr(args[0]); !ok {
			return nil
		}
	}
	if len(args) > 1 {
		n, err := parseNumber(args[1], h.settings.HexMode)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = n
	}

	h.dumpMemory(addr, uint16(bytes))
	h.settings.NextMemDumpAddr = addr + uint16(bytes)
	return nil
}

func (h *Host) cmdMemorySet(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, ok := h.parseAddr(args[0])
	if !ok {
		return nil
	}

	values := make([]byte, 0, len(args)-1)
	for _, s := range args[1:] {
		v, err := parseNumber(s, h.settings.HexMode)
		if err != nil || v > 0xff {
			h.printf("Invalid byte value '%s'.\n", s)
			return nil
		}
		values = append(values, byte(v))
	}

	for i, v := range values {
		h.console.Bus.Write(addr+uint16(i), v)
	}
	h.dumpMemory(addr, uint16(len(values)))
	return nil
}

func (h *Host) cmdQuit(c *cmd.Command, args []string) error {
	return errQuit
}

func (h *Host) cmdRegister(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		h.displayPC()
		return nil
	}
	if len(args) < 2 {
		h.displayUsage(c)
		return nil
	}

	v, err := parseNumber(args[1], h.settings.HexMode)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if err := h.setRegister(args[0], v); err != nil {
		h.printf("Unknown register '%s'.\n", args[0])
		return nil
	}

	h.printf("Register %s set to $%X.\n", strings.ToUpper(args[0]), v)
	h.displayPC()
	return nil
}

func (h *Host) cmdReset(c *cmd.Command, args []string) error {
	h.console.PowerOn()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c *cmd.Command, args []string) error {
	if len(args) > 0 {
		addr, ok := h.parseAddr(args[0])
		if !ok {
			return nil
		}
		h.cpu.SetPC(addr)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	n := h.run(h.settings.MaxRunSteps)
	h.printf("Stopped after %d instructions.\n", n)
	h.displayPC()
	return nil
}

func (h *Host) cmdScript(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if err := h.RunScript(args[0]); err != nil {
		h.printf("Script failed: %v\n", err)
	}
	return nil
}

func (h *Host) cmdSet(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := args[0], strings.Join(args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			h.printf("Setting '%s' not found.\n", key)
			return nil
		case reflect.Bool:
			var b bool
			if b, err = stringToBool(value); err == nil {
				err = h.settings.Set(key, b)
			}
		default:
			var v int
			if v, err = parseNumber(value, h.settings.HexMode); err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.println("Setting updated.")
	}
	return nil
}

func (h *Host) cmdSnapshotSave(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	b, err := h.console.MakeSnapshot()
	if err == nil {
		err = os.WriteFile(args[0], b, 0644)
	}
	if err != nil {
		h.printf("Failed to save snapshot: %v\n", err)
		return nil
	}
	h.printf("Snapshot saved to '%s'.\n", filepath.Base(args[0]))
	return nil
}

func (h *Host) cmdSnapshotLoad(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	b, err := os.ReadFile(args[0])
	if err == nil {
		err = h.console.LoadSnapshot(b)
	}
	if err != nil {
		h.printf("Failed to load snapshot: %v\n", err)
		return nil
	}
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.printf("Snapshot loaded from '%s'.\n", filepath.Base(args[0]))
	h.displayPC()
	return nil
}

func (h *Host) cmdStepIn(c *cmd.Command, args []string) error {
	return h.stepRepeat(args, h.step)
}

func (h *Host) cmdStepOver(c *cmd.Command, args []string) error {
	return h.stepRepeat(args, h.stepOver)
}

func (h *Host) cmdStepOut(c *cmd.Command, args []string) error {
	h.breakFlag.Store(false)
	h.state = stateRunning
	h.stepOut()
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.displayPC()
	return nil
}

// stepRepeat calls fn the number of times given by the first argument,
// showing only the last few instructions of a long step.
func (h *Host) stepRepeat(args []string, fn func()) error {
	count := 1
	if len(args) > 0 {
		n, err := parseNumber(args[0], false)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = n
	}

	h.breakFlag.Store(false)
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		fn()
		switch {
		case i == h.settings.StepLinesToDisplay:
			h.println("...")
		case i < h.settings.StepLinesToDisplay:
			h.displayPC()
		}
		if h.breakFlag.Swap(false) {
			break
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}
