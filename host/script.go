// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"

	"github.com/beevik/go2a03/cpu"
	lua "github.com/yuin/gopher-lua"
)

// RunScript executes a Lua script against the host's console. The script
// sees the following globals:
//
//	step([n])          execute n instructions (default 1), returns cycles
//	run([limit])       run until a breakpoint or limit, returns instructions
//	reg(name)          read a register or flag
//	setreg(name, v)    write a register or flag
//	peek(addr)         read a byte from the bus
//	poke(addr, v)      write a byte to the bus
//	cycles()           total cycles since power-on
//	nmi(), irq()       request an interrupt
//	print(...)         write to the host output
func (h *Host) RunScript(filename string) error {
	L := h.newLuaState()
	defer L.Close()
	return L.DoFile(filename)
}

func (h *Host) runScriptString(source string) error {
	L := h.newLuaState()
	defer L.Close()
	return L.DoString(source)
}

func (h *Host) newLuaState() *lua.LState {
	L := lua.NewState()

	fns := map[string]lua.LGFunction{
		"step":   h.luaStep,
		"run":    h.luaRun,
		"reg":    h.luaReg,
		"setreg": h.luaSetReg,
		"peek":   h.luaPeek,
		"poke":   h.luaPoke,
		"cycles": h.luaCycles,
		"nmi":    h.luaNMI,
		"irq":    h.luaIRQ,
		"print":  h.luaPrint,
	}
	for name, fn := range fns {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	return L
}

func (h *Host) luaStep(L *lua.LState) int {
	n := L.OptInt(1, 1)
	for i := 0; i < n; i++ {
		h.step()
	}
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	L.Push(lua.LNumber(h.cpu.Cycles))
	return 1
}

func (h *Host) luaRun(L *lua.LState) int {
	limit := L.OptInt(1, h.settings.MaxRunSteps)
	L.Push(lua.LNumber(h.run(limit)))
	return 1
}

func (h *Host) luaReg(L *lua.LState) int {
	name := L.CheckString(1)
	v, err := h.register(name)
	if err != nil {
		L.RaiseError("%v '%s'", err, name)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (h *Host) luaSetReg(L *lua.LState) int {
	name := L.CheckString(1)
	v := L.CheckInt(2)
	if err := h.setRegister(name, v); err != nil {
		L.RaiseError("%v '%s'", err, name)
	}
	return 0
}

func (h *Host) luaPeek(L *lua.LState) int {
	addr := checkRange(L, 1, 0xffff, "address")
	L.Push(lua.LNumber(h.console.Bus.Read(uint16(addr))))
	return 1
}

func (h *Host) luaPoke(L *lua.LState) int {
	addr := checkRange(L, 1, 0xffff, "address")
	v := checkRange(L, 2, 0xff, "byte value")
	h.console.Bus.Write(uint16(addr), byte(v))
	return 0
}

// checkRange returns integer argument n, raising a Lua argument error when
// it falls outside 0..limit.
func checkRange(L *lua.LState, n, limit int, what string) int {
	v := L.CheckInt(n)
	if v < 0 || v > limit {
		L.ArgError(n, fmt.Sprintf("%s out of range: %d", what, v))
	}
	return v
}

func (h *Host) luaCycles(L *lua.LState) int {
	L.Push(lua.LNumber(h.cpu.Cycles))
	return 1
}

func (h *Host) luaNMI(L *lua.LState) int {
	h.cpu.Interrupt(cpu.NMI)
	return 0
}

func (h *Host) luaIRQ(L *lua.LState) int {
	h.cpu.Interrupt(cpu.IRQ)
	return 0
}

func (h *Host) luaPrint(L *lua.LState) int {
	args := make([]string, L.GetTop())
	for i := range args {
		args[i] = L.Get(i + 1).String()
	}
	h.println(strings.Join(args, "\t"))
	return 0
}
