// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a cycle-exact emulation of the 2A03, the
// NMOS 6502 variant used in the NES.
//
// Every bus access and every internal cycle is a tick. The CPU counts
// ticks in Cycles and reports each one to an optional TickHandler, so
// devices behind the bus can be kept in step with the processor.
package cpu

// Interrupt vectors
const (
	VectorNMI   = 0xfffa
	VectorReset = 0xfffc
	VectorIRQ   = 0xfffe
	VectorBRK   = 0xfffe
)

// CPU represents a single 2A03 CPU. It contains a pointer to the bus
// through which it reaches the rest of the machine.
type CPU struct {
	Reg      Registers // CPU registers
	Bus      Bus       // assigned address space
	Cycles   uint64    // total elapsed ticks
	LastPC   uint16    // address of the most recently executed instruction
	pending  Interrupt
	ticker   TickHandler
	debugger *Debugger
}

// NewCPU creates an emulated CPU bound to the specified bus. The
// registers start in their power-on state, but no bus writes are made
// until PowerOn is called.
func NewCPU(b Bus) *CPU {
	cpu := &CPU{Bus: b}
	cpu.Reg.Init()
	return cpu
}

// PowerOn puts the registers in their power-on state and silences the
// audio hardware: the frame counter, the channel enables, then every
// channel register from $4000 through $4013. Each write takes one tick.
// The program counter is not loaded.
func (cpu *CPU) PowerOn() {
	cpu.Reg.Init()
	cpu.pending = NoInterrupt

	cpu.write(0x4017, 0)
	cpu.write(0x4015, 0)
	for addr := uint16(0x4000); addr <= 0x4013; addr++ {
		cpu.write(addr, 0)
	}
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// GetInstruction returns the instruction at the requested address. The
// bus is read directly, so no ticks are charged.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	return Decode(cpu.Bus.Read(addr))
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	return addr + uint16(cpu.GetInstruction(addr).Length)
}

// Step the cpu by one instruction, then service any pending interrupt
// the instruction left behind.
func (cpu *CPU) Step() {
	cpu.LastPC = cpu.Reg.PC

	opcode := cpu.fetch()
	inst := Decode(opcode)
	addr := cpu.resolve(inst)
	inst.fn(cpu, inst, addr)

	cpu.handleInterrupt()

	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
}

// AttachTickHandler attaches a handler that is called once per tick.
func (cpu *CPU) AttachTickHandler(handler TickHandler) {
	cpu.ticker = handler
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
}

// DetachDebugger detaches the currently attached debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
}

// tick advances the clock by one cycle.
func (cpu *CPU) tick() {
	cpu.Cycles++
	if cpu.ticker != nil {
		cpu.ticker.OnTick(cpu.Cycles)
	}
}

// read loads a byte from the bus. The tick follows the access.
func (cpu *CPU) read(addr uint16) byte {
	v := cpu.Bus.Read(addr)
	cpu.tick()
	return v
}

// readAddress reads a little-endian word as two ticking byte reads.
func (cpu *CPU) readAddress(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// write stores a byte to the bus. The tick follows the access.
func (cpu *CPU) write(addr uint16, v byte) {
	if cpu.debugger != nil {
		cpu.debugger.onDataStore(cpu, addr, v)
	}
	cpu.Bus.Write(addr, v)
	cpu.tick()
}

// fetch reads the byte at PC and advances PC.
func (cpu *CPU) fetch() byte {
	v := cpu.read(cpu.Reg.PC)
	cpu.Reg.PC++
	return v
}

// fetchAddress reads the word at PC and advances PC past it.
func (cpu *CPU) fetchAddress() uint16 {
	lo := cpu.fetch()
	hi := cpu.fetch()
	return uint16(lo) | uint16(hi)<<8
}

// Push a value 'v' onto the stack.
func (cpu *CPU) push(v byte) {
	cpu.write(stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// Push the address 'addr' onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pull a value from the stack and return it.
func (cpu *CPU) pull() byte {
	cpu.Reg.SP++
	return cpu.read(stackAddress(cpu.Reg.SP))
}

// Pull a 16-bit address off the stack.
func (cpu *CPU) pullAddress() uint16 {
	lo := cpu.pull()
	hi := cpu.pull()
	return uint16(lo) | uint16(hi)<<8
}
