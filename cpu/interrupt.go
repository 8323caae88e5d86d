// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Interrupt identifies a pending interrupt request.
type Interrupt byte

// Interrupt request kinds
const (
	NoInterrupt Interrupt = iota
	NMI                   // non-maskable interrupt
	IRQ                   // maskable interrupt request
)

func (i Interrupt) String() string {
	switch i {
	case NMI:
		return "NMI"
	case IRQ:
		return "IRQ"
	default:
		return "none"
	}
}

// Interrupt raises an interrupt request. The request is sampled after the
// current instruction completes. A pending NMI is never replaced by an
// IRQ; requesting NoInterrupt withdraws whatever is pending.
func (cpu *CPU) Interrupt(kind Interrupt) {
	if kind == IRQ && cpu.pending != NoInterrupt {
		return
	}
	cpu.pending = kind
}

// Pending returns the interrupt request waiting to be serviced.
func (cpu *CPU) Pending() Interrupt {
	return cpu.pending
}

// handleInterrupt services the pending request, if any. An IRQ that
// arrives while interrupts are disabled stays pending until the
// InterruptDisable flag is cleared.
func (cpu *CPU) handleInterrupt() {
	switch cpu.pending {
	case NMI:
		cpu.serviceInterrupt(VectorNMI)
	case IRQ:
		if !cpu.Reg.IsSet(InterruptDisable) {
			cpu.serviceInterrupt(VectorIRQ)
		}
	}
}

// serviceInterrupt stores the program counter and status flags on the
// stack, then switches the program counter to the vector's target.
func (cpu *CPU) serviceInterrupt(vector uint16) {
	cpu.tick()
	cpu.pushAddress(cpu.Reg.PC)
	cpu.push(byte(cpu.Reg.PS&^Break | InterruptPushed))
	cpu.Reg.Set(InterruptDisable, true)
	cpu.Reg.PC = cpu.readAddress(vector)
	cpu.pending = NoInterrupt
}
