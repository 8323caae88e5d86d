// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// A Snapshot holds the register file verbatim along with the pending
// interrupt request. The cycle counter is diagnostic and not included.
type Snapshot struct {
	A       byte
	X       byte
	Y       byte
	SP      byte
	PC      uint16
	PS      Status
	Pending Interrupt
}

// Snapshot captures the CPU state.
func (cpu *CPU) Snapshot() Snapshot {
	return Snapshot{
		A:       cpu.Reg.A,
		X:       cpu.Reg.X,
		Y:       cpu.Reg.Y,
		SP:      cpu.Reg.SP,
		PC:      cpu.Reg.PC,
		PS:      cpu.Reg.PS,
		Pending: cpu.pending,
	}
}

// Restore replaces the CPU state with the contents of a snapshot.
func (cpu *CPU) Restore(s Snapshot) {
	cpu.Reg = Registers{A: s.A, X: s.X, Y: s.Y, SP: s.SP, PC: s.PC, PS: s.PS}
	cpu.pending = s.Pending
}
