// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// resolve computes the effective address of the instruction's operand and
// advances the program counter past the operand bytes. Every operand byte
// fetched and every internal cycle spent by the addressing mode is charged
// here; the instruction itself charges the access to the effective address.
//
// Immediate operands resolve to the address of the operand byte, relative
// operands to the branch target. Implied and accumulator modes resolve to
// zero.
func (cpu *CPU) resolve(inst *Instruction) uint16 {
	switch inst.Mode {
	case IMP, ACC:
		return 0

	case IMM:
		addr := cpu.Reg.PC
		cpu.Reg.PC++
		return addr

	case REL:
		offset := cpu.fetch()
		return cpu.Reg.PC + uint16(int8(offset))

	case ZPG:
		return uint16(cpu.fetch())

	case ZPX:
		zp := cpu.fetch()
		cpu.tick()
		return uint16(zp + cpu.Reg.X)

	case ZPY:
		zp := cpu.fetch()
		cpu.tick()
		return uint16(zp + cpu.Reg.Y)

	case ABS:
		return cpu.fetchAddress()

	case ABX:
		return cpu.indexed(cpu.fetchAddress(), cpu.Reg.X, inst.Penalty)

	case ABY:
		return cpu.indexed(cpu.fetchAddress(), cpu.Reg.Y, inst.Penalty)

	case IND:
		return cpu.readPointer(cpu.fetchAddress())

	case IDX:
		zp := cpu.fetch()
		cpu.tick()
		return cpu.readPointer(uint16(zp + cpu.Reg.X))

	case IDY:
		base := cpu.readPointer(uint16(cpu.fetch()))
		return cpu.indexed(base, cpu.Reg.Y, inst.Penalty)

	default:
		panic("Invalid addressing mode")
	}
}

// indexed adds an index register to a base address. Instructions that
// write to the result always spend the fix-up cycle; the others spend it
// only when the index carries into the high byte.
func (cpu *CPU) indexed(base uint16, index byte, penalty bool) uint16 {
	if !penalty || pageCrossed(base, index) {
		cpu.tick()
	}
	return base + uint16(index)
}

// readPointer reads the 16-bit pointer stored at 'addr', reproducing the
// NMOS page-wrap defect on the high byte.
func (cpu *CPU) readPointer(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(bugAddress(addr))
	return uint16(lo) | uint16(hi)<<8
}
