// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The helpers below compute instruction results and flags. None of them
// touch the bus or the clock, so the official and undocumented handlers
// can share them while charging their own ticks.

// Add 'm' and the carry flag to the accumulator.
func (cpu *CPU) addValue(m byte) {
	a := cpu.Reg.A
	sum := uint16(a) + uint16(m) + uint16(boolToByte(cpu.Reg.IsSet(Carry)))
	r := byte(sum)
	cpu.Reg.Set(Carry, sum > 0xff)
	cpu.Reg.Set(Overflow, (a^r)&(m^r)&0x80 != 0)
	cpu.Reg.A = r
	cpu.Reg.SetNZ(r)
}

// Subtract 'm' and the borrow from the accumulator. Decimal mode is not
// implemented by the 2A03.
func (cpu *CPU) subtractValue(m byte) {
	cpu.addValue(^m)
}

func (cpu *CPU) compareValue(reg, m byte) {
	cpu.Reg.Set(Carry, reg >= m)
	cpu.Reg.SetNZ(reg - m)
}

func (cpu *CPU) andValue(m byte) {
	cpu.Reg.A &= m
	cpu.Reg.SetNZ(cpu.Reg.A)
}

func (cpu *CPU) orValue(m byte) {
	cpu.Reg.A |= m
	cpu.Reg.SetNZ(cpu.Reg.A)
}

func (cpu *CPU) xorValue(m byte) {
	cpu.Reg.A ^= m
	cpu.Reg.SetNZ(cpu.Reg.A)
}

func (cpu *CPU) shiftLeft(v byte) byte {
	cpu.Reg.Set(Carry, v&0x80 != 0)
	v <<= 1
	cpu.Reg.SetNZ(v)
	return v
}

func (cpu *CPU) shiftRight(v byte) byte {
	cpu.Reg.Set(Carry, v&0x01 != 0)
	v >>= 1
	cpu.Reg.SetNZ(v)
	return v
}

func (cpu *CPU) rotateLeft(v byte) byte {
	c := boolToByte(cpu.Reg.IsSet(Carry))
	cpu.Reg.Set(Carry, v&0x80 != 0)
	v = v<<1 | c
	cpu.Reg.SetNZ(v)
	return v
}

func (cpu *CPU) rotateRight(v byte) byte {
	c := boolToByte(cpu.Reg.IsSet(Carry))
	cpu.Reg.Set(Carry, v&0x01 != 0)
	v = v>>1 | c<<7
	cpu.Reg.SetNZ(v)
	return v
}

func (cpu *CPU) increment(v byte) byte {
	v++
	cpu.Reg.SetNZ(v)
	return v
}

func (cpu *CPU) decrement(v byte) byte {
	v--
	cpu.Reg.SetNZ(v)
	return v
}

// modify performs a read-modify-write on the operand. Memory operands
// take a read, an internal cycle, and a write. The accumulator form takes
// a single internal cycle.
func (cpu *CPU) modify(inst *Instruction, addr uint16, op func(*CPU, byte) byte) byte {
	if inst.Mode == ACC {
		cpu.tick()
		cpu.Reg.A = op(cpu, cpu.Reg.A)
		return cpu.Reg.A
	}
	v := cpu.read(addr)
	cpu.tick()
	v = op(cpu, v)
	cpu.write(addr, v)
	return v
}

// Execute a branch to 'target' if 'cond' holds. A taken branch costs a
// cycle, and another if the target lies on a different page than the
// next instruction.
func (cpu *CPU) branch(cond bool, target uint16) {
	if !cond {
		return
	}
	cpu.tick()
	if target&0xff00 != cpu.Reg.PC&0xff00 {
		cpu.tick()
	}
	cpu.Reg.PC = target
}

// Add with carry
func (cpu *CPU) adc(inst *Instruction, addr uint16) {
	cpu.addValue(cpu.read(addr))
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction, addr uint16) {
	cpu.andValue(cpu.read(addr))
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction, addr uint16) {
	cpu.modify(inst, addr, (*CPU).shiftLeft)
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction, addr uint16) {
	cpu.branch(!cpu.Reg.IsSet(Carry), addr)
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction, addr uint16) {
	cpu.branch(cpu.Reg.IsSet(Carry), addr)
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction, addr uint16) {
	cpu.branch(cpu.Reg.IsSet(Zero), addr)
}

// Bit Test
func (cpu *CPU) bit(inst *Instruction, addr uint16) {
	v := cpu.read(addr)
	cpu.Reg.Set(Zero, v&cpu.Reg.A == 0)
	cpu.Reg.Set(Overflow, v&0x40 != 0)
	cpu.Reg.Set(Negative, v&0x80 != 0)
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction, addr uint16) {
	cpu.branch(cpu.Reg.IsSet(Negative), addr)
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction, addr uint16) {
	cpu.branch(!cpu.Reg.IsSet(Zero), addr)
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction, addr uint16) {
	cpu.branch(!cpu.Reg.IsSet(Negative), addr)
}

// Break. The byte after the opcode is read and skipped, so the pushed
// return address is two past the BRK.
func (cpu *CPU) brk(inst *Instruction, addr uint16) {
	cpu.read(cpu.Reg.PC)
	cpu.Reg.PC++
	cpu.pushAddress(cpu.Reg.PC)
	cpu.push(byte(cpu.Reg.PS | InstructionPushed))
	cpu.Reg.Set(InterruptDisable, true)
	cpu.Reg.PC = cpu.readAddress(VectorBRK)
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction, addr uint16) {
	cpu.branch(!cpu.Reg.IsSet(Overflow), addr)
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction, addr uint16) {
	cpu.branch(cpu.Reg.IsSet(Overflow), addr)
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(Carry, false)
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(Decimal, false)
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(InterruptDisable, false)
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(Overflow, false)
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction, addr uint16) {
	cpu.compareValue(cpu.Reg.A, cpu.read(addr))
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction, addr uint16) {
	cpu.compareValue(cpu.Reg.X, cpu.read(addr))
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction, addr uint16) {
	cpu.compareValue(cpu.Reg.Y, cpu.read(addr))
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction, addr uint16) {
	cpu.modify(inst, addr, (*CPU).decrement)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.X--
	cpu.Reg.SetNZ(cpu.Reg.X)
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Y--
	cpu.Reg.SetNZ(cpu.Reg.Y)
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction, addr uint16) {
	cpu.xorValue(cpu.read(addr))
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction, addr uint16) {
	cpu.modify(inst, addr, (*CPU).increment)
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.X++
	cpu.Reg.SetNZ(cpu.Reg.X)
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Y++
	cpu.Reg.SetNZ(cpu.Reg.Y)
}

// Jump to memory address
func (cpu *CPU) jmp(inst *Instruction, addr uint16) {
	cpu.Reg.PC = addr
}

// Jump to subroutine. The pushed return address is the last byte of the
// JSR instruction.
func (cpu *CPU) jsr(inst *Instruction, addr uint16) {
	cpu.pushAddress(cpu.Reg.PC - 1)
	cpu.tick()
	cpu.Reg.PC = addr
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction, addr uint16) {
	cpu.Reg.A = cpu.read(addr)
	cpu.Reg.SetNZ(cpu.Reg.A)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction, addr uint16) {
	cpu.Reg.X = cpu.read(addr)
	cpu.Reg.SetNZ(cpu.Reg.X)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction, addr uint16) {
	cpu.Reg.Y = cpu.read(addr)
	cpu.Reg.SetNZ(cpu.Reg.Y)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction, addr uint16) {
	cpu.modify(inst, addr, (*CPU).shiftRight)
}

// No-operation. Every NOP variant spends one cycle after its operand is
// resolved, without touching the bus.
func (cpu *CPU) nop(inst *Instruction, addr uint16) {
	cpu.tick()
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction, addr uint16) {
	cpu.orValue(cpu.read(addr))
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction, addr uint16) {
	cpu.push(cpu.Reg.A)
	cpu.tick()
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction, addr uint16) {
	cpu.push(byte(cpu.Reg.PS | InstructionPushed))
	cpu.tick()
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction, addr uint16) {
	cpu.Reg.A = cpu.pull()
	cpu.tick()
	cpu.tick()
	cpu.Reg.SetNZ(cpu.Reg.A)
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction, addr uint16) {
	cpu.Reg.PS = pulledStatus(cpu.pull())
	cpu.tick()
	cpu.tick()
}

// Rotate Left
func (cpu *CPU) rol(inst *Instruction, addr uint16) {
	cpu.modify(inst, addr, (*CPU).rotateLeft)
}

// Rotate Right
func (cpu *CPU) ror(inst *Instruction, addr uint16) {
	cpu.modify(inst, addr, (*CPU).rotateRight)
}

// Return from Interrupt
func (cpu *CPU) rti(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.tick()
	cpu.Reg.PS = pulledStatus(cpu.pull())
	cpu.Reg.PC = cpu.pullAddress()
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, addr uint16) {
	cpu.Reg.PC = cpu.pullAddress() + 1
	cpu.tick()
	cpu.tick()
	cpu.tick()
}

// Subtract with Carry
func (cpu *CPU) sbc(inst *Instruction, addr uint16) {
	cpu.subtractValue(cpu.read(addr))
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(Carry, true)
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(Decimal, true)
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Set(InterruptDisable, true)
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction, addr uint16) {
	cpu.write(addr, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction, addr uint16) {
	cpu.write(addr, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction, addr uint16) {
	cpu.write(addr, cpu.Reg.Y)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.X = cpu.Reg.A
	cpu.Reg.SetNZ(cpu.Reg.X)
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.Y = cpu.Reg.A
	cpu.Reg.SetNZ(cpu.Reg.Y)
}

// Transfer Stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.X = cpu.Reg.SP
	cpu.Reg.SetNZ(cpu.Reg.X)
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.A = cpu.Reg.X
	cpu.Reg.SetNZ(cpu.Reg.A)
}

// Transfer X register to the Stack pointer
func (cpu *CPU) txs(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.SP = cpu.Reg.X
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction, addr uint16) {
	cpu.tick()
	cpu.Reg.A = cpu.Reg.Y
	cpu.Reg.SetNZ(cpu.Reg.A)
}

// Load Accumulator and X register (undocumented)
func (cpu *CPU) lax(inst *Instruction, addr uint16) {
	v := cpu.read(addr)
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.Reg.SetNZ(v)
}

// Store Accumulator AND X register (undocumented). No flags change.
func (cpu *CPU) sax(inst *Instruction, addr uint16) {
	cpu.write(addr, cpu.Reg.A&cpu.Reg.X)
}

// Decrement memory, then compare to accumulator (undocumented)
func (cpu *CPU) dcp(inst *Instruction, addr uint16) {
	v := cpu.modify(inst, addr, (*CPU).decrement)
	cpu.compareValue(cpu.Reg.A, v)
}

// Increment memory, then subtract with carry (undocumented)
func (cpu *CPU) isb(inst *Instruction, addr uint16) {
	v := cpu.modify(inst, addr, (*CPU).increment)
	cpu.subtractValue(v)
}

// Shift memory left, then OR into accumulator (undocumented)
func (cpu *CPU) slo(inst *Instruction, addr uint16) {
	v := cpu.modify(inst, addr, (*CPU).shiftLeft)
	cpu.orValue(v)
}

// Rotate memory left, then AND into accumulator (undocumented)
func (cpu *CPU) rla(inst *Instruction, addr uint16) {
	v := cpu.modify(inst, addr, (*CPU).rotateLeft)
	cpu.andValue(v)
}

// Shift memory right, then XOR into accumulator (undocumented)
func (cpu *CPU) sre(inst *Instruction, addr uint16) {
	v := cpu.modify(inst, addr, (*CPU).shiftRight)
	cpu.xorValue(v)
}

// Rotate memory right, then add with carry (undocumented)
func (cpu *CPU) rra(inst *Instruction, addr uint16) {
	v := cpu.modify(inst, addr, (*CPU).rotateRight)
	cpu.addValue(v)
}
