// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 2A03 instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/beevik/go2a03/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"%s",      // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"A%s",     // ACC
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice, most
// significant byte first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// readBytes reads 'n' bytes starting at 'addr' directly from the bus.
func readBytes(b cpu.Bus, addr uint16, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b.Read(addr + uint16(i))
	}
	return buf
}

// Disassemble the machine code on bus 'b' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code. Undocumented
// opcodes are marked with a leading '*'.
//
// The bus is read directly, so disassembly never advances the CPU clock.
// Reads of device registers may still have side effects.
func Disassemble(b cpu.Bus, addr uint16) (line string, next uint16) {
	inst := cpu.Decode(b.Read(addr))
	operand := readBytes(b, addr+1, int(inst.Length)-1)
	if inst.Mode == cpu.REL {
		// Convert relative offset to absolute address.
		braddr := addr + uint16(inst.Length) + uint16(int8(operand[0]))
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	}

	name := inst.Name
	if inst.Undocumented {
		name = "*" + name
	}
	line = strings.TrimSpace(name + " " + fmt.Sprintf(modeFormat[inst.Mode], hexString(operand)))
	next = addr + uint16(inst.Length)
	return
}

// Trace formats the instruction at the CPU's program counter along with
// the register state before it executes, in the layout of widely used
// reference logs:
//
//	C000  4C F5 C5  JMP $C5F5   A:00 X:00 Y:00 P:24 SP:FD CYC:7
func Trace(c *cpu.CPU) string {
	pc := c.Reg.PC
	line, next := Disassemble(c.Bus, pc)

	code := readBytes(c.Bus, pc, int(next-pc))
	codeHex := make([]string, len(code))
	for i, v := range code {
		codeHex[i] = hexString([]byte{v})
	}

	return fmt.Sprintf("%04X  %-8s  %-11s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		pc, strings.Join(codeHex, " "), line,
		c.Reg.A, c.Reg.X, c.Reg.Y, byte(c.Reg.PS), c.Reg.SP, c.Cycles)
}

// RegisterString returns a one-line display of the register file.
func RegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, r.PS, r.SP, r.PC)
}
