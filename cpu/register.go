// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Status is the processor status byte. Each flag occupies a fixed bit.
type Status byte

// Bits assigned to the processor status byte
const (
	Carry            Status = 1 << 0
	Zero             Status = 1 << 1
	InterruptDisable Status = 1 << 2
	Decimal          Status = 1 << 3
	Break            Status = 1 << 4
	Reserved         Status = 1 << 5
	Overflow         Status = 1 << 6
	Negative         Status = 1 << 7
)

// Stack images of the status byte. Hardware interrupts push with the break
// bit clear; BRK and PHP push with it set. Bit 5 is always set.
const (
	InterruptPushed   = Reserved
	InstructionPushed = Reserved | Break
)

// PowerOnStatus is the status byte after power-on.
const PowerOnStatus = InterruptDisable | InstructionPushed

// String returns the status as eight flag letters, upper case when set.
func (s Status) String() string {
	const on, off = "NV-BDIZC", "nv-bdizc"
	var b [8]byte
	for i := 0; i < 8; i++ {
		if s&(0x80>>i) != 0 {
			b[i] = on[i]
		} else {
			b[i] = off[i]
		}
	}
	return string(b[:])
}

// Registers contains the state of all 6502 registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	SP byte   // stack pointer ($100 + SP = stack memory location)
	PC uint16 // program counter
	PS Status // processor status
}

// Init puts the registers in their power-on state. The program counter
// is left untouched.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xfd
	r.PS = PowerOnStatus
}

// IsSet returns true if every bit of the flag mask is set.
func (r *Registers) IsSet(flag Status) bool {
	return r.PS&flag == flag
}

// Set turns the flag mask on or off.
func (r *Registers) Set(flag Status, on bool) {
	if on {
		r.PS |= flag
	} else {
		r.PS &^= flag
	}
}

// SetNZ updates the Zero and Negative flags from the result byte 'v'.
func (r *Registers) SetNZ(v byte) {
	r.Set(Zero, v == 0)
	r.Set(Negative, v&0x80 != 0)
}

// pulledStatus converts a byte pulled from the stack into a status value.
// The break bit only exists on the stack, and bit 5 always reads as set.
func pulledStatus(v byte) Status {
	return Status(v)&^Break | Reserved
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
