// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Bus interface presents the address space to the CPU. Every access
// the CPU makes through the bus costs exactly one clock tick, which the
// CPU charges after the Read or Write call returns.
type Bus interface {
	// Read returns the byte at the address.
	Read(addr uint16) byte

	// Write stores a byte at the address.
	Write(addr uint16, v byte)
}

// The TickHandler interface may be implemented by components that must
// stay synchronized with the CPU clock. OnTick is called once per tick,
// after the cycle counter has advanced.
type TickHandler interface {
	OnTick(cycles uint64)
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Read loads a single byte from the address and returns it.
func (m *FlatMemory) Read(addr uint16) byte {
	return m.b[addr]
}

// Write stores a byte at the requested address.
func (m *FlatMemory) Write(addr uint16, v byte) {
	m.b[addr] = v
}

// Load copies the bytes in 'b' into memory starting at 'addr'. Bytes that
// would run past the end of the address space wrap around to zero.
func (m *FlatMemory) Load(addr uint16, b []byte) {
	for _, v := range b {
		m.b[addr] = v
		addr++
	}
}

// ReadAddress reads a little-endian 16-bit value from the bus without
// charging any clock ticks. It is meant for tools and tests that inspect
// memory outside of instruction execution.
func ReadAddress(b Bus, addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// pageCrossed returns true if adding 'offset' to 'addr' changes the
// high byte of the address.
func pageCrossed(addr uint16, offset byte) bool {
	return (addr+uint16(offset))&0xff00 != addr&0xff00
}

// bugAddress returns the address the NMOS 6502 reads for the high byte
// of a pointer stored at 'addr'. The carry out of the low byte is never
// propagated, so a pointer at $xxFF takes its high byte from $xx00.
func bugAddress(addr uint16) uint16 {
	return addr&0xff00 | (addr+1)&0x00ff
}

// stackAddress returns the memory address of the stack slot 'sp'.
func stackAddress(sp byte) uint16 {
	return 0x100 | uint16(sp)
}
