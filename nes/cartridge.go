// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nes

const cartridgeBase = 0x4020

// CartridgeRAM is a flat, writable stand-in for a cartridge. It covers
// the whole mapper region from $4020 through $FFFF with no banking, which
// is enough to run test programs and monitor sessions.
type CartridgeRAM struct {
	b [0x10000 - cartridgeBase]byte
}

// NewCartridgeRAM creates an empty cartridge.
func NewCartridgeRAM() *CartridgeRAM {
	return &CartridgeRAM{}
}

// Read returns the byte at the address. Addresses below the mapper
// region read as zero.
func (c *CartridgeRAM) Read(addr uint16) byte {
	if addr < cartridgeBase {
		return 0
	}
	return c.b[addr-cartridgeBase]
}

// Write stores a byte at the address.
func (c *CartridgeRAM) Write(addr uint16, v byte) {
	if addr >= cartridgeBase {
		c.b[addr-cartridgeBase] = v
	}
}

// Load copies 'b' into the cartridge starting at 'addr' and returns the
// number of bytes copied. Bytes that fall outside the mapper region are
// dropped.
func (c *CartridgeRAM) Load(addr uint16, b []byte) int {
	if addr < cartridgeBase {
		return 0
	}
	return copy(c.b[addr-cartridgeBase:], b)
}

// Bytes returns the cartridge contents, starting at $4020.
func (c *CartridgeRAM) Bytes() []byte {
	return c.b[:]
}
