// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nes

import "github.com/beevik/go2a03/cpu"

// A Console is a CPU attached to an NES bus.
type Console struct {
	Bus *Bus
	CPU *cpu.CPU
}

// NewConsole creates a console with the given devices attached to its
// bus. The CPU is not powered on.
func NewConsole(d Devices) *Console {
	bus := NewBus(d)
	return &Console{
		Bus: bus,
		CPU: cpu.NewCPU(bus),
	}
}

// PowerOn runs the CPU power-on sequence and then jumps through the
// reset vector.
func (c *Console) PowerOn() {
	c.CPU.PowerOn()
	c.Reset()
}

// Reset loads the program counter from the reset vector. The vector is
// read without advancing the clock.
func (c *Console) Reset() {
	c.CPU.SetPC(cpu.ReadAddress(c.Bus, cpu.VectorReset))
}

// Step executes one instruction.
func (c *Console) Step() {
	c.CPU.Step()
}

// Cartridge returns the attached mapper if it is a CartridgeRAM.
func (c *Console) Cartridge() *CartridgeRAM {
	cart, _ := c.Bus.Devices.Mapper.(*CartridgeRAM)
	return cart
}
