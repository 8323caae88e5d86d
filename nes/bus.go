// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nes wires the 2A03 CPU to the NES address space.
//
// The video, audio, controller and cartridge hardware are outside the
// scope of this package. Each is reached through a Device attached to
// the Bus, and a missing device behaves like open space: reads return
// zero and writes are dropped. The same holds for the unmapped holes at
// $4014 and $4018-$401F, which real hardware does not treat uniformly.
package nes

// A Device handles the CPU accesses to one region of the address space.
// Addresses are passed through unmodified, except for the video
// registers, which are folded onto $2000-$2007.
type Device interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}

// Devices lists the hardware attached to the bus. Any of them may be nil.
type Devices struct {
	PPU        Device // $2000-$3FFF
	APU        Device // $4000-$4013, $4015, $4017 (write)
	Controller Device // $4016-$4017
	Mapper     Device // $4020-$FFFF
}

// Bus is the CPU's view of the NES address space. It holds the 2KB of
// internal RAM and routes every other access to a Device.
type Bus struct {
	RAM     [0x800]byte
	Devices Devices
}

// NewBus creates a bus with cleared RAM and the given devices attached.
func NewBus(d Devices) *Bus {
	return &Bus{Devices: d}
}

// Read returns the byte at the address.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x7ff]
	case addr < 0x4000:
		return readDevice(b.Devices.PPU, 0x2000|addr&0x7)
	case addr <= 0x4013 || addr == 0x4015:
		return readDevice(b.Devices.APU, addr)
	case addr == 0x4016 || addr == 0x4017:
		return readDevice(b.Devices.Controller, addr)
	case addr >= 0x4020:
		return readDevice(b.Devices.Mapper, addr)
	default:
		return 0
	}
}

// Write stores a byte at the address. A write to $4017 reaches both the
// controller port and the audio frame counter.
func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x7ff] = v
	case addr < 0x4000:
		writeDevice(b.Devices.PPU, 0x2000|addr&0x7, v)
	case addr <= 0x4013 || addr == 0x4015:
		writeDevice(b.Devices.APU, addr, v)
	case addr == 0x4016:
		writeDevice(b.Devices.Controller, addr, v)
	case addr == 0x4017:
		writeDevice(b.Devices.Controller, addr, v)
		writeDevice(b.Devices.APU, addr, v)
	case addr >= 0x4020:
		writeDevice(b.Devices.Mapper, addr, v)
	}
}

func readDevice(d Device, addr uint16) byte {
	if d == nil {
		return 0
	}
	return d.Read(addr)
}

func writeDevice(d Device, addr uint16, v byte) {
	if d != nil {
		d.Write(addr, v)
	}
}
