package nes

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"github.com/beevik/go2a03/cpu"
)

func newTestConsole(code ...byte) *Console {
	cart := NewCartridgeRAM()
	cart.Load(0x8000, code)
	cart.Load(cpu.VectorReset, []byte{0x00, 0x80})
	return NewConsole(Devices{Mapper: cart})
}

func TestConsolePowerOn(t *testing.T) {
	apu := &testDevice{}
	c := NewConsole(Devices{APU: apu, Mapper: NewCartridgeRAM()})
	c.Cartridge().Load(cpu.VectorReset, []byte{0x34, 0x12})
	c.PowerOn()

	if c.CPU.Reg.PC != 0x1234 {
		t.Errorf("PC not loaded from reset vector: $%04X", c.CPU.Reg.PC)
	}
	if c.CPU.Cycles != 22 {
		t.Errorf("power-on cycles: exp 22, got %d", c.CPU.Cycles)
	}
	if len(apu.accesses) != 22 || apu.accesses[0].addr != 0x4017 || apu.accesses[1].addr != 0x4015 {
		t.Errorf("power-on APU writes incorrect: %+v", apu.accesses)
	}
}

func TestConsoleProgram(t *testing.T) {
	c := newTestConsole(
		0xa9, 0x05, // LDA #$05
		0x85, 0x10, // STA $10
		0xad, 0x10, 0x08, // LDA $0810
	)
	c.Reset()
	for i := 0; i < 3; i++ {
		c.Step()
	}

	if c.CPU.Reg.A != 0x05 || c.Bus.RAM[0x10] != 0x05 {
		t.Errorf("program result incorrect: A=$%02X RAM[$10]=$%02X", c.CPU.Reg.A, c.Bus.RAM[0x10])
	}
	if c.CPU.Cycles != 9 {
		t.Errorf("cycles: exp 9, got %d", c.CPU.Cycles)
	}
}

func TestConsoleSnapshot(t *testing.T) {
	c := newTestConsole(0xe8, 0xe8, 0xe8) // INX x3
	c.Reset()
	c.Step()
	c.Bus.RAM[0x123] = 0x45
	c.CPU.Interrupt(cpu.IRQ)

	snap, err := c.MakeSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	c.Step()
	c.Bus.RAM[0x123] = 0
	c.Cartridge().Write(0x8000, 0xea)

	if err := c.LoadSnapshot(snap); err != nil {
		t.Fatal(err)
	}
	if c.CPU.Reg.X != 1 || c.CPU.Reg.PC != 0x8001 || c.CPU.Cycles != 2 {
		t.Errorf("CPU not restored: %+v cycles=%d", c.CPU.Reg, c.CPU.Cycles)
	}
	if c.CPU.Pending() != cpu.IRQ {
		t.Errorf("pending interrupt not restored")
	}
	if c.Bus.RAM[0x123] != 0x45 {
		t.Errorf("RAM not restored")
	}
	if c.Cartridge().Read(0x8000) != 0xe8 {
		t.Errorf("cartridge not restored")
	}
}

func TestConsoleSnapshotRejectsGarbage(t *testing.T) {
	c := newTestConsole()
	if err := c.LoadSnapshot([]byte("not gzip")); err == nil {
		t.Errorf("garbage snapshot accepted")
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write([]byte(`{"Version":1,"Info":"something else","State":{}}`))
	w.Close()
	if err := c.LoadSnapshot(buf.Bytes()); !errors.Is(err, ErrSnapshotInfo) {
		t.Errorf("foreign snapshot: exp ErrSnapshotInfo, got %v", err)
	}
}
