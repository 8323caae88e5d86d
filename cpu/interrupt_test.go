package cpu_test

import (
	"testing"

	"github.com/beevik/go2a03/cpu"
)

func loadInterruptCPU() (*cpu.CPU, *cpu.FlatMemory) {
	c, mem := loadCPU(0x8000,
		0xea, // NOP
		0x58, // CLI
		0xea, // NOP
	)
	mem.Write(cpu.VectorNMI, 0x00)
	mem.Write(cpu.VectorNMI+1, 0x90)
	mem.Write(cpu.VectorIRQ, 0x00)
	mem.Write(cpu.VectorIRQ+1, 0xa0)
	mem.Write(0x9000, 0x40) // RTI
	mem.Write(0xa000, 0x40) // RTI
	return c, mem
}

func TestNMIRoundTrip(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.PS = cpu.Carry | cpu.Reserved
	c.Interrupt(cpu.NMI)

	stepCPU(c, 1)
	expectPC(t, c, 0x9000)
	expectCycles(t, c, 2+6)
	expectSP(t, c, 0xfa)
	expectMem(t, c, 0x1fd, 0x80)
	expectMem(t, c, 0x1fc, 0x01)
	expectMem(t, c, 0x1fb, byte(cpu.Carry|cpu.InterruptPushed))
	expectFlags(t, c, cpu.InterruptDisable, 0)
	if c.Pending() != cpu.NoInterrupt {
		t.Errorf("NMI still pending after service")
	}

	stepCPU(c, 1)
	expectPC(t, c, 0x8001)
	expectSP(t, c, 0xfd)
	expectCycles(t, c, 2+6+6)
	if c.Reg.PS != cpu.Carry|cpu.Reserved {
		t.Errorf("PS incorrect. exp: %v, got: %v", cpu.Carry|cpu.Reserved, c.Reg.PS)
	}
}

func TestNMIIgnoresInterruptDisable(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.Set(cpu.InterruptDisable, true)
	c.Interrupt(cpu.NMI)

	stepCPU(c, 1)
	expectPC(t, c, 0x9000)
}

func TestIRQMaskedStaysPending(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.Set(cpu.InterruptDisable, true)
	c.Interrupt(cpu.IRQ)

	stepCPU(c, 1)
	expectPC(t, c, 0x8001)
	expectCycles(t, c, 2)
	if c.Pending() != cpu.IRQ {
		t.Fatalf("masked IRQ was dropped")
	}

	// CLI unmasks the request, which is taken at the next boundary.
	stepCPU(c, 1)
	expectPC(t, c, 0xa000)
	expectCycles(t, c, 2+2+6)
	expectMem(t, c, 0x1fc, 0x02)
	expectFlags(t, c, cpu.InterruptDisable, 0)
	if c.Pending() != cpu.NoInterrupt {
		t.Errorf("IRQ still pending after service")
	}
}

func TestIRQServicedWhenEnabled(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.Set(cpu.InterruptDisable, false)
	c.Interrupt(cpu.IRQ)

	stepCPU(c, 1)
	expectPC(t, c, 0xa000)
	pushed := c.Bus.Read(0x1fb)
	if pushed&byte(cpu.Break) != 0 || pushed&byte(cpu.Reserved) == 0 {
		t.Errorf("pushed status $%02X has wrong break pattern", pushed)
	}
}

func TestNMIOutranksIRQ(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Interrupt(cpu.NMI)
	c.Interrupt(cpu.IRQ)
	if c.Pending() != cpu.NMI {
		t.Errorf("IRQ replaced pending NMI")
	}

	c.Interrupt(cpu.NoInterrupt)
	if c.Pending() != cpu.NoInterrupt {
		t.Errorf("request not withdrawn")
	}

	c.Interrupt(cpu.IRQ)
	c.Interrupt(cpu.NMI)
	if c.Pending() != cpu.NMI {
		t.Errorf("NMI did not replace pending IRQ")
	}
}

func TestInterruptRequestedDuringInstruction(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.AttachTickHandler(tickFunc(func(cycles uint64) {
		if cycles == 1 {
			c.Interrupt(cpu.NMI)
		}
	}))

	stepCPU(c, 1)
	expectPC(t, c, 0x9000)
}

type tickFunc func(cycles uint64)

func (f tickFunc) OnTick(cycles uint64) { f(cycles) }
