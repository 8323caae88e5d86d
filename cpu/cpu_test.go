package cpu_test

import (
	"testing"

	"github.com/beevik/go2a03/cpu"
)

func loadCPU(origin uint16, code ...byte) (*cpu.CPU, *cpu.FlatMemory) {
	mem := cpu.NewFlatMemory()
	mem.Load(origin, code)
	c := cpu.NewCPU(mem)
	c.SetPC(origin)
	return c, mem
}

func stepCPU(c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		c.Step()
	}
}

func runCPU(steps int, origin uint16, code ...byte) (*cpu.CPU, *cpu.FlatMemory) {
	c, mem := loadCPU(origin, code...)
	stepCPU(c, steps)
	return c, mem
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	t.Helper()
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectX(t *testing.T, c *cpu.CPU, x byte) {
	t.Helper()
	if c.Reg.X != x {
		t.Errorf("X register incorrect. exp: $%02X, got: $%02X", x, c.Reg.X)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := c.Bus.Read(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectFlags(t *testing.T, c *cpu.CPU, set, clear cpu.Status) {
	t.Helper()
	if c.Reg.PS&set != set {
		t.Errorf("flags %v expected set, got %v", set, c.Reg.PS)
	}
	if c.Reg.PS&clear != 0 {
		t.Errorf("flags %v expected clear, got %v", clear, c.Reg.PS)
	}
}

func TestLoadStoreLoad(t *testing.T) {
	c, _ := loadCPU(0x8000,
		0xa9, 0x05, // LDA #$05
		0x85, 0x10, // STA $10
		0xa5, 0x10, // LDA $10
	)
	c.Reg = cpu.Registers{PC: 0x8000}
	stepCPU(c, 3)

	expectPC(t, c, 0x8006)
	expectACC(t, c, 0x05)
	expectMem(t, c, 0x10, 0x05)
	expectCycles(t, c, 8)
}

func TestAccumulator(t *testing.T) {
	c, _ := runCPU(3, 0x1000,
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	)

	expectPC(t, c, 0x1007)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	c, _ := loadCPU(0x1000,
		0xa9, 0x11, 0x48, // LDA #$11; PHA
		0xa9, 0x12, 0x48, // LDA #$12; PHA
		0xa9, 0x13, 0x48, // LDA #$13; PHA
		0x68, 0x8d, 0x00, 0x20, // PLA; STA $2000
		0x68, 0x8d, 0x01, 0x20, // PLA; STA $2001
		0x68, 0x8d, 0x02, 0x20, // PLA; STA $2002
	)
	c.Reg.SP = 0xff

	stepCPU(c, 6)
	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x1ff, 0x11)
	expectMem(t, c, 0x1fe, 0x12)
	expectMem(t, c, 0x1fd, 0x13)

	stepCPU(c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x13)
	expectMem(t, c, 0x2001, 0x12)
	expectMem(t, c, 0x2002, 0x11)
}

func TestStackWrap(t *testing.T) {
	c, _ := loadCPU(0x8000, 0x48, 0x68) // PHA; PLA
	c.Reg.SP = 0x00
	c.Reg.A = 0x42

	stepCPU(c, 1)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x100, 0x42)

	c.Reg.A = 0
	stepCPU(c, 1)
	expectSP(t, c, 0x00)
	expectACC(t, c, 0x42)
}

func TestADC(t *testing.T) {
	c, _ := loadCPU(0x8000, 0x69, 0x50) // ADC #$50
	c.Reg.A = 0x50
	c.Reg.Set(cpu.Carry, false)
	stepCPU(c, 1)

	expectACC(t, c, 0xa0)
	expectFlags(t, c, cpu.Negative|cpu.Overflow, cpu.Carry|cpu.Zero)
	expectCycles(t, c, 2)
}

func TestADCCarry(t *testing.T) {
	c, _ := loadCPU(0x8000, 0x69, 0x01) // ADC #$01
	c.Reg.A = 0xff
	c.Reg.Set(cpu.Carry, true)
	stepCPU(c, 1)

	expectACC(t, c, 0x01)
	expectFlags(t, c, cpu.Carry, cpu.Zero|cpu.Negative|cpu.Overflow)
}

func TestSBC(t *testing.T) {
	c, _ := loadCPU(0x8000, 0xe9, 0xb0) // SBC #$B0
	c.Reg.A = 0x50
	c.Reg.Set(cpu.Carry, true)
	stepCPU(c, 1)

	expectACC(t, c, 0xa0)
	expectFlags(t, c, cpu.Negative|cpu.Overflow, cpu.Carry|cpu.Zero)
}

func TestSBCAlias(t *testing.T) {
	c, _ := loadCPU(0x8000, 0xeb, 0x01) // SBC #$01 (undocumented encoding)
	c.Reg.A = 0x01
	c.Reg.Set(cpu.Carry, true)
	stepCPU(c, 1)

	expectACC(t, c, 0x00)
	expectFlags(t, c, cpu.Zero|cpu.Carry, cpu.Negative|cpu.Overflow)
	expectCycles(t, c, 2)
}

func TestCMP(t *testing.T) {
	c, _ := loadCPU(0x8000, 0xc9, 0x10, 0xc9, 0x20) // CMP #$10; CMP #$20
	c.Reg.A = 0x10

	stepCPU(c, 1)
	expectFlags(t, c, cpu.Zero|cpu.Carry, cpu.Negative)

	stepCPU(c, 1)
	expectFlags(t, c, cpu.Negative, cpu.Zero|cpu.Carry)
}

func TestBIT(t *testing.T) {
	c, mem := loadCPU(0x8000, 0x24, 0x10) // BIT $10
	mem.Write(0x10, 0xc0)
	c.Reg.A = 0x3f
	stepCPU(c, 1)

	expectFlags(t, c, cpu.Zero|cpu.Overflow|cpu.Negative, 0)
	expectCycles(t, c, 3)
}

func TestShifts(t *testing.T) {
	c, mem := loadCPU(0x8000,
		0x0a,       // ASL A
		0x46, 0x10, // LSR $10
		0x2a,       // ROL A
		0x6e, 0x00, 0x03, // ROR $0300
	)
	mem.Write(0x10, 0x01)
	mem.Write(0x300, 0x02)
	c.Reg.A = 0x81
	c.Reg.Set(cpu.Carry, false)

	stepCPU(c, 1)
	expectACC(t, c, 0x02)
	expectFlags(t, c, cpu.Carry, cpu.Zero|cpu.Negative)
	expectCycles(t, c, 2)

	stepCPU(c, 1)
	expectMem(t, c, 0x10, 0x00)
	expectFlags(t, c, cpu.Carry|cpu.Zero, cpu.Negative)
	expectCycles(t, c, 7)

	stepCPU(c, 1)
	expectACC(t, c, 0x05)
	expectFlags(t, c, 0, cpu.Carry)

	stepCPU(c, 1)
	expectMem(t, c, 0x300, 0x01)
	expectFlags(t, c, 0, cpu.Carry|cpu.Negative)
	expectCycles(t, c, 15)
}

func TestIncDec(t *testing.T) {
	c, mem := loadCPU(0x8000,
		0xe6, 0x10, // INC $10
		0xc6, 0x11, // DEC $11
		0xca, // DEX
		0xc8, // INY
	)
	mem.Write(0x10, 0xff)
	mem.Write(0x11, 0x00)
	stepCPU(c, 4)

	expectMem(t, c, 0x10, 0x00)
	expectMem(t, c, 0x11, 0xff)
	expectX(t, c, 0xff)
	if c.Reg.Y != 1 {
		t.Errorf("Y incorrect. exp: $01, got: $%02X", c.Reg.Y)
	}
	expectCycles(t, c, 14)
}

func TestTransfers(t *testing.T) {
	c, _ := loadCPU(0x8000,
		0xaa, // TAX
		0xa8, // TAY
		0xba, // TSX
		0x8a, // TXA
		0x9a, // TXS
	)
	c.Reg.A = 0x80
	c.Reg.SP = 0x00

	stepCPU(c, 2)
	expectX(t, c, 0x80)
	expectFlags(t, c, cpu.Negative, cpu.Zero)

	stepCPU(c, 1)
	expectX(t, c, 0x00)
	expectFlags(t, c, cpu.Zero, cpu.Negative)

	stepCPU(c, 2)
	expectACC(t, c, 0x00)
	expectSP(t, c, 0x00)
	expectCycles(t, c, 10)
}

func TestJSRRTS(t *testing.T) {
	c, mem := loadCPU(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	mem.Write(0x9000, 0x60)                      // RTS

	stepCPU(c, 1)
	expectPC(t, c, 0x9000)
	expectCycles(t, c, 6)
	expectSP(t, c, 0xfb)
	expectMem(t, c, 0x1fd, 0x80)
	expectMem(t, c, 0x1fc, 0x02)

	stepCPU(c, 1)
	expectPC(t, c, 0x8003)
	expectCycles(t, c, 12)
	expectSP(t, c, 0xfd)
}

func TestJMPIndirectPageWrap(t *testing.T) {
	c, mem := loadCPU(0x8000, 0x6c, 0xff, 0x02) // JMP ($02FF)
	mem.Write(0x02ff, 0x34)
	mem.Write(0x0200, 0x12)
	mem.Write(0x0300, 0x56)
	stepCPU(c, 1)

	expectPC(t, c, 0x1234)
	expectCycles(t, c, 5)
}

func TestIndexedIndirectZeroPageWrap(t *testing.T) {
	c, mem := loadCPU(0x8000, 0xa1, 0xff) // LDA ($FF,X)
	mem.Write(0x00ff, 0x00)
	mem.Write(0x0000, 0x04)
	mem.Write(0x0400, 0x77)
	stepCPU(c, 1)

	expectACC(t, c, 0x77)
	expectCycles(t, c, 6)
}

func TestZeroPageIndexWrap(t *testing.T) {
	c, mem := loadCPU(0x8000, 0xb5, 0xf0) // LDA $F0,X
	mem.Write(0x0010, 0x99)
	mem.Write(0x0110, 0x11)
	c.Reg.X = 0x20
	stepCPU(c, 1)

	expectACC(t, c, 0x99)
	expectCycles(t, c, 4)
}

func TestBRK(t *testing.T) {
	c, mem := loadCPU(0x8000, 0x00, 0xea) // BRK
	mem.Write(0xfffe, 0x00)
	mem.Write(0xffff, 0x90)
	mem.Write(0x9000, 0x40) // RTI
	c.Reg.PS = cpu.Carry | cpu.Reserved

	stepCPU(c, 1)
	expectPC(t, c, 0x9000)
	expectCycles(t, c, 7)
	expectSP(t, c, 0xfa)
	expectMem(t, c, 0x1fd, 0x80)
	expectMem(t, c, 0x1fc, 0x02)
	expectMem(t, c, 0x1fb, byte(cpu.Carry|cpu.InstructionPushed))
	expectFlags(t, c, cpu.InterruptDisable, 0)

	stepCPU(c, 1)
	expectPC(t, c, 0x8002)
	expectCycles(t, c, 13)
	if c.Reg.PS != cpu.Carry|cpu.Reserved {
		t.Errorf("PS incorrect. exp: %v, got: %v", cpu.Carry|cpu.Reserved, c.Reg.PS)
	}
}

func TestUndocumentedLoadStore(t *testing.T) {
	c, mem := loadCPU(0x8000,
		0xa7, 0x10, // LAX $10
		0x87, 0x11, // SAX $11
	)
	mem.Write(0x10, 0x8f)

	stepCPU(c, 1)
	expectACC(t, c, 0x8f)
	expectX(t, c, 0x8f)
	expectFlags(t, c, cpu.Negative, cpu.Zero)

	c.Reg.X = 0xf0
	ps := c.Reg.PS
	stepCPU(c, 1)
	expectMem(t, c, 0x11, 0x80)
	if c.Reg.PS != ps {
		t.Errorf("SAX changed flags: %v -> %v", ps, c.Reg.PS)
	}
	expectCycles(t, c, 6)
}

func TestUndocumentedReadModifyWrite(t *testing.T) {
	tests := []struct {
		name    string
		opcode  byte
		mem     byte
		a       byte
		carry   bool
		expMem  byte
		expA    byte
		set     cpu.Status
		clear   cpu.Status
		comment string
	}{
		{"DCP", 0xc7, 0x11, 0x10, false, 0x10, 0x10, cpu.Zero | cpu.Carry, cpu.Negative, "decrement then compare"},
		{"ISB", 0xe7, 0x0f, 0x20, true, 0x10, 0x10, cpu.Carry, cpu.Zero | cpu.Negative, "increment then subtract"},
		{"SLO", 0x07, 0x81, 0x01, false, 0x02, 0x03, cpu.Carry, cpu.Zero | cpu.Negative, "shift then or"},
		{"RLA", 0x27, 0x81, 0xff, true, 0x03, 0x03, cpu.Carry, cpu.Zero | cpu.Negative, "rotate then and"},
		{"SRE", 0x47, 0x03, 0x81, false, 0x01, 0x80, cpu.Carry | cpu.Negative, cpu.Zero, "shift then eor"},
		{"RRA", 0x67, 0x03, 0x10, false, 0x01, 0x12, 0, cpu.Carry | cpu.Zero | cpu.Negative, "rotate then add with carry out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mem := loadCPU(0x8000, tt.opcode, 0x10)
			mem.Write(0x10, tt.mem)
			c.Reg.A = tt.a
			c.Reg.Set(cpu.Carry, tt.carry)
			stepCPU(c, 1)

			expectMem(t, c, 0x10, tt.expMem)
			expectACC(t, c, tt.expA)
			expectFlags(t, c, tt.set, tt.clear)
			expectCycles(t, c, 5)
		})
	}
}

func TestUnknownOpcodeIsNOP(t *testing.T) {
	c, _ := runCPU(1, 0x8000, 0x02, 0xa9)
	expectPC(t, c, 0x8001)
	expectCycles(t, c, 2)
}

type accessLog struct {
	cpu.FlatMemory
	events []string
}

func (l *accessLog) Read(addr uint16) byte {
	l.events = append(l.events, "R")
	return l.FlatMemory.Read(addr)
}

func (l *accessLog) Write(addr uint16, v byte) {
	l.events = append(l.events, "W")
	l.FlatMemory.Write(addr, v)
}

func (l *accessLog) OnTick(cycles uint64) {
	l.events = append(l.events, "T")
}

func TestTickFollowsAccess(t *testing.T) {
	log := &accessLog{}
	log.Load(0x8000, []byte{0xe6, 0x10}) // INC $10
	c := cpu.NewCPU(log)
	c.SetPC(0x8000)
	c.AttachTickHandler(log)
	c.Step()

	exp := "RTRTRTTWT"
	var got string
	for _, e := range log.events {
		got += e
	}
	if got != exp {
		t.Errorf("access order incorrect. exp: %s, got: %s", exp, got)
	}
}

func TestNOPDoesNotReadOperand(t *testing.T) {
	log := &accessLog{}
	log.Load(0x8000, []byte{0x0c, 0x02, 0x20}) // NOP $2002
	c := cpu.NewCPU(log)
	c.SetPC(0x8000)
	c.Step()

	if len(log.events) != 3 {
		t.Errorf("NOP made %d bus accesses, expected 3", len(log.events))
	}
	expectCycles(t, c, 4)
}

type recordingBus struct {
	cpu.FlatMemory
	writes []uint16
}

func (b *recordingBus) Write(addr uint16, v byte) {
	b.writes = append(b.writes, addr)
	b.FlatMemory.Write(addr, v)
}

func TestPowerOn(t *testing.T) {
	bus := &recordingBus{}
	bus.FlatMemory.Write(0x4000, 0xff)
	c := cpu.NewCPU(bus)
	c.Reg = cpu.Registers{A: 1, X: 2, Y: 3, SP: 4, PC: 0x1234}
	c.Interrupt(cpu.NMI)
	c.PowerOn()

	if c.Reg.A != 0 || c.Reg.X != 0 || c.Reg.Y != 0 {
		t.Errorf("registers not cleared: %+v", c.Reg)
	}
	expectSP(t, c, 0xfd)
	expectPC(t, c, 0x1234)
	if c.Reg.PS != 0x34 {
		t.Errorf("PS incorrect. exp: $34, got: $%02X", byte(c.Reg.PS))
	}
	if c.Pending() != cpu.NoInterrupt {
		t.Errorf("pending interrupt not cleared")
	}

	exp := []uint16{0x4017, 0x4015}
	for a := uint16(0x4000); a <= 0x4013; a++ {
		exp = append(exp, a)
	}
	if len(bus.writes) != len(exp) {
		t.Fatalf("write count incorrect. exp: %d, got: %d", len(exp), len(bus.writes))
	}
	for i := range exp {
		if bus.writes[i] != exp[i] {
			t.Errorf("write %d incorrect. exp: $%04X, got: $%04X", i, exp[i], bus.writes[i])
		}
	}
	expectMem(t, c, 0x4000, 0x00)
	expectCycles(t, c, 22)
}

type breakRecorder struct {
	breakpoints     []uint16
	dataBreakpoints []uint16
}

func (r *breakRecorder) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	r.breakpoints = append(r.breakpoints, b.Address)
}

func (r *breakRecorder) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	r.dataBreakpoints = append(r.dataBreakpoints, b.Address)
}

func TestDebugger(t *testing.T) {
	c, _ := loadCPU(0x8000,
		0xa9, 0x01, // LDA #$01
		0x85, 0x10, // STA $10
		0x85, 0x11, // STA $11
		0xa9, 0x02, // LDA #$02
		0x85, 0x11, // STA $11
	)
	r := &breakRecorder{}
	d := cpu.NewDebugger(r)
	d.AddBreakpoint(0x8002)
	d.AddBreakpoint(0x8004).Disabled = true
	d.AddDataBreakpoint(0x10)
	d.AddConditionalDataBreakpoint(0x11, 0x02)
	c.AttachDebugger(d)
	stepCPU(c, 5)

	if len(r.breakpoints) != 1 || r.breakpoints[0] != 0x8002 {
		t.Errorf("breakpoints incorrect: %v", r.breakpoints)
	}
	if len(r.dataBreakpoints) != 2 || r.dataBreakpoints[0] != 0x10 || r.dataBreakpoints[1] != 0x11 {
		t.Errorf("data breakpoints incorrect: %v", r.dataBreakpoints)
	}
	expectCycles(t, c, 13)

	bps := d.GetBreakpoints()
	if len(bps) != 2 || bps[0].Address != 0x8002 || bps[1].Address != 0x8004 {
		t.Errorf("GetBreakpoints not sorted: %v", bps)
	}
	d.RemoveBreakpoint(0x8002)
	if d.GetBreakpoint(0x8002) != nil {
		t.Errorf("breakpoint not removed")
	}
	d.RemoveDataBreakpoint(0x10)
	if len(d.GetDataBreakpoints()) != 1 {
		t.Errorf("data breakpoint not removed")
	}
}
