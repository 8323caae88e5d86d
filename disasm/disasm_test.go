package disasm

import (
	"testing"

	"github.com/beevik/go2a03/cpu"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		code []byte
		line string
		next uint16
	}{
		{[]byte{0xa9, 0x05}, "LDA #$05", 0x8002},
		{[]byte{0xea}, "NOP", 0x8001},
		{[]byte{0x0a}, "ASL A", 0x8001},
		{[]byte{0xb5, 0x10}, "LDA $10,X", 0x8002},
		{[]byte{0xb6, 0x10}, "LDX $10,Y", 0x8002},
		{[]byte{0x8d, 0x34, 0x12}, "STA $1234", 0x8003},
		{[]byte{0xbd, 0x34, 0x12}, "LDA $1234,X", 0x8003},
		{[]byte{0x6c, 0xff, 0x02}, "JMP ($02FF)", 0x8003},
		{[]byte{0xa1, 0x20}, "LDA ($20,X)", 0x8002},
		{[]byte{0xb1, 0x20}, "LDA ($20),Y", 0x8002},
		{[]byte{0xd0, 0x10}, "BNE $8012", 0x8002},
		{[]byte{0xd0, 0xfe}, "BNE $8000", 0x8002},
		{[]byte{0xa7, 0x10}, "*LAX $10", 0x8002},
		{[]byte{0xeb, 0x01}, "*SBC #$01", 0x8002},
		{[]byte{0x04, 0x10}, "*NOP $10", 0x8002},
		{[]byte{0x02}, "*NOP", 0x8001},
	}

	for _, tt := range tests {
		mem := cpu.NewFlatMemory()
		mem.Load(0x8000, tt.code)
		line, next := Disassemble(mem, 0x8000)
		if line != tt.line || next != tt.next {
			t.Errorf("% X: exp %q next $%04X, got %q next $%04X", tt.code, tt.line, tt.next, line, next)
		}
	}
}

func TestTrace(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.Load(0xc000, []byte{0x4c, 0xf5, 0xc5, 0xea})
	c := cpu.NewCPU(mem)
	c.SetPC(0xc000)
	c.Reg.PS = 0x24
	c.Cycles = 7

	exp := "C000  4C F5 C5  JMP $C5F5   A:00 X:00 Y:00 P:24 SP:FD CYC:7"
	if got := Trace(c); got != exp {
		t.Errorf("trace incorrect.\nexp: %q\ngot: %q", exp, got)
	}
	if c.Cycles != 7 {
		t.Errorf("tracing advanced the clock")
	}

	c.SetPC(0xc003)
	exp = "C003  EA        NOP         A:00 X:00 Y:00 P:24 SP:FD CYC:7"
	if got := Trace(c); got != exp {
		t.Errorf("trace incorrect.\nexp: %q\ngot: %q", exp, got)
	}
}

func TestRegisterString(t *testing.T) {
	r := cpu.Registers{A: 0x01, X: 0x02, Y: 0x03, SP: 0xfd, PC: 0x8000, PS: 0x34}
	exp := "A=01 X=02 Y=03 PS=[nv-BdIzc] SP=FD PC=8000"
	if got := RegisterString(&r); got != exp {
		t.Errorf("exp %q, got %q", exp, got)
	}
}
