// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// A Mnemonic identifies the operation performed by an instruction,
// independent of its addressing mode.
type Mnemonic byte

// All mnemonics known to the decoder. The last eight are undocumented
// composites of two primitive operations.
const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
	LAX
	SAX
	DCP
	ISB
	SLO
	RLA
	SRE
	RRA
	mnemonicCount
)

type instfunc func(c *CPU, inst *Instruction, addr uint16)

// Emulator implementation for each mnemonic
type mnemonicImpl struct {
	name string
	fn   instfunc
}

var impl = [mnemonicCount]mnemonicImpl{
	ADC: {"ADC", (*CPU).adc},
	AND: {"AND", (*CPU).and},
	ASL: {"ASL", (*CPU).asl},
	BCC: {"BCC", (*CPU).bcc},
	BCS: {"BCS", (*CPU).bcs},
	BEQ: {"BEQ", (*CPU).beq},
	BIT: {"BIT", (*CPU).bit},
	BMI: {"BMI", (*CPU).bmi},
	BNE: {"BNE", (*CPU).bne},
	BPL: {"BPL", (*CPU).bpl},
	BRK: {"BRK", (*CPU).brk},
	BVC: {"BVC", (*CPU).bvc},
	BVS: {"BVS", (*CPU).bvs},
	CLC: {"CLC", (*CPU).clc},
	CLD: {"CLD", (*CPU).cld},
	CLI: {"CLI", (*CPU).cli},
	CLV: {"CLV", (*CPU).clv},
	CMP: {"CMP", (*CPU).cmp},
	CPX: {"CPX", (*CPU).cpx},
	CPY: {"CPY", (*CPU).cpy},
	DEC: {"DEC", (*CPU).dec},
	DEX: {"DEX", (*CPU).dex},
	DEY: {"DEY", (*CPU).dey},
	EOR: {"EOR", (*CPU).eor},
	INC: {"INC", (*CPU).inc},
	INX: {"INX", (*CPU).inx},
	INY: {"INY", (*CPU).iny},
	JMP: {"JMP", (*CPU).jmp},
	JSR: {"JSR", (*CPU).jsr},
	LDA: {"LDA", (*CPU).lda},
	LDX: {"LDX", (*CPU).ldx},
	LDY: {"LDY", (*CPU).ldy},
	LSR: {"LSR", (*CPU).lsr},
	NOP: {"NOP", (*CPU).nop},
	ORA: {"ORA", (*CPU).ora},
	PHA: {"PHA", (*CPU).pha},
	PHP: {"PHP", (*CPU).php},
	PLA: {"PLA", (*CPU).pla},
	PLP: {"PLP", (*CPU).plp},
	ROL: {"ROL", (*CPU).rol},
	ROR: {"ROR", (*CPU).ror},
	RTI: {"RTI", (*CPU).rti},
	RTS: {"RTS", (*CPU).rts},
	SBC: {"SBC", (*CPU).sbc},
	SEC: {"SEC", (*CPU).sec},
	SED: {"SED", (*CPU).sed},
	SEI: {"SEI", (*CPU).sei},
	STA: {"STA", (*CPU).sta},
	STX: {"STX", (*CPU).stx},
	STY: {"STY", (*CPU).sty},
	TAX: {"TAX", (*CPU).tax},
	TAY: {"TAY", (*CPU).tay},
	TSX: {"TSX", (*CPU).tsx},
	TXA: {"TXA", (*CPU).txa},
	TXS: {"TXS", (*CPU).txs},
	TYA: {"TYA", (*CPU).tya},
	LAX: {"LAX", (*CPU).lax},
	SAX: {"SAX", (*CPU).sax},
	DCP: {"DCP", (*CPU).dcp},
	ISB: {"ISB", (*CPU).isb},
	SLO: {"SLO", (*CPU).slo},
	RLA: {"RLA", (*CPU).rla},
	SRE: {"SRE", (*CPU).sre},
	RRA: {"RRA", (*CPU).rra},
}

// String returns the three-letter assembler name of the mnemonic.
func (m Mnemonic) String() string {
	if m < mnemonicCount {
		return impl[m].name
	}
	return "???"
}

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	ACC             // Accumulator (no operand)
)

var modeName = [...]string{
	IMM: "IMM", IMP: "IMP", REL: "REL", ZPG: "ZPG", ZPX: "ZPX", ZPY: "ZPY",
	ABS: "ABS", ABX: "ABX", ABY: "ABY", IND: "IND", IDX: "IDX", IDY: "IDY",
	ACC: "ACC",
}

func (m Mode) String() string {
	if int(m) < len(modeName) {
		return modeName[m]
	}
	return "???"
}

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	mnemonic Mnemonic // operation
	mode     Mode     // addressing mode
	opcode   byte     // opcode hex value
	length   byte     // length of opcode + operand in bytes
	cycles   byte     // documented base cycle count
	penalty  bool     // a page crossing costs one extra cycle
}

// All decodable (opcode, mode) pairs. Opcodes missing from this table
// decode as an implied NOP.
var data = []opcodeData{
	{LDA, IMM, 0xa9, 2, 2, false},
	{LDA, ZPG, 0xa5, 2, 3, false},
	{LDA, ZPX, 0xb5, 2, 4, false},
	{LDA, ABS, 0xad, 3, 4, false},
	{LDA, ABX, 0xbd, 3, 4, true},
	{LDA, ABY, 0xb9, 3, 4, true},
	{LDA, IDX, 0xa1, 2, 6, false},
	{LDA, IDY, 0xb1, 2, 5, true},

	{LDX, IMM, 0xa2, 2, 2, false},
	{LDX, ZPG, 0xa6, 2, 3, false},
	{LDX, ZPY, 0xb6, 2, 4, false},
	{LDX, ABS, 0xae, 3, 4, false},
	{LDX, ABY, 0xbe, 3, 4, true},

	{LDY, IMM, 0xa0, 2, 2, false},
	{LDY, ZPG, 0xa4, 2, 3, false},
	{LDY, ZPX, 0xb4, 2, 4, false},
	{LDY, ABS, 0xac, 3, 4, false},
	{LDY, ABX, 0xbc, 3, 4, true},

	{STA, ZPG, 0x85, 2, 3, false},
	{STA, ZPX, 0x95, 2, 4, false},
	{STA, ABS, 0x8d, 3, 4, false},
	{STA, ABX, 0x9d, 3, 5, false},
	{STA, ABY, 0x99, 3, 5, false},
	{STA, IDX, 0x81, 2, 6, false},
	{STA, IDY, 0x91, 2, 6, false},

	{STX, ZPG, 0x86, 2, 3, false},
	{STX, ZPY, 0x96, 2, 4, false},
	{STX, ABS, 0x8e, 3, 4, false},

	{STY, ZPG, 0x84, 2, 3, false},
	{STY, ZPX, 0x94, 2, 4, false},
	{STY, ABS, 0x8c, 3, 4, false},

	{ADC, IMM, 0x69, 2, 2, false},
	{ADC, ZPG, 0x65, 2, 3, false},
	{ADC, ZPX, 0x75, 2, 4, false},
	{ADC, ABS, 0x6d, 3, 4, false},
	{ADC, ABX, 0x7d, 3, 4, true},
	{ADC, ABY, 0x79, 3, 4, true},
	{ADC, IDX, 0x61, 2, 6, false},
	{ADC, IDY, 0x71, 2, 5, true},

	{SBC, IMM, 0xe9, 2, 2, false},
	{SBC, IMM, 0xeb, 2, 2, false},
	{SBC, ZPG, 0xe5, 2, 3, false},
	{SBC, ZPX, 0xf5, 2, 4, false},
	{SBC, ABS, 0xed, 3, 4, false},
	{SBC, ABX, 0xfd, 3, 4, true},
	{SBC, ABY, 0xf9, 3, 4, true},
	{SBC, IDX, 0xe1, 2, 6, false},
	{SBC, IDY, 0xf1, 2, 5, true},

	{CMP, IMM, 0xc9, 2, 2, false},
	{CMP, ZPG, 0xc5, 2, 3, false},
	{CMP, ZPX, 0xd5, 2, 4, false},
	{CMP, ABS, 0xcd, 3, 4, false},
	{CMP, ABX, 0xdd, 3, 4, true},
	{CMP, ABY, 0xd9, 3, 4, true},
	{CMP, IDX, 0xc1, 2, 6, false},
	{CMP, IDY, 0xd1, 2, 5, true},

	{CPX, IMM, 0xe0, 2, 2, false},
	{CPX, ZPG, 0xe4, 2, 3, false},
	{CPX, ABS, 0xec, 3, 4, false},

	{CPY, IMM, 0xc0, 2, 2, false},
	{CPY, ZPG, 0xc4, 2, 3, false},
	{CPY, ABS, 0xcc, 3, 4, false},

	{BIT, ZPG, 0x24, 2, 3, false},
	{BIT, ABS, 0x2c, 3, 4, false},

	{CLC, IMP, 0x18, 1, 2, false},
	{SEC, IMP, 0x38, 1, 2, false},
	{CLI, IMP, 0x58, 1, 2, false},
	{SEI, IMP, 0x78, 1, 2, false},
	{CLD, IMP, 0xd8, 1, 2, false},
	{SED, IMP, 0xf8, 1, 2, false},
	{CLV, IMP, 0xb8, 1, 2, false},

	{BCC, REL, 0x90, 2, 2, false},
	{BCS, REL, 0xb0, 2, 2, false},
	{BEQ, REL, 0xf0, 2, 2, false},
	{BNE, REL, 0xd0, 2, 2, false},
	{BMI, REL, 0x30, 2, 2, false},
	{BPL, REL, 0x10, 2, 2, false},
	{BVC, REL, 0x50, 2, 2, false},
	{BVS, REL, 0x70, 2, 2, false},

	{BRK, IMP, 0x00, 1, 7, false},

	{AND, IMM, 0x29, 2, 2, false},
	{AND, ZPG, 0x25, 2, 3, false},
	{AND, ZPX, 0x35, 2, 4, false},
	{AND, ABS, 0x2d, 3, 4, false},
	{AND, ABX, 0x3d, 3, 4, true},
	{AND, ABY, 0x39, 3, 4, true},
	{AND, IDX, 0x21, 2, 6, false},
	{AND, IDY, 0x31, 2, 5, true},

	{ORA, IMM, 0x09, 2, 2, false},
	{ORA, ZPG, 0x05, 2, 3, false},
	{ORA, ZPX, 0x15, 2, 4, false},
	{ORA, ABS, 0x0d, 3, 4, false},
	{ORA, ABX, 0x1d, 3, 4, true},
	{ORA, ABY, 0x19, 3, 4, true},
	{ORA, IDX, 0x01, 2, 6, false},
	{ORA, IDY, 0x11, 2, 5, true},

	{EOR, IMM, 0x49, 2, 2, false},
	{EOR, ZPG, 0x45, 2, 3, false},
	{EOR, ZPX, 0x55, 2, 4, false},
	{EOR, ABS, 0x4d, 3, 4, false},
	{EOR, ABX, 0x5d, 3, 4, true},
	{EOR, ABY, 0x59, 3, 4, true},
	{EOR, IDX, 0x41, 2, 6, false},
	{EOR, IDY, 0x51, 2, 5, true},

	{INC, ZPG, 0xe6, 2, 5, false},
	{INC, ZPX, 0xf6, 2, 6, false},
	{INC, ABS, 0xee, 3, 6, false},
	{INC, ABX, 0xfe, 3, 7, false},

	{DEC, ZPG, 0xc6, 2, 5, false},
	{DEC, ZPX, 0xd6, 2, 6, false},
	{DEC, ABS, 0xce, 3, 6, false},
	{DEC, ABX, 0xde, 3, 7, false},

	{INX, IMP, 0xe8, 1, 2, false},
	{INY, IMP, 0xc8, 1, 2, false},

	{DEX, IMP, 0xca, 1, 2, false},
	{DEY, IMP, 0x88, 1, 2, false},

	{JMP, ABS, 0x4c, 3, 3, false},
	{JMP, IND, 0x6c, 3, 5, false},

	{JSR, ABS, 0x20, 3, 6, false},

	{RTS, IMP, 0x60, 1, 6, false},

	{RTI, IMP, 0x40, 1, 6, false},

	{NOP, IMP, 0xea, 1, 2, false},

	{TAX, IMP, 0xaa, 1, 2, false},
	{TXA, IMP, 0x8a, 1, 2, false},
	{TAY, IMP, 0xa8, 1, 2, false},
	{TYA, IMP, 0x98, 1, 2, false},
	{TXS, IMP, 0x9a, 1, 2, false},
	{TSX, IMP, 0xba, 1, 2, false},

	{PHA, IMP, 0x48, 1, 3, false},
	{PLA, IMP, 0x68, 1, 4, false},
	{PHP, IMP, 0x08, 1, 3, false},
	{PLP, IMP, 0x28, 1, 4, false},

	{ASL, ACC, 0x0a, 1, 2, false},
	{ASL, ZPG, 0x06, 2, 5, false},
	{ASL, ZPX, 0x16, 2, 6, false},
	{ASL, ABS, 0x0e, 3, 6, false},
	{ASL, ABX, 0x1e, 3, 7, false},

	{LSR, ACC, 0x4a, 1, 2, false},
	{LSR, ZPG, 0x46, 2, 5, false},
	{LSR, ZPX, 0x56, 2, 6, false},
	{LSR, ABS, 0x4e, 3, 6, false},
	{LSR, ABX, 0x5e, 3, 7, false},

	{ROL, ACC, 0x2a, 1, 2, false},
	{ROL, ZPG, 0x26, 2, 5, false},
	{ROL, ZPX, 0x36, 2, 6, false},
	{ROL, ABS, 0x2e, 3, 6, false},
	{ROL, ABX, 0x3e, 3, 7, false},

	{ROR, ACC, 0x6a, 1, 2, false},
	{ROR, ZPG, 0x66, 2, 5, false},
	{ROR, ZPX, 0x76, 2, 6, false},
	{ROR, ABS, 0x6e, 3, 6, false},
	{ROR, ABX, 0x7e, 3, 7, false},

	// Undocumented no-op aliases
	{NOP, IMP, 0x1a, 1, 2, false},
	{NOP, IMP, 0x3a, 1, 2, false},
	{NOP, IMP, 0x5a, 1, 2, false},
	{NOP, IMP, 0x7a, 1, 2, false},
	{NOP, IMP, 0xda, 1, 2, false},
	{NOP, IMP, 0xfa, 1, 2, false},
	{NOP, IMM, 0x80, 2, 2, false},
	{NOP, IMM, 0x82, 2, 2, false},
	{NOP, IMM, 0x89, 2, 2, false},
	{NOP, IMM, 0xc2, 2, 2, false},
	{NOP, IMM, 0xe2, 2, 2, false},
	{NOP, ZPG, 0x04, 2, 3, false},
	{NOP, ZPG, 0x44, 2, 3, false},
	{NOP, ZPG, 0x64, 2, 3, false},
	{NOP, ZPX, 0x14, 2, 4, false},
	{NOP, ZPX, 0x34, 2, 4, false},
	{NOP, ZPX, 0x54, 2, 4, false},
	{NOP, ZPX, 0x74, 2, 4, false},
	{NOP, ZPX, 0xd4, 2, 4, false},
	{NOP, ZPX, 0xf4, 2, 4, false},
	{NOP, ABS, 0x0c, 3, 4, false},
	{NOP, ABX, 0x1c, 3, 4, true},
	{NOP, ABX, 0x3c, 3, 4, true},
	{NOP, ABX, 0x5c, 3, 4, true},
	{NOP, ABX, 0x7c, 3, 4, true},
	{NOP, ABX, 0xdc, 3, 4, true},
	{NOP, ABX, 0xfc, 3, 4, true},

	// Undocumented composites
	{LAX, IDX, 0xa3, 2, 6, false},
	{LAX, ZPG, 0xa7, 2, 3, false},
	{LAX, IMM, 0xab, 2, 2, false},
	{LAX, ABS, 0xaf, 3, 4, false},
	{LAX, IDY, 0xb3, 2, 5, true},
	{LAX, ZPY, 0xb7, 2, 4, false},
	{LAX, ABY, 0xbf, 3, 4, true},

	{SAX, IDX, 0x83, 2, 6, false},
	{SAX, ZPG, 0x87, 2, 3, false},
	{SAX, ABS, 0x8f, 3, 4, false},
	{SAX, ZPY, 0x97, 2, 4, false},

	{DCP, IDX, 0xc3, 2, 8, false},
	{DCP, ZPG, 0xc7, 2, 5, false},
	{DCP, ABS, 0xcf, 3, 6, false},
	{DCP, IDY, 0xd3, 2, 8, false},
	{DCP, ZPX, 0xd7, 2, 6, false},
	{DCP, ABY, 0xdb, 3, 7, false},
	{DCP, ABX, 0xdf, 3, 7, false},

	{ISB, IDX, 0xe3, 2, 8, false},
	{ISB, ZPG, 0xe7, 2, 5, false},
	{ISB, ABS, 0xef, 3, 6, false},
	{ISB, IDY, 0xf3, 2, 8, false},
	{ISB, ZPX, 0xf7, 2, 6, false},
	{ISB, ABY, 0xfb, 3, 7, false},
	{ISB, ABX, 0xff, 3, 7, false},

	{SLO, IDX, 0x03, 2, 8, false},
	{SLO, ZPG, 0x07, 2, 5, false},
	{SLO, ABS, 0x0f, 3, 6, false},
	{SLO, IDY, 0x13, 2, 8, false},
	{SLO, ZPX, 0x17, 2, 6, false},
	{SLO, ABY, 0x1b, 3, 7, false},
	{SLO, ABX, 0x1f, 3, 7, false},

	{RLA, IDX, 0x23, 2, 8, false},
	{RLA, ZPG, 0x27, 2, 5, false},
	{RLA, ABS, 0x2f, 3, 6, false},
	{RLA, IDY, 0x33, 2, 8, false},
	{RLA, ZPX, 0x37, 2, 6, false},
	{RLA, ABY, 0x3b, 3, 7, false},
	{RLA, ABX, 0x3f, 3, 7, false},

	{SRE, IDX, 0x43, 2, 8, false},
	{SRE, ZPG, 0x47, 2, 5, false},
	{SRE, ABS, 0x4f, 3, 6, false},
	{SRE, IDY, 0x53, 2, 8, false},
	{SRE, ZPX, 0x57, 2, 6, false},
	{SRE, ABY, 0x5b, 3, 7, false},
	{SRE, ABX, 0x5f, 3, 7, false},

	{RRA, IDX, 0x63, 2, 8, false},
	{RRA, ZPG, 0x67, 2, 5, false},
	{RRA, ABS, 0x6f, 3, 6, false},
	{RRA, IDY, 0x73, 2, 8, false},
	{RRA, ZPX, 0x77, 2, 6, false},
	{RRA, ABY, 0x7b, 3, 7, false},
	{RRA, ABX, 0x7f, 3, 7, false},
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name         string   // all-caps name of the instruction
	Mnemonic     Mnemonic // operation performed
	Mode         Mode     // addressing mode
	Opcode       byte     // hexadecimal opcode value
	Length       byte     // combined size of opcode and operand, in bytes
	Cycles       byte     // documented number of CPU cycles to execute
	Penalty      bool     // a page crossing costs one extra cycle
	Undocumented bool     // not part of the official instruction set
	fn           instfunc // emulator implementation of the function
}

var (
	instructions [256]Instruction
	variants     map[string][]*Instruction
)

// Decode returns the instruction for an opcode. Every opcode decodes; the
// ones the CPU does not implement behave as an implied NOP.
func Decode(opcode byte) *Instruction {
	return &instructions[opcode]
}

// Lookup retrieves all variants of an instruction by name, for example
// every addressing mode of "LDA".
func Lookup(name string) []*Instruction {
	return variants[strings.ToUpper(name)]
}

func init() {
	official := make(map[byte]bool)
	for _, o := range officialOpcodes {
		official[o] = true
	}

	for i := 0; i < 256; i++ {
		instructions[i] = Instruction{
			Name:         "NOP",
			Mnemonic:     NOP,
			Mode:         IMP,
			Opcode:       byte(i),
			Length:       1,
			Cycles:       2,
			Undocumented: true,
			fn:           (*CPU).nop,
		}
	}

	variants = make(map[string][]*Instruction)
	for _, d := range data {
		inst := &instructions[d.opcode]
		inst.Name = impl[d.mnemonic].name
		inst.Mnemonic = d.mnemonic
		inst.Mode = d.mode
		inst.Length = d.length
		inst.Cycles = d.cycles
		inst.Penalty = d.penalty
		inst.Undocumented = !official[d.opcode]
		inst.fn = impl[d.mnemonic].fn
		variants[inst.Name] = append(variants[inst.Name], inst)
	}
}

// Opcodes of the official instruction set. Everything else in the table
// is an undocumented alias or composite.
var officialOpcodes = []byte{
	0x00, 0x01, 0x05, 0x06, 0x08, 0x09, 0x0a, 0x0d, 0x0e,
	0x10, 0x11, 0x15, 0x16, 0x18, 0x19, 0x1d, 0x1e,
	0x20, 0x21, 0x24, 0x25, 0x26, 0x28, 0x29, 0x2a, 0x2c, 0x2d, 0x2e,
	0x30, 0x31, 0x35, 0x36, 0x38, 0x39, 0x3d, 0x3e,
	0x40, 0x41, 0x45, 0x46, 0x48, 0x49, 0x4a, 0x4c, 0x4d, 0x4e,
	0x50, 0x51, 0x55, 0x56, 0x58, 0x59, 0x5d, 0x5e,
	0x60, 0x61, 0x65, 0x66, 0x68, 0x69, 0x6a, 0x6c, 0x6d, 0x6e,
	0x70, 0x71, 0x75, 0x76, 0x78, 0x79, 0x7d, 0x7e,
	0x81, 0x84, 0x85, 0x86, 0x88, 0x8a, 0x8c, 0x8d, 0x8e,
	0x90, 0x91, 0x94, 0x95, 0x96, 0x98, 0x99, 0x9a, 0x9d,
	0xa0, 0xa1, 0xa2, 0xa4, 0xa5, 0xa6, 0xa8, 0xa9, 0xaa, 0xac, 0xad, 0xae,
	0xb0, 0xb1, 0xb4, 0xb5, 0xb6, 0xb8, 0xb9, 0xba, 0xbc, 0xbd, 0xbe,
	0xc0, 0xc1, 0xc4, 0xc5, 0xc6, 0xc8, 0xc9, 0xca, 0xcc, 0xcd, 0xce,
	0xd0, 0xd1, 0xd5, 0xd6, 0xd8, 0xd9, 0xdd, 0xde,
	0xe0, 0xe1, 0xe4, 0xe5, 0xe6, 0xe8, 0xe9, 0xea, 0xec, 0xed, 0xee,
	0xf0, 0xf1, 0xf5, 0xf6, 0xf8, 0xf9, 0xfd, 0xfe,
}
