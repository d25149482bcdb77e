// Package opcode provides the CHIP-8 instruction decoder and the static
// dispatch table that maps decoded instruction words to operations.
//
// Every instruction is a big-endian 16 bit word. The high nibble selects the
// instruction group. The groups 0x0, 0xE and 0xF are disambiguated by the
// low byte, the arithmetic group 0x8 by the low nibble, all other groups are
// identified by the high nibble alone.
package opcode

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Bit masks used to decode an instruction word.
const (
	GroupMask = 0xF000
	XMask     = 0x0F00
	YMask     = 0x00F0
	NMask     = 0x000F
	AddrMask  = 0x0FFF
	KKMask    = 0x00FF

	// LowByteKeyMask builds the dispatch key for the groups 0x0, 0xE and 0xF.
	LowByteKeyMask = 0xF0FF
	// LowNibbleKeyMask builds the dispatch key for the group 0x8.
	LowNibbleKeyMask = 0xF00F
)

// Instruction is a decoded instruction word. It only lives for the
// duration of one step.
type Instruction struct {
	Raw   uint16 // instruction word as fetched
	Group uint16 // high nibble, kept in place (0xF000 mask)
	X     uint8  // register index in bits 8-11
	Y     uint8  // register index in bits 4-7
	N     uint8  // lowest nibble
	Addr  uint16 // lowest 12 bits
	KK    uint8  // lowest byte
}

// Decode splits an instruction word into its fields.
func Decode(word uint16) Instruction {
	return Instruction{
		Raw:   word,
		Group: word & GroupMask,
		X:     uint8((word & XMask) >> 8),
		Y:     uint8((word & YMask) >> 4),
		N:     uint8(word & NMask),
		Addr:  word & AddrMask,
		KK:    uint8(word & KKMask),
	}
}

// Key returns the dispatch table key of the instruction.
func (i Instruction) Key() uint16 {
	switch i.Group {
	case 0x0000, 0xE000, 0xF000:
		return i.Raw & LowByteKeyMask
	case 0x8000:
		return i.Raw & LowNibbleKeyMask
	default:
		return i.Group
	}
}

// Operation identifies what an instruction does.
type Operation uint8

// All operations of the instruction set. SKP and SKNP share SkipKey and are
// told apart by Entry.Pressed.
const (
	Invalid Operation = iota
	ClearScreen
	Return
	Jump
	Call
	SkipEqualImmediate
	SkipNotEqualImmediate
	SkipEqualRegister
	SkipNotEqualRegister
	LoadImmediate
	AddImmediate
	LoadRegister
	Or
	And
	Xor
	AddRegister
	Sub
	ShiftRight
	SubN
	ShiftLeft
	LoadIndex
	JumpOffset
	Random
	Draw
	SkipKey
	LoadDelay
	WaitKey
	SetDelay
	SetSound
	AddIndex
	LoadFont
	StoreBCD
	StoreRegisters
	LoadRegisters
)

// Entry is a row of the dispatch table.
type Entry struct {
	Key         uint16             // dispatch key, see Instruction.Key
	Op          Operation          // operation to execute
	Mnemonic    string             // canonical assembler form
	Pressed     bool               // SkipKey polarity: true for SKP, false for SKNP
	Instruction *chip8.Instruction // matching retrogolib instruction definition
}

// Name returns the lower case instruction name as used by assemblers.
func (e Entry) Name() string {
	if e.Instruction == nil {
		return ""
	}
	return e.Instruction.Name
}

var table = []Entry{
	{Key: 0x00E0, Op: ClearScreen, Mnemonic: "CLS", Instruction: chip8.ClsInst},
	{Key: 0x00EE, Op: Return, Mnemonic: "RET", Instruction: chip8.RetInst},
	{Key: 0x1000, Op: Jump, Mnemonic: "JP addr", Instruction: chip8.JpInst},
	{Key: 0x2000, Op: Call, Mnemonic: "CALL addr", Instruction: chip8.CallInst},
	{Key: 0x3000, Op: SkipEqualImmediate, Mnemonic: "SE Vx, kk", Instruction: chip8.SeInst},
	{Key: 0x4000, Op: SkipNotEqualImmediate, Mnemonic: "SNE Vx, kk", Instruction: chip8.SneInst},
	{Key: 0x5000, Op: SkipEqualRegister, Mnemonic: "SE Vx, Vy", Instruction: chip8.SeInst},
	{Key: 0x6000, Op: LoadImmediate, Mnemonic: "LD Vx, kk", Instruction: chip8.LdInst},
	{Key: 0x7000, Op: AddImmediate, Mnemonic: "ADD Vx, kk", Instruction: chip8.AddInst},
	{Key: 0x8000, Op: LoadRegister, Mnemonic: "LD Vx, Vy", Instruction: chip8.LdInst},
	{Key: 0x8001, Op: Or, Mnemonic: "OR Vx, Vy", Instruction: chip8.OrInst},
	{Key: 0x8002, Op: And, Mnemonic: "AND Vx, Vy", Instruction: chip8.AndInst},
	{Key: 0x8003, Op: Xor, Mnemonic: "XOR Vx, Vy", Instruction: chip8.XorInst},
	{Key: 0x8004, Op: AddRegister, Mnemonic: "ADD Vx, Vy", Instruction: chip8.AddInst},
	{Key: 0x8005, Op: Sub, Mnemonic: "SUB Vx, Vy", Instruction: chip8.SubInst},
	{Key: 0x8006, Op: ShiftRight, Mnemonic: "SHR Vx", Instruction: chip8.ShrInst},
	{Key: 0x8007, Op: SubN, Mnemonic: "SUBN Vx, Vy", Instruction: chip8.SubnInst},
	{Key: 0x800E, Op: ShiftLeft, Mnemonic: "SHL Vx", Instruction: chip8.ShlInst},
	{Key: 0x9000, Op: SkipNotEqualRegister, Mnemonic: "SNE Vx, Vy", Instruction: chip8.SneInst},
	{Key: 0xA000, Op: LoadIndex, Mnemonic: "LD I, addr", Instruction: chip8.LdInst},
	{Key: 0xB000, Op: JumpOffset, Mnemonic: "JP V0, addr", Instruction: chip8.JpInst},
	{Key: 0xC000, Op: Random, Mnemonic: "RND Vx, kk", Instruction: chip8.RndInst},
	{Key: 0xD000, Op: Draw, Mnemonic: "DRW Vx, Vy, n", Instruction: chip8.DrwInst},
	{Key: 0xE09E, Op: SkipKey, Mnemonic: "SKP Vx", Pressed: true, Instruction: chip8.SkpInst},
	{Key: 0xE0A1, Op: SkipKey, Mnemonic: "SKNP Vx", Pressed: false, Instruction: chip8.SknpInst},
	{Key: 0xF007, Op: LoadDelay, Mnemonic: "LD Vx, DT", Instruction: chip8.LdInst},
	{Key: 0xF00A, Op: WaitKey, Mnemonic: "LD Vx, K", Instruction: chip8.LdInst},
	{Key: 0xF015, Op: SetDelay, Mnemonic: "LD DT, Vx", Instruction: chip8.LdInst},
	{Key: 0xF018, Op: SetSound, Mnemonic: "LD ST, Vx", Instruction: chip8.LdInst},
	{Key: 0xF01E, Op: AddIndex, Mnemonic: "ADD I, Vx", Instruction: chip8.AddInst},
	{Key: 0xF029, Op: LoadFont, Mnemonic: "LD F, Vx", Instruction: chip8.LdInst},
	{Key: 0xF033, Op: StoreBCD, Mnemonic: "LD B, Vx", Instruction: chip8.LdInst},
	{Key: 0xF055, Op: StoreRegisters, Mnemonic: "LD [I], Vx", Instruction: chip8.LdInst},
	{Key: 0xF065, Op: LoadRegisters, Mnemonic: "LD Vx, [I]", Instruction: chip8.LdInst},
}

var byKey = func() map[uint16]Entry {
	m := make(map[uint16]Entry, len(table))
	for _, entry := range table {
		m[entry.Key] = entry
	}
	return m
}()

// Lookup returns the table entry for the instruction.
func Lookup(ins Instruction) (Entry, bool) {
	entry, ok := byKey[ins.Key()]
	return entry, ok
}

// Table returns a copy of all dispatch table rows.
func Table() []Entry {
	rows := make([]Entry, len(table))
	copy(rows, table)
	return rows
}

var operationNames = map[Operation]string{
	Invalid:               "invalid",
	ClearScreen:           "clear screen",
	Return:                "return",
	Jump:                  "jump",
	Call:                  "call",
	SkipEqualImmediate:    "skip equal immediate",
	SkipNotEqualImmediate: "skip not equal immediate",
	SkipEqualRegister:     "skip equal register",
	SkipNotEqualRegister:  "skip not equal register",
	LoadImmediate:         "load immediate",
	AddImmediate:          "add immediate",
	LoadRegister:          "load register",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddRegister:           "add register",
	Sub:                   "sub",
	ShiftRight:            "shift right",
	SubN:                  "subn",
	ShiftLeft:             "shift left",
	LoadIndex:             "load index",
	JumpOffset:            "jump offset",
	Random:                "random",
	Draw:                  "draw",
	SkipKey:               "skip key",
	LoadDelay:             "load delay",
	WaitKey:               "wait key",
	SetDelay:              "set delay",
	SetSound:              "set sound",
	AddIndex:              "add index",
	LoadFont:              "load font",
	StoreBCD:              "store bcd",
	StoreRegisters:        "store registers",
	LoadRegisters:         "load registers",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}
