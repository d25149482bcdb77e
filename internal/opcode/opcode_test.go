package opcode

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want Instruction
	}{
		{
			name: "LD I, addr",
			word: 0xA007,
			want: Instruction{Raw: 0xA007, Group: 0xA000, X: 0x0, Y: 0x0, N: 0x7, Addr: 0x007, KK: 0x07},
		},
		{
			name: "DRW V1, V2, 5",
			word: 0xD125,
			want: Instruction{Raw: 0xD125, Group: 0xD000, X: 0x1, Y: 0x2, N: 0x5, Addr: 0x125, KK: 0x25},
		},
		{
			name: "all nibbles set",
			word: 0xFFFF,
			want: Instruction{Raw: 0xFFFF, Group: 0xF000, X: 0xF, Y: 0xF, N: 0xF, Addr: 0xFFF, KK: 0xFF},
		},
		{
			name: "zero",
			word: 0x0000,
			want: Instruction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.word))
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		word uint16
		key  uint16
	}{
		{0x00E0, 0x00E0},
		{0x00EE, 0x00EE},
		{0x0123, 0x0023}, // SYS addr keeps only the low byte and is unknown
		{0x1234, 0x1000},
		{0x2ABC, 0x2000},
		{0x5120, 0x5000},
		{0x8AB4, 0x8004},
		{0x8ABE, 0x800E},
		{0xA123, 0xA000},
		{0xD125, 0xD000},
		{0xE59E, 0xE09E},
		{0xE7A1, 0xE0A1},
		{0xF30A, 0xF00A},
		{0xFF65, 0xF065},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.key, Decode(tt.word).Key())
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		word    uint16
		op      Operation
		pressed bool
		found   bool
	}{
		{0x00E0, ClearScreen, false, true},
		{0x00EE, Return, false, true},
		{0x1204, Jump, false, true},
		{0x2300, Call, false, true},
		{0x3A10, SkipEqualImmediate, false, true},
		{0x4A10, SkipNotEqualImmediate, false, true},
		{0x5AB0, SkipEqualRegister, false, true},
		{0x6009, LoadImmediate, false, true},
		{0x7005, AddImmediate, false, true},
		{0x8120, LoadRegister, false, true},
		{0x8121, Or, false, true},
		{0x8122, And, false, true},
		{0x8123, Xor, false, true},
		{0x8124, AddRegister, false, true},
		{0x8125, Sub, false, true},
		{0x8126, ShiftRight, false, true},
		{0x8127, SubN, false, true},
		{0x812E, ShiftLeft, false, true},
		{0x9AB0, SkipNotEqualRegister, false, true},
		{0xA300, LoadIndex, false, true},
		{0xB300, JumpOffset, false, true},
		{0xC1FF, Random, false, true},
		{0xD125, Draw, false, true},
		{0xE19E, SkipKey, true, true},
		{0xE1A1, SkipKey, false, true},
		{0xF107, LoadDelay, false, true},
		{0xF10A, WaitKey, false, true},
		{0xF115, SetDelay, false, true},
		{0xF118, SetSound, false, true},
		{0xF11E, AddIndex, false, true},
		{0xF129, LoadFont, false, true},
		{0xF133, StoreBCD, false, true},
		{0xF155, StoreRegisters, false, true},
		{0xF165, LoadRegisters, false, true},

		{0x0000, Invalid, false, false},
		{0x0123, Invalid, false, false},
		{0x8128, Invalid, false, false},
		{0xE1FF, Invalid, false, false},
		{0xF1FF, Invalid, false, false},
	}

	for _, tt := range tests {
		entry, ok := Lookup(Decode(tt.word))
		assert.Equal(t, tt.found, ok)
		assert.Equal(t, tt.op, entry.Op)
		assert.Equal(t, tt.pressed, entry.Pressed)
	}
}

func TestTable(t *testing.T) {
	rows := Table()
	assert.Len(t, rows, 34)

	keys := map[uint16]struct{}{}
	for _, row := range rows {
		_, duplicate := keys[row.Key]
		assert.False(t, duplicate, "duplicate key")
		keys[row.Key] = struct{}{}

		assert.NotNil(t, row.Instruction)
		assert.NotEmpty(t, row.Name())
		assert.NotEmpty(t, row.Mnemonic)
		mnemonic, _, _ := strings.Cut(row.Mnemonic, " ")
		assert.Equal(t, strings.ToLower(mnemonic), row.Name(), row.Mnemonic)
		assert.True(t, row.Op != Invalid)

		// every key must dispatch to its own row
		entry, ok := Lookup(Decode(row.Key))
		assert.True(t, ok)
		assert.Equal(t, row.Mnemonic, entry.Mnemonic)
	}

	rows[0].Op = Invalid
	entry, _ := Lookup(Decode(0x00E0))
	assert.Equal(t, ClearScreen, entry.Op)
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "wait key", WaitKey.String())
	assert.Equal(t, "skip key", SkipKey.String())
	assert.Equal(t, "unknown", Operation(255).String())
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		word uint16
		name string
	}{
		{0x00E0, chip8.ClsName},
		{0x00EE, chip8.RetName},
		{0x1204, chip8.JpName},
		{0xB204, chip8.JpName},
		{0x2208, chip8.CallName},
		{0x3A01, chip8.SeName},
		{0x9120, chip8.SneName},
		{0x6009, chip8.LdName},
		{0xF065, chip8.LdName},
		{0x7005, chip8.AddName},
		{0xF11E, chip8.AddName},
		{0x8125, chip8.SubName},
		{0x8127, chip8.SubnName},
		{0x810E, chip8.ShlName},
		{0xC0FF, chip8.RndName},
		{0xD125, chip8.DrwName},
		{0xE19E, chip8.SkpName},
		{0xE1A1, chip8.SknpName},
	}

	for _, tt := range tests {
		entry, ok := Lookup(Decode(tt.word))
		assert.True(t, ok)
		assert.Equal(t, tt.name, entry.Name())
		assert.Equal(t, tt.name, entry.Instruction.Name)
	}
}
