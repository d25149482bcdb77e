package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"clear screen", 0x00E0, "cls"},
		{"return", 0x00EE, "ret"},
		{"jump", 0x1234, "jp $234"},
		{"jump with offset", 0xB234, "jp V0, $234"},
		{"call", 0x2345, "call $345"},
		{"skip equal byte", 0x3234, "se V2, $34"},
		{"skip not equal byte", 0x4A01, "sne VA, $01"},
		{"skip equal register", 0x5230, "se V2, V3"},
		{"skip not equal register", 0x9120, "sne V1, V2"},
		{"load byte", 0x6009, "ld V0, $09"},
		{"add byte", 0x7005, "add V0, $05"},
		{"load register", 0x8120, "ld V1, V2"},
		{"or", 0x8121, "or V1, V2"},
		{"and", 0x8122, "and V1, V2"},
		{"xor", 0x8123, "xor V1, V2"},
		{"add register", 0x8124, "add V1, V2"},
		{"sub", 0x8125, "sub V1, V2"},
		{"shift right", 0x8236, "shr V2"},
		{"subn", 0x8127, "subn V1, V2"},
		{"shift left", 0x823E, "shl V2"},
		{"load index", 0xA234, "ld I, $234"},
		{"random", 0xC10F, "rnd V1, $0F"},
		{"draw", 0xD235, "drw V2, V3, $5"},
		{"skip pressed", 0xE29E, "skp V2"},
		{"skip not pressed", 0xE2A1, "sknp V2"},
		{"load delay", 0xF107, "ld V1, DT"},
		{"wait key", 0xF10A, "ld V1, K"},
		{"set delay", 0xF115, "ld DT, V1"},
		{"set sound", 0xF118, "ld ST, V1"},
		{"add index", 0xF11E, "add I, V1"},
		{"font", 0xF129, "ld F, V1"},
		{"bcd", 0xF133, "ld B, V1"},
		{"store registers", 0xF155, "ld [I], V1"},
		{"load registers", 0xF165, "ld V1, [I]"},
		{"machine call", 0x0123, ".word $0123"},
		{"unknown arithmetic", 0x8008, ".word $8008"},
		{"unknown key", 0xE000, ".word $E000"},
		{"unknown special", 0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.word))
		})
	}
}
