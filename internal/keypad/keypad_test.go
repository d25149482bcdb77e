package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSetPressed(t *testing.T) {
	k := New()
	assert.False(t, k.IsPressed(0x5))

	k.SetPressed(0x5, true)
	assert.True(t, k.IsPressed(0x5))

	k.SetPressed(0x5, false)
	assert.False(t, k.IsPressed(0x5))
}

func TestIsPressedMasksKey(t *testing.T) {
	k := New()
	k.SetPressed(0x1A, true)

	assert.True(t, k.IsPressed(0xA))
	assert.True(t, k.IsPressed(0xFA))
}

func TestFirstPressed(t *testing.T) {
	k := New()

	_, ok := k.FirstPressed()
	assert.False(t, ok)

	k.SetPressed(0xC, true)
	k.SetPressed(0x3, true)
	key, ok := k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x3), key)

	k.Release()
	_, ok = k.FirstPressed()
	assert.False(t, ok)
}

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		key  uint8
		find bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'Q', 0x4, true},
		{'x', 0x0, true},
		{'v', 0xF, true},
		{'F', 0xE, true},
		{'p', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := KeyForRune(tt.r)
			assert.Equal(t, tt.find, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestRunes(t *testing.T) {
	runes := Runes()
	for key, r := range runes {
		mapped, ok := KeyForRune(r)
		assert.True(t, ok)
		assert.Equal(t, uint8(key), mapped)
	}
}
