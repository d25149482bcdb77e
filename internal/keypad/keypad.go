// Package keypad implements the 16 key hexadecimal CHIP-8 keypad state.
package keypad

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 logical keys. The interpreter
// only reads it, frontends write it from host input events.
type Keypad struct {
	pressed [KeyCount]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// IsPressed returns whether the key is pressed. Only the low nibble of the
// key is used.
func (k *Keypad) IsPressed(key uint8) bool {
	return k.pressed[key&0xF]
}

// SetPressed sets the pressed state of the key.
func (k *Keypad) SetPressed(key uint8, pressed bool) {
	k.pressed[key&0xF] = pressed
}

// FirstPressed returns the lowest indexed pressed key.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for key, pressed := range k.pressed {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

// Release releases all keys.
func (k *Keypad) Release() {
	k.pressed = [KeyCount]bool{}
}

// layout maps the left hand block of a QWERTY keyboard to the COSMAC VIP
// keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var layout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyForRune translates a host keyboard character into a keypad key.
// Upper case letters map like their lower case form.
func KeyForRune(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := layout[r]
	return key, ok
}

// Runes returns the host keyboard character for every keypad key, indexed
// by key.
func Runes() [KeyCount]rune {
	var runes [KeyCount]rune
	for r, key := range layout {
		runes[key] = r
	}
	return runes
}
