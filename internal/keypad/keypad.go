// Package keypad maps a standard QWERTY keyboard onto the CHIP-8's
// 16-key hex keypad, shared by every display backend.
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   q w e r
//	7 8 9 E        a s d f
//	A 0 B F        z x c v
package keypad

// HexKeys maps rune-encoded keyboard keys to CHIP-8 key indices 0x0-0xF.
var HexKeys = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Lookup returns the CHIP-8 key index for a keyboard rune and whether it
// is mapped at all.
func Lookup(r rune) (byte, bool) {
	k, ok := HexKeys[r]
	return k, ok
}
