package display

import "testing"

func TestPixelAtPacking(t *testing.T) {
	var fb [256]byte
	fb[0] = 0x80 // leftmost pixel of row 0, byte 0

	if !pixelAt(fb, 0, 0) {
		t.Error("pixelAt(0,0) => false; want true")
	}
	if pixelAt(fb, 1, 0) {
		t.Error("pixelAt(1,0) => true; want false")
	}
}

func TestPixelAtSecondByte(t *testing.T) {
	var fb [256]byte
	fb[1] = 0x01 // rightmost pixel of row 0, byte 1 => x=15

	if !pixelAt(fb, 15, 0) {
		t.Error("pixelAt(15,0) => false; want true")
	}
}

func TestPixelAtRowOffset(t *testing.T) {
	var fb [256]byte
	fb[8] = 0x80 // row 1, byte 0

	if !pixelAt(fb, 0, 1) {
		t.Error("pixelAt(0,1) => false; want true")
	}
	if pixelAt(fb, 0, 0) {
		t.Error("pixelAt(0,0) => true; want false (row 0 untouched)")
	}
}
