// Package display provides interchangeable presentation backends for a
// chip8.VM's framebuffer: a windowed OpenGL backend and a terminal
// backend, both driving the same 64x32 packed monochrome bitmap and the
// same hex keypad mapping.
package display

import "github.com/chipforge/chip8vm/internal/chip8"

const (
	screenWidth  = 64
	screenHeight = 32
)

// Backend is a presentation surface that can paint a CHIP-8 framebuffer
// and feed keyboard input back into a VM. Implementations only ever call
// vm.ReadFramebuffer and vm.SetKey — the public interface the core VM
// exposes to any host.
type Backend interface {
	// Draw paints the current framebuffer.
	Draw(fb [256]byte) error

	// PollInput drains pending input events and forwards key
	// transitions to vm via SetKey.
	PollInput(vm *chip8.VM) error

	// Closed reports whether the user asked to quit.
	Closed() bool

	// Close releases backend resources.
	Close() error
}

// pixelAt reports whether the pixel at (x, y) is set in a packed 256-byte
// framebuffer: bit 7 of byte (x/8)+8*y is the leftmost pixel of that byte.
func pixelAt(fb [256]byte, x, y int) bool {
	idx := x/8 + 8*y
	bit := byte(0x80 >> uint(x%8))
	return fb[idx]&bit != 0
}
