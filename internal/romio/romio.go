// Package romio loads CHIP-8 program images from disk into a VM.
package romio

import (
	"fmt"
	"os"

	"github.com/chipforge/chip8vm/internal/chip8"
)

// LoadFile reads the ROM at path and loads it into vm. It mirrors the
// teacher's loadROM size-check convention but reports failures instead of
// panicking, and leaves vm untouched if the read or the load fails.
func LoadFile(vm *chip8.VM, path string) error {
	rom, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("romio: reading %s: %w", path, err)
	}
	if err := vm.Load(rom); err != nil {
		return fmt.Errorf("romio: loading %s: %w", path, err)
	}
	return nil
}
