// Package chip8 implements a CHIP-8 virtual machine: opcode decode and
// dispatch, the sprite-draw primitive, the call/return stack, the register
// ALU, the wait-for-keypress suspension, and the interaction between the
// instruction clock and the delay/sound timers.
//
//	System memory map
//	+---------------+= 0xFFF (4095) End Chip-8 RAM
//	| 0x200 to 0xFFF|
//	|     Chip-8    |
//	| Program / Data|
//	|     Space     |
//	+---------------+= 0x200 (512) Start of most Chip-8 programs
//	| 0x000 to 0x1FF|
//	| Font data     |
//	| (0x000-0x04F) |
//	+---------------+= 0x000 (0) Begin Chip-8 RAM.
package chip8

import (
	"math/rand"
	"strconv"
)

const (
	ramSize              = 4096
	numRegisters         = 16
	stackSize            = 16
	numKeys              = 16
	screenColumns        = 64 / 8
	screenRows           = 32
	screenBytes          = screenRows * screenColumns
	programCounterStart uint16 = 0x200
	maxROMSize           = ramSize - int(programCounterStart)
)

// Quirks selects between historically divergent opcode behaviors. The
// zero value is the "modern" behavior this package defaults to.
type Quirks struct {
	// ShiftUsesVY makes 8XY6/8XYE read and shift V[Y] into V[X], the
	// original COSMAC VIP convention, instead of shifting V[X] in place.
	ShiftUsesVY bool

	// NoIncrementOnStoreLoad makes FX55/FX65 leave I unchanged instead
	// of advancing it by X+1.
	NoIncrementOnStoreLoad bool
}

// VM is a CHIP-8 virtual machine. It is single-threaded and synchronous:
// callers must serialize their own calls to Tick, Load, and SetKey. A
// reentrancy guard rejects an overlapping Tick (including one invoked
// while a Load is copying a program image) by silently no-opping it.
type VM struct {
	memory [ramSize]byte
	v      [numRegisters]byte
	i      uint16
	pc     uint16
	stack  [stackSize]uint16
	sp     uint16

	gfx [screenBytes]byte

	delayTimer byte
	soundTimer byte

	keys [numKeys]byte

	awaitingKeypress bool
	awaitKeyRegister byte

	quirks Quirks
	rng    *rand.Rand

	ticking bool

	onSound    func()
	onGraphics func()
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithQuirks selects non-default opcode behaviors. See Quirks.
func WithQuirks(q Quirks) Option {
	return func(vm *VM) { vm.quirks = q }
}

// WithSeed seeds the VM's random number generator, used by CXNN. Tests
// should always supply a seed so CXNN results are reproducible.
func WithSeed(seed int64) Option {
	return func(vm *VM) { vm.rng = rand.New(rand.NewSource(seed)) }
}

// New returns a freshly initialized VM: RAM zeroed except for the
// preloaded font, registers zeroed, PC at the program start address,
// timers at zero, and the keypad unpressed.
func New(opts ...Option) *VM {
	vm := &VM{}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.rng == nil {
		vm.rng = rand.New(rand.NewSource(1))
	}
	vm.reset()
	return vm
}

// reset restores the VM to its initial state, preserving the font data
// that reset itself (re)installs.
func (vm *VM) reset() {
	vm.memory = [ramSize]byte{}
	vm.v = [numRegisters]byte{}
	vm.i = 0
	vm.pc = programCounterStart
	vm.stack = [stackSize]uint16{}
	vm.sp = 0
	vm.gfx = [screenBytes]byte{}
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.keys = [numKeys]byte{}
	vm.awaitingKeypress = false
	vm.awaitKeyRegister = 0
	copy(vm.memory[:len(fontSet)], fontSet[:])
}

// Load resets the VM and copies image into RAM starting at 0x200. It
// fails without touching VM state if image is empty or longer than the
// available program space (4096 - 0x200 = 3584 bytes).
func (vm *VM) Load(image []byte) error {
	if len(image) == 0 {
		return &loadError{"program image is empty"}
	}
	if len(image) > maxROMSize {
		return &loadError{fmtTooBig(len(image), maxROMSize)}
	}

	vm.ticking = true
	defer func() { vm.ticking = false }()

	vm.reset()
	copy(vm.memory[programCounterStart:], image)
	return nil
}

// loadError is a non-fatal error returned by Load; it never represents a
// violated VM invariant.
type loadError struct{ msg string }

func (e *loadError) Error() string { return "chip8: load: " + e.msg }

func fmtTooBig(got, max int) string {
	return "program image too large: " + strconv.Itoa(got) + " bytes, max " + strconv.Itoa(max) + " bytes"
}

// OnSound installs the callback invoked when the sound timer transitions
// from 1 to 0. It represents the end of an audible interval; the VM does
// not synthesize audio itself.
func (vm *VM) OnSound(fn func()) { vm.onSound = fn }

// OnGraphics installs the callback invoked after the framebuffer changes
// (00E0 and DXYN).
func (vm *VM) OnGraphics(fn func()) { vm.onGraphics = fn }

// ReadFramebuffer returns a copy of the 256-byte packed monochrome
// framebuffer: 32 rows of 8 bytes, bit 7 of each byte the leftmost pixel.
func (vm *VM) ReadFramebuffer() [screenBytes]byte {
	return vm.gfx
}

// SetKey updates the pressed state of key index (0..15). If the VM is
// waiting for a keypress (FX0A) at the moment of a 0->1 transition, the
// wait resolves: the destination register receives index and the next
// Tick will resume fetching. Releases never resolve a wait.
func (vm *VM) SetKey(index int, pressed bool) error {
	if index < 0 || index >= numKeys {
		return &FatalError{Reason: "set_key index out of range: " + strconv.Itoa(index)}
	}

	wasPressed := vm.keys[index] != 0
	if pressed {
		vm.keys[index] = 1
	} else {
		vm.keys[index] = 0
	}

	if pressed && !wasPressed && vm.awaitingKeypress {
		vm.v[vm.awaitKeyRegister] = byte(index)
		vm.awaitingKeypress = false
	}
	return nil
}

// Tick advances the VM by one instruction: fetch, decode, execute, then
// decrement the timers. It no-ops if the VM is waiting for a keypress or
// if a Tick (or Load) is already in progress.
func (vm *VM) Tick() error {
	if vm.awaitingKeypress || vm.ticking {
		return nil
	}
	vm.ticking = true
	defer func() { vm.ticking = false }()

	if vm.pc >= ramSize-1 {
		return &FatalError{Reason: "program counter out of bounds (" + strconv.Itoa(int(vm.pc)) + ")"}
	}

	op := uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1])
	vm.pc = (vm.pc + 2) % ramSize

	if err := vm.execute(decode(op)); err != nil {
		return err
	}

	vm.tickTimers()
	return nil
}

func (vm *VM) tickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
		if vm.soundTimer == 0 && vm.onSound != nil {
			vm.onSound()
		}
	}
}

func (vm *VM) skip() {
	vm.pc = (vm.pc + 2) % ramSize
}

func (vm *VM) fireGraphics() {
	if vm.onGraphics != nil {
		vm.onGraphics()
	}
}
