package chip8

import "testing"

func exec(t *testing.T, vm *VM, op uint16) {
	t.Helper()
	if err := vm.execute(decode(op)); err != nil {
		t.Fatalf("execute(%#04x) => %v", op, err)
	}
}

func TestAddCarry(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0xFF
	vm.v[1] = 0x01

	exec(t, vm, 0x8014) // 8XY4: V0 += V1

	if vm.v[0] != 0 {
		t.Errorf("V0 => %#x; want 0", vm.v[0])
	}
	if vm.v[0xF] != 1 {
		t.Errorf("VF => %d; want 1", vm.v[0xF])
	}
}

func TestSubtractBorrow(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0x00
	vm.v[1] = 0x01

	exec(t, vm, 0x8015) // 8XY5: V0 -= V1

	if vm.v[0] != 0xFF {
		t.Errorf("V0 => %#x; want 0xFF", vm.v[0])
	}
	if vm.v[0xF] != 0 {
		t.Errorf("VF => %d; want 0 (borrow occurred)", vm.v[0xF])
	}
}

func TestShiftRightModernIgnoresVY(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0x03
	vm.v[1] = 0xFE

	exec(t, vm, 0x8016) // 8XY6

	if vm.v[0] != 0x01 {
		t.Errorf("V0 => %#x; want 0x01", vm.v[0])
	}
	if vm.v[0xF] != 1 {
		t.Errorf("VF => %d; want 1 (old LSB of V0)", vm.v[0xF])
	}
}

func TestShiftRightClassicUsesVY(t *testing.T) {
	vm := New(WithQuirks(Quirks{ShiftUsesVY: true}), WithSeed(1))
	vm.v[0] = 0x03
	vm.v[1] = 0xFE

	exec(t, vm, 0x8016) // 8XY6

	if vm.v[0] != 0x7F {
		t.Errorf("V0 => %#x; want 0x7F (V1 shifted)", vm.v[0])
	}
	if vm.v[0xF] != 0 {
		t.Errorf("VF => %d; want 0 (old LSB of V1)", vm.v[0xF])
	}
}

func TestShiftLeft(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0x81

	exec(t, vm, 0x801E) // 8XYE

	if vm.v[0] != 0x02 {
		t.Errorf("V0 => %#x; want 0x02", vm.v[0])
	}
	if vm.v[0xF] != 1 {
		t.Errorf("VF => %d; want 1 (old MSB set)", vm.v[0xF])
	}
}

// 8XY7's flag compares against the OLD VX, not the freshly-stored one.
func TestSubtractReverseUsesOldVX(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0x05 // VX
	vm.v[1] = 0x03 // VY

	exec(t, vm, 0x8017) // 8XY7: VX = VY - VX

	if vm.v[0] != 0xFE { // 3 - 5 mod 256
		t.Errorf("V0 => %#x; want 0xFE", vm.v[0])
	}
	// VY(3) >= old VX(5) is false => borrow => VF = 0
	if vm.v[0xF] != 0 {
		t.Errorf("VF => %d; want 0", vm.v[0xF])
	}
}

func TestIndexAddOverflow(t *testing.T) {
	vm := New(WithSeed(1))
	vm.i = 0x0FFF
	vm.v[0] = 1

	exec(t, vm, 0xF01E) // FX1E

	if vm.i != 0 {
		t.Errorf("I => %#x; want 0", vm.i)
	}
	if vm.v[0xF] != 1 {
		t.Errorf("VF => %d; want 1", vm.v[0xF])
	}
}

func TestFX29UpperNibbleNotMasked(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0x25 // deliberately out-of-nibble-range

	exec(t, vm, 0xF029)

	if vm.i != 0x25*5 {
		t.Errorf("I => %#x; want %#x", vm.i, 0x25*5)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	vm := New(WithSeed(1))
	for i := 0; i <= 5; i++ {
		vm.v[i] = byte(0x10 + i)
	}
	vm.i = 0x300
	startI := vm.i

	exec(t, vm, 0xF555) // FX55, X=5
	vm.i = startI

	for i := 0; i <= 5; i++ {
		vm.v[i] = 0
	}

	vm.i = startI
	exec(t, vm, 0xF565) // FX65, X=5

	for i := 0; i <= 5; i++ {
		want := byte(0x10 + i)
		if vm.v[i] != want {
			t.Errorf("V%d => %#x; want %#x", i, vm.v[i], want)
		}
	}
	// I was reset to startI before FX65, so only FX65's X+1 advance remains.
	if vm.i != startI+(5+1) {
		t.Errorf("I => %#x; want %#x", vm.i, startI+(5+1))
	}
}

func TestStoreLoadNoIncrementQuirk(t *testing.T) {
	vm := New(WithQuirks(Quirks{NoIncrementOnStoreLoad: true}), WithSeed(1))
	vm.i = 0x300
	vm.v[0] = 0x42

	exec(t, vm, 0xF055) // FX55, X=0

	if vm.i != 0x300 {
		t.Errorf("I => %#x; want unchanged 0x300", vm.i)
	}
}

func Test7XNNDoesNotTouchVF(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0xF] = 0x42
	vm.v[0] = 0xFF

	exec(t, vm, 0x7001) // 7XNN: V0 += 1, wraps to 0

	if vm.v[0] != 0 {
		t.Errorf("V0 => %#x; want 0", vm.v[0])
	}
	if vm.v[0xF] != 0x42 {
		t.Errorf("VF => %#x; want unchanged 0x42", vm.v[0xF])
	}
}

func TestSkipInstructions(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 5
	startPC := vm.pc

	exec(t, vm, 0x3005) // 3XNN skip if V0==5
	if vm.pc != startPC+2 {
		t.Errorf("PC => %#x; want %#x", vm.pc, startPC+2)
	}

	vm.pc = startPC
	exec(t, vm, 0x3006) // 3XNN no-skip if V0!=6
	if vm.pc != startPC {
		t.Errorf("PC => %#x; want unchanged %#x", vm.pc, startPC)
	}
}

func TestJumpWithOffset(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 0x10

	exec(t, vm, 0xB200) // BNNN: PC = 0x200 + V0

	if vm.pc != 0x210 {
		t.Errorf("PC => %#x; want 0x210", vm.pc)
	}
}

func TestKeySkips(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 7
	if err := vm.SetKey(7, true); err != nil {
		t.Fatalf("SetKey => %v", err)
	}
	startPC := vm.pc

	exec(t, vm, 0xE09E) // EX9E: skip if key V0 pressed
	if vm.pc != startPC+2 {
		t.Errorf("PC => %#x; want %#x", vm.pc, startPC+2)
	}
	if vm.keys[7] == 0 {
		t.Fatal("EX9E must not clear key state")
	}
}

// V[X] holding a value above 15 is out of keypad range and must fail
// with a FatalError instead of panicking on the keys array index.
func TestKeySkipRejectsOutOfRangeRegister(t *testing.T) {
	vm := New(WithSeed(1))
	vm.v[0] = 200

	if err := vm.execute(decode(0xE09E)); err == nil {
		t.Fatal("execute(EX9E) with V[X]>15 => nil error; want FatalError")
	} else if _, ok := err.(*FatalError); !ok {
		t.Fatalf("execute(EX9E) with V[X]>15 => %T; want *FatalError", err)
	}

	if err := vm.execute(decode(0xE0A1)); err == nil {
		t.Fatal("execute(EXA1) with V[X]>15 => nil error; want FatalError")
	} else if _, ok := err.(*FatalError); !ok {
		t.Fatalf("execute(EXA1) with V[X]>15 => %T; want *FatalError", err)
	}
}

// I left near the top of RAM must fail multi-byte memory ops with a
// FatalError instead of panicking on the memory array index.
func TestFX33RejectsOutOfRangeMemoryAccess(t *testing.T) {
	vm := New(WithSeed(1))
	vm.i = ramSize - 1
	vm.v[0] = 159

	if err := vm.execute(decode(0xF033)); err == nil {
		t.Fatal("execute(FX33) with I near top of RAM => nil error; want FatalError")
	} else if _, ok := err.(*FatalError); !ok {
		t.Fatalf("execute(FX33) with I near top of RAM => %T; want *FatalError", err)
	}
}

func TestFX55RejectsOutOfRangeMemoryAccess(t *testing.T) {
	vm := New(WithSeed(1))
	vm.i = ramSize - 1

	if err := vm.execute(decode(0xFF55)); err == nil {
		t.Fatal("execute(FX55) with I+X past RAM => nil error; want FatalError")
	} else if _, ok := err.(*FatalError); !ok {
		t.Fatalf("execute(FX55) with I+X past RAM => %T; want *FatalError", err)
	}
}

func TestFX65RejectsOutOfRangeMemoryAccess(t *testing.T) {
	vm := New(WithSeed(1))
	vm.i = ramSize - 1

	if err := vm.execute(decode(0xFF65)); err == nil {
		t.Fatal("execute(FX65) with I+X past RAM => nil error; want FatalError")
	} else if _, ok := err.(*FatalError); !ok {
		t.Fatalf("execute(FX65) with I+X past RAM => %T; want *FatalError", err)
	}
}
