package display

import (
	"fmt"
	"time"

	"github.com/chipforge/chip8vm/internal/chip8"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const (
	windowScreenWidth  float64 = 1024
	windowScreenHeight float64 = 768
	keyRepeatDur               = time.Second / 5
)

// hexToButton maps a CHIP-8 key index to the pixelgl key that drives it,
// laid out the way it sits on the physical keypad:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   q w e r
//	7 8 9 E        a s d f
//	A 0 B F        z x c v
var hexToButton = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// PixelBackend renders the framebuffer into a pixelgl window, scaling
// each CHIP-8 pixel up to a filled rectangle.
type PixelBackend struct {
	win      *pixelgl.Window
	keysDown [16]*time.Ticker
}

// NewPixelBackend creates and shows the emulator window.
func NewPixelBackend(title string) (*PixelBackend, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, windowScreenWidth, windowScreenHeight),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("display: creating window: %w", err)
	}
	return &PixelBackend{win: win}, nil
}

// Draw clears the window and redraws every set pixel as a filled
// rectangle scaled to the window's dimensions.
func (b *PixelBackend) Draw(fb [256]byte) error {
	b.win.Clear(colornames.Black)

	drawer := imdraw.New(nil)
	drawer.Color = pixel.RGB(1, 1, 1)
	cellW, cellH := windowScreenWidth/screenWidth, windowScreenHeight/screenHeight

	for x := 0; x < screenWidth; x++ {
		for y := 0; y < screenHeight; y++ {
			if !pixelAt(fb, x, y) {
				continue
			}
			// Pixel rows are stored top-down; pixelgl's origin is
			// bottom-left, so flip vertically when placing the cell.
			flippedY := screenHeight - 1 - y
			drawer.Push(pixel.V(cellW*float64(x), cellH*float64(flippedY)))
			drawer.Push(pixel.V(cellW*float64(x)+cellW, cellH*float64(flippedY)+cellH))
			drawer.Rectangle(0)
		}
	}

	drawer.Draw(b.win)
	b.win.Update()
	return nil
}

// PollInput checks every mapped key for press/release/repeat transitions
// and forwards them to vm.SetKey, matching the teacher window's repeat
// ticker behavior for keys held down.
func (b *PixelBackend) PollInput(vm *chip8.VM) error {
	for hex, button := range hexToButton {
		switch {
		case b.win.JustReleased(button):
			if b.keysDown[hex] != nil {
				b.keysDown[hex].Stop()
				b.keysDown[hex] = nil
			}
			if err := vm.SetKey(int(hex), false); err != nil {
				return err
			}
		case b.win.JustPressed(button):
			if b.keysDown[hex] == nil {
				b.keysDown[hex] = time.NewTicker(keyRepeatDur)
			}
			if err := vm.SetKey(int(hex), true); err != nil {
				return err
			}
		}

		if b.keysDown[hex] == nil {
			continue
		}
		select {
		case <-b.keysDown[hex].C:
			if err := vm.SetKey(int(hex), true); err != nil {
				return err
			}
		default:
		}
	}

	b.win.UpdateInput()
	return nil
}

// Closed reports whether the window's close button was clicked.
func (b *PixelBackend) Closed() bool { return b.win.Closed() }

// Close is a no-op; pixelgl windows are cleaned up by the runtime when
// the host process exits.
func (b *PixelBackend) Close() error { return nil }
