package display

import (
	"errors"
	"fmt"

	"github.com/chipforge/chip8vm/internal/chip8"
	"github.com/chipforge/chip8vm/internal/keypad"
	"github.com/nsf/termbox-go"
)

// ErrQuit is returned by a TermboxBackend's PollInput when the user asks
// to quit (escape).
var ErrQuit = errors.New("display: quit key pressed")

const (
	onCell  = '█'
	offCell = ' '
	quitKey = termbox.KeyEsc
)

// TermboxBackend renders the framebuffer as block characters in a
// terminal and reads keyboard events off a background goroutine, for
// headless or CI use without an OpenGL context. Grounded on the
// termbox-based display/keypad used elsewhere in the retrieved corpus.
type TermboxBackend struct {
	events chan termbox.Event
	closed bool
}

// NewTermboxBackend initializes termbox and starts the input-polling
// goroutine.
func NewTermboxBackend() (*TermboxBackend, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("display: termbox init: %w", err)
	}
	b := &TermboxBackend{events: make(chan termbox.Event, 16)}
	go b.poll()
	return b, nil
}

func (b *TermboxBackend) poll() {
	for {
		ev := termbox.PollEvent()
		b.events <- ev
		if ev.Type == termbox.EventKey && ev.Key == quitKey {
			return
		}
	}
}

// Draw paints the 64x32 framebuffer as two-character-wide cells so the
// aspect ratio reads correctly in a typical terminal font.
func (b *TermboxBackend) Draw(fb [256]byte) error {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			ch := offCell
			if pixelAt(fb, x, y) {
				ch = onCell
			}
			termbox.SetCell(x*2, y, ch, termbox.ColorDefault, termbox.ColorDefault)
			termbox.SetCell(x*2+1, y, ch, termbox.ColorDefault, termbox.ColorDefault)
		}
	}
	return termbox.Flush()
}

// PollInput drains any buffered key events without blocking and
// forwards the ones mapped by internal/keypad to vm.SetKey. Since
// termbox only reports key-down events, a release is synthesized
// immediately after so FX0A-style waits still resolve on a fresh press.
func (b *TermboxBackend) PollInput(vm *chip8.VM) error {
	for {
		select {
		case ev := <-b.events:
			if ev.Type != termbox.EventKey {
				continue
			}
			if ev.Key == quitKey {
				b.closed = true
				return ErrQuit
			}
			if hex, ok := keypad.Lookup(ev.Ch); ok {
				if err := vm.SetKey(int(hex), true); err != nil {
					return err
				}
				if err := vm.SetKey(int(hex), false); err != nil {
					return err
				}
			}
		default:
			return nil
		}
	}
}

// Closed reports whether the quit key has been seen.
func (b *TermboxBackend) Closed() bool { return b.closed }

// Close shuts down the termbox session.
func (b *TermboxBackend) Close() error {
	termbox.Close()
	return nil
}
