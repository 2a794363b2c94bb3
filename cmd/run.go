package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chipforge/chip8vm/internal/audio"
	"github.com/chipforge/chip8vm/internal/chip8"
	"github.com/chipforge/chip8vm/internal/display"
	"github.com/chipforge/chip8vm/internal/romio"
	"github.com/spf13/cobra"
)

const (
	defaultClockHz = 300
	beepAssetPath  = "assets/beep.mp3"
)

var (
	flagHz      int
	flagBackend string
	flagQuirk   string
	flagSeed    int64
)

// runCmd runs the chip8vm virtual machine and waits for a shutdown signal to exit
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run a ROM in the chip8vm emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  runChip8vm,
}

func init() {
	runCmd.Flags().IntVar(&flagHz, "hz", defaultClockHz, "instruction clock rate, in ticks per second")
	runCmd.Flags().StringVar(&flagBackend, "backend", "pixel", "display backend: pixel or termbox")
	runCmd.Flags().StringVar(&flagQuirk, "quirk", "modern", "opcode quirk set: modern or classic")
	runCmd.Flags().Int64Var(&flagSeed, "seed", time.Now().UnixNano(), "seed for the CXNN random number generator")
}

func runChip8vm(cmd *cobra.Command, args []string) error {
	romPath := args[0]

	quirks, err := parseQuirks(flagQuirk)
	if err != nil {
		return err
	}

	vm := chip8.New(chip8.WithQuirks(quirks), chip8.WithSeed(flagSeed))
	if err := romio.LoadFile(vm, romPath); err != nil {
		return err
	}

	backend, err := newBackend(flagBackend)
	if err != nil {
		return err
	}
	defer backend.Close()

	player, err := audio.Load(beepAssetPath)
	if err != nil {
		return fmt.Errorf("loading audio asset: %w", err)
	}
	defer player.Close()

	vm.OnSound(player.Play)
	vm.OnGraphics(func() {
		if err := backend.Draw(vm.ReadFramebuffer()); err != nil {
			fmt.Fprintf(os.Stderr, "chip8vm: draw error: %v\n", err)
		}
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(flagHz))
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			return nil
		case <-ticker.C:
			if backend.Closed() {
				return nil
			}
			if err := vm.Tick(); err != nil {
				return fmt.Errorf("chip8vm: %w", err)
			}
			if err := backend.PollInput(vm); err != nil {
				if err == display.ErrQuit {
					return nil
				}
				return fmt.Errorf("chip8vm: %w", err)
			}
		}
	}
}

func newBackend(name string) (display.Backend, error) {
	switch name {
	case "pixel":
		return display.NewPixelBackend("chip8vm")
	case "termbox":
		return display.NewTermboxBackend()
	default:
		return nil, fmt.Errorf("unknown backend %q (want pixel or termbox)", name)
	}
}

func parseQuirks(name string) (chip8.Quirks, error) {
	switch name {
	case "modern", "":
		return chip8.Quirks{}, nil
	case "classic":
		return chip8.Quirks{ShiftUsesVY: true, NoIncrementOnStoreLoad: true}, nil
	default:
		return chip8.Quirks{}, fmt.Errorf("unknown quirk set %q (want modern or classic)", name)
	}
}
