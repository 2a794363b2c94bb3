package main

import (
	"github.com/chipforge/chip8vm/cmd"
	"github.com/faiface/pixel/pixelgl"
)

func main() {
	// pixelgl needs access to the main thread, so the cobra command tree
	// runs inside its callback even for subcommands that never open a
	// window (version, quirks) — cheap, and keeps one entrypoint.
	pixelgl.Run(cmd.Execute)
}
