// Package audio plays a beep tone when the VM's sound timer reaches zero.
// It decodes a bundled mp3 once and replays it through beep's shared
// speaker each time Play is called, mirroring the teacher's ManageAudio
// but as an installable chip8.VM.OnSound callback instead of a channel
// consumer baked into the VM itself.
package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Player decodes and replays a single beep tone.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ready    bool
}

// Load opens and decodes the mp3 at path and initializes beep's speaker
// for it. If the asset can't be opened, Load returns a Player whose Play
// is a silent no-op rather than failing the whole emulator — sound is a
// nice-to-have the teacher's own ManageAudio treats the same way (it just
// returns early on error). A decode or speaker-init failure is returned
// as an error.
func Load(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return &Player{}, nil
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decoding %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("audio: initializing speaker: %w", err)
	}

	return &Player{streamer: streamer, format: format, ready: true}, nil
}

// Play schedules the tone on beep's mixer goroutine and returns
// immediately; it never blocks the caller's tick loop.
func (p *Player) Play() {
	if !p.ready {
		return
	}
	speaker.Lock()
	err := p.streamer.Seek(0)
	speaker.Unlock()
	if err != nil {
		return
	}
	speaker.Play(p.streamer)
}

// Close releases the decoder.
func (p *Player) Close() error {
	if !p.ready {
		return nil
	}
	return p.streamer.Close()
}
