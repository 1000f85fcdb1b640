package beep

import "os"

// TermboxBellSink writes the terminal BEL control character on every
// Beep(true) call, that is once per 60Hz period while the sound timer is
// positive. A text terminal has no audio device to synthesize a tone on, so
// this is the idiomatic terminal-native analogue of the teacher's SDL
// sine-wave callback. Beep(false) writes nothing, since BEL has no "off"
// state.
// Named for the termbox-backed display it pairs with, even though BEL is
// written straight to the controlling terminal rather than through
// termbox's cell buffer, which has no concept of audio.
type TermboxBellSink struct{}

func (TermboxBellSink) Beep(active bool) error {
	if !active {
		return nil
	}
	_, err := os.Stdout.WriteString("\a")
	return err
}
