// Package termio bridges a blocking terminal keyboard reader to the shared
// keypad, and owns the terminal's raw-mode lifecycle. It is grounded on the
// C original's keyboard_thread (terminal_io.c), which puts the terminal
// into raw mode, busy-reads stdin on its own pthread, maps the classic
// COSMAC-VIP layout to key indices, and treats ESC as the quit signal — here
// expressed with github.com/nsf/termbox-go, which owns the termios
// save/restore Go has no standard-library equivalent for.
package termio

import (
	"sync/atomic"

	"github.com/nsf/termbox-go"

	"github.com/dustinbowers/chip8vm/internal/keypad"
)

// keyMap is the classic COSMAC-VIP layout: 1234/qwer/asdf/zxcv mapped to
// keys 1 2 3 C / 4 5 6 D / 7 8 9 E / A 0 B F.
var keyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Start puts the terminal into raw mode. Callers must pair it with Stop,
// typically via defer, so the terminal is always restored on exit.
func Start() error {
	return termbox.Init()
}

// Stop restores the terminal to its original mode.
func Stop() {
	termbox.Close()
}

// Reader is the blocking key-event producer. It runs on its own goroutine,
// translating mapped key-down events into keypad.SetPressed calls and
// setting Quit on Esc, Ctrl+C, or a terminal read error.
type Reader struct {
	Keypad *keypad.Keypad
	Quit   *atomic.Bool
}

// NewReader returns a Reader that publishes key-down events into kp and
// signals quit on ESC, Ctrl+C, or read error.
func NewReader(kp *keypad.Keypad, quit *atomic.Bool) *Reader {
	return &Reader{Keypad: kp, Quit: quit}
}

// Run blocks on termbox.PollEvent until Quit is observed true or the
// terminal reports an unrecoverable error. Call Interrupt from elsewhere
// (e.g. a signal handler) to unblock PollEvent once Quit has been set.
func (r *Reader) Run() {
	for {
		if r.Quit.Load() {
			return
		}
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
				r.Quit.Store(true)
				return
			}
			if idx, ok := keyMap[ev.Ch]; ok {
				r.Keypad.SetPressed(idx)
			}
		case termbox.EventError:
			r.Quit.Store(true)
			return
		case termbox.EventInterrupt:
			// Posted by Interrupt(); loop back around to re-check Quit.
		}
	}
}

// Interrupt unblocks a goroutine parked in Run's PollEvent call, used by a
// signal handler to make Ctrl+C responsive even while the reader is
// blocked waiting on terminal input.
func Interrupt() {
	termbox.Interrupt()
}
