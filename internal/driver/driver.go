// Package driver implements the drift-corrected instruction-rate loop: the
// cooperative single-threaded cycle driver that fetches/decodes/executes
// one instruction per tick, advances the timers and keypad decay, and
// paces itself against an absolute monotonic deadline instead of a sleep
// duration, so OS jitter never accumulates into phase drift over a long run.
package driver

import (
	"log"
	"sync/atomic"

	"github.com/dustinbowers/chip8vm/chip8"
	"github.com/dustinbowers/chip8vm/internal/beep"
	"github.com/dustinbowers/chip8vm/internal/chiperr"
	"github.com/dustinbowers/chip8vm/internal/clock"
	"github.com/dustinbowers/chip8vm/internal/display"
	"github.com/dustinbowers/chip8vm/internal/keypad"
)

// CycleNS is the instruction clock period: 500Hz.
const CycleNS int64 = 2_000_000

// Driver runs the fetch-decode-execute loop against a Machine, pacing
// itself with Clock and feeding Keypad decay and the Timers subsystem every
// cycle.
type Driver struct {
	Machine *chip8.Machine
	Keypad  *keypad.Keypad
	Clock   clock.Clock

	Display display.Sink
	Beep    beep.Sink

	Quit *atomic.Bool
	Log  *log.Logger

	// MaxCycleNS is updated with the longest observed single-cycle
	// execution time, for diagnostics.
	MaxCycleNS int64
}

// New returns a Driver with a NullSink display/beep and the standard logger
// (log.Default) unless overridden by the caller.
func New(m *chip8.Machine, kp *keypad.Keypad, quit *atomic.Bool) *Driver {
	return &Driver{
		Machine: m,
		Keypad:  kp,
		Clock:   clock.Source{},
		Display: display.NullSink{},
		Beep:    beep.NullSink{},
		Quit:    quit,
		Log:     log.Default(),
	}
}

// Run executes cycles until Quit is set or a fatal error occurs. A fatal
// decoder or timing failure is returned as a *chiperr.Error; an error from
// the Beep or Display sink is returned as the sink gave it. It returns nil
// only if Quit was observed true at a cycle boundary.
func (d *Driver) Run() error {
	deadline, err := d.Clock.NowNS()
	if err != nil {
		return chiperr.Wrap(chiperr.TimeSourceError, err)
	}

	for !d.Quit.Load() {
		cycleStart, err := d.Clock.NowNS()
		if err != nil {
			return chiperr.Wrap(chiperr.TimeSourceError, err)
		}

		if err := d.Machine.Step(); err != nil {
			return err
		}

		cycleEnd, err := d.Clock.NowNS()
		if err != nil {
			return chiperr.Wrap(chiperr.TimeSourceError, err)
		}
		elapsed := cycleEnd - cycleStart
		if elapsed > d.MaxCycleNS {
			d.MaxCycleNS = elapsed
		}
		if elapsed > CycleNS {
			return chiperr.New(chiperr.FrameOverrun, "cycle took %dns, budget is %dns", elapsed, CycleNS)
		}

		periods, err := d.Machine.Timers.Advance(CycleNS, d.Beep)
		if err != nil {
			return err
		}
		if periods > 0 {
			if err := d.Display.Present(d.Machine.Frame()); err != nil {
				return err
			}
		}
		d.Keypad.TickDecay()

		nextDeadline := deadline + CycleNS
		now, err := d.Clock.NowNS()
		if err != nil {
			return chiperr.Wrap(chiperr.TimeSourceError, err)
		}
		if now >= nextDeadline {
			missed := (now-nextDeadline)/CycleNS + 1
			if d.Log != nil {
				d.Log.Printf("MissedTick: absorbing %d missed cycle(s)", missed)
			}
			nextDeadline += missed * CycleNS
		} else if err := d.Clock.WaitUntil(nextDeadline); err != nil {
			return chiperr.Wrap(chiperr.TimeSourceError, err)
		}
		deadline = nextDeadline
	}
	return nil
}
