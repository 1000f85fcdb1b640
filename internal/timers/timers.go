// Package timers implements the 60Hz delay/sound timer decrement, decoupled
// from the instruction clock by a nanosecond accumulator. This is a direct
// port of the C original's update_timers (timer.c), which feeds an
// accumulator from whatever dt the caller supplies rather than assuming a
// fixed call rate — so a cycle driver that misses ticks can catch every
// timer decrement up in a single Advance call.
package timers

import "github.com/dustinbowers/chip8vm/internal/beep"

// PeriodNS is one 60Hz period in nanoseconds.
const PeriodNS int64 = 16_666_667

// Timers holds the delay/sound timer registers and the accumulator that
// decouples their 60Hz rate from the caller's advance cadence.
type Timers struct {
	DelayTimer  uint8
	SoundTimer  uint8
	accumulator int64
}

// Advance adds dtNS to the accumulator and decrements both timers toward
// zero once per elapsed 60Hz period, catching up on any number of periods
// in one call. sink is notified whenever the sound timer is positive after
// a decrement, and once more on the positive-to-zero transition. It returns
// the number of 60Hz periods that elapsed, so the caller knows whether a
// display frame is due — the display sink is presented by the Timer
// subsystem's caller, once per Advance call, rather than once per period,
// since the framebuffer cannot have changed between periods caught up in a
// single call.
func (t *Timers) Advance(dtNS int64, sink beep.Sink) (periods int, err error) {
	t.accumulator += dtNS
	for t.accumulator >= PeriodNS {
		if t.DelayTimer > 0 {
			t.DelayTimer--
		}
		wasSounding := t.SoundTimer > 0
		if wasSounding {
			t.SoundTimer--
		}
		t.accumulator -= PeriodNS
		periods++

		switch {
		case t.SoundTimer > 0:
			if err := sink.Beep(true); err != nil {
				return periods, err
			}
		case wasSounding:
			// Positive-to-zero transition this period.
			if err := sink.Beep(false); err != nil {
				return periods, err
			}
		}
	}
	return periods, nil
}
