// Package clock provides the monotonic time source and absolute-deadline
// pacing primitive the cycle driver uses to hold a fixed instruction rate
// without accumulating drift from OS sleep jitter.
package clock

import (
	"time"

	"github.com/dustinbowers/chip8vm/internal/chiperr"
)

// spinWindowNS is how far before a deadline we stop sleeping and start
// busy-spinning. time.Sleep on general-purpose kernels is only accurate to
// about a millisecond; spinning the last sliver bounds phase error to a few
// microseconds without giving up a whole OS sleep's worth of the core.
const spinWindowNS = 100_000

// Clock is the monotonic time source and pacing primitive the cycle driver
// depends on. It is an interface so tests can substitute a fake that
// fabricates elapsed time without actually sleeping.
type Clock interface {
	NowNS() (int64, error)
	WaitUntil(deadlineNS int64) error
}

// epoch anchors the monotonic reading Source measures against. time.Since
// and time.Time.Sub use the monotonic clock reading when both operands
// carry one; Unix/UnixNano/UnixMilli/Format do not; they always derive
// from the wall-clock fields and so are stepped by NTP corrections and
// manual clock sets, which would reintroduce exactly the phase drift the
// absolute-deadline pacing in internal/driver is meant to eliminate.
var epoch = time.Now()

// Source is the real monotonic nanosecond clock, measured as elapsed time
// since epoch so it is immune to wall-clock steps.
type Source struct{}

var _ Clock = Source{}

// NowNS returns elapsed nanoseconds since epoch, using the monotonic
// reading time.Now() carries. The origin is unspecified and only
// differences between calls are meaningful.
func (Source) NowNS() (int64, error) {
	t := time.Now()
	if t.IsZero() {
		return 0, chiperr.New(chiperr.TimeSourceError, "monotonic clock unavailable")
	}
	return t.Sub(epoch).Nanoseconds(), nil
}

// WaitUntil blocks until at least deadlineNS has elapsed on the Source's
// clock. It sleeps down to spinWindowNS before the deadline, then
// busy-spins, trading a little CPU for tight phase accuracy.
func (s Source) WaitUntil(deadlineNS int64) error {
	for {
		now, err := s.NowNS()
		if err != nil {
			return err
		}
		remaining := deadlineNS - now
		if remaining <= 0 {
			return nil
		}
		if remaining > spinWindowNS {
			time.Sleep(time.Duration(remaining-spinWindowNS) * time.Nanosecond)
			continue
		}
		for {
			now, err := s.NowNS()
			if err != nil {
				return err
			}
			if now >= deadlineNS {
				return nil
			}
		}
	}
}
