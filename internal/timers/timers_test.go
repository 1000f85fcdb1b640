package timers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dustinbowers/chip8vm/internal/beep"
	"github.com/dustinbowers/chip8vm/internal/timers"
)

type recordingSink struct {
	calls []bool
}

func (s *recordingSink) Beep(active bool) error {
	s.calls = append(s.calls, active)
	return nil
}

// Property 6: below one period, nothing changes; at k periods, each
// non-zero timer decreases by exactly min(current, k).
func TestAdvance_BelowOnePeriodNoChange(t *testing.T) {
	tm := timers.Timers{DelayTimer: 10, SoundTimer: 5}
	sink := &recordingSink{}

	periods, err := tm.Advance(timers.PeriodNS-1, sink)
	require.NoError(t, err)
	require.Zero(t, periods)
	require.Equal(t, uint8(10), tm.DelayTimer)
	require.Equal(t, uint8(5), tm.SoundTimer)
	require.Empty(t, sink.calls)
}

func TestAdvance_CatchesUpMultiplePeriodsInOneCall(t *testing.T) {
	tm := timers.Timers{DelayTimer: 10, SoundTimer: 3}
	sink := &recordingSink{}

	periods, err := tm.Advance(timers.PeriodNS*5, sink)
	require.NoError(t, err)
	require.Equal(t, 5, periods)
	require.Equal(t, uint8(5), tm.DelayTimer)
	require.Equal(t, uint8(0), tm.SoundTimer)
	// Sound timer stayed positive after the decrements of the first 2
	// periods, then transitioned to zero on the 3rd period's decrement.
	require.Equal(t, []bool{true, true, false}, sink.calls)
}

func TestAdvance_TimersClampAtZero(t *testing.T) {
	tm := timers.Timers{DelayTimer: 1, SoundTimer: 0}
	sink := &recordingSink{}

	periods, err := tm.Advance(timers.PeriodNS*3, sink)
	require.NoError(t, err)
	require.Equal(t, 3, periods)
	require.Equal(t, uint8(0), tm.DelayTimer)
	require.Equal(t, uint8(0), tm.SoundTimer)
	require.Empty(t, sink.calls)
}

// Scenario (f): delay timer reaches zero after >= 500ms of simulated time,
// sound timer stays at zero throughout, and no beeps are emitted.
func TestAdvance_ScenarioF_TimerDecay(t *testing.T) {
	tm := timers.Timers{DelayTimer: 30, SoundTimer: 0}
	sink := &recordingSink{}

	const cycleNS = 2_000_000
	// 250 cycles (500ms) hold only 29 whole periods of PeriodNS, so drive
	// one more cycle to cross the 30th period boundary.
	for i := 0; i < 251; i++ { // 251 cycles * 2ms = 502ms
		_, err := tm.Advance(cycleNS, sink)
		require.NoError(t, err)
		require.Equal(t, uint8(0), tm.SoundTimer)
	}

	require.Equal(t, uint8(0), tm.DelayTimer)
	require.Empty(t, sink.calls)
}

var _ beep.Sink = (*recordingSink)(nil)
