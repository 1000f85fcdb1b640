package keypad_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dustinbowers/chip8vm/internal/keypad"
)

func TestSetPressed_MarksKeyPressedAtDecayTicks(t *testing.T) {
	k := keypad.New()
	k.SetPressed(5)

	require.True(t, k.IsPressed(5))
	require.False(t, k.IsNotPressed(5))
	for i := uint8(0); i < keypad.NumKeys; i++ {
		if i == 5 {
			continue
		}
		require.True(t, k.IsNotPressed(i))
	}
}

func TestTickDecay_DecrementsOnlyPositiveSlots(t *testing.T) {
	k := keypad.New()
	k.SetPressed(3)

	for i := 0; i < keypad.DecayTicks; i++ {
		require.True(t, k.IsPressed(3))
		k.TickDecay()
	}
	require.True(t, k.IsNotPressed(3))

	// decaying an already-released key never goes negative / stays released
	k.TickDecay()
	require.True(t, k.IsNotPressed(3))
}

func TestConsumeNewlyPressed_OnlyFiresOnceAtFreshPress(t *testing.T) {
	k := keypad.New()

	_, ok := k.ConsumeNewlyPressed()
	require.False(t, ok)

	k.SetPressed(7)
	idx, ok := k.ConsumeNewlyPressed()
	require.True(t, ok)
	require.Equal(t, uint8(7), idx)

	// A second consume in the same tick must not see it as fresh again.
	_, ok = k.ConsumeNewlyPressed()
	require.False(t, ok)

	// The key is still reported as held though.
	require.True(t, k.IsPressed(7))
}

func TestConsumeNewlyPressed_ReturnsLowestFreshIndex(t *testing.T) {
	k := keypad.New()
	k.SetPressed(9)
	k.SetPressed(2)

	idx, ok := k.ConsumeNewlyPressed()
	require.True(t, ok)
	require.Equal(t, uint8(2), idx)
}
