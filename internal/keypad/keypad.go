// Package keypad implements the shared 16-key state machine that couples a
// blocking terminal reader goroutine to the single-threaded interpreter.
// A single mutex protects the whole key array; every operation is one
// bounded array scan at most, so the critical section is always short.
package keypad

import "sync"

// DecayTicks is the number of interpreter cycles a physical keypress is
// reported as held. At the 2ms instruction cycle this is about 100ms of
// held-key signal per press, long enough to mask raw terminals that never
// deliver a key-up event.
const DecayTicks = 50

// NumKeys is the size of the CHIP-8 hex keypad.
const NumKeys = 16

// Keypad holds one decay counter per key. Zero means released; any positive
// value means pressed; DecayTicks marks a press not yet observed by
// ConsumeNewlyPressed.
type Keypad struct {
	mu   sync.Mutex
	keys [NumKeys]int
}

// New returns a Keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// SetPressed marks idx as freshly pressed. Called by the reader goroutine.
func (k *Keypad) SetPressed(idx uint8) {
	k.mu.Lock()
	k.keys[idx&0x0F] = DecayTicks
	k.mu.Unlock()
}

// TickDecay decrements every positive slot by one. Called exactly once per
// instruction cycle by the cycle driver.
func (k *Keypad) TickDecay() {
	k.mu.Lock()
	for i := range k.keys {
		if k.keys[i] > 0 {
			k.keys[i]--
		}
	}
	k.mu.Unlock()
}

// IsPressed reports whether idx currently has a positive decay counter.
func (k *Keypad) IsPressed(idx uint8) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[idx&0x0F] > 0
}

// IsNotPressed is the complement of IsPressed, kept as its own method
// because ExA1 reads more directly as "skip if not pressed" than as a
// negation at the call site.
func (k *Keypad) IsNotPressed(idx uint8) bool {
	return !k.IsPressed(idx)
}

// ConsumeNewlyPressed returns the lowest key index whose counter currently
// equals DecayTicks — pressed this very tick and not yet observed — and
// resets it one tick below DecayTicks so a second Fx0A in the same cycle
// does not observe it again. Returns ok=false if no key is freshly pressed.
func (k *Keypad) ConsumeNewlyPressed() (idx uint8, ok bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, v := range k.keys {
		if v == DecayTicks {
			k.keys[i] = DecayTicks - 1
			return uint8(i), true
		}
	}
	return 0, false
}
