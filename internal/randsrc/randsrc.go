// Package randsrc provides the Cxkk random-byte collaborator. Seeding and
// choice of algorithm are the collaborator's concern per the interpreter
// contract; deterministic RNG is a runtime non-goal, but a fixed-sequence
// source is still useful for reproducing scenario tests.
package randsrc

import "math/rand"

// Source yields uniform random bytes on [0, 256).
type Source interface {
	Byte() uint8
}

// Math wraps math/rand, matching the teacher's choice of RNG (no CHIP-8
// opcode needs cryptographic randomness).
type Math struct {
	rnd *rand.Rand
}

// NewMath returns a Source seeded from seed. The CLI seeds it from the
// current time.
func NewMath(seed int64) *Math {
	return &Math{rnd: rand.New(rand.NewSource(seed))}
}

func (m *Math) Byte() uint8 {
	return uint8(m.rnd.Intn(256))
}

// Fixed cycles through a predetermined sequence of bytes, repeating once
// exhausted. Used only by tests — never wired into the CLI.
type Fixed struct {
	seq []uint8
	pos int
}

func NewFixed(seq ...uint8) *Fixed {
	if len(seq) == 0 {
		seq = []uint8{0}
	}
	return &Fixed{seq: seq}
}

func (f *Fixed) Byte() uint8 {
	b := f.seq[f.pos%len(f.seq)]
	f.pos++
	return b
}
