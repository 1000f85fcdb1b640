// Package chip8 holds the machine state and opcode decoder: registers,
// memory, stack, and framebuffer, owned exclusively by the interpreter
// goroutine, plus the fetch-decode-execute step that mutates them.
package chip8

import (
	"github.com/dustinbowers/chip8vm/internal/chiperr"
	"github.com/dustinbowers/chip8vm/internal/display"
	"github.com/dustinbowers/chip8vm/internal/keypad"
	"github.com/dustinbowers/chip8vm/internal/randsrc"
	"github.com/dustinbowers/chip8vm/internal/timers"
)

const (
	// MemSize is the total addressable memory.
	MemSize = 4096
	// StartAddress is where ROM bytes are loaded and PC starts.
	StartAddress = 0x200
	// NumRegisters is the number of general-purpose V registers.
	NumRegisters = 16
	// NumStackSlots is the CALL/RET return-address stack depth.
	NumStackSlots = 16
	// MaxRomBytes is the largest ROM that fits in [StartAddress, MemSize).
	MaxRomBytes = MemSize - StartAddress
)

// Machine is the complete CHIP-8 register file, memory, stack, and
// framebuffer. It is never a process-wide singleton: callers construct as
// many independent Machines as they need, each wired to its own keypad and
// random source.
type Machine struct {
	Memory  [MemSize]byte
	V       [NumRegisters]byte
	I       uint16
	PC      uint16
	Stack   [NumStackSlots]uint16
	SP      uint8
	Display [display.FrameBytes]byte
	Timers  timers.Timers

	keypad *keypad.Keypad
	rand   randsrc.Source
}

// New constructs a Machine wired to the given keypad and random source. Call
// Init before executing any instruction.
func New(kp *keypad.Keypad, rng randsrc.Source) *Machine {
	return &Machine{keypad: kp, rand: rng}
}

// Init zeroizes all state, installs the built-in font, copies rom to
// StartAddress, and sets PC to StartAddress. Fails with RomEmpty or
// RomTooLarge before any state is mutated... except the zeroization and
// font install, which happen first since they are unconditionally part of
// booting a fresh machine regardless of ROM validity.
func (m *Machine) Init(rom []byte) error {
	*m = Machine{keypad: m.keypad, rand: m.rand}

	copy(m.Memory[FontBase:], fontSet[:])

	if len(rom) == 0 {
		return chiperr.New(chiperr.RomEmpty, "rom contains zero bytes")
	}
	if len(rom) > MaxRomBytes {
		return chiperr.New(chiperr.RomTooLarge, "rom is %d bytes, maximum is %d", len(rom), MaxRomBytes)
	}

	copy(m.Memory[StartAddress:], rom)
	m.PC = StartAddress
	return nil
}

// Frame returns a snapshot of the current framebuffer, safe for a display
// sink to hold onto since arrays are copied by value in Go.
func (m *Machine) Frame() [display.FrameBytes]byte {
	return m.Display
}
