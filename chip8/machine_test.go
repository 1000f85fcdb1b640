package chip8_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dustinbowers/chip8vm/chip8"
	"github.com/dustinbowers/chip8vm/internal/chiperr"
	"github.com/dustinbowers/chip8vm/internal/keypad"
	"github.com/dustinbowers/chip8vm/internal/randsrc"
)

func newMachine(t *testing.T, rom []byte) *chip8.Machine {
	t.Helper()
	m := chip8.New(keypad.New(), randsrc.NewFixed(0))
	require.NoError(t, m.Init(rom))
	return m
}

func TestInit_InstallsFontAndRom(t *testing.T) {
	rom := []byte{0x12, 0x34}
	m := newMachine(t, rom)

	require.Equal(t, uint16(chip8.StartAddress), m.PC)
	require.Equal(t, byte(0xF0), m.Memory[chip8.FontBase])
	require.Equal(t, byte(0x12), m.Memory[chip8.StartAddress])
	require.Equal(t, byte(0x34), m.Memory[chip8.StartAddress+1])
}

func TestInit_RomEmpty(t *testing.T) {
	m := chip8.New(keypad.New(), randsrc.NewFixed(0))
	err := m.Init(nil)
	require.Error(t, err)
	code, ok := chiperr.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, chiperr.RomEmpty, code)
}

func TestInit_RomTooLarge(t *testing.T) {
	m := chip8.New(keypad.New(), randsrc.NewFixed(0))
	err := m.Init(make([]byte, chip8.MaxRomBytes+1))
	require.Error(t, err)
	code, ok := chiperr.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, chiperr.RomTooLarge, code)
}

func TestInit_ReInitZeroizesPreviousState(t *testing.T) {
	m := newMachine(t, []byte{0x00, 0xE0})
	m.V[3] = 0xAB
	m.I = 0x123
	m.SP = 2

	require.NoError(t, m.Init([]byte{0x12, 0x34}))

	require.Equal(t, byte(0), m.V[3])
	require.Equal(t, uint16(0), m.I)
	require.Equal(t, uint8(0), m.SP)
}
