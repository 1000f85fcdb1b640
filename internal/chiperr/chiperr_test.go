package chiperr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dustinbowers/chip8vm/internal/chiperr"
)

func TestNewAndCodeOf(t *testing.T) {
	err := chiperr.New(chiperr.RomTooLarge, "rom is %d bytes", 9000)
	code, ok := chiperr.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, chiperr.RomTooLarge, code)
	require.Contains(t, err.Error(), "RomTooLarge")
	require.Contains(t, err.Error(), "9000")
}

func TestWrapUnwraps(t *testing.T) {
	inner := errors.New("disk is on fire")
	err := chiperr.Wrap(chiperr.RomIoError, inner)

	require.ErrorIs(t, err, inner)
	code, ok := chiperr.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, chiperr.RomIoError, code)
}

func TestCodeOf_NonTaxonomyError(t *testing.T) {
	_, ok := chiperr.CodeOf(errors.New("plain error"))
	require.False(t, ok)
}

func TestExitStatus_IsStableAcrossCodes(t *testing.T) {
	require.NotEqual(t, chiperr.FrameOverrun.ExitStatus(), chiperr.RomEmpty.ExitStatus())
}
