// Package romfile loads a CHIP-8 ROM image from disk. The wire format is an
// opaque big-endian byte stream with no header and no magic, placed at
// address 0x200 by the loader in package chip8; this package only handles
// the file I/O and size taxonomy ahead of that.
package romfile

import (
	"os"

	"github.com/dustinbowers/chip8vm/chip8"
	"github.com/dustinbowers/chip8vm/internal/chiperr"
)

// Load reads the ROM at path, failing with RomIoError on any read failure,
// RomEmpty if the file is zero bytes, and RomTooLarge if it exceeds
// chip8.MaxRomBytes. It does not itself install the bytes into a Machine.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chiperr.Wrap(chiperr.RomIoError, err)
	}
	if len(data) == 0 {
		return nil, chiperr.New(chiperr.RomEmpty, "%s contains zero bytes", path)
	}
	if len(data) > chip8.MaxRomBytes {
		return nil, chiperr.New(chiperr.RomTooLarge, "%s is %d bytes, maximum is %d", path, len(data), chip8.MaxRomBytes)
	}
	return data, nil
}
