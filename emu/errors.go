package emu

import (
	"errors"
	"fmt"
)

// ErrStateCorrupt reports a save-state blob that failed to deserialize.
var ErrStateCorrupt = errors.New("emu: corrupt save state")

// ErrNoCartridge reports an operation that needs a loaded rom.
var ErrNoCartridge = errors.New("emu: no cartridge loaded")

// StateVersionError reports a save-state blob from another format
// version.
type StateVersionError struct {
	Found, Want int
}

func (e StateVersionError) Error() string {
	return fmt.Sprintf("emu: save state version %d, want %d", e.Found, e.Want)
}
