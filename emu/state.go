package emu

import (
	"nescore/hw/snapshot"
	"nescore/ines"
)

// SaveState serializes the whole system as a versioned blob. Encoding the
// same machine state twice yields identical bytes.
func (nes *NES) SaveState() ([]byte, error) {
	if !nes.Loaded() {
		return nil, ErrNoCartridge
	}

	s := &snapshot.NES{
		Version: snapshot.Version,
		Clock:   nes.systemClock,
		CPU:     nes.CPU.State(),
		PPU:     nes.PPU.State(),
		APU:     nes.APU.State(),
		Pad1:    nes.Pads[0].State(),
		Pad2:    nes.Pads[1].State(),
		Mapper:  nes.Cart.Mapper.State(),
	}
	s.RAM, s.DMA = nes.Bus.State()
	s.PRGRAM = append([]byte(nil), nes.Cart.PRGRAM...)

	// CHR travels with the state only when it is writable: plain CHR RAM
	// carts, and hybrid carts with an appended RAM region.
	if nes.Cart.CHRRAM || len(nes.Cart.CHR) != len(nes.Cart.Rom.CHR) {
		s.CHR = append([]byte(nil), nes.Cart.CHR...)
	}

	return snapshot.Encode(s), nil
}

// LoadState restores the system from a blob produced by SaveState.
// Blobs from other versions are refused.
func (nes *NES) LoadState(data []byte) error {
	if !nes.Loaded() {
		return ErrNoCartridge
	}

	s, err := snapshot.Decode(data)
	if err != nil {
		return ErrStateCorrupt
	}
	if s.Version != snapshot.Version {
		return StateVersionError{Found: s.Version, Want: snapshot.Version}
	}

	nes.systemClock = s.Clock
	nes.CPU.SetState(&s.CPU)
	nes.PPU.SetState(&s.PPU)
	nes.APU.SetState(&s.APU)
	nes.Pads[0].SetState(&s.Pad1)
	nes.Pads[1].SetState(&s.Pad2)
	nes.Bus.SetState(s.RAM, &s.DMA)

	copy(nes.Cart.PRGRAM, s.PRGRAM)
	if len(s.CHR) > 0 {
		copy(nes.Cart.CHR, s.CHR)
	}
	nes.Cart.Mapper.SetState(s.Mapper)
	nes.Cart.Mirroring = ines.Mirroring(s.PPU.Mirroring)

	return nil
}
