package hw

import (
	"nescore/emu/log"
	"nescore/hw/mappers"
	"nescore/ines"
)

// Cartridge owns the PRG/CHR data and the mapper that translates accesses
// into it. PRG RAM at $6000-$7FFF is always present.
type Cartridge struct {
	Rom *ines.Rom

	PRGROM []byte
	CHR    []byte // CHR ROM, or 8KB of CHR RAM when the header has no CHR banks
	PRGRAM []byte
	CHRRAM bool

	// Mirroring is the current nametable arrangement; mappers may change
	// it at runtime.
	Mirroring ines.Mirroring

	Mapper mappers.Mapper
}

// NewCartridge assembles a cartridge from a decoded rom image.
func NewCartridge(rom *ines.Rom) (*Cartridge, error) {
	mapper, err := mappers.New(rom)
	if err != nil {
		return nil, err
	}

	cart := &Cartridge{
		Rom:       rom,
		PRGROM:    rom.PRG,
		PRGRAM:    make([]byte, 8192),
		Mirroring: rom.Mirroring(),
		Mapper:    mapper,
	}

	if rom.CHRBanks() == 0 {
		cart.CHR = make([]byte, 8192)
		cart.CHRRAM = true
	} else {
		cart.CHR = make([]byte, len(rom.CHR))
		copy(cart.CHR, rom.CHR)
	}

	// Mapper 253 boards pair their CHR ROM with 8KB of CHR RAM the mapper
	// can swap in per 1KB bank; it lives appended after the ROM data.
	if rom.Mapper() == 253 && !cart.CHRRAM {
		cart.CHR = append(cart.CHR, make([]byte, 8192)...)
	}

	log.ModInes.InfoZ("cartridge ready").
		Int("prgrom", len(cart.PRGROM)).
		Int("chr", len(cart.CHR)).
		Bool("chrram", cart.CHRRAM).
		String("mirroring", cart.Mirroring.String()).
		End()
	return cart, nil
}

// Reset restores the mapper's power-up state.
func (cart *Cartridge) Reset() {
	cart.Mapper.Reset()
	cart.Mirroring = cart.Rom.Mirroring()
}

// CPURead services a CPU read of $4020-$FFFF.
func (cart *Cartridge) CPURead(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return cart.PRGRAM[addr-0x6000]
	}
	if off, ok := cart.Mapper.CPURead(addr); ok && addr >= 0x8000 {
		// Hardware has no notion of an out-of-range bank; mask by modulo.
		return cart.PRGROM[off%max(len(cart.PRGROM), 1)]
	}
	return 0
}

// CPUWrite services a CPU write of $4020-$FFFF. The mapper observes every
// write; mirroring changes are applied immediately.
func (cart *Cartridge) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		cart.PRGRAM[addr-0x6000] = val
	}
	if eff := cart.Mapper.CPUWrite(addr, val); eff.MirrorChanged {
		cart.Mirroring = eff.Mirror
	}
}

// PPURead services a pattern table read.
func (cart *Cartridge) PPURead(addr uint16) uint8 {
	if off, ok := cart.Mapper.PPURead(addr); ok {
		return cart.CHR[off%max(len(cart.CHR), 1)]
	}
	return 0
}

// PPUWrite services a pattern table write; writes to CHR ROM are dropped.
func (cart *Cartridge) PPUWrite(addr uint16, val uint8) {
	writable := cart.CHRRAM || cart.Mapper.CHRWritableMask()&(1<<(addr>>10)) != 0
	if !writable {
		return
	}
	if off, ok := cart.Mapper.PPUWrite(addr); ok {
		cart.CHR[off%max(len(cart.CHR), 1)] = val
	}
}
