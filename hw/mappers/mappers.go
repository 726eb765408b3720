// Package mappers implements the cartridge bank-switching hardware. A
// mapper translates CPU and PPU addresses into offsets inside the PRG and
// CHR data, and some variants generate IRQs keyed on scanlines or CPU
// cycles.
package mappers

import (
	"nescore/emu/log"
	"nescore/ines"
)

var modMapper = log.NewModule("mapper")

// WriteEffect reports the side effects of a CPU write that landed in
// mapper register space.
type WriteEffect struct {
	MirrorChanged bool
	Mirror        ines.Mirroring
}

func mirror(m ines.Mirroring) WriteEffect {
	return WriteEffect{MirrorChanged: true, Mirror: m}
}

// Mapper is the address-translation contract every variant implements.
// Read translations return an offset into PRG ROM (CPU side) or CHR
// ROM/RAM (PPU side) and false when the region is not mapped. Offsets may
// exceed the backing size; the cartridge masks them by modulo.
type Mapper interface {
	// CPURead translates a CPU read of $4020-$FFFF into a PRG ROM offset.
	CPURead(addr uint16) (int, bool)
	// CPUWrite handles a CPU write, switching banks or pending an IRQ.
	CPUWrite(addr uint16, val uint8) WriteEffect
	// PPURead translates a pattern table read into a CHR offset.
	PPURead(addr uint16) (int, bool)
	// PPUWrite translates a pattern table write into a CHR RAM offset, or
	// returns false when the region is ROM.
	PPUWrite(addr uint16) (int, bool)

	// Reset restores power-up register state.
	Reset()
	// Scanline notifies an A12 rising edge (dot 260, rendering enabled).
	Scanline()
	// CPUClock notifies one elapsed CPU cycle.
	CPUClock()
	// PendingIRQ reports and clears a pending IRQ pulse.
	PendingIRQ() bool
	// CHRWritableMask flags which 1KB CHR banks are currently RAM-backed,
	// one bit per bank. Only hybrid CHR ROM/RAM variants return non-zero.
	CHRWritableMask() uint8

	// State dumps the mapper registers for save-states; SetState restores
	// them. Variants without registers return nil.
	State() []uint8
	SetState(data []uint8)
}

// base carries the bank geometry and provides no-op hooks so each variant
// only implements what its hardware has.
type base struct {
	prgBanks uint8 // 16KB units
	chrBanks uint8 // 8KB units
}

func (b *base) Reset()                 {}
func (b *base) Scanline()              {}
func (b *base) CPUClock()              {}
func (b *base) PendingIRQ() bool       { return false }
func (b *base) CHRWritableMask() uint8 { return 0 }
func (b *base) State() []uint8         { return nil }
func (b *base) SetState(data []uint8)  {}

// chrDirect maps the pattern table straight through, for variants without
// CHR banking.
func (b *base) chrDirect(addr uint16) (int, bool) {
	if addr < 0x2000 {
		return int(addr), true
	}
	return 0, false
}

// chrRAMWrite allows pattern table writes only when the cartridge carries
// CHR RAM.
func (b *base) chrRAMWrite(addr uint16) (int, bool) {
	if addr < 0x2000 && b.chrBanks == 0 {
		return int(addr), true
	}
	return 0, false
}

// Desc describes a supported variant.
type Desc struct {
	Name string
	New  func(prgBanks, chrBanks uint8) Mapper
}

// All maps the iNES mapper number to its implementation.
var All = map[uint8]Desc{
	0:   {"NROM", newNROM},
	1:   {"MMC1", newMMC1},
	2:   {"UxROM", newUxROM},
	3:   {"CNROM", newCNROM},
	4:   {"MMC3", newMMC3},
	7:   {"AxROM", newAxROM},
	11:  {"Color Dreams", newColorDreams},
	15:  {"100-in-1", newMulti15},
	16:  {"Bandai FCG", newBandaiFCG},
	23:  {"VRC2b/VRC4", newVRC4},
	66:  {"GxROM", newGxROM},
	71:  {"Camerica", newCamerica},
	113: {"NINA-03/06", newNINA},
	202: {"150-in-1", newMulti202},
	225: {"52-in-1", newMulti225},
	227: {"1200-in-1", newMulti227},
	245: {"Waixing MMC3", newWaixing245},
	253: {"Waixing VRC4", newWaixing253},
}

// New builds the mapper for the given rom header.
func New(rom *ines.Rom) (Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, ines.UnsupportedMapperError{Mapper: rom.Mapper()}
	}
	modMapper.InfoZ("mapper selected").
		String("name", desc.Name).
		Uint8("prgbanks", rom.PRGBanks()).
		Uint8("chrbanks", rom.CHRBanks()).
		End()
	return desc.New(rom.PRGBanks(), rom.CHRBanks()), nil
}
