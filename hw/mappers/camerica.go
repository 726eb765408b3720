package mappers

import "nescore/ines"

// Camerica/Codemasters (mapper 71) is UxROM-like; writes to $9000-$9FFF
// select a single-screen page instead of switching banks.
type camerica struct {
	base
	selected uint8
}

func newCamerica(prgBanks, chrBanks uint8) Mapper {
	return &camerica{base: base{prgBanks, chrBanks}}
}

func (m *camerica) Reset() { m.selected = 0 }

func (m *camerica) CPURead(addr uint16) (int, bool) {
	switch {
	case addr >= 0xC000:
		return int(m.prgBanks-1)*16384 + int(addr&0x3FFF), true
	case addr >= 0x8000:
		return int(m.selected)*16384 + int(addr&0x3FFF), true
	}
	return 0, false
}

func (m *camerica) CPUWrite(addr uint16, val uint8) WriteEffect {
	switch {
	case addr >= 0xC000:
		m.selected = val & 0x0F
	case addr >= 0x9000 && addr < 0xA000:
		if val&0x10 != 0 {
			return mirror(ines.OnlyBScreen)
		}
		return mirror(ines.OnlyAScreen)
	}
	return WriteEffect{}
}

func (m *camerica) PPURead(addr uint16) (int, bool) { return m.chrDirect(addr) }

// Camerica boards carry CHR RAM.
func (m *camerica) PPUWrite(addr uint16) (int, bool) { return m.chrDirect(addr) }
