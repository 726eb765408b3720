package mappers

import "nescore/ines"

// NINA-03/06 (mapper 113) combines the PRG and CHR selects in one register
// reached through $4100-$5FFF.
type nina struct {
	base
	prgBank uint8
	chrBank uint8
}

func newNINA(prgBanks, chrBanks uint8) Mapper {
	return &nina{base: base{prgBanks, chrBanks}}
}

func (m *nina) Reset() {
	m.prgBank = 0
	m.chrBank = 0
}

func (m *nina) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	bank := int(m.prgBank) % max(int(m.prgBanks), 1)
	return bank*32768 + int(addr&0x7FFF), true
}

func (m *nina) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr >= 0x4100 && addr < 0x6000 {
		m.prgBank = (val >> 3) & 0x07
		m.chrBank = (val & 0x07) | ((val >> 3) & 0x08)
		if val&0x80 != 0 {
			return mirror(ines.VertMirroring)
		}
		return mirror(ines.HorzMirroring)
	}
	return WriteEffect{}
}

func (m *nina) PPURead(addr uint16) (int, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	bank := int(m.chrBank) % max(int(m.chrBanks), 1)
	return bank*8192 + int(addr), true
}

func (m *nina) PPUWrite(addr uint16) (int, bool) { return 0, false }
