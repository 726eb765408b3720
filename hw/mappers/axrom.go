package mappers

import "nescore/ines"

// AxROM switches the whole 32KB PRG window and selects a single-screen
// nametable page.
type axrom struct {
	base
	selected uint8
}

func newAxROM(prgBanks, chrBanks uint8) Mapper {
	return &axrom{base: base{prgBanks, chrBanks}}
}

func (m *axrom) Reset() { m.selected = 0 }

func (m *axrom) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	return int(m.selected)*32768 + int(addr&0x7FFF), true
}

func (m *axrom) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr < 0x8000 {
		return WriteEffect{}
	}
	m.selected = val & 0x07
	if val&0x10 != 0 {
		return mirror(ines.OnlyBScreen)
	}
	return mirror(ines.OnlyAScreen)
}

func (m *axrom) PPURead(addr uint16) (int, bool) { return m.chrDirect(addr) }

// AxROM boards carry CHR RAM.
func (m *axrom) PPUWrite(addr uint16) (int, bool) { return m.chrDirect(addr) }
