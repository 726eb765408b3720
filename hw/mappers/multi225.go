package mappers

import "nescore/ines"

// Mapper 225 (52/64/72-in-1) decodes everything from the written address:
//
//	A~[.HMO PPPP PPCC CCCC]
//	  C = CHR 8KB bank, P = PRG 16KB bank, O = PRG mode (0 selects 32KB),
//	  M = mirroring, H = bank extension bit for both selects.
//
// Mirroring reads inverted relative to the naive bit reading: bit 13 set
// selects Vertical, clear selects Horizontal.
type multi225 struct {
	base
	prgBank uint16
	chrBank uint16
	prgMode uint8
}

func newMulti225(prgBanks, chrBanks uint8) Mapper {
	return &multi225{base: base{prgBanks, chrBanks}}
}

func (m *multi225) Reset() {
	m.prgBank = 0
	m.chrBank = 0
	m.prgMode = 0
}

func (m *multi225) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	totalPRG := int(m.prgBanks) * 16384
	if totalPRG == 0 {
		return 0, true
	}
	if m.prgMode == 0 {
		// 32KB mode, low bank bit ignored.
		bank32k := int(m.prgBank>>1) & 0x3F
		return (bank32k*32768 + int(addr&0x7FFF)) % totalPRG, true
	}
	// 16KB mode, the same bank appears at $8000 and $C000.
	return (int(m.prgBank)*16384 + int(addr&0x3FFF)) % totalPRG, true
}

func (m *multi225) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr < 0x8000 {
		return WriteEffect{}
	}
	hiBit := (addr >> 14) & 1
	m.chrBank = (addr & 0x3F) | hiBit<<6
	m.prgBank = (addr >> 6 & 0x3F) | hiBit<<6
	m.prgMode = uint8((addr >> 12) & 1)
	if (addr>>13)&1 != 0 {
		return mirror(ines.VertMirroring)
	}
	return mirror(ines.HorzMirroring)
}

func (m *multi225) PPURead(addr uint16) (int, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	if m.chrBanks == 0 {
		return int(addr), true
	}
	total := int(m.chrBanks) * 8192
	return (int(m.chrBank)*8192 + int(addr&0x1FFF)) % total, true
}

func (m *multi225) PPUWrite(addr uint16) (int, bool) { return m.chrRAMWrite(addr) }
