package mappers

import "nescore/ines"

// Mapper 202 (150-in-1) derives everything from the written address: the
// bank from bits 1-3, the PRG mode from bit 0 XOR bit 3, mirroring from
// bit 0.
type multi202 struct {
	base
	prgBank uint8
	chrBank uint8
	prgMode uint8
}

func newMulti202(prgBanks, chrBanks uint8) Mapper {
	return &multi202{base: base{prgBanks, chrBanks}}
}

func (m *multi202) Reset() {
	m.prgBank = 0
	m.chrBank = 0
	m.prgMode = 0
}

func (m *multi202) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	totalPRG := int(m.prgBanks) * 16384
	if totalPRG == 0 {
		return 0, true
	}
	if m.prgMode == 0 {
		// 16KB bank mirrored at $8000 and $C000.
		return (int(m.prgBank)*16384 + int(addr&0x3FFF)) % totalPRG, true
	}
	bank32k := int(m.prgBank) >> 1
	return (bank32k*32768 + int(addr&0x7FFF)) % totalPRG, true
}

func (m *multi202) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr < 0x8000 {
		return WriteEffect{}
	}
	bank := uint8((addr >> 1) & 0x07)
	m.prgBank = bank
	m.chrBank = bank
	m.prgMode = uint8((addr & 0x01) ^ ((addr >> 3) & 0x01))
	if addr&0x01 != 0 {
		return mirror(ines.HorzMirroring)
	}
	return mirror(ines.VertMirroring)
}

func (m *multi202) PPURead(addr uint16) (int, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	if m.chrBanks == 0 {
		return int(addr), true
	}
	total := int(m.chrBanks) * 8192
	return (int(m.chrBank)*8192 + int(addr&0x1FFF)) % total, true
}

func (m *multi202) PPUWrite(addr uint16) (int, bool) { return m.chrRAMWrite(addr) }
