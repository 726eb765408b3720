package mappers

import "nescore/ines"

// MMC1 registers are loaded through a serial port: five writes of one bit
// each, LSB first. Bit 7 of any write resets the shift register and forces
// PRG mode 3.
type mmc1 struct {
	base

	shift uint8 // serial shift register, primed with a marker bit

	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMMC1(prgBanks, chrBanks uint8) Mapper {
	m := &mmc1{base: base{prgBanks, chrBanks}}
	m.Reset()
	return m
}

func (m *mmc1) Reset() {
	m.shift = 0x10
	m.control = 0x0C
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
}

func (m *mmc1) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	prgMode := (m.control >> 2) & 0x03
	switch {
	case prgMode <= 1:
		// 32KB mode, low bit of the bank ignored.
		bank := int(m.prgBank&0x0E) * 16384
		return bank + int(addr&0x7FFF), true
	case prgMode == 2:
		// First bank fixed at $8000, $C000 switchable.
		if addr < 0xC000 {
			return int(addr & 0x3FFF), true
		}
		return int(m.prgBank)*16384 + int(addr&0x3FFF), true
	default:
		// $8000 switchable, last bank fixed at $C000.
		if addr < 0xC000 {
			return int(m.prgBank)*16384 + int(addr&0x3FFF), true
		}
		return int(m.prgBanks-1)*16384 + int(addr&0x3FFF), true
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr < 0x8000 {
		return WriteEffect{}
	}
	if val&0x80 != 0 {
		m.shift = 0x10
		m.control |= 0x0C
		return WriteEffect{}
	}

	complete := m.shift&0x01 != 0
	m.shift = (m.shift >> 1) | ((val & 0x01) << 4)
	if !complete {
		return WriteEffect{}
	}

	value := m.shift
	switch (addr >> 13) & 0x03 {
	case 0:
		m.control = value
	case 1:
		m.chrBank0 = value
	case 2:
		m.chrBank1 = value
	case 3:
		m.prgBank = value & 0x0F
	}
	m.shift = 0x10

	modMapper.DebugZ("MMC1 register").Hex16("addr", addr).Hex8("val", value).End()

	switch m.control & 0x03 {
	case 0:
		return mirror(ines.OnlyAScreen)
	case 1:
		return mirror(ines.OnlyBScreen)
	case 2:
		return mirror(ines.VertMirroring)
	default:
		return mirror(ines.HorzMirroring)
	}
}

func (m *mmc1) PPURead(addr uint16) (int, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	total := max(int(m.chrBanks)*2, 1) // 4KB banks

	if m.control&0x10 == 0 {
		// 8KB mode.
		bank := int(m.chrBank0&0x1E) % total
		return bank*4096 + int(addr), true
	}
	if addr < 0x1000 {
		return int(m.chrBank0)%total*4096 + int(addr), true
	}
	return int(m.chrBank1)%total*4096 + int(addr&0x0FFF), true
}

func (m *mmc1) PPUWrite(addr uint16) (int, bool) { return m.chrRAMWrite(addr) }
