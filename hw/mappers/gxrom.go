package mappers

// GxROM selects a 32KB PRG bank from the high bits and an 8KB CHR bank
// from the low bits of one register.
type gxrom struct {
	base
	prgBank uint8
	chrBank uint8
}

func newGxROM(prgBanks, chrBanks uint8) Mapper {
	return &gxrom{base: base{prgBanks, chrBanks}}
}

func (m *gxrom) Reset() {
	m.prgBank = 0
	m.chrBank = 0
}

func (m *gxrom) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	bank := int(m.prgBank) % max(int(m.prgBanks), 1)
	return bank*32768 + int(addr&0x7FFF), true
}

func (m *gxrom) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr >= 0x8000 {
		m.chrBank = val & 0x03
		m.prgBank = (val >> 4) & 0x03
	}
	return WriteEffect{}
}

func (m *gxrom) PPURead(addr uint16) (int, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	bank := int(m.chrBank) % max(int(m.chrBanks), 1)
	return bank*8192 + int(addr), true
}

func (m *gxrom) PPUWrite(addr uint16) (int, bool) { return 0, false }
