package mappers

import "nescore/ines"

// Mapper 15 (100-in-1 Contra Function 16) latches both the written address
// and data: the address low bits pick one of four PRG layouts, the data
// carries a 6-bit bank, a PRG A13 bit and the mirroring bit.
type multi15 struct {
	base
	latchAddr uint16
	latchData uint8
}

func newMulti15(prgBanks, chrBanks uint8) Mapper {
	return &multi15{base: base{prgBanks, chrBanks}}
}

func (m *multi15) Reset() {
	m.latchAddr = 0
	m.latchData = 0
}

func (m *multi15) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	total8k := int(m.prgBanks) * 2
	data6 := int(m.latchData & 0x3F)
	pBit := int(m.latchData >> 7)
	mode := m.latchAddr & 0x03

	// i indexes the four 8KB CPU windows: $8000, $A000, $C000, $E000.
	i := int((addr >> 13) & 3)

	var bank8k int
	switch mode {
	case 0:
		// NROM-256: four consecutive 8KB banks.
		bank8k = data6<<1 + i
	case 2:
		// NROM-64: every window sees the same 8KB bank.
		bank8k = data6<<1 + pBit
	default:
		// Mode 1 (UNROM) and mode 3 (NROM-128). UNROM pins the upper
		// windows to the last 16KB of the 128KB block.
		b := data6
		if i >= 2 && mode == 1 {
			b |= 0x07
		}
		bank8k = i&1 + b<<1
	}
	return bank8k%total8k*8192 + int(addr&0x1FFF), true
}

func (m *multi15) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr < 0x8000 {
		return WriteEffect{}
	}
	m.latchAddr = addr
	m.latchData = val
	if val&0x40 != 0 {
		return mirror(ines.HorzMirroring)
	}
	return mirror(ines.VertMirroring)
}

func (m *multi15) PPURead(addr uint16) (int, bool) { return m.chrDirect(addr) }

// The board carries CHR RAM.
func (m *multi15) PPUWrite(addr uint16) (int, bool) { return m.chrDirect(addr) }
