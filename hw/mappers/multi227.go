package mappers

import "nescore/ines"

// Mapper 227 (1200-in-1) address latch:
//
//	bit 0 (S): 16KB/32KB select
//	bit 1 (M): mirroring
//	bit 2 and bits 3-4 (PPp): inner 16KB bank
//	bits 5-6 and bit 8 (QQQ): outer 128KB bank
//	bit 7 (O): $C000 behavior (0 = fixed bank)
//	bit 9 (L): which bank is fixed at $C000 (#0 or #7)
//
// Power-on has every bit clear: UNROM-like with bank 0 in both halves.
type multi227 struct {
	base
	sBit      bool
	oBit      bool
	lBit      bool
	innerBank uint8
	outerBank uint8
}

func newMulti227(prgBanks, chrBanks uint8) Mapper {
	return &multi227{base: base{prgBanks, chrBanks}}
}

func (m *multi227) Reset() {
	m.sBit = false
	m.oBit = false
	m.lBit = false
	m.innerBank = 0
	m.outerBank = 0
}

func (m *multi227) CPURead(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	totalPRG := int(m.prgBanks) * 16384
	if totalPRG == 0 {
		return 0, true
	}
	outer := int(m.outerBank)
	inner := int(m.innerBank)

	switch {
	case m.sBit:
		// 32KB window regardless of O; PP selects the block.
		bank32k := outer*4 + inner>>1
		return (bank32k*32768 + int(addr&0x7FFF)) % totalPRG, true
	case m.oBit:
		// NROM-128: 16KB mirrored at both halves.
		bank16k := outer*8 + inner
		return (bank16k*16384 + int(addr&0x3FFF)) % totalPRG, true
	default:
		// UNROM-like: switchable low half, L picks the fixed high half.
		if addr < 0xC000 {
			bank16k := outer*8 + inner
			return (bank16k*16384 + int(addr&0x3FFF)) % totalPRG, true
		}
		fixed := 0
		if m.lBit {
			fixed = 7
		}
		bank16k := outer*8 + fixed
		return (bank16k*16384 + int(addr&0x3FFF)) % totalPRG, true
	}
}

func (m *multi227) CPUWrite(addr uint16, val uint8) WriteEffect {
	if addr < 0x8000 {
		return WriteEffect{}
	}
	m.sBit = addr&0x01 != 0
	p := uint8(addr >> 2 & 0x01)
	pp := uint8(addr >> 3 & 0x03)
	m.innerBank = pp<<1 | p
	m.outerBank = uint8(addr>>5&0x03) | uint8(addr>>8&0x01)<<2
	m.oBit = addr&0x80 != 0
	m.lBit = addr&0x0200 != 0
	if addr&0x02 != 0 {
		return mirror(ines.HorzMirroring)
	}
	return mirror(ines.VertMirroring)
}

func (m *multi227) PPURead(addr uint16) (int, bool) { return m.chrDirect(addr) }

// The board carries CHR RAM.
func (m *multi227) PPUWrite(addr uint16) (int, bool) { return m.chrDirect(addr) }
