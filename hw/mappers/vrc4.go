package mappers

import "nescore/ines"

// VRC2b/VRC4 (mapper 23) switches 8KB PRG banks with a swap mode, loads
// per-1KB CHR banks as nibble pairs, and runs a scanline-prescaled IRQ
// counter that counts up from the latch.
type vrc4 struct {
	base

	prgBank0 uint8
	prgBank1 uint8
	chrRegs  [8]uint8
	swapMode uint8

	irqLatch     uint8
	irqControl   uint8
	irqCounter   uint8
	irqPrescaler int16
	irqEnabled   bool
	irqPending   bool
}

func newVRC4(prgBanks, chrBanks uint8) Mapper {
	return &vrc4{base: base{prgBanks, chrBanks}}
}

func (m *vrc4) Reset() {
	m.prgBank0 = 0
	m.prgBank1 = 0
	m.chrRegs = [8]uint8{}
	m.swapMode = 0
	m.irqLatch = 0
	m.irqControl = 0
	m.irqCounter = 0
	m.irqPrescaler = 0
	m.irqEnabled = false
	m.irqPending = false
}

func (m *vrc4) CPURead(addr uint16) (int, bool) {
	total := int(m.prgBanks) * 2 // 8KB banks
	off := int(addr & 0x1FFF)
	switch {
	case addr < 0x8000:
		return 0, false
	case addr < 0xA000:
		bank := int(m.prgBank0)
		if m.swapMode != 0 {
			bank = total - 2
		}
		return bank%total*8192 + off, true
	case addr < 0xC000:
		return int(m.prgBank1)%total*8192 + off, true
	case addr < 0xE000:
		bank := total - 2
		if m.swapMode != 0 {
			bank = int(m.prgBank0)
		}
		return bank%total*8192 + off, true
	default:
		return (total-1)*8192 + off, true
	}
}

func (m *vrc4) CPUWrite(addr uint16, val uint8) WriteEffect {
	// VRC2b wires A0/A1 directly; normalize the register address.
	a0 := addr & 0x0001
	a1 := (addr & 0x0002) >> 1
	reg := (addr & 0xF000) | (a1 << 1) | a0

	switch {
	case reg >= 0x8000 && reg <= 0x8003:
		m.prgBank0 = val & 0x1F
	case reg == 0x9000 || reg == 0x9001:
		switch val & 0x03 {
		case 0:
			return mirror(ines.VertMirroring)
		case 1:
			return mirror(ines.HorzMirroring)
		case 2:
			return mirror(ines.OnlyAScreen)
		default:
			return mirror(ines.OnlyBScreen)
		}
	case reg == 0x9002 || reg == 0x9003:
		m.swapMode = (val >> 1) & 0x01
	case reg >= 0xA000 && reg <= 0xA003:
		m.prgBank1 = val & 0x1F
	case reg >= 0xB000 && reg <= 0xE003:
		// Each CHR register is two writes: even address loads the low
		// nibble, odd address the high nibble.
		idx := int(reg>>12-0xB)*2 + int(reg&0x02)>>1
		if reg&0x01 == 0 {
			m.chrRegs[idx] = (m.chrRegs[idx] & 0xF0) | (val & 0x0F)
		} else {
			m.chrRegs[idx] = (m.chrRegs[idx] & 0x0F) | ((val & 0x0F) << 4)
		}
	case reg == 0xF000:
		m.irqLatch = (m.irqLatch & 0xF0) | (val & 0x0F)
	case reg == 0xF001:
		m.irqLatch = (m.irqLatch & 0x0F) | ((val & 0x0F) << 4)
	case reg == 0xF002:
		m.irqControl = val
		m.irqEnabled = val&0x02 != 0
		if m.irqEnabled {
			m.irqCounter = m.irqLatch
			m.irqPrescaler = 341
		}
		m.irqPending = false
	case reg == 0xF003:
		m.irqEnabled = m.irqControl&0x01 != 0
		m.irqPending = false
	}
	return WriteEffect{}
}

func (m *vrc4) PPURead(addr uint16) (int, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	total := max(int(m.chrBanks)*8, 1)
	bank := int(m.chrRegs[addr>>10]) % total
	return bank*1024 + int(addr&0x3FF), true
}

func (m *vrc4) PPUWrite(addr uint16) (int, bool) { return 0, false }

// Scanline takes 3 from the 341-unit IRQ prescaler on each scanline
// notification; the counter steps when the prescaler runs out, about once
// every 114 scanlines.
func (m *vrc4) Scanline() {
	if !m.irqEnabled {
		return
	}
	m.irqPrescaler -= 3
	if m.irqPrescaler <= 0 {
		m.irqPrescaler += 341
		if m.irqCounter == 0xFF {
			m.irqCounter = m.irqLatch
			m.irqPending = true
		} else {
			m.irqCounter++
		}
	}
}

func (m *vrc4) PendingIRQ() bool {
	p := m.irqPending
	m.irqPending = false
	return p
}
