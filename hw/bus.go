package hw

import (
	"nescore/hw/apu"
)

// Bus routes CPU memory accesses:
//
//	$0000-$1FFF  2KB internal RAM, mirrored every 2KB
//	$2000-$3FFF  PPU registers, mirrored every 8 bytes
//	$4000-$4013  APU channel registers
//	$4014        OAM DMA trigger
//	$4015        APU status
//	$4016        controller strobe / pad 1 serial read
//	$4017        APU frame counter (write) / pad 2 serial read
//	$4020-$FFFF  cartridge
type Bus struct {
	RAM [2048]uint8

	PPU  *PPU
	APU  *apu.APU
	Cart *Cartridge
	Pads [2]*Controller

	DMA OAMDMA
}

func NewBus(ppu *PPU, sound *apu.APU, cart *Cartridge, pad1, pad2 *Controller) *Bus {
	return &Bus{
		PPU:  ppu,
		APU:  sound,
		Cart: cart,
		Pads: [2]*Controller{pad1, pad2},
	}
}

func (b *Bus) Reset() {
	b.RAM = [2048]uint8{}
	b.DMA.reset()
}

// Read8 services a CPU read.
func (b *Bus) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x4020:
		return b.Cart.CPURead(addr)
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.CPURead(addr & 0x2007)
	case addr == 0x4016:
		return b.Pads[0].Read()
	case addr == 0x4017:
		return b.Pads[1].Read()
	case addr == 0x4015:
		return b.APU.ReadStatus()
	}
	// Open bus is approximated as zero.
	return 0
}

// Write8 services a CPU write.
func (b *Bus) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x4020:
		b.Cart.CPUWrite(addr, val)
		if b.PPU != nil {
			b.PPU.SetMirroring(b.Cart.Mirroring)
		}
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.CPUWrite(addr&0x2007, val)
	case addr == 0x4014:
		b.DMA.begin(val)
	case addr == 0x4016:
		b.Pads[0].Write(val)
		b.Pads[1].Write(val)
	case addr <= 0x4013 || addr == 0x4015 || addr == 0x4017:
		b.APU.CPUWrite(addr, val)
	}
}
