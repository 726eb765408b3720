package hw

import (
	"nescore/ines"

	"nescore/hw/snapshot"
)

// Save-state plumbing: each component dumps into / restores from its
// snapshot struct.

func (c *CPU) State() snapshot.CPU {
	return snapshot.CPU{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP,
		PC: c.PC, P: uint8(c.P),
		Cycles:      c.Cycles,
		TotalCycles: c.TotalCycles,
		NMIPending:  c.nmiPending,
		IRQPending:  c.irqPending,
	}
}

func (c *CPU) SetState(s *snapshot.CPU) {
	c.A, c.X, c.Y, c.SP = s.A, s.X, s.Y, s.SP
	c.PC = s.PC
	c.P = P(s.P)
	c.Cycles = s.Cycles
	c.TotalCycles = s.TotalCycles
	c.nmiPending = s.NMIPending
	c.irqPending = s.IRQPending
}

func (p *PPU) State() snapshot.PPU {
	s := snapshot.PPU{
		Ctrl: p.Ctrl, Mask: p.Mask, Status: p.Status, OAMAddr: p.OAMAddr,
		V: p.V, T: p.T, FineX: p.FineX,
		WriteLatch: p.WriteLatch,
		DataBuffer: p.DataBuffer,

		Scanline:      p.Scanline,
		Cycle:         p.Cycle,
		OddFrame:      p.OddFrame,
		FrameComplete: p.FrameComplete,

		BgTileID: p.bgTileID, BgTileAttr: p.bgTileAttr,
		BgTileLo: p.bgTileLo, BgTileHi: p.bgTileHi,
		BgShiftPatternLo: p.bgShiftPatternLo,
		BgShiftPatternHi: p.bgShiftPatternHi,
		BgShiftAttrLo:    p.bgShiftAttrLo,
		BgShiftAttrHi:    p.bgShiftAttrHi,

		SpriteCount:    p.spriteCount,
		SpriteZeroLine: p.spriteZeroLine,

		NMIPending:  p.nmiPending,
		ScanlineIRQ: p.scanlineIRQ,
		Mirroring:   uint8(p.mirroring),
	}
	s.Nametable = append([]byte(nil), p.Nametable[:]...)
	s.Palette = append([]byte(nil), p.Palette[:]...)
	s.OAM = append([]byte(nil), p.OAM[:]...)
	s.SecondaryOAM = append([]byte(nil), p.secondaryOAM[:]...)
	s.SpriteShiftLo = append([]byte(nil), p.spriteShiftLo[:]...)
	s.SpriteShiftHi = append([]byte(nil), p.spriteShiftHi[:]...)
	return s
}

func (p *PPU) SetState(s *snapshot.PPU) {
	p.Ctrl, p.Mask, p.Status, p.OAMAddr = s.Ctrl, s.Mask, s.Status, s.OAMAddr
	p.V, p.T, p.FineX = s.V, s.T, s.FineX
	p.WriteLatch = s.WriteLatch
	p.DataBuffer = s.DataBuffer

	copy(p.Nametable[:], s.Nametable)
	copy(p.Palette[:], s.Palette)
	copy(p.OAM[:], s.OAM)
	copy(p.secondaryOAM[:], s.SecondaryOAM)

	p.Scanline = s.Scanline
	p.Cycle = s.Cycle
	p.OddFrame = s.OddFrame
	p.FrameComplete = s.FrameComplete

	p.bgTileID, p.bgTileAttr = s.BgTileID, s.BgTileAttr
	p.bgTileLo, p.bgTileHi = s.BgTileLo, s.BgTileHi
	p.bgShiftPatternLo = s.BgShiftPatternLo
	p.bgShiftPatternHi = s.BgShiftPatternHi
	p.bgShiftAttrLo = s.BgShiftAttrLo
	p.bgShiftAttrHi = s.BgShiftAttrHi

	p.spriteCount = s.SpriteCount
	copy(p.spriteShiftLo[:], s.SpriteShiftLo)
	copy(p.spriteShiftHi[:], s.SpriteShiftHi)
	p.spriteZeroLine = s.SpriteZeroLine

	p.nmiPending = s.NMIPending
	p.scanlineIRQ = s.ScanlineIRQ
	p.mirroring = ines.Mirroring(s.Mirroring)
}

func (b *Bus) State() (ram []byte, dma snapshot.DMA) {
	return append([]byte(nil), b.RAM[:]...), snapshot.DMA{
		Page: b.DMA.Page, Addr: b.DMA.Addr, Data: b.DMA.Data,
		Transferring: b.DMA.Transferring,
		Dummy:        b.DMA.Dummy,
	}
}

func (b *Bus) SetState(ram []byte, dma *snapshot.DMA) {
	copy(b.RAM[:], ram)
	b.DMA.Page, b.DMA.Addr, b.DMA.Data = dma.Page, dma.Addr, dma.Data
	b.DMA.Transferring = dma.Transferring
	b.DMA.Dummy = dma.Dummy
}

func (ct *Controller) State() snapshot.Pad {
	return snapshot.Pad{Buttons: ct.buttons, Shift: ct.shift, Strobe: ct.strobe}
}

func (ct *Controller) SetState(s *snapshot.Pad) {
	ct.buttons = s.Buttons
	ct.shift = s.Shift
	ct.strobe = s.Strobe
}
