package hw

import (
	"nescore/ines"
)

// Screen dimensions of the visible raster.
const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

// PPU is the 2C02 picture processor. It is clocked once per master cycle
// (one dot); a frame is 262 scanlines (numbered -1, the pre-render line,
// through 260) of 341 dots each.
type PPU struct {
	Cart *Cartridge

	// Register file.
	Ctrl    uint8
	Mask    uint8
	Status  uint8
	OAMAddr uint8

	// Loopy scroll state: current and temporary VRAM address, fine X and
	// the shared $2005/$2006 write latch.
	V          uint16
	T          uint16
	FineX      uint8
	WriteLatch bool

	// $2007 read buffer.
	DataBuffer uint8

	Nametable [2048]uint8
	Palette   [32]uint8
	OAM       [256]uint8

	secondaryOAM [32]uint8

	Scanline      int // -1..260
	Cycle         int // 0..340
	FrameComplete bool
	OddFrame      bool

	// Background pipeline: pending tile fetch and the shift registers the
	// pixel mux reads through fineX.
	bgTileID   uint8
	bgTileAttr uint8
	bgTileLo   uint8
	bgTileHi   uint8

	bgShiftPatternLo uint16
	bgShiftPatternHi uint16
	bgShiftAttrLo    uint16
	bgShiftAttrHi    uint16

	// Sprite pipeline for the line being drawn.
	spriteCount    uint8
	spriteShiftLo  [8]uint8
	spriteShiftHi  [8]uint8
	spriteZeroLine bool // sprite 0 made it into secondary OAM
	spriteZeroPix  bool // sprite 0 produced the current pixel

	nmiPending  bool
	scanlineIRQ bool

	mirroring ines.Mirroring

	FrameBuffer [ScreenWidth * ScreenHeight]uint32
}

func NewPPU(cart *Cartridge) *PPU {
	ppu := &PPU{Cart: cart}
	if cart != nil {
		ppu.mirroring = cart.Mirroring
	}
	return ppu
}

func (p *PPU) Reset() {
	p.Ctrl = 0
	p.Mask = 0
	p.Status = 0
	p.OAMAddr = 0
	p.V = 0
	p.T = 0
	p.FineX = 0
	p.WriteLatch = false
	p.DataBuffer = 0
	p.Scanline = -1
	p.Cycle = 0
	p.FrameComplete = false
	p.OddFrame = false
	p.nmiPending = false
	p.scanlineIRQ = false
	p.bgTileID = 0
	p.bgTileAttr = 0
	p.bgTileLo = 0
	p.bgTileHi = 0
	p.bgShiftPatternLo = 0
	p.bgShiftPatternHi = 0
	p.bgShiftAttrLo = 0
	p.bgShiftAttrHi = 0
	p.spriteCount = 0
}

// SetMirroring updates the nametable arrangement (mapper controlled).
func (p *PPU) SetMirroring(m ines.Mirroring) { p.mirroring = m }

// DrainNMI reports and clears a pending VBlank NMI.
func (p *PPU) DrainNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// DrainScanlineIRQ reports and clears the per-scanline A12 notification
// consumed by scanline-counting mappers.
func (p *PPU) DrainScanlineIRQ() bool {
	pending := p.scanlineIRQ
	p.scanlineIRQ = false
	return pending
}

/* CPU-visible registers, $2000-$2007 */

// CPURead services a CPU read of a PPU register.
func (p *PPU) CPURead(addr uint16) uint8 {
	switch addr & 0x0007 {
	case 0x0002: // PPUSTATUS
		// The low 5 bits float with the data buffer; reading clears
		// VBlank and the write latch.
		data := p.Status&0xE0 | p.DataBuffer&0x1F
		p.Status &^= 0x80
		p.WriteLatch = false
		return data
	case 0x0004: // OAMDATA
		return p.OAM[p.OAMAddr]
	case 0x0007: // PPUDATA
		data := p.DataBuffer
		p.DataBuffer = p.busRead(p.V)
		if p.V >= 0x3F00 {
			// Palette reads bypass the buffer, which refills from the
			// nametable mirror underneath.
			data = p.DataBuffer
			p.DataBuffer = p.busRead(p.V - 0x1000)
		}
		p.V += p.vramIncrement()
		return data
	}
	return 0
}

// CPUWrite services a CPU write to a PPU register.
func (p *PPU) CPUWrite(addr uint16, val uint8) {
	switch addr & 0x0007 {
	case 0x0000: // PPUCTRL
		prevNMI := p.Ctrl&0x80 != 0
		p.Ctrl = val
		p.T = p.T&0xF3FF | uint16(val&0x03)<<10
		// Enabling NMI while VBlank is already set fires one right away.
		if !prevNMI && val&0x80 != 0 && p.Status&0x80 != 0 {
			p.nmiPending = true
		}
	case 0x0001: // PPUMASK
		p.Mask = val
	case 0x0003: // OAMADDR
		p.OAMAddr = val
	case 0x0004: // OAMDATA
		p.OAM[p.OAMAddr] = val
		p.OAMAddr++
	case 0x0005: // PPUSCROLL
		if !p.WriteLatch {
			p.FineX = val & 0x07
			p.T = p.T&0xFFE0 | uint16(val)>>3
		} else {
			p.T = p.T&0x8C1F | uint16(val&0x07)<<12 | uint16(val&0xF8)<<2
		}
		p.WriteLatch = !p.WriteLatch
	case 0x0006: // PPUADDR
		if !p.WriteLatch {
			p.T = p.T&0x00FF | uint16(val&0x3F)<<8
		} else {
			p.T = p.T&0xFF00 | uint16(val)
			p.V = p.T
		}
		p.WriteLatch = !p.WriteLatch
	case 0x0007: // PPUDATA
		p.busWrite(p.V, val)
		p.V += p.vramIncrement()
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.Ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

/* PPU address space */

func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.Cart.PPURead(addr)
	case addr < 0x3F00:
		return p.Nametable[p.mirrorNametable(addr)]
	default:
		return p.Palette[mirrorPalette(addr)]
	}
}

func (p *PPU) busWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.Cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.Nametable[p.mirrorNametable(addr)] = val
	default:
		p.Palette[mirrorPalette(addr)] = val
	}
}

// mirrorNametable folds a $2000-$3EFF address into the 2KB nametable RAM
// according to the current mirroring mode.
func (p *PPU) mirrorNametable(addr uint16) int {
	addr = (addr - 0x2000) & 0x0FFF
	switch p.mirroring {
	case ines.HorzMirroring:
		switch {
		case addr < 0x0400:
			return int(addr)
		case addr < 0x0800:
			return int(addr - 0x0400)
		case addr < 0x0C00:
			return int(addr - 0x0800 + 0x0400)
		default:
			return int(addr - 0x0C00 + 0x0400)
		}
	case ines.VertMirroring:
		return int(addr & 0x07FF)
	case ines.OnlyAScreen:
		return int(addr & 0x03FF)
	case ines.OnlyBScreen:
		return int(addr&0x03FF) + 0x0400
	default: // FourScreen folds into the 2KB we have
		return int(addr & 0x07FF)
	}
}

// mirrorPalette folds palette addresses: $3F10/14/18/1C alias their
// background counterparts.
func mirrorPalette(addr uint16) int {
	a := int(addr & 0x1F)
	if a == 0x10 || a == 0x14 || a == 0x18 || a == 0x1C {
		a -= 0x10
	}
	return a
}

/* rendering state */

func (p *PPU) renderingEnabled() bool { return p.Mask&0x18 != 0 }
func (p *PPU) bgEnabled() bool        { return p.Mask&0x08 != 0 }
func (p *PPU) sprEnabled() bool       { return p.Mask&0x10 != 0 }
func (p *PPU) bgLeftEnabled() bool    { return p.Mask&0x02 != 0 }
func (p *PPU) sprLeftEnabled() bool   { return p.Mask&0x04 != 0 }

// Clock advances the PPU by one dot.
func (p *PPU) Clock() {
	if p.Scanline >= -1 && p.Scanline < 240 {
		if p.Scanline == -1 && p.Cycle == 1 {
			// Leave VBlank: clear VBlank, sprite 0 and overflow, drop the
			// sprite shifters.
			p.Status &^= 0xE0
			p.spriteShiftLo = [8]uint8{}
			p.spriteShiftHi = [8]uint8{}
		}

		// Odd frames skip dot (0,0) when rendering.
		if p.Scanline == 0 && p.Cycle == 0 && p.OddFrame && p.renderingEnabled() {
			p.Cycle = 1
		}

		if (p.Cycle >= 2 && p.Cycle < 258) || (p.Cycle >= 321 && p.Cycle < 338) {
			p.updateShifters()

			switch (p.Cycle - 1) % 8 {
			case 0:
				p.loadBGShifters()
				p.bgTileID = p.busRead(0x2000 | p.V&0x0FFF)
			case 2:
				attrAddr := 0x23C0 | p.V&0x0C00 | p.V>>4&0x38 | p.V>>2&0x07
				attr := p.busRead(attrAddr)
				if p.V&0x40 != 0 {
					attr >>= 4
				}
				if p.V&0x02 != 0 {
					attr >>= 2
				}
				p.bgTileAttr = attr & 0x03
			case 4:
				p.bgTileLo = p.busRead(p.bgPatternAddr())
			case 6:
				p.bgTileHi = p.busRead(p.bgPatternAddr() + 8)
			case 7:
				p.incrementScrollX()
			}
		}

		if p.Cycle == 256 {
			p.incrementScrollY()
		}
		if p.Cycle == 257 {
			p.loadBGShifters()
			p.transferAddressX()
		}
		if p.Scanline == -1 && p.Cycle >= 280 && p.Cycle < 305 {
			p.transferAddressY()
		}

		// Garbage nametable fetches at the end of the line, like the
		// hardware performs.
		if p.Cycle == 338 || p.Cycle == 340 {
			p.bgTileID = p.busRead(0x2000 | p.V&0x0FFF)
		}

		if p.Cycle == 257 && p.Scanline >= 0 {
			p.evaluateSprites()
		}
		if p.Cycle == 340 && p.Scanline >= 0 {
			p.loadSpritePatterns()
		}
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.Status |= 0x80
		if p.Ctrl&0x80 != 0 {
			p.nmiPending = true
		}
	}

	if p.Scanline >= 0 && p.Scanline < 240 && p.Cycle >= 1 && p.Cycle <= 256 {
		p.renderPixel()
	}

	// A12 notification for scanline-counting mappers, pinned to dot 260
	// with rendering enabled.
	if p.renderingEnabled() && p.Cycle == 260 && p.Scanline < 240 {
		p.scanlineIRQ = true
	}

	p.Cycle++
	if p.Cycle > 340 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > 260 {
			p.Scanline = -1
			p.FrameComplete = true
			p.OddFrame = !p.OddFrame
		}
	}
}

func (p *PPU) bgPatternAddr() uint16 {
	return uint16(p.Ctrl&0x10)<<8 + uint16(p.bgTileID)*16 + p.V>>12&0x07
}

/* loopy scroll operations */

func (p *PPU) incrementScrollX() {
	if !p.renderingEnabled() {
		return
	}
	if p.V&0x001F == 31 {
		p.V &^= 0x001F
		p.V ^= 0x0400 // next horizontal nametable
	} else {
		p.V++
	}
}

func (p *PPU) incrementScrollY() {
	if !p.renderingEnabled() {
		return
	}
	if p.V&0x7000 != 0x7000 {
		p.V += 0x1000
	} else {
		p.V &^= 0x7000
		y := p.V & 0x03E0 >> 5
		switch y {
		case 29:
			y = 0
			p.V ^= 0x0800 // next vertical nametable
		case 31:
			y = 0 // attribute rows wrap without switching
		default:
			y++
		}
		p.V = p.V&^0x03E0 | y<<5
	}
}

func (p *PPU) transferAddressX() {
	if p.renderingEnabled() {
		p.V = p.V&^0x041F | p.T&0x041F
	}
}

func (p *PPU) transferAddressY() {
	if p.renderingEnabled() {
		p.V = p.V&^0x7BE0 | p.T&0x7BE0
	}
}

/* shifters */

func (p *PPU) updateShifters() {
	if p.bgEnabled() {
		p.bgShiftPatternLo <<= 1
		p.bgShiftPatternHi <<= 1
		p.bgShiftAttrLo <<= 1
		p.bgShiftAttrHi <<= 1
	}

	if p.sprEnabled() && p.Cycle >= 1 && p.Cycle < 258 {
		for i := 0; i < int(p.spriteCount); i++ {
			if x := p.secondaryOAM[i*4+3]; x > 0 {
				p.secondaryOAM[i*4+3] = x - 1
			} else {
				p.spriteShiftLo[i] <<= 1
				p.spriteShiftHi[i] <<= 1
			}
		}
	}
}

func (p *PPU) loadBGShifters() {
	p.bgShiftPatternLo = p.bgShiftPatternLo&0xFF00 | uint16(p.bgTileLo)
	p.bgShiftPatternHi = p.bgShiftPatternHi&0xFF00 | uint16(p.bgTileHi)

	// Attribute bits inflate to a full byte so the mux can treat them
	// like pattern bits.
	lo, hi := uint16(0), uint16(0)
	if p.bgTileAttr&0x01 != 0 {
		lo = 0xFF
	}
	if p.bgTileAttr&0x02 != 0 {
		hi = 0xFF
	}
	p.bgShiftAttrLo = p.bgShiftAttrLo&0xFF00 | lo
	p.bgShiftAttrHi = p.bgShiftAttrHi&0xFF00 | hi
}

/* sprites */

func (p *PPU) spriteHeight() int {
	if p.Ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites fills secondary OAM with the sprites hitting the next
// scanline. Finding a ninth sets the overflow bit.
func (p *PPU) evaluateSprites() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteCount = 0
	p.spriteZeroLine = false

	height := p.spriteHeight()
	for i := 0; i < 64; i++ {
		diff := p.Scanline - int(p.OAM[i*4])
		if diff < 0 || diff >= height {
			continue
		}
		if p.spriteCount == 8 {
			p.Status |= 0x20 // sprite overflow
			break
		}
		if i == 0 {
			p.spriteZeroLine = true
		}
		copy(p.secondaryOAM[p.spriteCount*4:], p.OAM[i*4:i*4+4])
		p.spriteCount++
	}
}

// loadSpritePatterns fetches the pattern rows for the evaluated sprites.
func (p *PPU) loadSpritePatterns() {
	for i := 0; i < int(p.spriteCount); i++ {
		spriteY := int(p.secondaryOAM[i*4])
		tileID := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		flipV := attr&0x80 != 0

		row := p.Scanline - spriteY

		var patternAddr uint16
		if p.Ctrl&0x20 != 0 {
			// 8x16: the tile's bit 0 picks the pattern table.
			if flipV {
				row = 15 - row
			}
			table := uint16(tileID&0x01) * 0x1000
			tile := uint16(tileID & 0xFE)
			if row >= 8 {
				patternAddr = table + (tile+1)*16 + uint16(row-8)
			} else {
				patternAddr = table + tile*16 + uint16(row)
			}
		} else {
			if flipV {
				row = 7 - row
			}
			table := uint16(p.Ctrl>>3&0x01) * 0x1000
			patternAddr = table + uint16(tileID)*16 + uint16(row)
		}

		lo := p.busRead(patternAddr)
		hi := p.busRead(patternAddr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.spriteShiftLo[i] = lo
		p.spriteShiftHi[i] = hi
	}
}

func reverseBits(b uint8) uint8 {
	b = b&0xF0>>4 | b&0x0F<<4
	b = b&0xCC>>2 | b&0x33<<2
	b = b&0xAA>>1 | b&0x55<<1
	return b
}

/* pixel composition */

func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	var bgPixel, bgPalette uint8
	if p.bgEnabled() && (p.bgLeftEnabled() || x >= 8) {
		mux := uint16(0x8000) >> p.FineX

		if p.bgShiftPatternLo&mux != 0 {
			bgPixel |= 0x01
		}
		if p.bgShiftPatternHi&mux != 0 {
			bgPixel |= 0x02
		}
		if p.bgShiftAttrLo&mux != 0 {
			bgPalette |= 0x01
		}
		if p.bgShiftAttrHi&mux != 0 {
			bgPalette |= 0x02
		}
	}

	var sprPixel, sprPalette uint8
	var sprBehind bool
	p.spriteZeroPix = false

	if p.sprEnabled() && (p.sprLeftEnabled() || x >= 8) {
		for i := 0; i < int(p.spriteCount); i++ {
			if p.secondaryOAM[i*4+3] != 0 {
				continue
			}
			var pix uint8
			if p.spriteShiftLo[i]&0x80 != 0 {
				pix |= 0x01
			}
			if p.spriteShiftHi[i]&0x80 != 0 {
				pix |= 0x02
			}
			if pix == 0 {
				continue
			}
			sprPixel = pix
			sprPalette = p.secondaryOAM[i*4+2]&0x03 + 4
			sprBehind = p.secondaryOAM[i*4+2]&0x20 != 0
			if i == 0 {
				p.spriteZeroPix = true
			}
			break
		}
	}

	var pixel, palette uint8
	switch {
	case bgPixel == 0 && sprPixel == 0:
		// backdrop
	case bgPixel == 0:
		pixel, palette = sprPixel, sprPalette
	case sprPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if p.spriteZeroLine && p.spriteZeroPix && p.bgEnabled() && p.sprEnabled() {
			leftClip := !(p.bgLeftEnabled() && p.sprLeftEnabled())
			if (!leftClip || x >= 8) && x < 255 {
				p.Status |= 0x40 // sprite 0 hit
			}
		}
		if sprBehind {
			pixel, palette = bgPixel, bgPalette
		} else {
			pixel, palette = sprPixel, sprPalette
		}
	}

	color := p.busRead(0x3F00 + uint16(palette)*4 + uint16(pixel))
	p.FrameBuffer[y*ScreenWidth+x] = masterPalette[color&0x3F]
}
