package hw

import "testing"

func testPPU(t *testing.T) *PPU {
	t.Helper()
	_, bus := testSystem(t, nil)
	return bus.PPU
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	ppu := testPPU(t)
	ppu.Status = 0xE0
	ppu.WriteLatch = true
	ppu.DataBuffer = 0x1F

	got := ppu.CPURead(0x2002)
	if got != 0xFF {
		t.Errorf("status read = %#x, want 0xFF", got)
	}
	if ppu.Status&0x80 != 0 {
		t.Error("VBlank should be cleared by the read")
	}
	if ppu.WriteLatch {
		t.Error("write latch should be cleared by the read")
	}
	// Sprite flags survive.
	if ppu.Status&0x60 != 0x60 {
		t.Error("sprite 0 / overflow flags must survive a status read")
	}
}

func TestScrollRegisterWrites(t *testing.T) {
	ppu := testPPU(t)

	// $2000 copies the nametable bits into t.
	ppu.CPUWrite(0x2000, 0x03)
	if ppu.T&0x0C00 != 0x0C00 {
		t.Errorf("t = %#x after ctrl write", ppu.T)
	}

	// First $2005 write: fine X and coarse X.
	ppu.CPUWrite(0x2005, 0x7D) // 0b01111_101
	if ppu.FineX != 5 {
		t.Errorf("fineX = %d, want 5", ppu.FineX)
	}
	if ppu.T&0x001F != 0x0F {
		t.Errorf("coarse X = %d, want 15", ppu.T&0x001F)
	}

	// Second $2005 write: fine Y and coarse Y.
	ppu.CPUWrite(0x2005, 0x5E) // 0b01011_110
	if ppu.T>>12&0x07 != 6 {
		t.Errorf("fine Y = %d, want 6", ppu.T>>12&0x07)
	}
	if ppu.T>>5&0x1F != 11 {
		t.Errorf("coarse Y = %d, want 11", ppu.T>>5&0x1F)
	}

	// $2006 pair: high byte masks bit 14, low byte copies t into v.
	ppu.CPUWrite(0x2006, 0x3F)
	ppu.CPUWrite(0x2006, 0x10)
	if ppu.V != 0x3F10 || ppu.T != 0x3F10 {
		t.Errorf("v = %#x t = %#x, want 0x3F10", ppu.V, ppu.T)
	}
}

func TestDataReadBuffered(t *testing.T) {
	ppu := testPPU(t)

	// Nametable reads go through the one-byte buffer.
	ppu.CPUWrite(0x2006, 0x24)
	ppu.CPUWrite(0x2006, 0x00)
	ppu.CPUWrite(0x2007, 0xAB)

	ppu.CPUWrite(0x2006, 0x24)
	ppu.CPUWrite(0x2006, 0x00)
	first := ppu.CPURead(0x2007) // stale buffer
	second := ppu.CPURead(0x2007)
	if first == 0xAB {
		t.Error("first read should return the stale buffer")
	}
	if second != 0xAB {
		t.Errorf("second read = %#x, want 0xAB", second)
	}
}

func TestDataReadPaletteDirect(t *testing.T) {
	ppu := testPPU(t)

	ppu.CPUWrite(0x2006, 0x3F)
	ppu.CPUWrite(0x2006, 0x00)
	ppu.CPUWrite(0x2007, 0x21)

	ppu.CPUWrite(0x2006, 0x3F)
	ppu.CPUWrite(0x2006, 0x00)
	if got := ppu.CPURead(0x2007); got != 0x21 {
		t.Errorf("palette read = %#x, want direct 0x21", got)
	}
}

func TestDataIncrement32(t *testing.T) {
	ppu := testPPU(t)
	ppu.CPUWrite(0x2000, 0x04) // increment 32
	ppu.CPUWrite(0x2006, 0x20)
	ppu.CPUWrite(0x2006, 0x00)
	ppu.CPUWrite(0x2007, 0x00)
	if ppu.V != 0x2020 {
		t.Errorf("v = %#x, want 0x2020", ppu.V)
	}
}

func TestPaletteMirrors(t *testing.T) {
	ppu := testPPU(t)
	ppu.busWrite(0x3F10, 0x2A)
	if got := ppu.busRead(0x3F00); got != 0x2A {
		t.Errorf("$3F00 = %#x, want the $3F10 write", got)
	}
}

func TestVBlankSetAndNMI(t *testing.T) {
	ppu := testPPU(t)
	ppu.Ctrl = 0x80
	ppu.Scanline = 241
	ppu.Cycle = 1
	ppu.Clock()

	if ppu.Status&0x80 == 0 {
		t.Error("VBlank should be set at (241,1)")
	}
	if !ppu.DrainNMI() {
		t.Error("NMI should be pending")
	}
	if ppu.DrainNMI() {
		t.Error("DrainNMI must clear the flag")
	}
}

func TestNMIOnEnableDuringVBlank(t *testing.T) {
	ppu := testPPU(t)
	ppu.Status = 0x80
	ppu.CPUWrite(0x2000, 0x80)
	if !ppu.DrainNMI() {
		t.Error("enabling NMI with VBlank set should fire immediately")
	}
}

func TestPreRenderClearsFlags(t *testing.T) {
	ppu := testPPU(t)
	ppu.Status = 0xE0
	ppu.Scanline = -1
	ppu.Cycle = 1
	ppu.Clock()
	if ppu.Status&0xE0 != 0 {
		t.Errorf("status = %#x, want flags cleared at pre-render", ppu.Status)
	}
}

func TestOddFrameSkip(t *testing.T) {
	// With rendering enabled, odd frames skip dot (0,0).
	ppu := testPPU(t)
	ppu.Mask = 0x08
	ppu.OddFrame = true
	ppu.Scanline = 0
	ppu.Cycle = 0
	ppu.Clock()
	if ppu.Cycle != 2 {
		t.Errorf("cycle = %d, want 2 (dot skipped)", ppu.Cycle)
	}

	// With rendering disabled there is no skip.
	ppu.Mask = 0
	ppu.Scanline = 0
	ppu.Cycle = 0
	ppu.Clock()
	if ppu.Cycle != 1 {
		t.Errorf("cycle = %d, want 1 (no skip)", ppu.Cycle)
	}
}

func TestFrameCompleteAndOddToggle(t *testing.T) {
	ppu := testPPU(t)
	ppu.Scanline = 260
	ppu.Cycle = 340
	ppu.Clock()
	if !ppu.FrameComplete {
		t.Error("frame should complete after (260,340)")
	}
	if ppu.Scanline != -1 || ppu.Cycle != 0 {
		t.Errorf("wrapped to (%d,%d), want (-1,0)", ppu.Scanline, ppu.Cycle)
	}
	if !ppu.OddFrame {
		t.Error("odd frame flag should toggle")
	}
}

func TestScanlineIRQFlagAtDot260(t *testing.T) {
	ppu := testPPU(t)
	ppu.Mask = 0x08
	ppu.Scanline = 10
	ppu.Cycle = 260
	ppu.Clock()
	if !ppu.DrainScanlineIRQ() {
		t.Error("scanline flag should raise at dot 260 with rendering on")
	}

	ppu.Mask = 0
	ppu.Scanline = 10
	ppu.Cycle = 260
	ppu.Clock()
	if ppu.DrainScanlineIRQ() {
		t.Error("no scanline flag with rendering disabled")
	}
}

func TestIncrementScrollX(t *testing.T) {
	ppu := testPPU(t)
	ppu.Mask = 0x08

	ppu.V = 0x001F // coarse X = 31
	ppu.incrementScrollX()
	if ppu.V != 0x0400 {
		t.Errorf("v = %#x, want nametable switch to 0x0400", ppu.V)
	}

	ppu.V = 0x0005
	ppu.incrementScrollX()
	if ppu.V != 0x0006 {
		t.Errorf("v = %#x, want 0x0006", ppu.V)
	}
}

func TestIncrementScrollY(t *testing.T) {
	ppu := testPPU(t)
	ppu.Mask = 0x08

	// coarse Y 29 wraps and flips the vertical nametable.
	ppu.V = 29<<5 | 0x7000
	ppu.incrementScrollY()
	if ppu.V != 0x0800 {
		t.Errorf("v = %#x, want 0x0800", ppu.V)
	}

	// fine Y below 7 just increments.
	ppu.V = 0x1000
	ppu.incrementScrollY()
	if ppu.V != 0x2000 {
		t.Errorf("v = %#x, want 0x2000", ppu.V)
	}
}

func TestNametableMirroring(t *testing.T) {
	ppu := testPPU(t)

	ppu.SetMirroring(0) // horizontal
	if ppu.mirrorNametable(0x2400) != 0x0000 {
		t.Error("horizontal: $2400 should alias $2000")
	}
	if ppu.mirrorNametable(0x2800) != 0x0400 {
		t.Error("horizontal: $2800 should map to the second table")
	}

	ppu.SetMirroring(1) // vertical
	if ppu.mirrorNametable(0x2800) != 0x0000 {
		t.Error("vertical: $2800 should alias $2000")
	}
	if ppu.mirrorNametable(0x2400) != 0x0400 {
		t.Error("vertical: $2400 should map to the second table")
	}
}

func TestSpriteEvaluationOverflow(t *testing.T) {
	ppu := testPPU(t)
	ppu.Ctrl = 0 // 8x8 sprites

	// Nine sprites on scanline 10.
	for i := 0; i < 9; i++ {
		ppu.OAM[i*4] = 10
	}
	// Keep the rest far away.
	for i := 9; i < 64; i++ {
		ppu.OAM[i*4] = 0xF0
	}

	ppu.Scanline = 10
	ppu.evaluateSprites()
	if ppu.spriteCount != 8 {
		t.Errorf("sprite count = %d, want 8", ppu.spriteCount)
	}
	if ppu.Status&0x20 == 0 {
		t.Error("sprite overflow flag should be set")
	}
	if !ppu.spriteZeroLine {
		t.Error("sprite zero is on this line")
	}
}
