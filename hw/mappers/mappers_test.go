package mappers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/ines"
)

func TestRegistry(t *testing.T) {
	want := []uint8{0, 1, 2, 3, 4, 7, 11, 15, 16, 23, 66, 71, 113, 202, 225, 227, 245, 253}
	if len(All) != len(want) {
		t.Fatalf("registry has %d mappers, want %d", len(All), len(want))
	}
	for _, n := range want {
		if _, ok := All[n]; !ok {
			t.Errorf("mapper %d missing from registry", n)
		}
	}
}

func TestNROM(t *testing.T) {
	// 16KB carts mirror the single bank at $C000.
	m := newNROM(1, 1)
	if off, ok := m.CPURead(0xC005); !ok || off != 0x0005 {
		t.Errorf("CPURead(0xC005) = %#x, %t", off, ok)
	}
	if _, ok := m.CPURead(0x5000); ok {
		t.Error("CPURead below $8000 should be unmapped")
	}

	m = newNROM(2, 1)
	if off, _ := m.CPURead(0xC005); off != 0x4005 {
		t.Errorf("32KB CPURead(0xC005) = %#x, want 0x4005", off)
	}

	// CHR ROM is not writable.
	if _, ok := m.PPUWrite(0x1000); ok {
		t.Error("PPUWrite with CHR ROM should be refused")
	}
	m = newNROM(1, 0)
	if _, ok := m.PPUWrite(0x1000); !ok {
		t.Error("PPUWrite with CHR RAM should be allowed")
	}
}

// mmc1Serial performs the five LSB-first writes a real program uses to load an
// MMC1 register.
func mmc1Serial(m Mapper, addr uint16, val uint8) WriteEffect {
	var eff WriteEffect
	for i := 0; i < 5; i++ {
		eff = m.CPUWrite(addr, val>>i&1)
	}
	return eff
}

func TestMMC1SerialWrites(t *testing.T) {
	m := newMMC1(8, 2)

	eff := mmc1Serial(m, 0x8000, 0x02) // control: vertical mirroring, PRG mode 0
	if !eff.MirrorChanged || eff.Mirror != ines.VertMirroring {
		t.Errorf("control write effect = %+v", eff)
	}

	// PRG mode 3: switchable at $8000, last bank fixed at $C000.
	mmc1Serial(m, 0x8000, 0x0C|0x02)
	mmc1Serial(m, 0xE000, 3)

	if off, _ := m.CPURead(0x8000); off != 3*16384 {
		t.Errorf("bank at $8000 = %#x, want %#x", off, 3*16384)
	}
	if off, _ := m.CPURead(0xC000); off != 7*16384 {
		t.Errorf("bank at $C000 = %#x, want %#x", off, 7*16384)
	}
}

func TestMMC1ResetBit(t *testing.T) {
	m := newMMC1(8, 2).(*mmc1)
	m.CPUWrite(0x8000, 1) // one bit in
	m.CPUWrite(0x8000, 0x80)
	if m.shift != 0x10 {
		t.Errorf("shift = %#x after reset bit, want 0x10", m.shift)
	}
	if m.control&0x0C != 0x0C {
		t.Errorf("control = %#x, PRG mode bits should be set", m.control)
	}
}

func TestUxROM(t *testing.T) {
	m := newUxROM(8, 0)
	m.CPUWrite(0x8000, 3)
	if off, _ := m.CPURead(0x8000); off != 3*16384 {
		t.Errorf("switchable bank = %#x", off)
	}
	if off, _ := m.CPURead(0xC000); off != 7*16384 {
		t.Errorf("fixed bank = %#x", off)
	}
}

func TestCNROM(t *testing.T) {
	m := newCNROM(1, 4)
	m.CPUWrite(0x8000, 2)
	if off, _ := m.PPURead(0x0010); off != 2*8192+0x10 {
		t.Errorf("CHR offset = %#x", off)
	}
}

func TestMMC3Banks(t *testing.T) {
	m := newMMC3(8, 8).(*mmc3)

	// R6 = 2 with PRG mode 0: $8000 switchable, $C000 second-last.
	m.CPUWrite(0x8000, 6)
	m.CPUWrite(0x8001, 2)
	if off, _ := m.CPURead(0x8000); off != 2*8192 {
		t.Errorf("bank at $8000 = %#x", off)
	}
	if off, _ := m.CPURead(0xC000); off != 14*8192 {
		t.Errorf("bank at $C000 = %#x", off)
	}
	if off, _ := m.CPURead(0xE000); off != 15*8192 {
		t.Errorf("bank at $E000 = %#x", off)
	}

	// PRG mode 1 swaps $8000 and $C000.
	m.CPUWrite(0x8000, 6|0x40)
	if off, _ := m.CPURead(0x8000); off != 14*8192 {
		t.Errorf("mode 1 bank at $8000 = %#x", off)
	}
	if off, _ := m.CPURead(0xC000); off != 2*8192 {
		t.Errorf("mode 1 bank at $C000 = %#x", off)
	}

	// Mirroring via $A000.
	if eff := m.CPUWrite(0xA000, 1); eff.Mirror != ines.HorzMirroring {
		t.Errorf("mirroring effect = %+v", eff)
	}
}

func TestMMC3IRQ(t *testing.T) {
	m := newMMC3(8, 8)
	m.CPUWrite(0xC000, 3) // latch
	m.CPUWrite(0xC001, 0) // reload
	m.CPUWrite(0xE001, 0) // enable

	// First edge reloads; the IRQ fires on the edge the counter hits 0.
	for i := 0; i < 3; i++ {
		m.Scanline()
		if m.PendingIRQ() {
			t.Fatalf("IRQ fired early, at edge %d", i)
		}
	}
	m.Scanline()
	if !m.PendingIRQ() {
		t.Fatal("IRQ should be pending after four edges")
	}
	if m.PendingIRQ() {
		t.Fatal("PendingIRQ must self-clear")
	}

	// Disabling acknowledges.
	m.CPUWrite(0xC001, 0)
	m.Scanline() // reload
	for i := 0; i < 3; i++ {
		m.Scanline()
	}
	m.CPUWrite(0xE000, 0)
	if m.PendingIRQ() {
		t.Fatal("disable should clear a pending IRQ")
	}
}

func TestAxROM(t *testing.T) {
	m := newAxROM(8, 0)
	eff := m.CPUWrite(0x8000, 0x12)
	if eff.Mirror != ines.OnlyBScreen {
		t.Errorf("mirror = %v, want OnlyBScreen", eff.Mirror)
	}
	if off, _ := m.CPURead(0x8000); off != 2*32768 {
		t.Errorf("bank = %#x", off)
	}
}

func TestBandaiCycleIRQ(t *testing.T) {
	m := newBandaiFCG(8, 4)
	m.CPUWrite(0x800B, 1) // latch low = 1
	m.CPUWrite(0x800A, 1) // enable, counter = latch

	// The counter is signed: the IRQ pends when it drops below zero.
	m.CPUClock()
	if m.PendingIRQ() {
		t.Fatal("IRQ fired at counter == 0")
	}
	m.CPUClock()
	if !m.PendingIRQ() {
		t.Fatal("IRQ should fire when the counter goes negative")
	}
}

func TestVRC4PRGSwap(t *testing.T) {
	m := newVRC4(8, 8)
	m.CPUWrite(0x8000, 3)
	if off, _ := m.CPURead(0x8000); off != 3*8192 {
		t.Errorf("bank at $8000 = %#x", off)
	}

	// Swap mode moves the switchable bank to $C000.
	m.CPUWrite(0x9002, 2)
	if off, _ := m.CPURead(0xC000); off != 3*8192 {
		t.Errorf("swapped bank at $C000 = %#x", off)
	}
	if off, _ := m.CPURead(0x8000); off != 14*8192 {
		t.Errorf("fixed bank at $8000 = %#x", off)
	}
}

func TestVRC4CHRNibbles(t *testing.T) {
	m := newVRC4(8, 8).(*vrc4)
	m.CPUWrite(0xB000, 0x05) // CHR reg 0 low nibble
	m.CPUWrite(0xB001, 0x02) // CHR reg 0 high nibble
	if m.chrRegs[0] != 0x25 {
		t.Errorf("chrRegs[0] = %#x, want 0x25", m.chrRegs[0])
	}
	if off, _ := m.PPURead(0x0000); off != 0x25*1024 {
		t.Errorf("CHR offset = %#x", off)
	}
}

func TestGxROM(t *testing.T) {
	m := newGxROM(4, 4)
	m.CPUWrite(0x8000, 0x21) // PRG 2, CHR 1
	if off, _ := m.CPURead(0x8000); off != 2*32768 {
		t.Errorf("PRG offset = %#x", off)
	}
	if off, _ := m.PPURead(0x0000); off != 1*8192 {
		t.Errorf("CHR offset = %#x", off)
	}
}

func TestCamericaMirrorRegister(t *testing.T) {
	m := newCamerica(8, 0)
	if eff := m.CPUWrite(0x9000, 0x10); eff.Mirror != ines.OnlyBScreen {
		t.Errorf("mirror effect = %+v", eff)
	}
	m.CPUWrite(0xC000, 5)
	if off, _ := m.CPURead(0x8000); off != 5*16384 {
		t.Errorf("bank = %#x", off)
	}
}

func TestNINA(t *testing.T) {
	m := newNINA(8, 16)
	eff := m.CPUWrite(0x4100, 0xC9) // prg=1, chr=(1)|(8)=9, vertical
	if eff.Mirror != ines.VertMirroring {
		t.Errorf("mirror = %v", eff.Mirror)
	}
	if off, _ := m.CPURead(0x8000); off != 1*32768 {
		t.Errorf("PRG offset = %#x", off)
	}
	if off, _ := m.PPURead(0x0000); off != 9*8192 {
		t.Errorf("CHR offset = %#x", off)
	}
}

func TestMulti202(t *testing.T) {
	m := newMulti202(8, 8)
	// addr bit0=1, bit3=0 -> mode 1 (32KB); bank bits 1-3.
	m.CPUWrite(0x8005, 0)
	mm := m.(*multi202)
	if mm.prgBank != 2 || mm.prgMode != 1 {
		t.Errorf("prgBank=%d prgMode=%d", mm.prgBank, mm.prgMode)
	}
}

func TestMulti225Mirroring(t *testing.T) {
	m := newMulti225(16, 16)

	// Address bit 13 set selects Vertical, clear selects Horizontal.
	if eff := m.CPUWrite(0xA000, 0); eff.Mirror != ines.VertMirroring {
		t.Errorf("bit13=1: mirror = %v, want Vertical", eff.Mirror)
	}
	if eff := m.CPUWrite(0x8000, 0); eff.Mirror != ines.HorzMirroring {
		t.Errorf("bit13=0: mirror = %v, want Horizontal", eff.Mirror)
	}
}

func TestMulti225Banks(t *testing.T) {
	m := newMulti225(16, 16).(*multi225)
	// 16KB mode (bit 12), PRG bank 5 (bits 6-11), CHR bank 9 (bits 0-5).
	m.CPUWrite(0x8000|1<<12|5<<6|9, 0)
	if m.prgMode != 1 || m.prgBank != 5 || m.chrBank != 9 {
		t.Errorf("prgMode=%d prgBank=%d chrBank=%d", m.prgMode, m.prgBank, m.chrBank)
	}
	if off, _ := m.CPURead(0xC000); off != 5*16384 {
		t.Errorf("16KB mode mirrors the same bank: off = %#x", off)
	}
}

func TestMulti227PowerOn(t *testing.T) {
	m := newMulti227(8, 0)
	// Power-on: UNROM-like, bank 0 at both halves.
	if off, _ := m.CPURead(0x8000); off != 0 {
		t.Errorf("low half = %#x", off)
	}
	if off, _ := m.CPURead(0xC000); off != 0 {
		t.Errorf("high half = %#x", off)
	}

	// L bit moves the fixed half to bank 7.
	m.CPUWrite(0x8000|0x0200, 0)
	if off, _ := m.CPURead(0xC000); off != 7*16384 {
		t.Errorf("fixed half with L set = %#x", off)
	}
}

func TestWaixing245PRGHighBit(t *testing.T) {
	m := newWaixing245(64, 0).(*waixing245)
	m.CPUWrite(0x8000, 0) // select R0
	m.CPUWrite(0x8001, 2) // R0 bit 1 -> PRG high bit
	if m.prgHighBit != 0x40 {
		t.Errorf("prgHighBit = %#x, want 0x40", m.prgHighBit)
	}
	m.CPUWrite(0x8000, 6)
	m.CPUWrite(0x8001, 1)
	if off, _ := m.CPURead(0x8000); off != (1|0x40)*8192 {
		t.Errorf("bank = %#x", off)
	}
}

func TestWaixing253CHRRAMWindow(t *testing.T) {
	m := newWaixing253(8, 1).(*waixing253)

	// chrLo[0] = 4 with vlock open selects the appended CHR RAM.
	m.CPUWrite(0xB000, 0x04)
	m.CPUWrite(0xB004, 0x00)
	off, ok := m.PPURead(0x0000)
	if !ok || off != 8192 {
		t.Errorf("RAM offset = %#x, want 8192 (after CHR ROM)", off)
	}
	if _, ok := m.PPUWrite(0x0000); !ok {
		t.Error("RAM region should be writable")
	}
	if m.CHRWritableMask()&1 == 0 {
		t.Error("writable mask should flag region 0")
	}

	// chrLo[0] = 0x88 locks the latch: back to CHR ROM.
	m.CPUWrite(0xB000, 0x08)
	m.CPUWrite(0xB004, 0x08)
	if m.chrLo[0] != 0x88 || !m.vlock {
		t.Fatalf("chrLo[0]=%#x vlock=%t", m.chrLo[0], m.vlock)
	}
	m.CPUWrite(0xB000, 0x04)
	m.CPUWrite(0xB004, 0x00)
	if off, _ := m.PPURead(0x0000); off >= 8192 {
		t.Errorf("locked region should read CHR ROM, got offset %#x", off)
	}

	// chrLo[0] = 0xC8 unlocks again.
	m.CPUWrite(0xB000, 0x08)
	m.CPUWrite(0xB004, 0x0C)
	if m.vlock {
		t.Error("0xC8 should unlock the latch")
	}
}

func TestWaixing253RegisterDecode(t *testing.T) {
	m := newWaixing253(8, 8).(*waixing253)
	// ind = ((((A & 8) | (A >> 8)) >> 3) + 2) & 7
	for _, tc := range []struct {
		addr uint16
		ind  int
	}{
		{0xB000, 0}, {0xB008, 1}, {0xC000, 2}, {0xC008, 3},
		{0xD000, 4}, {0xD008, 5}, {0xE000, 6}, {0xE008, 7},
	} {
		m.chrLo = [8]uint8{}
		m.CPUWrite(tc.addr, 0x03)
		if m.chrLo[tc.ind]&0x0F != 0x03 {
			t.Errorf("write %#x: chrLo[%d] = %#x", tc.addr, tc.ind, m.chrLo[tc.ind])
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	for num, desc := range All {
		m := desc.New(8, 8)

		// Poke some register traffic so the dump is non-trivial.
		m.CPUWrite(0x8001, 0x21)
		m.CPUWrite(0xC000, 0x13)
		m.CPUWrite(0x9000, 0x01)

		fresh := desc.New(8, 8)
		fresh.SetState(m.State())
		if diff := cmp.Diff(m.State(), fresh.State()); diff != "" {
			t.Errorf("mapper %d state round trip mismatch:\n%s", num, diff)
		}
	}
}
