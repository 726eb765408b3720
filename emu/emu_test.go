package emu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/hw/snapshot"
	"nescore/ines"
)

func TestNMIOncePerFrame(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())

	for frame := 1; frame <= 5; frame++ {
		nes.RunFrame()
		if got := nes.Bus.RAM[0xF0]; int(got) != frame {
			t.Fatalf("after frame %d: NMI count = %d", frame, got)
		}
	}
}

func TestNoNMIWhenDisabled(t *testing.T) {
	// Same handler, but $2000 is never written: no NMI may fire.
	prog := nmiCounterProgram()
	prog[0x8001] = 0x00 // LDA #$00
	nes := loadSystem(t, prog)

	nes.RunFrame()
	nes.RunFrame()
	if got := nes.Bus.RAM[0xF0]; got != 0 {
		t.Errorf("NMI count = %d, want 0", got)
	}
}

func TestFrameDeterministic(t *testing.T) {
	// With rendering disabled and no input, consecutive frames render the
	// same backdrop-only picture.
	nes := loadSystem(t, nmiCounterProgram())

	nes.RunFrame()
	first := append([]uint32(nil), nes.FrameBuffer()...)
	nes.RunFrame()
	second := nes.FrameBuffer()

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d differs between static frames", i)
		}
	}
}

func TestOAMDMA(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())

	for i := 0; i < 256; i++ {
		nes.Bus.RAM[0x0200+i] = uint8(i ^ 0xA5)
	}
	nes.Bus.Write8(0x4014, 0x02)

	// Count CPU slots while the DMA engine holds the bus.
	slots := 0
	for nes.Bus.DMA.Transferring {
		if nes.systemClock%3 == 0 {
			slots++
		}
		nes.clock()
		if slots > 1000 {
			t.Fatal("DMA did not terminate")
		}
	}

	if slots < 513 || slots > 514 {
		t.Errorf("DMA took %d CPU cycles, want 513 or 514", slots)
	}
	for i := 0; i < 256; i++ {
		if nes.PPU.OAM[i] != uint8(i^0xA5) {
			t.Fatalf("OAM[%d] = %#x, want %#x", i, nes.PPU.OAM[i], uint8(i^0xA5))
		}
	}
}

func TestControllerRouting(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())

	pad := nes.Controller(1)
	pad.SetButton(0, true) // A
	pad.SetButton(3, true) // Start

	nes.Bus.Write8(0x4016, 1)
	nes.Bus.Write8(0x4016, 0)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		if got := nes.Bus.Read8(0x4016) & 1; got != w {
			t.Errorf("serial read %d = %d, want %d", i, got, w)
		}
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())
	nes.RunFrame()
	nes.RunFrame()

	blob1, err := nes.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	if err := nes.LoadState(blob1); err != nil {
		t.Fatal(err)
	}
	blob2, err := nes.SaveState()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(blob1, blob2) {
		s1, _ := snapshot.Decode(blob1)
		s2, _ := snapshot.Decode(blob2)
		t.Fatalf("save/load/save blobs differ:\n%s", cmp.Diff(s1, s2))
	}
}

func TestSaveStateResumesDeterministically(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())
	nes.RunFrame()
	blob, err := nes.SaveState()
	if err != nil {
		t.Fatal(err)
	}

	other := loadSystem(t, nmiCounterProgram())
	if err := other.LoadState(blob); err != nil {
		t.Fatal(err)
	}

	nes.RunFrame()
	other.RunFrame()

	if nes.Bus.RAM[0xF0] != other.Bus.RAM[0xF0] {
		t.Errorf("NMI counters diverged: %d vs %d",
			nes.Bus.RAM[0xF0], other.Bus.RAM[0xF0])
	}
	a, b := nes.FrameBuffer(), other.FrameBuffer()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d diverged after state restore", i)
		}
	}
}

func TestLoadStateVersionMismatch(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())

	blob := snapshot.Encode(&snapshot.NES{Version: snapshot.Version + 1})
	var verr StateVersionError
	if err := nes.LoadState(blob); !errors.As(err, &verr) {
		t.Fatalf("got err %v, want StateVersionError", err)
	}
	if verr.Found != snapshot.Version+1 || verr.Want != snapshot.Version {
		t.Errorf("version error = %+v", verr)
	}
}

func TestLoadStateCorrupt(t *testing.T) {
	nes := loadSystem(t, nmiCounterProgram())
	if err := nes.LoadState([]byte("not a state blob")); !errors.Is(err, ErrStateCorrupt) {
		t.Errorf("got err %v, want ErrStateCorrupt", err)
	}
}

func TestLoadROMErrors(t *testing.T) {
	nes := New()

	if err := nes.LoadROM([]byte("garbage")); !errors.Is(err, ines.ErrInvalidMagic) {
		t.Errorf("got err %v, want ErrInvalidMagic", err)
	}

	img := buildROM(t, nil)
	img[6] = 5 << 4 // mapper 5 is not supported
	var merr ines.UnsupportedMapperError
	if err := nes.LoadROM(img); !errors.As(err, &merr) {
		t.Fatalf("got err %v, want UnsupportedMapperError", err)
	}
	if merr.Mapper != 5 {
		t.Errorf("mapper = %d, want 5", merr.Mapper)
	}
}

func TestSaveStateNeedsCartridge(t *testing.T) {
	nes := New()
	if _, err := nes.SaveState(); !errors.Is(err, ErrNoCartridge) {
		t.Errorf("got err %v, want ErrNoCartridge", err)
	}
}
