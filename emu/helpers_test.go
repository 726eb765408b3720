package emu

import "testing"

// buildROM assembles a minimal NROM image: one 16KB PRG bank with bytes
// patched in at their CPU addresses. Reset vector $8000, NMI vector
// $8100, CHR RAM.
func buildROM(t *testing.T, patch map[uint16]uint8) []byte {
	t.Helper()

	prg := make([]byte, 16384)
	prg[0x3FFA] = 0x00 // NMI -> $8100
	prg[0x3FFB] = 0x81
	prg[0x3FFC] = 0x00 // RESET -> $8000
	prg[0x3FFD] = 0x80
	prg[0x3FFE] = 0x00 // IRQ/BRK -> $8000
	prg[0x3FFF] = 0x80
	for addr, val := range patch {
		if addr < 0x8000 {
			t.Fatalf("patch address %#x outside PRG", addr)
		}
		prg[addr-0x8000] = val
	}

	img := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	return append(img, prg...)
}

// nmiCounterProgram enables NMI and loops forever; the NMI handler counts
// frames into $F0.
func nmiCounterProgram() map[uint16]uint8 {
	return map[uint16]uint8{
		0x8000: 0xA9, 0x8001: 0x80, // LDA #$80
		0x8002: 0x8D, 0x8003: 0x00, 0x8004: 0x20, // STA $2000
		0x8005: 0x4C, 0x8006: 0x05, 0x8007: 0x80, // JMP $8005

		0x8100: 0xE6, 0x8101: 0xF0, // INC $F0
		0x8102: 0x40, // RTI
	}
}

func loadSystem(t *testing.T, patch map[uint16]uint8) *NES {
	t.Helper()
	nes := New()
	if err := nes.LoadROM(buildROM(t, patch)); err != nil {
		t.Fatal(err)
	}
	return nes
}
