package hw

import (
	"testing"

	"nescore/hw/apu"
	"nescore/ines"
)

// testROM builds a minimal NROM image: one 16KB PRG bank with the given
// bytes patched in at their CPU addresses, CHR RAM, reset vector $8000,
// NMI vector $8100.
func testROM(t *testing.T, patch map[uint16]uint8) []byte {
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

// testSystem wires a CPU/PPU/APU/bus around a test rom.
func testSystem(t *testing.T, patch map[uint16]uint8) (*CPU, *Bus) {
	t.Helper()

	rom, err := ines.Decode(testROM(t, patch))
	if err != nil {
		t.Fatal(err)
	}
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}

	ppu := NewPPU(cart)
	cpu := NewCPU()
	bus := NewBus(ppu, apu.New(), cart, &Controller{}, &Controller{})
	cpu.Bus = bus
	return cpu, bus
}

// prime points the CPU at code placed in RAM, past the reset sequence.
func prime(cpu *CPU, bus *Bus, addr uint16, code ...uint8) {
	for i, b := range code {
		bus.RAM[addr+uint16(i)] = b
	}
	cpu.PC = addr
	cpu.Cycles = 0
}
