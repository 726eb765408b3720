// Package emu ties the hardware together into a runnable NES and exposes
// the host-facing API: load a rom, run frames, read pixels and samples,
// push buttons, save and restore state.
package emu

import (
	"fmt"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/apu"
	"nescore/ines"
)

// NES owns every sub-component. It is single threaded: all components
// advance in lock step inside RunFrame.
type NES struct {
	CPU  *hw.CPU
	PPU  *hw.PPU
	APU  *apu.APU
	Bus  *hw.Bus
	Cart *hw.Cartridge
	Pads [2]*hw.Controller

	// systemClock counts master (PPU) cycles. The CPU and APU run on
	// every third one.
	systemClock uint64
}

// New constructs a system with no cartridge. LoadROM must succeed before
// RunFrame is legal.
func New() *NES {
	nes := &NES{
		CPU:  hw.NewCPU(),
		APU:  apu.New(),
		Pads: [2]*hw.Controller{{}, {}},
	}
	return nes
}

// LoadROM parses an iNES image, replaces the cartridge and resets.
func (nes *NES) LoadROM(data []byte) error {
	rom, err := ines.Decode(data)
	if err != nil {
		return err
	}
	cart, err := hw.NewCartridge(rom)
	if err != nil {
		return err
	}

	nes.Cart = cart
	nes.PPU = hw.NewPPU(cart)
	nes.Bus = hw.NewBus(nes.PPU, nes.APU, cart, nes.Pads[0], nes.Pads[1])
	nes.CPU.Bus = nes.Bus

	// The DMC fetches sample bytes through the CPU bus and charges the
	// fetch stall to the CPU.
	nes.APU.ReadMem = nes.Bus.Read8
	nes.APU.StallCPU = nes.CPU.Stall

	nes.Reset()
	return nil
}

// Reset cold-resets every component and re-reads the reset vector.
func (nes *NES) Reset() {
	nes.Cart.Reset()
	nes.Bus.Reset()
	nes.PPU.Reset()
	nes.PPU.SetMirroring(nes.Cart.Mirroring)
	nes.APU.Reset()
	nes.CPU.Reset()
	nes.systemClock = 0
	log.ModEmu.InfoZ("system reset").End()
}

// RunFrame advances the master clock until the PPU completes the frame.
// It is total: once a rom is loaded it cannot fail.
func (nes *NES) RunFrame() {
	nes.PPU.FrameComplete = false
	for !nes.PPU.FrameComplete {
		nes.clock()
	}
}

// clock advances one master cycle: the PPU ticks every time, the CPU,
// APU and mapper every third tick, interrupts are polled after.
func (nes *NES) clock() {
	nes.PPU.Clock()

	if nes.systemClock%3 == 0 {
		if nes.Bus.DMA.Transferring {
			// The CPU is halted; only the DMA engine touches the bus.
			odd := nes.systemClock%2 == 1
			nes.Bus.DMA.Clock(nes.Bus, odd)
		} else {
			nes.CPU.Clock()
		}

		nes.APU.Clock()
		if nes.APU.IRQPending() {
			nes.CPU.TriggerIRQ()
		}

		nes.Cart.Mapper.CPUClock()
	}

	if nes.PPU.DrainNMI() {
		nes.CPU.TriggerNMI()
	}

	if nes.PPU.DrainScanlineIRQ() {
		nes.Cart.Mapper.Scanline()
	}

	if nes.Cart.Mapper.PendingIRQ() {
		nes.CPU.TriggerIRQ()
	}

	nes.systemClock++
}

// FrameBuffer exposes the 256x240 ARGB pixels of the last completed
// frame. The slice only changes inside RunFrame.
func (nes *NES) FrameBuffer() []uint32 {
	return nes.PPU.FrameBuffer[:]
}

// ReadAudio drains up to len(out) resampled audio samples.
func (nes *NES) ReadAudio(out []float32) int {
	return nes.APU.ReadAudio(out)
}

// SetAudioSampleRate reconfigures the resampler for the host rate.
func (nes *NES) SetAudioSampleRate(rate float64) {
	nes.APU.SetSampleRate(rate)
}

// Controller returns the pad plugged into port 1 or 2.
func (nes *NES) Controller(port int) *hw.Controller {
	if port != 1 && port != 2 {
		panic(fmt.Sprintf("controller port out of range: %d", port))
	}
	return nes.Pads[port-1]
}

// Loaded reports whether a cartridge is inserted.
func (nes *NES) Loaded() bool { return nes.Cart != nil }
