// Package apu implements the 2A03 audio unit: two pulse channels, a
// triangle, a noise channel and the DMC, sequenced by the frame counter
// and mixed through the console's non-linear DAC curve.
package apu

import (
	"nescore/emu/log"
)

// NTSC CPU clock rate, which is also the APU input clock.
const cpuClockRate = 1789773.0

// lengthTable is indexed by the 5-bit length load value.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// APU is clocked once per CPU cycle. The pulse, noise and DMC timers run
// at half that rate; the triangle timer at full rate.
type APU struct {
	Pulse1   Pulse
	Pulse2   Pulse
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	// Frame counter.
	frameMode5      bool
	frameIRQInhibit bool
	frameIRQ        bool
	frameValue      uint32

	cycle uint64

	// Resampler: one output sample every sampleInterval CPU cycles.
	sampleRate     float64
	sampleCounter  float64
	sampleInterval float64

	ring Ring

	mixer mixer

	// ReadMem is the bus-read capability the DMC borrows for sample
	// fetches. StallCPU charges the fetch stall to the CPU.
	ReadMem  func(addr uint16) uint8
	StallCPU func(cycles uint32)
}

func New() *APU {
	a := &APU{}
	a.Pulse1.channel = 1
	a.Pulse2.channel = 2
	a.Noise.shift = 1
	a.DMC.apu = a
	a.DMC.timerPeriod = dmcRateTable[0]
	a.DMC.bitsRemaining = 8
	a.DMC.sampleAddress = 0xC000
	a.DMC.sampleLength = 1
	a.DMC.currentAddress = 0xC000
	a.DMC.bufferEmpty = true
	a.DMC.silence = true
	a.SetSampleRate(44100)
	return a
}

func (a *APU) Reset() {
	readMem, stall := a.ReadMem, a.StallCPU
	rate := a.sampleRate
	*a = *New()
	a.DMC.apu = a
	a.ReadMem = readMem
	a.StallCPU = stall
	a.SetSampleRate(rate)
}

// SetSampleRate recomputes the CPU-cycles-per-sample interval.
func (a *APU) SetSampleRate(rate float64) {
	a.sampleRate = rate
	a.sampleInterval = cpuClockRate / rate
}

// SampleRate returns the configured host rate.
func (a *APU) SampleRate() float64 { return a.sampleRate }

// ReadAudio drains up to len(out) samples from the ring buffer. See Ring
// for the under-run behavior.
func (a *APU) ReadAudio(out []float32) int { return a.ring.Read(out) }

/* registers */

// CPUWrite services a CPU write to $4000-$4017.
func (a *APU) CPUWrite(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.Pulse1.writeCtrl(val)
	case 0x4001:
		a.Pulse1.writeSweep(val)
	case 0x4002:
		a.Pulse1.writeTimerLo(val)
	case 0x4003:
		a.Pulse1.writeLength(val)
	case 0x4004:
		a.Pulse2.writeCtrl(val)
	case 0x4005:
		a.Pulse2.writeSweep(val)
	case 0x4006:
		a.Pulse2.writeTimerLo(val)
	case 0x4007:
		a.Pulse2.writeLength(val)
	case 0x4008:
		a.Triangle.writeCtrl(val)
	case 0x400A:
		a.Triangle.writeTimerLo(val)
	case 0x400B:
		a.Triangle.writeLength(val)
	case 0x400C:
		a.Noise.writeCtrl(val)
	case 0x400E:
		a.Noise.writeMode(val)
	case 0x400F:
		a.Noise.writeLength(val)
	case 0x4010:
		a.DMC.writeCtrl(val)
	case 0x4011:
		a.DMC.writeDirectLoad(val)
	case 0x4012:
		a.DMC.writeSampleAddr(val)
	case 0x4013:
		a.DMC.writeSampleLength(val)
	case 0x4015:
		a.writeStatus(val)
	case 0x4017:
		a.writeFrameCounter(val)
	}
}

func (a *APU) writeStatus(val uint8) {
	log.ModSound.DebugZ("write status").Hex8("val", val).End()

	a.Pulse1.enabled = val&0x01 != 0
	a.Pulse2.enabled = val&0x02 != 0
	a.Triangle.enabled = val&0x04 != 0
	a.Noise.enabled = val&0x08 != 0
	a.DMC.enabled = val&0x10 != 0

	// Disabling a channel zeroes its length counter.
	if !a.Pulse1.enabled {
		a.Pulse1.lengthCounter = 0
	}
	if !a.Pulse2.enabled {
		a.Pulse2.lengthCounter = 0
	}
	if !a.Triangle.enabled {
		a.Triangle.lengthCounter = 0
	}
	if !a.Noise.enabled {
		a.Noise.lengthCounter = 0
	}

	if a.DMC.enabled {
		if a.DMC.bytesRemaining == 0 {
			a.DMC.restart()
		}
	} else {
		a.DMC.bytesRemaining = 0
	}
	a.DMC.irqFlag = false
}

// ReadStatus services a CPU read of $4015 and clears the frame IRQ flag.
func (a *APU) ReadStatus() uint8 {
	var status uint8
	if a.Pulse1.lengthCounter > 0 {
		status |= 0x01
	}
	if a.Pulse2.lengthCounter > 0 {
		status |= 0x02
	}
	if a.Triangle.lengthCounter > 0 {
		status |= 0x04
	}
	if a.Noise.lengthCounter > 0 {
		status |= 0x08
	}
	if a.DMC.bytesRemaining > 0 {
		status |= 0x10
	}
	if a.frameIRQ {
		status |= 0x40
	}
	if a.DMC.irqFlag {
		status |= 0x80
	}
	a.frameIRQ = false
	return status
}

// IRQPending reports the level of the APU's IRQ line (frame counter and
// DMC sources).
func (a *APU) IRQPending() bool { return a.frameIRQ || a.DMC.irqFlag }

/* clocking */

// Clock advances the APU by one CPU cycle.
func (a *APU) Clock() {
	a.Triangle.clockTimer()

	if a.cycle%2 == 0 {
		a.Pulse1.clockTimer()
		a.Pulse2.clockTimer()
		a.Noise.clockTimer()
		a.DMC.clockTimer()
	}

	a.clockFrameCounter()

	a.sampleCounter++
	if a.sampleCounter >= a.sampleInterval {
		a.sampleCounter -= a.sampleInterval
		a.outputSample()
	}

	a.cycle++
}

func (a *APU) outputSample() {
	sample := a.mixer.process(mix(
		a.Pulse1.output(),
		a.Pulse2.output(),
		a.Triangle.output(),
		a.Noise.output(),
		a.DMC.output(),
	))
	a.ring.Write(sample)
}
