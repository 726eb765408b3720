package apu

// The frame counter divides the CPU clock into quarter and half frame
// ticks. In 4-step mode the last step raises the frame IRQ unless
// inhibited; 5-step mode stretches the sequence and never interrupts.
//
// Step positions are in CPU cycles from the start of the sequence (the
// hardware counts half-cycles, so data sheets show these doubled).

func (a *APU) writeFrameCounter(val uint8) {
	a.frameMode5 = val&0x80 != 0
	a.frameIRQInhibit = val&0x40 != 0
	if a.frameIRQInhibit {
		a.frameIRQ = false
	}
	a.frameValue = 0

	// 5-step mode clocks both units immediately.
	if a.frameMode5 {
		a.clockHalfFrame()
		a.clockQuarterFrame()
	}
}

func (a *APU) clockFrameCounter() {
	a.frameValue++

	if !a.frameMode5 {
		switch a.frameValue {
		case 3729:
			a.clockQuarterFrame()
		case 7457:
			a.clockQuarterFrame()
			a.clockHalfFrame()
		case 11186:
			a.clockQuarterFrame()
		case 14915:
			a.clockQuarterFrame()
			a.clockHalfFrame()
			if !a.frameIRQInhibit {
				a.frameIRQ = true
			}
			a.frameValue = 0
		}
		return
	}

	switch a.frameValue {
	case 3729:
		a.clockQuarterFrame()
	case 7457:
		a.clockQuarterFrame()
		a.clockHalfFrame()
	case 11186:
		a.clockQuarterFrame()
	case 18641:
		a.clockQuarterFrame()
		a.clockHalfFrame()
		a.frameValue = 0
	}
}

// Quarter frame: envelopes and the triangle's linear counter.
func (a *APU) clockQuarterFrame() {
	a.Pulse1.envelope.clock()
	a.Pulse2.envelope.clock()
	a.Triangle.clockLinearCounter()
	a.Noise.envelope.clock()
}

// Half frame: length counters and sweep units.
func (a *APU) clockHalfFrame() {
	a.Pulse1.clockLength()
	a.Pulse1.clockSweep()
	a.Pulse2.clockLength()
	a.Pulse2.clockSweep()
	a.Triangle.clockLength()
	a.Noise.clockLength()
}
