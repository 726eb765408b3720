package apu

import "nescore/hw/snapshot"

// Save-state plumbing.

func (a *APU) State() snapshot.APU {
	return snapshot.APU{
		Pulse1:   a.Pulse1.state(),
		Pulse2:   a.Pulse2.state(),
		Triangle: a.Triangle.state(),
		Noise:    a.Noise.state(),
		DMC:      a.DMC.state(),

		FrameMode5:      a.frameMode5,
		FrameIRQInhibit: a.frameIRQInhibit,
		FrameIRQ:        a.frameIRQ,
		FrameValue:      a.frameValue,
		Cycle:           a.cycle,
		SampleCounter:   a.sampleCounter,
	}
}

func (a *APU) SetState(s *snapshot.APU) {
	a.Pulse1.setState(&s.Pulse1)
	a.Pulse2.setState(&s.Pulse2)
	a.Triangle.setState(&s.Triangle)
	a.Noise.setState(&s.Noise)
	a.DMC.setState(&s.DMC)

	a.frameMode5 = s.FrameMode5
	a.frameIRQInhibit = s.FrameIRQInhibit
	a.frameIRQ = s.FrameIRQ
	a.frameValue = s.FrameValue
	a.cycle = s.Cycle
	a.sampleCounter = s.SampleCounter
}

func (e *envelope) state() snapshot.Envelope {
	return snapshot.Envelope{
		Enabled: e.enabled, Loop: e.loop, Start: e.start,
		Period: e.period, Divider: e.divider, Decay: e.decay,
		ConstantVolume: e.constantVolume,
	}
}

func (e *envelope) setState(s *snapshot.Envelope) {
	e.enabled, e.loop, e.start = s.Enabled, s.Loop, s.Start
	e.period, e.divider, e.decay = s.Period, s.Divider, s.Decay
	e.constantVolume = s.ConstantVolume
}

func (p *Pulse) state() snapshot.Pulse {
	return snapshot.Pulse{
		Enabled: p.enabled,
		Duty:    p.duty, DutyPos: p.dutyPos,
		TimerPeriod: p.timerPeriod, TimerValue: p.timerValue,
		LengthHalt: p.lengthHalt, LengthCounter: p.lengthCounter,
		Envelope:     p.envelope.state(),
		SweepEnabled: p.sweepEnabled,
		SweepNegate:  p.sweepNegate,
		SweepReload:  p.sweepReload,
		SweepPeriod:  p.sweepPeriod,
		SweepShift:   p.sweepShift,
		SweepDivider: p.sweepDivider,
	}
}

func (p *Pulse) setState(s *snapshot.Pulse) {
	p.enabled = s.Enabled
	p.duty, p.dutyPos = s.Duty, s.DutyPos
	p.timerPeriod, p.timerValue = s.TimerPeriod, s.TimerValue
	p.lengthHalt, p.lengthCounter = s.LengthHalt, s.LengthCounter
	p.envelope.setState(&s.Envelope)
	p.sweepEnabled = s.SweepEnabled
	p.sweepNegate = s.SweepNegate
	p.sweepReload = s.SweepReload
	p.sweepPeriod = s.SweepPeriod
	p.sweepShift = s.SweepShift
	p.sweepDivider = s.SweepDivider
}

func (t *Triangle) state() snapshot.Triangle {
	return snapshot.Triangle{
		Enabled:     t.enabled,
		TimerPeriod: t.timerPeriod, TimerValue: t.timerValue,
		SeqPos:     t.seqPos,
		LengthHalt: t.lengthHalt, LengthCounter: t.lengthCounter,
		LinearCounter:       t.linearCounter,
		LinearReload:        t.linearReload,
		LinearReloadPending: t.linearReloadPending,
	}
}

func (t *Triangle) setState(s *snapshot.Triangle) {
	t.enabled = s.Enabled
	t.timerPeriod, t.timerValue = s.TimerPeriod, s.TimerValue
	t.seqPos = s.SeqPos
	t.lengthHalt, t.lengthCounter = s.LengthHalt, s.LengthCounter
	t.linearCounter = s.LinearCounter
	t.linearReload = s.LinearReload
	t.linearReloadPending = s.LinearReloadPending
}

func (n *Noise) state() snapshot.Noise {
	return snapshot.Noise{
		Enabled: n.enabled,
		Shift:   n.shift, Mode: n.mode,
		TimerPeriod: n.timerPeriod, TimerValue: n.timerValue,
		LengthHalt: n.lengthHalt, LengthCounter: n.lengthCounter,
		Envelope: n.envelope.state(),
	}
}

func (n *Noise) setState(s *snapshot.Noise) {
	n.enabled = s.Enabled
	n.shift, n.mode = s.Shift, s.Mode
	n.timerPeriod, n.timerValue = s.TimerPeriod, s.TimerValue
	n.lengthHalt, n.lengthCounter = s.LengthHalt, s.LengthCounter
	n.envelope.setState(&s.Envelope)
}

func (d *DMC) state() snapshot.DMC {
	return snapshot.DMC{
		Enabled:    d.enabled,
		IRQEnabled: d.irqEnabled,
		LoopFlag:   d.loopFlag,
		RateIndex:  d.rateIndex,

		TimerPeriod: d.timerPeriod, TimerValue: d.timerValue,
		OutputLevel: d.outputLevel,

		SampleAddress:  d.sampleAddress,
		SampleLength:   d.sampleLength,
		CurrentAddress: d.currentAddress,
		BytesRemaining: d.bytesRemaining,

		Shift:         d.shift,
		BitsRemaining: d.bitsRemaining,
		SampleBuffer:  d.sampleBuffer,
		BufferEmpty:   d.bufferEmpty,
		Silence:       d.silence,

		IRQFlag: d.irqFlag,
	}
}

func (d *DMC) setState(s *snapshot.DMC) {
	d.enabled = s.Enabled
	d.irqEnabled = s.IRQEnabled
	d.loopFlag = s.LoopFlag
	d.rateIndex = s.RateIndex

	d.timerPeriod, d.timerValue = s.TimerPeriod, s.TimerValue
	d.outputLevel = s.OutputLevel

	d.sampleAddress = s.SampleAddress
	d.sampleLength = s.SampleLength
	d.currentAddress = s.CurrentAddress
	d.bytesRemaining = s.BytesRemaining

	d.shift = s.Shift
	d.bitsRemaining = s.BitsRemaining
	d.sampleBuffer = s.SampleBuffer
	d.bufferEmpty = s.BufferEmpty
	d.silence = s.Silence

	d.irqFlag = s.IRQFlag
}
