package apu

// mix folds the five channel DAC levels through the console's non-linear
// mixing network (the nesdev approximation formulas).
func mix(p1, p2, t, n, d uint8) float32 {
	pulseSum := float64(p1) + float64(p2)
	var pulseOut float64
	if pulseSum > 0 {
		pulseOut = 95.88 / (8128.0/pulseSum + 100.0)
	}

	tndSum := float64(t)/8227.0 + float64(n)/12241.0 + float64(d)/22638.0
	var tndOut float64
	if tndSum > 0 {
		tndOut = 159.79 / (1.0/tndSum + 100.0)
	}

	return float32(pulseOut + tndOut)
}

// mixer post-processes the raw mix: a one-pole low-pass against aliasing,
// a one-pole high-pass removing the DC offset, then gain and a soft knee
// before the hard clip.
type mixer struct {
	lowpass float32
	hpPrev  float32
	hpOut   float32
}

const (
	lowpassCoeff  = 0.9
	highpassCoeff = 0.996
)

func (m *mixer) process(sample float32) float32 {
	m.lowpass = m.lowpass*lowpassCoeff + sample*(1.0-lowpassCoeff)
	sample = m.lowpass

	m.hpOut = highpassCoeff*m.hpOut + sample - m.hpPrev
	m.hpPrev = sample
	sample = m.hpOut

	sample *= 1.5
	if sample > 0.95 {
		sample = 0.95 + (sample-0.95)*0.2
	} else if sample < -0.95 {
		sample = -0.95 + (sample+0.95)*0.2
	}

	return min(max(sample, -1), 1)
}
