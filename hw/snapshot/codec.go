package snapshot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// Encode serializes a state tree. Field order is fixed, so encoding the
// same machine state always yields the same bytes.
func Encode(s *NES) []byte {
	var e jx.Encoder

	e.ObjStart()
	field(&e, "version").Int(s.Version)
	field(&e, "clock").Int(int(s.Clock))

	field(&e, "cpu")
	encodeCPU(&e, &s.CPU)
	field(&e, "ram").Base64(s.RAM)
	field(&e, "dma")
	encodeDMA(&e, &s.DMA)
	field(&e, "ppu")
	encodePPU(&e, &s.PPU)
	field(&e, "apu")
	encodeAPU(&e, &s.APU)
	field(&e, "pad1")
	encodePad(&e, &s.Pad1)
	field(&e, "pad2")
	encodePad(&e, &s.Pad2)
	field(&e, "prgram").Base64(noNil(s.PRGRAM))
	field(&e, "chr").Base64(noNil(s.CHR))
	field(&e, "mapper").Base64(noNil(s.Mapper))
	e.ObjEnd()

	return e.Bytes()
}

// Decode parses a blob back into a state tree. It does not check the
// version; the caller rejects mismatches so it can report both values.
func Decode(data []byte) (*NES, error) {
	d := jx.DecodeBytes(data)
	s := new(NES)

	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "clock":
			var v int
			v, err = d.Int()
			s.Clock = uint64(v)
		case "cpu":
			err = decodeCPU(d, &s.CPU)
		case "ram":
			s.RAM, err = d.Base64()
		case "dma":
			err = decodeDMA(d, &s.DMA)
		case "ppu":
			err = decodePPU(d, &s.PPU)
		case "apu":
			err = decodeAPU(d, &s.APU)
		case "pad1":
			err = decodePad(d, &s.Pad1)
		case "pad2":
			err = decodePad(d, &s.Pad2)
		case "prgram":
			s.PRGRAM, err = d.Base64()
		case "chr":
			s.CHR, err = d.Base64()
		case "mapper":
			s.Mapper, err = d.Base64()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return s, nil
}

func field(e *jx.Encoder, name string) *jx.Encoder {
	e.FieldStart(name)
	return e
}

// noNil keeps empty blobs encoding as "" rather than null.
func noNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

/* CPU */

func encodeCPU(e *jx.Encoder, c *CPU) {
	e.ObjStart()
	field(e, "a").Int(int(c.A))
	field(e, "x").Int(int(c.X))
	field(e, "y").Int(int(c.Y))
	field(e, "sp").Int(int(c.SP))
	field(e, "pc").Int(int(c.PC))
	field(e, "p").Int(int(c.P))
	field(e, "cycles").Int(int(c.Cycles))
	field(e, "total").Int(int(c.TotalCycles))
	field(e, "nmi").Bool(c.NMIPending)
	field(e, "irq").Bool(c.IRQPending)
	e.ObjEnd()
}

func decodeCPU(d *jx.Decoder, c *CPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "a":
			return decU8(d, &c.A)
		case "x":
			return decU8(d, &c.X)
		case "y":
			return decU8(d, &c.Y)
		case "sp":
			return decU8(d, &c.SP)
		case "pc":
			return decU16(d, &c.PC)
		case "p":
			return decU8(d, &c.P)
		case "cycles":
			v, err := d.Int()
			c.Cycles = uint32(v)
			return err
		case "total":
			v, err := d.Int()
			c.TotalCycles = uint64(v)
			return err
		case "nmi":
			return decBool(d, &c.NMIPending)
		case "irq":
			return decBool(d, &c.IRQPending)
		}
		return d.Skip()
	})
}

/* DMA */

func encodeDMA(e *jx.Encoder, m *DMA) {
	e.ObjStart()
	field(e, "page").Int(int(m.Page))
	field(e, "addr").Int(int(m.Addr))
	field(e, "data").Int(int(m.Data))
	field(e, "transferring").Bool(m.Transferring)
	field(e, "dummy").Bool(m.Dummy)
	e.ObjEnd()
}

func decodeDMA(d *jx.Decoder, m *DMA) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "page":
			return decU8(d, &m.Page)
		case "addr":
			return decU8(d, &m.Addr)
		case "data":
			return decU8(d, &m.Data)
		case "transferring":
			return decBool(d, &m.Transferring)
		case "dummy":
			return decBool(d, &m.Dummy)
		}
		return d.Skip()
	})
}

/* PPU */

func encodePPU(e *jx.Encoder, p *PPU) {
	e.ObjStart()
	field(e, "ctrl").Int(int(p.Ctrl))
	field(e, "mask").Int(int(p.Mask))
	field(e, "status").Int(int(p.Status))
	field(e, "oamaddr").Int(int(p.OAMAddr))
	field(e, "v").Int(int(p.V))
	field(e, "t").Int(int(p.T))
	field(e, "finex").Int(int(p.FineX))
	field(e, "wlatch").Bool(p.WriteLatch)
	field(e, "databuf").Int(int(p.DataBuffer))
	field(e, "nametable").Base64(p.Nametable)
	field(e, "palette").Base64(p.Palette)
	field(e, "oam").Base64(p.OAM)
	field(e, "oam2").Base64(p.SecondaryOAM)
	field(e, "scanline").Int(p.Scanline)
	field(e, "cycle").Int(p.Cycle)
	field(e, "oddframe").Bool(p.OddFrame)
	field(e, "framecomplete").Bool(p.FrameComplete)
	field(e, "bgid").Int(int(p.BgTileID))
	field(e, "bgattr").Int(int(p.BgTileAttr))
	field(e, "bglo").Int(int(p.BgTileLo))
	field(e, "bghi").Int(int(p.BgTileHi))
	field(e, "shiftplo").Int(int(p.BgShiftPatternLo))
	field(e, "shiftphi").Int(int(p.BgShiftPatternHi))
	field(e, "shiftalo").Int(int(p.BgShiftAttrLo))
	field(e, "shiftahi").Int(int(p.BgShiftAttrHi))
	field(e, "sprcount").Int(int(p.SpriteCount))
	field(e, "sprlo").Base64(p.SpriteShiftLo)
	field(e, "sprhi").Base64(p.SpriteShiftHi)
	field(e, "sprzero").Bool(p.SpriteZeroLine)
	field(e, "nmi").Bool(p.NMIPending)
	field(e, "slirq").Bool(p.ScanlineIRQ)
	field(e, "mirroring").Int(int(p.Mirroring))
	e.ObjEnd()
}

func decodePPU(d *jx.Decoder, p *PPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "ctrl":
			return decU8(d, &p.Ctrl)
		case "mask":
			return decU8(d, &p.Mask)
		case "status":
			return decU8(d, &p.Status)
		case "oamaddr":
			return decU8(d, &p.OAMAddr)
		case "v":
			return decU16(d, &p.V)
		case "t":
			return decU16(d, &p.T)
		case "finex":
			return decU8(d, &p.FineX)
		case "wlatch":
			return decBool(d, &p.WriteLatch)
		case "databuf":
			return decU8(d, &p.DataBuffer)
		case "nametable":
			p.Nametable, err = d.Base64()
			return err
		case "palette":
			p.Palette, err = d.Base64()
			return err
		case "oam":
			p.OAM, err = d.Base64()
			return err
		case "oam2":
			p.SecondaryOAM, err = d.Base64()
			return err
		case "scanline":
			p.Scanline, err = d.Int()
			return err
		case "cycle":
			p.Cycle, err = d.Int()
			return err
		case "oddframe":
			return decBool(d, &p.OddFrame)
		case "framecomplete":
			return decBool(d, &p.FrameComplete)
		case "bgid":
			return decU8(d, &p.BgTileID)
		case "bgattr":
			return decU8(d, &p.BgTileAttr)
		case "bglo":
			return decU8(d, &p.BgTileLo)
		case "bghi":
			return decU8(d, &p.BgTileHi)
		case "shiftplo":
			return decU16(d, &p.BgShiftPatternLo)
		case "shiftphi":
			return decU16(d, &p.BgShiftPatternHi)
		case "shiftalo":
			return decU16(d, &p.BgShiftAttrLo)
		case "shiftahi":
			return decU16(d, &p.BgShiftAttrHi)
		case "sprcount":
			return decU8(d, &p.SpriteCount)
		case "sprlo":
			p.SpriteShiftLo, err = d.Base64()
			return err
		case "sprhi":
			p.SpriteShiftHi, err = d.Base64()
			return err
		case "sprzero":
			return decBool(d, &p.SpriteZeroLine)
		case "nmi":
			return decBool(d, &p.NMIPending)
		case "slirq":
			return decBool(d, &p.ScanlineIRQ)
		case "mirroring":
			return decU8(d, &p.Mirroring)
		}
		return d.Skip()
	})
}

/* APU */

func encodeAPU(e *jx.Encoder, a *APU) {
	e.ObjStart()
	field(e, "pulse1")
	encodePulse(e, &a.Pulse1)
	field(e, "pulse2")
	encodePulse(e, &a.Pulse2)
	field(e, "triangle")
	encodeTriangle(e, &a.Triangle)
	field(e, "noise")
	encodeNoise(e, &a.Noise)
	field(e, "dmc")
	encodeDMC(e, &a.DMC)
	field(e, "mode5").Bool(a.FrameMode5)
	field(e, "irqinhibit").Bool(a.FrameIRQInhibit)
	field(e, "frameirq").Bool(a.FrameIRQ)
	field(e, "framevalue").Int(int(a.FrameValue))
	field(e, "cycle").Int(int(a.Cycle))
	field(e, "samplecounter").Float64(a.SampleCounter)
	e.ObjEnd()
}

func decodeAPU(d *jx.Decoder, a *APU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "pulse1":
			return decodePulse(d, &a.Pulse1)
		case "pulse2":
			return decodePulse(d, &a.Pulse2)
		case "triangle":
			return decodeTriangle(d, &a.Triangle)
		case "noise":
			return decodeNoise(d, &a.Noise)
		case "dmc":
			return decodeDMC(d, &a.DMC)
		case "mode5":
			return decBool(d, &a.FrameMode5)
		case "irqinhibit":
			return decBool(d, &a.FrameIRQInhibit)
		case "frameirq":
			return decBool(d, &a.FrameIRQ)
		case "framevalue":
			v, err := d.Int()
			a.FrameValue = uint32(v)
			return err
		case "cycle":
			v, err := d.Int()
			a.Cycle = uint64(v)
			return err
		case "samplecounter":
			v, err := d.Float64()
			a.SampleCounter = v
			return err
		}
		return d.Skip()
	})
}

func encodeEnvelope(e *jx.Encoder, v *Envelope) {
	e.ObjStart()
	field(e, "enabled").Bool(v.Enabled)
	field(e, "loop").Bool(v.Loop)
	field(e, "start").Bool(v.Start)
	field(e, "period").Int(int(v.Period))
	field(e, "divider").Int(int(v.Divider))
	field(e, "decay").Int(int(v.Decay))
	field(e, "volume").Int(int(v.ConstantVolume))
	e.ObjEnd()
}

func decodeEnvelope(d *jx.Decoder, v *Envelope) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "enabled":
			return decBool(d, &v.Enabled)
		case "loop":
			return decBool(d, &v.Loop)
		case "start":
			return decBool(d, &v.Start)
		case "period":
			return decU8(d, &v.Period)
		case "divider":
			return decU8(d, &v.Divider)
		case "decay":
			return decU8(d, &v.Decay)
		case "volume":
			return decU8(d, &v.ConstantVolume)
		}
		return d.Skip()
	})
}

func encodePulse(e *jx.Encoder, p *Pulse) {
	e.ObjStart()
	field(e, "enabled").Bool(p.Enabled)
	field(e, "duty").Int(int(p.Duty))
	field(e, "dutypos").Int(int(p.DutyPos))
	field(e, "period").Int(int(p.TimerPeriod))
	field(e, "timer").Int(int(p.TimerValue))
	field(e, "halt").Bool(p.LengthHalt)
	field(e, "length").Int(int(p.LengthCounter))
	field(e, "envelope")
	encodeEnvelope(e, &p.Envelope)
	field(e, "swenabled").Bool(p.SweepEnabled)
	field(e, "swnegate").Bool(p.SweepNegate)
	field(e, "swreload").Bool(p.SweepReload)
	field(e, "swperiod").Int(int(p.SweepPeriod))
	field(e, "swshift").Int(int(p.SweepShift))
	field(e, "swdivider").Int(int(p.SweepDivider))
	e.ObjEnd()
}

func decodePulse(d *jx.Decoder, p *Pulse) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "enabled":
			return decBool(d, &p.Enabled)
		case "duty":
			return decU8(d, &p.Duty)
		case "dutypos":
			return decU8(d, &p.DutyPos)
		case "period":
			return decU16(d, &p.TimerPeriod)
		case "timer":
			return decU16(d, &p.TimerValue)
		case "halt":
			return decBool(d, &p.LengthHalt)
		case "length":
			return decU8(d, &p.LengthCounter)
		case "envelope":
			return decodeEnvelope(d, &p.Envelope)
		case "swenabled":
			return decBool(d, &p.SweepEnabled)
		case "swnegate":
			return decBool(d, &p.SweepNegate)
		case "swreload":
			return decBool(d, &p.SweepReload)
		case "swperiod":
			return decU8(d, &p.SweepPeriod)
		case "swshift":
			return decU8(d, &p.SweepShift)
		case "swdivider":
			return decU8(d, &p.SweepDivider)
		}
		return d.Skip()
	})
}

func encodeTriangle(e *jx.Encoder, t *Triangle) {
	e.ObjStart()
	field(e, "enabled").Bool(t.Enabled)
	field(e, "period").Int(int(t.TimerPeriod))
	field(e, "timer").Int(int(t.TimerValue))
	field(e, "seqpos").Int(int(t.SeqPos))
	field(e, "halt").Bool(t.LengthHalt)
	field(e, "length").Int(int(t.LengthCounter))
	field(e, "linear").Int(int(t.LinearCounter))
	field(e, "linreload").Int(int(t.LinearReload))
	field(e, "linpending").Bool(t.LinearReloadPending)
	e.ObjEnd()
}

func decodeTriangle(d *jx.Decoder, t *Triangle) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "enabled":
			return decBool(d, &t.Enabled)
		case "period":
			return decU16(d, &t.TimerPeriod)
		case "timer":
			return decU16(d, &t.TimerValue)
		case "seqpos":
			return decU8(d, &t.SeqPos)
		case "halt":
			return decBool(d, &t.LengthHalt)
		case "length":
			return decU8(d, &t.LengthCounter)
		case "linear":
			return decU8(d, &t.LinearCounter)
		case "linreload":
			return decU8(d, &t.LinearReload)
		case "linpending":
			return decBool(d, &t.LinearReloadPending)
		}
		return d.Skip()
	})
}

func encodeNoise(e *jx.Encoder, n *Noise) {
	e.ObjStart()
	field(e, "enabled").Bool(n.Enabled)
	field(e, "shift").Int(int(n.Shift))
	field(e, "mode").Bool(n.Mode)
	field(e, "period").Int(int(n.TimerPeriod))
	field(e, "timer").Int(int(n.TimerValue))
	field(e, "halt").Bool(n.LengthHalt)
	field(e, "length").Int(int(n.LengthCounter))
	field(e, "envelope")
	encodeEnvelope(e, &n.Envelope)
	e.ObjEnd()
}

func decodeNoise(d *jx.Decoder, n *Noise) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "enabled":
			return decBool(d, &n.Enabled)
		case "shift":
			return decU16(d, &n.Shift)
		case "mode":
			return decBool(d, &n.Mode)
		case "period":
			return decU16(d, &n.TimerPeriod)
		case "timer":
			return decU16(d, &n.TimerValue)
		case "halt":
			return decBool(d, &n.LengthHalt)
		case "length":
			return decU8(d, &n.LengthCounter)
		case "envelope":
			return decodeEnvelope(d, &n.Envelope)
		}
		return d.Skip()
	})
}

func encodeDMC(e *jx.Encoder, m *DMC) {
	e.ObjStart()
	field(e, "enabled").Bool(m.Enabled)
	field(e, "irqenabled").Bool(m.IRQEnabled)
	field(e, "loop").Bool(m.LoopFlag)
	field(e, "rate").Int(int(m.RateIndex))
	field(e, "period").Int(int(m.TimerPeriod))
	field(e, "timer").Int(int(m.TimerValue))
	field(e, "level").Int(int(m.OutputLevel))
	field(e, "sampleaddr").Int(int(m.SampleAddress))
	field(e, "samplelen").Int(int(m.SampleLength))
	field(e, "addr").Int(int(m.CurrentAddress))
	field(e, "remaining").Int(int(m.BytesRemaining))
	field(e, "shift").Int(int(m.Shift))
	field(e, "bits").Int(int(m.BitsRemaining))
	field(e, "buffer").Int(int(m.SampleBuffer))
	field(e, "bufferempty").Bool(m.BufferEmpty)
	field(e, "silence").Bool(m.Silence)
	field(e, "irq").Bool(m.IRQFlag)
	e.ObjEnd()
}

func decodeDMC(d *jx.Decoder, m *DMC) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "enabled":
			return decBool(d, &m.Enabled)
		case "irqenabled":
			return decBool(d, &m.IRQEnabled)
		case "loop":
			return decBool(d, &m.LoopFlag)
		case "rate":
			return decU8(d, &m.RateIndex)
		case "period":
			return decU16(d, &m.TimerPeriod)
		case "timer":
			return decU16(d, &m.TimerValue)
		case "level":
			return decU8(d, &m.OutputLevel)
		case "sampleaddr":
			return decU16(d, &m.SampleAddress)
		case "samplelen":
			return decU16(d, &m.SampleLength)
		case "addr":
			return decU16(d, &m.CurrentAddress)
		case "remaining":
			return decU16(d, &m.BytesRemaining)
		case "shift":
			return decU8(d, &m.Shift)
		case "bits":
			return decU8(d, &m.BitsRemaining)
		case "buffer":
			return decU8(d, &m.SampleBuffer)
		case "bufferempty":
			return decBool(d, &m.BufferEmpty)
		case "silence":
			return decBool(d, &m.Silence)
		case "irq":
			return decBool(d, &m.IRQFlag)
		}
		return d.Skip()
	})
}

/* pads */

func encodePad(e *jx.Encoder, p *Pad) {
	e.ObjStart()
	field(e, "buttons").Int(int(p.Buttons))
	field(e, "shift").Int(int(p.Shift))
	field(e, "strobe").Bool(p.Strobe)
	e.ObjEnd()
}

func decodePad(d *jx.Decoder, p *Pad) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "buttons":
			return decU8(d, &p.Buttons)
		case "shift":
			return decU8(d, &p.Shift)
		case "strobe":
			return decBool(d, &p.Strobe)
		}
		return d.Skip()
	})
}

/* decode helpers */

func decU8(d *jx.Decoder, out *uint8) error {
	v, err := d.Int()
	*out = uint8(v)
	return err
}

func decU16(d *jx.Decoder, out *uint16) error {
	v, err := d.Int()
	*out = uint16(v)
	return err
}

func decBool(d *jx.Decoder, out *bool) error {
	v, err := d.Bool()
	*out = v
	return err
}
