package hw

import (
	"io"

	"nescore/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// CPU is the 2A03's MOS 6502 core. It is clocked once per CPU cycle:
// cycles remaining from the current instruction burn off one per Clock
// call, and a new instruction (or a pending interrupt) is started when the
// counter hits zero.
type CPU struct {
	Bus *Bus

	A, X, Y, SP uint8
	PC          uint16
	P           P

	// Cycles is the intra-instruction pacing counter, TotalCycles the
	// monotonic cycle count since reset.
	Cycles      uint32
	TotalCycles uint64

	nmiPending bool
	irqPending bool

	tracer *tracer
}

// NewCPU creates a CPU at power-up state. The bus is attached by the
// system once all devices exist.
func NewCPU() *CPU {
	return &CPU{
		SP: 0xFD,
		P:  flagU | flagI,
	}
}

// Reset loads PC from the reset vector and re-seeds the registers.
func (c *CPU) Reset() {
	lo := uint16(c.Bus.Read8(ResetVector))
	hi := uint16(c.Bus.Read8(ResetVector + 1))
	c.PC = hi<<8 | lo

	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = flagU | flagI

	// The CPU burns 8 cycles after a reset before executing ROM code.
	c.Cycles = 8
	c.TotalCycles = 0
	c.nmiPending = false
	c.irqPending = false

	log.ModCPU.InfoZ("reset").Hex16("PC", c.PC).End()
}

// TriggerNMI latches a non-maskable interrupt, serviced at the next
// instruction boundary.
func (c *CPU) TriggerNMI() { c.nmiPending = true }

// TriggerIRQ latches a maskable interrupt. While the I flag is set the
// latch is held; it is serviced at the first instruction boundary with I
// clear.
func (c *CPU) TriggerIRQ() { c.irqPending = true }

// Stall charges extra cycles to the current instruction (DMC fetches).
func (c *CPU) Stall(n uint32) { c.Cycles += n }

// Clock advances the CPU by one cycle.
func (c *CPU) Clock() {
	if c.Cycles == 0 {
		switch {
		case c.nmiPending:
			c.nmiPending = false
			c.interrupt(NMIVector)
			c.Cycles = 8
		case c.irqPending && !c.P.IntDisable():
			c.irqPending = false
			c.interrupt(IRQVector)
			c.Cycles = 7
		default:
			c.trace()
			opcode := c.read8(c.PC)
			c.PC++
			c.P.SetUnused(true)
			c.execute(opcode)
			c.P.SetUnused(true)
		}
	}
	if c.Cycles > 0 {
		c.Cycles--
	}
	c.TotalCycles++
}

// Step runs whole instructions until the next instruction boundary. Used
// by tests and the trace runner.
func (c *CPU) Step() {
	c.Clock()
	for c.Cycles > 0 {
		c.Clock()
	}
}

// interrupt pushes PC and P (B clear, U set) and vectors through vec.
func (c *CPU) interrupt(vec uint16) {
	c.push16(c.PC)
	p := c.P
	p.SetBreak(false)
	p.SetUnused(true)
	c.push8(uint8(p))
	c.P.SetIntDisable(true)

	lo := uint16(c.read8(vec))
	hi := uint16(c.read8(vec + 1))
	c.PC = hi<<8 | lo
}

/* bus access */

func (c *CPU) read8(addr uint16) uint8 { return c.Bus.Read8(addr) }

func (c *CPU) write8(addr uint16, val uint8) { c.Bus.Write8(addr, val) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read8(addr))
	hi := uint16(c.read8(addr + 1))
	return hi<<8 | lo
}

// read16bug reads a word with the 6502 page-wrap quirk: the high byte
// comes from the start of the same page when addr sits at $xxFF.
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := uint16(c.read8(addr))
	hiAddr := addr&0xFF00 | (addr+1)&0x00FF
	hi := uint16(c.read8(hiAddr))
	return hi<<8 | lo
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.write8(0x0100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.read8(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull8())
	hi := uint16(c.pull8())
	return hi<<8 | lo
}

/* tracing */

// SetTraceOutput enables instruction tracing to w, one line per executed
// instruction with the register columns of the nestest log.
func (c *CPU) SetTraceOutput(w io.Writer) {
	c.tracer = &tracer{w: w, cpu: c}
}

func (c *CPU) trace() {
	if c.tracer != nil {
		c.tracer.write()
	}
}
