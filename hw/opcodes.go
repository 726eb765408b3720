package hw

// Instruction decode and execution. The cycle counts assigned here are the
// documented base counts; addressing helpers that can cross a page return
// the extra cycle for the read-type opcodes that pay it. Opcodes outside
// the implemented set execute as 2-cycle NOPs.

func (c *CPU) execute(opcode uint8) {
	switch opcode {
	// ADC
	case 0x69:
		c.adc(c.imm())
		c.Cycles = 2
	case 0x65:
		c.adc(c.zpR())
		c.Cycles = 3
	case 0x75:
		c.adc(c.zpxR())
		c.Cycles = 4
	case 0x6D:
		v, _ := c.absR()
		c.adc(v)
		c.Cycles = 4
	case 0x7D:
		v, e := c.abxR()
		c.adc(v)
		c.Cycles = 4 + e
	case 0x79:
		v, e := c.abyR()
		c.adc(v)
		c.Cycles = 4 + e
	case 0x61:
		c.adc(c.izxR())
		c.Cycles = 6
	case 0x71:
		v, e := c.izyR()
		c.adc(v)
		c.Cycles = 5 + e

	// AND
	case 0x29:
		c.and(c.imm())
		c.Cycles = 2
	case 0x25:
		c.and(c.zpR())
		c.Cycles = 3
	case 0x35:
		c.and(c.zpxR())
		c.Cycles = 4
	case 0x2D:
		v, _ := c.absR()
		c.and(v)
		c.Cycles = 4
	case 0x3D:
		v, e := c.abxR()
		c.and(v)
		c.Cycles = 4 + e
	case 0x39:
		v, e := c.abyR()
		c.and(v)
		c.Cycles = 4 + e
	case 0x21:
		c.and(c.izxR())
		c.Cycles = 6
	case 0x31:
		v, e := c.izyR()
		c.and(v)
		c.Cycles = 5 + e

	// ASL
	case 0x0A:
		c.P.SetCarry(c.A&0x80 != 0)
		c.A <<= 1
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0x06:
		c.aslM(c.zp())
		c.Cycles = 5
	case 0x16:
		c.aslM(c.zpx())
		c.Cycles = 6
	case 0x0E:
		c.aslM(c.abs())
		c.Cycles = 6
	case 0x1E:
		c.aslM(c.abxW())
		c.Cycles = 7

	// branches
	case 0x90:
		c.Cycles = 2
		c.branch(!c.P.Carry())
	case 0xB0:
		c.Cycles = 2
		c.branch(c.P.Carry())
	case 0xF0:
		c.Cycles = 2
		c.branch(c.P.Zero())
	case 0xD0:
		c.Cycles = 2
		c.branch(!c.P.Zero())
	case 0x30:
		c.Cycles = 2
		c.branch(c.P.Negative())
	case 0x10:
		c.Cycles = 2
		c.branch(!c.P.Negative())
	case 0x70:
		c.Cycles = 2
		c.branch(c.P.Overflow())
	case 0x50:
		c.Cycles = 2
		c.branch(!c.P.Overflow())

	// BIT
	case 0x24:
		c.bit(c.zpR())
		c.Cycles = 3
	case 0x2C:
		v, _ := c.absR()
		c.bit(v)
		c.Cycles = 4

	// BRK
	case 0x00:
		c.PC++
		c.push16(c.PC)
		c.push8(uint8(c.P | flagB | flagU))
		c.P.SetIntDisable(true)
		c.PC = c.read16(IRQVector)
		c.Cycles = 7

	// flags
	case 0x18:
		c.P.SetCarry(false)
		c.Cycles = 2
	case 0x38:
		c.P.SetCarry(true)
		c.Cycles = 2
	case 0x58:
		c.P.SetIntDisable(false)
		c.Cycles = 2
	case 0x78:
		c.P.SetIntDisable(true)
		c.Cycles = 2
	case 0xD8:
		c.P.SetDecimal(false)
		c.Cycles = 2
	case 0xF8:
		c.P.SetDecimal(true)
		c.Cycles = 2
	case 0xB8:
		c.P.SetOverflow(false)
		c.Cycles = 2

	// CMP
	case 0xC9:
		c.compare(c.A, c.imm())
		c.Cycles = 2
	case 0xC5:
		c.compare(c.A, c.zpR())
		c.Cycles = 3
	case 0xD5:
		c.compare(c.A, c.zpxR())
		c.Cycles = 4
	case 0xCD:
		v, _ := c.absR()
		c.compare(c.A, v)
		c.Cycles = 4
	case 0xDD:
		v, e := c.abxR()
		c.compare(c.A, v)
		c.Cycles = 4 + e
	case 0xD9:
		v, e := c.abyR()
		c.compare(c.A, v)
		c.Cycles = 4 + e
	case 0xC1:
		c.compare(c.A, c.izxR())
		c.Cycles = 6
	case 0xD1:
		v, e := c.izyR()
		c.compare(c.A, v)
		c.Cycles = 5 + e

	// CPX
	case 0xE0:
		c.compare(c.X, c.imm())
		c.Cycles = 2
	case 0xE4:
		c.compare(c.X, c.zpR())
		c.Cycles = 3
	case 0xEC:
		v, _ := c.absR()
		c.compare(c.X, v)
		c.Cycles = 4

	// CPY
	case 0xC0:
		c.compare(c.Y, c.imm())
		c.Cycles = 2
	case 0xC4:
		c.compare(c.Y, c.zpR())
		c.Cycles = 3
	case 0xCC:
		v, _ := c.absR()
		c.compare(c.Y, v)
		c.Cycles = 4

	// DEC
	case 0xC6:
		c.decM(c.zp())
		c.Cycles = 5
	case 0xD6:
		c.decM(c.zpx())
		c.Cycles = 6
	case 0xCE:
		c.decM(c.abs())
		c.Cycles = 6
	case 0xDE:
		c.decM(c.abxW())
		c.Cycles = 7
	case 0xCA:
		c.X--
		c.P.checkZN(c.X)
		c.Cycles = 2
	case 0x88:
		c.Y--
		c.P.checkZN(c.Y)
		c.Cycles = 2

	// EOR
	case 0x49:
		c.eor(c.imm())
		c.Cycles = 2
	case 0x45:
		c.eor(c.zpR())
		c.Cycles = 3
	case 0x55:
		c.eor(c.zpxR())
		c.Cycles = 4
	case 0x4D:
		v, _ := c.absR()
		c.eor(v)
		c.Cycles = 4
	case 0x5D:
		v, e := c.abxR()
		c.eor(v)
		c.Cycles = 4 + e
	case 0x59:
		v, e := c.abyR()
		c.eor(v)
		c.Cycles = 4 + e
	case 0x41:
		c.eor(c.izxR())
		c.Cycles = 6
	case 0x51:
		v, e := c.izyR()
		c.eor(v)
		c.Cycles = 5 + e

	// INC
	case 0xE6:
		c.incM(c.zp())
		c.Cycles = 5
	case 0xF6:
		c.incM(c.zpx())
		c.Cycles = 6
	case 0xEE:
		c.incM(c.abs())
		c.Cycles = 6
	case 0xFE:
		c.incM(c.abxW())
		c.Cycles = 7
	case 0xE8:
		c.X++
		c.P.checkZN(c.X)
		c.Cycles = 2
	case 0xC8:
		c.Y++
		c.P.checkZN(c.Y)
		c.Cycles = 2

	// JMP
	case 0x4C:
		c.PC = c.abs()
		c.Cycles = 3
	case 0x6C:
		c.PC = c.read16bug(c.abs())
		c.Cycles = 5

	// JSR / RTS / RTI
	case 0x20:
		addr := c.abs()
		c.push16(c.PC - 1)
		c.PC = addr
		c.Cycles = 6
	case 0x60:
		c.PC = c.pull16() + 1
		c.Cycles = 6
	case 0x40:
		c.P = P(c.pull8())
		c.P.SetBreak(false)
		c.P.SetUnused(true)
		c.PC = c.pull16()
		c.Cycles = 6

	// LDA
	case 0xA9:
		c.A = c.imm()
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0xA5:
		c.A = c.zpR()
		c.P.checkZN(c.A)
		c.Cycles = 3
	case 0xB5:
		c.A = c.zpxR()
		c.P.checkZN(c.A)
		c.Cycles = 4
	case 0xAD:
		v, _ := c.absR()
		c.A = v
		c.P.checkZN(c.A)
		c.Cycles = 4
	case 0xBD:
		v, e := c.abxR()
		c.A = v
		c.P.checkZN(c.A)
		c.Cycles = 4 + e
	case 0xB9:
		v, e := c.abyR()
		c.A = v
		c.P.checkZN(c.A)
		c.Cycles = 4 + e
	case 0xA1:
		c.A = c.izxR()
		c.P.checkZN(c.A)
		c.Cycles = 6
	case 0xB1:
		v, e := c.izyR()
		c.A = v
		c.P.checkZN(c.A)
		c.Cycles = 5 + e

	// LDX
	case 0xA2:
		c.X = c.imm()
		c.P.checkZN(c.X)
		c.Cycles = 2
	case 0xA6:
		c.X = c.zpR()
		c.P.checkZN(c.X)
		c.Cycles = 3
	case 0xB6:
		c.X = c.read8(c.zpy())
		c.P.checkZN(c.X)
		c.Cycles = 4
	case 0xAE:
		v, _ := c.absR()
		c.X = v
		c.P.checkZN(c.X)
		c.Cycles = 4
	case 0xBE:
		v, e := c.abyR()
		c.X = v
		c.P.checkZN(c.X)
		c.Cycles = 4 + e

	// LDY
	case 0xA0:
		c.Y = c.imm()
		c.P.checkZN(c.Y)
		c.Cycles = 2
	case 0xA4:
		c.Y = c.zpR()
		c.P.checkZN(c.Y)
		c.Cycles = 3
	case 0xB4:
		c.Y = c.zpxR()
		c.P.checkZN(c.Y)
		c.Cycles = 4
	case 0xAC:
		v, _ := c.absR()
		c.Y = v
		c.P.checkZN(c.Y)
		c.Cycles = 4
	case 0xBC:
		v, e := c.abxR()
		c.Y = v
		c.P.checkZN(c.Y)
		c.Cycles = 4 + e

	// LSR
	case 0x4A:
		c.P.SetCarry(c.A&0x01 != 0)
		c.A >>= 1
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0x46:
		c.lsrM(c.zp())
		c.Cycles = 5
	case 0x56:
		c.lsrM(c.zpx())
		c.Cycles = 6
	case 0x4E:
		c.lsrM(c.abs())
		c.Cycles = 6
	case 0x5E:
		c.lsrM(c.abxW())
		c.Cycles = 7

	// NOP
	case 0xEA:
		c.Cycles = 2

	// ORA
	case 0x09:
		c.ora(c.imm())
		c.Cycles = 2
	case 0x05:
		c.ora(c.zpR())
		c.Cycles = 3
	case 0x15:
		c.ora(c.zpxR())
		c.Cycles = 4
	case 0x0D:
		v, _ := c.absR()
		c.ora(v)
		c.Cycles = 4
	case 0x1D:
		v, e := c.abxR()
		c.ora(v)
		c.Cycles = 4 + e
	case 0x19:
		v, e := c.abyR()
		c.ora(v)
		c.Cycles = 4 + e
	case 0x01:
		c.ora(c.izxR())
		c.Cycles = 6
	case 0x11:
		v, e := c.izyR()
		c.ora(v)
		c.Cycles = 5 + e

	// stack
	case 0x48:
		c.push8(c.A)
		c.Cycles = 3
	case 0x08:
		c.push8(uint8(c.P | flagB | flagU))
		c.Cycles = 3
	case 0x68:
		c.A = c.pull8()
		c.P.checkZN(c.A)
		c.Cycles = 4
	case 0x28:
		c.P = P(c.pull8())
		c.P.SetBreak(false)
		c.P.SetUnused(true)
		c.Cycles = 4

	// ROL
	case 0x2A:
		carry := uint8(0)
		if c.P.Carry() {
			carry = 1
		}
		c.P.SetCarry(c.A&0x80 != 0)
		c.A = c.A<<1 | carry
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0x26:
		c.rolM(c.zp())
		c.Cycles = 5
	case 0x36:
		c.rolM(c.zpx())
		c.Cycles = 6
	case 0x2E:
		c.rolM(c.abs())
		c.Cycles = 6
	case 0x3E:
		c.rolM(c.abxW())
		c.Cycles = 7

	// ROR
	case 0x6A:
		carry := uint8(0)
		if c.P.Carry() {
			carry = 0x80
		}
		c.P.SetCarry(c.A&0x01 != 0)
		c.A = c.A>>1 | carry
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0x66:
		c.rorM(c.zp())
		c.Cycles = 5
	case 0x76:
		c.rorM(c.zpx())
		c.Cycles = 6
	case 0x6E:
		c.rorM(c.abs())
		c.Cycles = 6
	case 0x7E:
		c.rorM(c.abxW())
		c.Cycles = 7

	// SBC
	case 0xE9, 0xEB:
		c.sbc(c.imm())
		c.Cycles = 2
	case 0xE5:
		c.sbc(c.zpR())
		c.Cycles = 3
	case 0xF5:
		c.sbc(c.zpxR())
		c.Cycles = 4
	case 0xED:
		v, _ := c.absR()
		c.sbc(v)
		c.Cycles = 4
	case 0xFD:
		v, e := c.abxR()
		c.sbc(v)
		c.Cycles = 4 + e
	case 0xF9:
		v, e := c.abyR()
		c.sbc(v)
		c.Cycles = 4 + e
	case 0xE1:
		c.sbc(c.izxR())
		c.Cycles = 6
	case 0xF1:
		v, e := c.izyR()
		c.sbc(v)
		c.Cycles = 5 + e

	// STA
	case 0x85:
		c.write8(c.zp(), c.A)
		c.Cycles = 3
	case 0x95:
		c.write8(c.zpx(), c.A)
		c.Cycles = 4
	case 0x8D:
		c.write8(c.abs(), c.A)
		c.Cycles = 4
	case 0x9D:
		c.write8(c.abxW(), c.A)
		c.Cycles = 5
	case 0x99:
		c.write8(c.abyW(), c.A)
		c.Cycles = 5
	case 0x81:
		c.write8(c.izx(), c.A)
		c.Cycles = 6
	case 0x91:
		c.write8(c.izyW(), c.A)
		c.Cycles = 6

	// STX
	case 0x86:
		c.write8(c.zp(), c.X)
		c.Cycles = 3
	case 0x96:
		c.write8(c.zpy(), c.X)
		c.Cycles = 4
	case 0x8E:
		c.write8(c.abs(), c.X)
		c.Cycles = 4

	// STY
	case 0x84:
		c.write8(c.zp(), c.Y)
		c.Cycles = 3
	case 0x94:
		c.write8(c.zpx(), c.Y)
		c.Cycles = 4
	case 0x8C:
		c.write8(c.abs(), c.Y)
		c.Cycles = 4

	// register transfers
	case 0xAA:
		c.X = c.A
		c.P.checkZN(c.X)
		c.Cycles = 2
	case 0xA8:
		c.Y = c.A
		c.P.checkZN(c.Y)
		c.Cycles = 2
	case 0x8A:
		c.A = c.X
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0x98:
		c.A = c.Y
		c.P.checkZN(c.A)
		c.Cycles = 2
	case 0xBA:
		c.X = c.SP
		c.P.checkZN(c.X)
		c.Cycles = 2
	case 0x9A:
		c.SP = c.X
		c.Cycles = 2

	// LAX (illegal: LDA + LDX)
	case 0xA7:
		c.lax(c.zpR())
		c.Cycles = 3
	case 0xB7:
		c.lax(c.read8(c.zpy()))
		c.Cycles = 4
	case 0xAF:
		v, _ := c.absR()
		c.lax(v)
		c.Cycles = 4
	case 0xBF:
		v, e := c.abyR()
		c.lax(v)
		c.Cycles = 4 + e
	case 0xA3:
		c.lax(c.izxR())
		c.Cycles = 6
	case 0xB3:
		v, e := c.izyR()
		c.lax(v)
		c.Cycles = 5 + e

	// SAX (illegal: store A & X)
	case 0x87:
		c.write8(c.zp(), c.A&c.X)
		c.Cycles = 3
	case 0x97:
		c.write8(c.zpy(), c.A&c.X)
		c.Cycles = 4
	case 0x8F:
		c.write8(c.abs(), c.A&c.X)
		c.Cycles = 4
	case 0x83:
		c.write8(c.izx(), c.A&c.X)
		c.Cycles = 6

	// DCP (illegal: DEC + CMP)
	case 0xC7:
		c.dcp(c.zp())
		c.Cycles = 5
	case 0xD7:
		c.dcp(c.zpx())
		c.Cycles = 6
	case 0xCF:
		c.dcp(c.abs())
		c.Cycles = 6
	case 0xDF:
		c.dcp(c.abxW())
		c.Cycles = 7
	case 0xDB:
		c.dcp(c.abyW())
		c.Cycles = 7
	case 0xC3:
		c.dcp(c.izx())
		c.Cycles = 8
	case 0xD3:
		c.dcp(c.izyW())
		c.Cycles = 8

	// ISB (illegal: INC + SBC)
	case 0xE7:
		c.isb(c.zp())
		c.Cycles = 5
	case 0xF7:
		c.isb(c.zpx())
		c.Cycles = 6
	case 0xEF:
		c.isb(c.abs())
		c.Cycles = 6
	case 0xFF:
		c.isb(c.abxW())
		c.Cycles = 7
	case 0xFB:
		c.isb(c.abyW())
		c.Cycles = 7
	case 0xE3:
		c.isb(c.izx())
		c.Cycles = 8
	case 0xF3:
		c.isb(c.izyW())
		c.Cycles = 8

	// SLO (illegal: ASL + ORA)
	case 0x07:
		c.slo(c.zp())
		c.Cycles = 5
	case 0x17:
		c.slo(c.zpx())
		c.Cycles = 6
	case 0x0F:
		c.slo(c.abs())
		c.Cycles = 6
	case 0x1F:
		c.slo(c.abxW())
		c.Cycles = 7
	case 0x1B:
		c.slo(c.abyW())
		c.Cycles = 7
	case 0x03:
		c.slo(c.izx())
		c.Cycles = 8
	case 0x13:
		c.slo(c.izyW())
		c.Cycles = 8

	// RLA (illegal: ROL + AND)
	case 0x27:
		c.rla(c.zp())
		c.Cycles = 5
	case 0x37:
		c.rla(c.zpx())
		c.Cycles = 6
	case 0x2F:
		c.rla(c.abs())
		c.Cycles = 6
	case 0x3F:
		c.rla(c.abxW())
		c.Cycles = 7
	case 0x3B:
		c.rla(c.abyW())
		c.Cycles = 7
	case 0x23:
		c.rla(c.izx())
		c.Cycles = 8
	case 0x33:
		c.rla(c.izyW())
		c.Cycles = 8

	// SRE (illegal: LSR + EOR)
	case 0x47:
		c.sre(c.zp())
		c.Cycles = 5
	case 0x57:
		c.sre(c.zpx())
		c.Cycles = 6
	case 0x4F:
		c.sre(c.abs())
		c.Cycles = 6
	case 0x5F:
		c.sre(c.abxW())
		c.Cycles = 7
	case 0x5B:
		c.sre(c.abyW())
		c.Cycles = 7
	case 0x43:
		c.sre(c.izx())
		c.Cycles = 8
	case 0x53:
		c.sre(c.izyW())
		c.Cycles = 8

	// RRA (illegal: ROR + ADC)
	case 0x67:
		c.rra(c.zp())
		c.Cycles = 5
	case 0x77:
		c.rra(c.zpx())
		c.Cycles = 6
	case 0x6F:
		c.rra(c.abs())
		c.Cycles = 6
	case 0x7F:
		c.rra(c.abxW())
		c.Cycles = 7
	case 0x7B:
		c.rra(c.abyW())
		c.Cycles = 7
	case 0x63:
		c.rra(c.izx())
		c.Cycles = 8
	case 0x73:
		c.rra(c.izyW())
		c.Cycles = 8

	// NOP variants with operands
	case 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		c.Cycles = 2
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.PC++
		c.Cycles = 2
	case 0x04, 0x44, 0x64:
		c.PC++
		c.Cycles = 3
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.PC++
		c.Cycles = 4
	case 0x0C:
		c.PC += 2
		c.Cycles = 4
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		// abs,X NOP still pays the page-cross cycle.
		base := c.abs()
		addr := base + uint16(c.X)
		c.Cycles = 4
		if base&0xFF00 != addr&0xFF00 {
			c.Cycles++
		}

	default:
		// Everything else behaves as a 2-cycle NOP, never an error.
		c.Cycles = 2
	}
}

/* addressing helpers */

// imm reads the immediate operand.
func (c *CPU) imm() uint8 {
	v := c.read8(c.PC)
	c.PC++
	return v
}

func (c *CPU) zp() uint16 {
	a := uint16(c.read8(c.PC))
	c.PC++
	return a
}

func (c *CPU) zpR() uint8 { return c.read8(c.zp()) }

func (c *CPU) zpx() uint16 {
	a := uint16(c.read8(c.PC)+c.X) & 0xFF
	c.PC++
	return a
}

func (c *CPU) zpxR() uint8 { return c.read8(c.zpx()) }

func (c *CPU) zpy() uint16 {
	a := uint16(c.read8(c.PC)+c.Y) & 0xFF
	c.PC++
	return a
}

func (c *CPU) abs() uint16 {
	lo := uint16(c.read8(c.PC))
	hi := uint16(c.read8(c.PC + 1))
	c.PC += 2
	return hi<<8 | lo
}

func (c *CPU) absR() (uint8, uint32) { return c.read8(c.abs()), 0 }

// abxR resolves abs,X and reports the page-cross penalty cycle.
func (c *CPU) abxR() (uint8, uint32) {
	base := c.abs()
	addr := base + uint16(c.X)
	var e uint32
	if base&0xFF00 != addr&0xFF00 {
		e = 1
	}
	return c.read8(addr), e
}

// abxW resolves abs,X for writes and read-modify-write ops: no penalty,
// the cycle is always spent.
func (c *CPU) abxW() uint16 { return c.abs() + uint16(c.X) }

func (c *CPU) abyR() (uint8, uint32) {
	base := c.abs()
	addr := base + uint16(c.Y)
	var e uint32
	if base&0xFF00 != addr&0xFF00 {
		e = 1
	}
	return c.read8(addr), e
}

func (c *CPU) abyW() uint16 { return c.abs() + uint16(c.Y) }

// izx resolves (zp,X): the zero page pointer wraps within the page.
func (c *CPU) izx() uint16 {
	ptr := c.read8(c.PC) + c.X
	c.PC++
	lo := uint16(c.read8(uint16(ptr)))
	hi := uint16(c.read8(uint16(ptr + 1)))
	return hi<<8 | lo
}

func (c *CPU) izxR() uint8 { return c.read8(c.izx()) }

// izyR resolves (zp),Y and reports the page-cross penalty cycle.
func (c *CPU) izyR() (uint8, uint32) {
	ptr := c.read8(c.PC)
	c.PC++
	lo := uint16(c.read8(uint16(ptr)))
	hi := uint16(c.read8(uint16(ptr + 1)))
	base := hi<<8 | lo
	addr := base + uint16(c.Y)
	var e uint32
	if base&0xFF00 != addr&0xFF00 {
		e = 1
	}
	return c.read8(addr), e
}

func (c *CPU) izyW() uint16 {
	ptr := c.read8(c.PC)
	c.PC++
	lo := uint16(c.read8(uint16(ptr)))
	hi := uint16(c.read8(uint16(ptr + 1)))
	return (hi<<8 | lo) + uint16(c.Y)
}

// branch applies a relative branch: +1 cycle when taken, +1 more when the
// target sits in another page.
func (c *CPU) branch(cond bool) {
	offset := int8(c.read8(c.PC))
	c.PC++
	if !cond {
		return
	}
	target := c.PC + uint16(offset)
	if c.PC&0xFF00 != target&0xFF00 {
		c.Cycles++
	}
	c.Cycles++
	c.PC = target
}

/* operations */

// adc adds with carry; D is ignored (no BCD unit on the 2A03).
func (c *CPU) adc(val uint8) {
	var carry uint16
	if c.P.Carry() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(val) + carry
	result := uint8(sum)

	c.P.SetCarry(sum > 0xFF)
	c.P.SetOverflow(^(c.A^val)&(c.A^result)&0x80 != 0)
	c.A = result
	c.P.checkZN(c.A)
}

// sbc is ADC of the operand's complement.
func (c *CPU) sbc(val uint8) { c.adc(val ^ 0xFF) }

func (c *CPU) and(val uint8) {
	c.A &= val
	c.P.checkZN(c.A)
}

func (c *CPU) ora(val uint8) {
	c.A |= val
	c.P.checkZN(c.A)
}

func (c *CPU) eor(val uint8) {
	c.A ^= val
	c.P.checkZN(c.A)
}

func (c *CPU) compare(reg, val uint8) {
	c.P.SetCarry(reg >= val)
	c.P.checkZN(reg - val)
}

func (c *CPU) bit(val uint8) {
	c.P.SetZero(c.A&val == 0)
	c.P.SetNegative(val&0x80 != 0)
	c.P.SetOverflow(val&0x40 != 0)
}

func (c *CPU) aslM(addr uint16) {
	v := c.read8(addr)
	c.P.SetCarry(v&0x80 != 0)
	v <<= 1
	c.write8(addr, v)
	c.P.checkZN(v)
}

func (c *CPU) lsrM(addr uint16) {
	v := c.read8(addr)
	c.P.SetCarry(v&0x01 != 0)
	v >>= 1
	c.write8(addr, v)
	c.P.checkZN(v)
}

func (c *CPU) rolM(addr uint16) {
	v := c.read8(addr)
	carry := uint8(0)
	if c.P.Carry() {
		carry = 1
	}
	c.P.SetCarry(v&0x80 != 0)
	v = v<<1 | carry
	c.write8(addr, v)
	c.P.checkZN(v)
}

func (c *CPU) rorM(addr uint16) {
	v := c.read8(addr)
	carry := uint8(0)
	if c.P.Carry() {
		carry = 0x80
	}
	c.P.SetCarry(v&0x01 != 0)
	v = v>>1 | carry
	c.write8(addr, v)
	c.P.checkZN(v)
}

func (c *CPU) incM(addr uint16) {
	v := c.read8(addr) + 1
	c.write8(addr, v)
	c.P.checkZN(v)
}

func (c *CPU) decM(addr uint16) {
	v := c.read8(addr) - 1
	c.write8(addr, v)
	c.P.checkZN(v)
}

func (c *CPU) lax(val uint8) {
	c.A = val
	c.X = val
	c.P.checkZN(val)
}

func (c *CPU) dcp(addr uint16) {
	v := c.read8(addr) - 1
	c.write8(addr, v)
	c.compare(c.A, v)
}

func (c *CPU) isb(addr uint16) {
	v := c.read8(addr) + 1
	c.write8(addr, v)
	c.sbc(v)
}

func (c *CPU) slo(addr uint16) {
	v := c.read8(addr)
	c.P.SetCarry(v&0x80 != 0)
	v <<= 1
	c.write8(addr, v)
	c.ora(v)
}

func (c *CPU) rla(addr uint16) {
	v := c.read8(addr)
	carry := uint8(0)
	if c.P.Carry() {
		carry = 1
	}
	c.P.SetCarry(v&0x80 != 0)
	v = v<<1 | carry
	c.write8(addr, v)
	c.and(v)
}

func (c *CPU) sre(addr uint16) {
	v := c.read8(addr)
	c.P.SetCarry(v&0x01 != 0)
	v >>= 1
	c.write8(addr, v)
	c.eor(v)
}

func (c *CPU) rra(addr uint16) {
	v := c.read8(addr)
	carry := uint8(0)
	if c.P.Carry() {
		carry = 0x80
	}
	c.P.SetCarry(v&0x01 != 0)
	v = v>>1 | carry
	c.write8(addr, v)
	c.adc(v)
}
