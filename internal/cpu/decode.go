package cpu

// This file implements the structural decoder described by the spec's
// design notes: rather than a 256/512-entry literal opcode table, the
// primary opcode is split into its bit fields (x = quadrant, y = middle
// selector, z = low selector, p/q = y's own split) and dispatched by
// family. Register/condition/pair encodings are resolved once, up
// front, by the helpers below.

// readR returns the value named by an 8-bit register encoding: 0=B,
// 1=C, 2=D, 3=E, 4=H, 5=L, 6=(HL) (a bus read), 7=A.
func (c *CPU) readR(index uint8) uint8 {
	if index == 6 {
		return c.bus.Read(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// writeR stores value into the register/location named by index, using
// the same encoding as readR.
func (c *CPU) writeR(index uint8, value uint8) {
	if index == 6 {
		c.bus.Write(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// rp returns the 16-bit register pair named by a 2-bit encoding used by
// LD rr,nn / INC rr / DEC rr / ADD HL,rr: 0=BC, 1=DE, 2=HL, 3=SP.
func (c *CPU) rp(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setRP(index uint8, value uint16) {
	switch index {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// rp2 is the PUSH/POP variant of rp: 0=BC, 1=DE, 2=HL, 3=AF.
func (c *CPU) rp2(index uint8) uint16 {
	if index == 3 {
		return c.AF.Uint16()
	}
	return c.rp(index)
}

func (c *CPU) setRP2(index uint8, value uint16) {
	if index == 3 {
		// the low nibble of F is never observable as nonzero.
		c.AF.SetUint16(value & 0xFFF0)
		return
	}
	c.setRP(index, value)
}

// condition evaluates one of the four branch conditions: 0=NZ, 1=Z,
// 2=NC, 3=C.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.flag(flagZero)
	case 1:
		return c.flag(flagZero)
	case 2:
		return !c.flag(flagCarry)
	default:
		return c.flag(flagCarry)
	}
}

// execute runs the primary (non-CB) instruction named by opcode.
func (c *CPU) execute(opcode uint8) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.executeX0(y, z, q, p)
	case 1:
		if z == 6 && y == 6 {
			c.halt()
		} else {
			c.writeR(y, c.readR(z))
		}
	case 2:
		c.aluOp(y, c.readR(z))
	default:
		c.executeX3(y, z, q, p)
	}
}

func (c *CPU) executeX0(y, z, q, p uint8) {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 1: // LD (nn),SP
			addr := c.fetch16()
			c.bus.Write(addr, uint8(c.SP))
			c.bus.Write(addr+1, uint8(c.SP>>8))
		case 2: // STOP: treated as a long NOP, per spec scope
			c.fetch()
		case 3: // JR d
			c.jr()
		default: // JR cc[y-4], d
			c.jrConditional(y - 4)
		}
	case 1:
		if q == 0 { // LD rp[p], nn
			c.setRP(p, c.fetch16())
		} else { // ADD HL, rp[p]
			c.addHL16(c.rp(p))
		}
	case 2:
		c.indirectLoad(p, q)
	case 3:
		if q == 0 {
			c.setRP(p, c.rp(p)+1)
		} else {
			c.setRP(p, c.rp(p)-1)
		}
	case 4:
		c.writeR(y, c.inc8(c.readR(y)))
	case 5:
		c.writeR(y, c.dec8(c.readR(y)))
	case 6:
		c.writeR(y, c.fetch())
	case 7:
		c.miscRotateOrFlag(y)
	}
}

// indirectLoad implements the four LD (BC|DE|HL+|HL-),A / LD A,(...) forms.
func (c *CPU) indirectLoad(p, q uint8) {
	var addr uint16
	switch p {
	case 0:
		addr = c.BC.Uint16()
	case 1:
		addr = c.DE.Uint16()
	case 2, 3:
		addr = c.HL.Uint16()
	}
	if q == 0 {
		c.bus.Write(addr, c.A)
	} else {
		c.A = c.bus.Read(addr)
	}
	if p == 2 {
		c.HL.SetUint16(addr + 1)
	} else if p == 3 {
		c.HL.SetUint16(addr - 1)
	}
}

func (c *CPU) miscRotateOrFlag(y uint8) {
	switch y {
	case 0:
		c.rlca()
	case 1:
		c.rrca()
	case 2:
		c.rla()
	case 3:
		c.rra()
	case 4:
		c.daa()
	case 5:
		c.A = ^c.A
		c.setFlag(flagSubtract, true)
		c.setFlag(flagHalfCarry, true)
	case 6:
		c.setFlag(flagSubtract, false)
		c.setFlag(flagHalfCarry, false)
		c.setFlag(flagCarry, true)
	case 7:
		c.setFlag(flagSubtract, false)
		c.setFlag(flagHalfCarry, false)
		c.setFlag(flagCarry, !c.flag(flagCarry))
	}
}

// aluOp dispatches the eight 8-bit ALU operations shared by the
// register/immediate/(HL) forms: 0=ADD,1=ADC,2=SUB,3=SBC,4=AND,5=XOR,
// 6=OR,7=CP.
func (c *CPU) aluOp(y uint8, operand uint8) {
	switch y {
	case 0:
		c.add8(operand, false)
	case 1:
		c.add8(operand, true)
	case 2:
		c.sub8(operand, false, false)
	case 3:
		c.sub8(operand, true, false)
	case 4:
		c.and8(operand)
	case 5:
		c.xor8(operand)
	case 6:
		c.or8(operand)
	case 7:
		c.sub8(operand, false, true)
	}
}

func (c *CPU) executeX3(y, z, q, p uint8) {
	switch z {
	case 0:
		switch y {
		case 0, 1, 2, 3:
			c.retConditional(y)
		case 4: // LDH (n),A
			c.bus.Write(0xFF00+uint16(c.fetch()), c.A)
		case 5: // ADD SP,d
			c.SP = c.addSPSigned(int8(c.fetch()))
		case 6: // LDH A,(n)
			c.A = c.bus.Read(0xFF00 + uint16(c.fetch()))
		case 7: // LD HL,SP+d
			c.HL.SetUint16(c.addSPSigned(int8(c.fetch())))
		}
	case 1:
		if q == 0 {
			c.setRP2(p, c.pop())
		} else {
			switch p {
			case 0:
				c.PC = c.pop()
			case 1:
				c.PC = c.pop()
				c.IME = true
			case 2:
				c.PC = c.HL.Uint16()
			case 3:
				c.SP = c.HL.Uint16()
			}
		}
	case 2:
		switch y {
		case 0, 1, 2, 3:
			c.jpConditional(y)
		case 4: // LD (C),A
			c.bus.Write(0xFF00+uint16(c.C), c.A)
		case 5: // LD (nn),A
			c.bus.Write(c.fetch16(), c.A)
		case 6: // LD A,(C)
			c.A = c.bus.Read(0xFF00 + uint16(c.C))
		case 7: // LD A,(nn)
			c.A = c.bus.Read(c.fetch16())
		}
	case 3:
		switch y {
		case 0: // JP nn
			c.PC = c.fetch16()
		case 6: // DI
			c.IME = false
		case 7: // EI
			if c.mode == modeRunning {
				c.mode = modeEnableIME
			}
		}
	case 4: // CALL cc[y], nn
		c.callConditional(y)
	case 5:
		if q == 0 {
			c.push(c.rp2(p))
		} else if p == 0 { // CALL nn
			addr := c.fetch16()
			c.push(c.PC)
			c.PC = addr
		}
	case 6:
		c.aluOp(y, c.fetch())
	case 7: // RST y*8
		c.push(c.PC)
		c.PC = uint16(y) * 8
	}
}

// halt enters the HALT wait state. If an interrupt is already pending
// while IME is clear, the documented HALT bug is engaged instead of a
// true halt: the CPU keeps running, but the next opcode fetch does not
// advance PC, so that instruction runs twice.
func (c *CPU) halt() {
	if !c.IME && c.irq.Pending() {
		c.mode = modeHaltBug
		return
	}
	c.mode = modeHalted
	c.Halted = true
}
