package cpu

// executeCB runs a CB-prefixed instruction. Like the primary table, it
// is decoded structurally: x selects the broad family (rotate/shift
// group, BIT, RES, SET), y selects the operation or bit index within
// that family, and z names the operand register via the same 0-7
// encoding used everywhere else (6 = (HL)).
func (c *CPU) executeCB(opcode uint8) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	switch x {
	case 0:
		c.writeR(z, c.rotateShiftFamily(y, c.readR(z)))
	case 1:
		c.testBit(c.readR(z), y)
	case 2:
		c.writeR(z, clearBit(c.readR(z), y))
	case 3:
		c.writeR(z, setBit(c.readR(z), y))
	}
}

// rotateShiftFamily dispatches the eight CB-prefixed rotate/shift/swap
// operations: 0=RLC,1=RRC,2=RL,3=RR,4=SLA,5=SRA,6=SWAP,7=SRL.
func (c *CPU) rotateShiftFamily(y uint8, v uint8) uint8 {
	switch y {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	default:
		return c.srl(v)
	}
}
