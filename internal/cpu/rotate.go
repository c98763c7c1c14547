package cpu

import "github.com/mrostron/gomeboy/pkg/bits"

// rlc rotates v left by one, bit 7 into both bit 0 and the carry flag.
func (c *CPU) rlc(v uint8) uint8 {
	carry := bits.Test(v, 7)
	result := v<<1 | bits.Val(v, 7)
	c.setFlags(result == 0, false, false, carry)
	return result
}

// rrc rotates v right by one, bit 0 into both bit 7 and the carry flag.
func (c *CPU) rrc(v uint8) uint8 {
	carry := bits.Test(v, 0)
	result := v>>1 | v<<7
	c.setFlags(result == 0, false, false, carry)
	return result
}

// rl rotates v left through the carry flag.
func (c *CPU) rl(v uint8) uint8 {
	var carryIn uint8
	if c.flag(flagCarry) {
		carryIn = 1
	}
	carryOut := bits.Test(v, 7)
	result := v<<1 | carryIn
	c.setFlags(result == 0, false, false, carryOut)
	return result
}

// rr rotates v right through the carry flag.
func (c *CPU) rr(v uint8) uint8 {
	var carryIn uint8
	if c.flag(flagCarry) {
		carryIn = 1
	}
	carryOut := bits.Test(v, 0)
	result := v>>1 | carryIn<<7
	c.setFlags(result == 0, false, false, carryOut)
	return result
}

// rlca, rrca, rla, rra are the unprefixed A-only rotates: identical
// bit manipulation to their CB counterparts, but Z is always forced to
// 0 rather than derived from the result.
func (c *CPU) rlca() { c.A = c.rlc(c.A); c.setFlag(flagZero, false) }
func (c *CPU) rrca() { c.A = c.rrc(c.A); c.setFlag(flagZero, false) }
func (c *CPU) rla()  { c.A = c.rl(c.A); c.setFlag(flagZero, false) }
func (c *CPU) rra()  { c.A = c.rr(c.A); c.setFlag(flagZero, false) }
