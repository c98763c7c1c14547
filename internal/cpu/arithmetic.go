package cpu

import "github.com/mrostron/gomeboy/pkg/bits"

// add8 adds b (and optionally the carry flag) into A, setting all flags.
func (c *CPU) add8(b uint8, withCarry bool) {
	var carryIn uint8
	if withCarry && c.flag(flagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(b) + uint16(carryIn)
	half := (c.A&0xF)+(b&0xF)+carryIn > 0xF
	c.setFlags(uint8(sum) == 0, false, half, sum > 0xFF)
	c.A = uint8(sum)
}

// sub8 subtracts b (and optionally the carry flag) from A, setting all
// flags. If keepA is true (used by CP), A is left unmodified.
func (c *CPU) sub8(b uint8, withCarry, keepA bool) {
	var carryIn uint8
	if withCarry && c.flag(flagCarry) {
		carryIn = 1
	}
	diff := int16(c.A) - int16(b) - int16(carryIn)
	half := int16(c.A&0xF)-int16(b&0xF)-int16(carryIn) < 0
	c.setFlags(uint8(diff) == 0, true, half, diff < 0)
	if !keepA {
		c.A = uint8(diff)
	}
}

func (c *CPU) and8(b uint8) {
	c.A &= b
	c.setFlags(c.A == 0, false, true, false)
}

func (c *CPU) or8(b uint8) {
	c.A |= b
	c.setFlags(c.A == 0, false, false, false)
}

func (c *CPU) xor8(b uint8) {
	c.A ^= b
	c.setFlags(c.A == 0, false, false, false)
}

func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.setFlag(flagZero, result == 0)
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, bits.HalfCarryAdd(v, 1))
	return result
}

func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.setFlag(flagZero, result == 0)
	c.setFlag(flagSubtract, true)
	c.setFlag(flagHalfCarry, bits.HalfCarrySub(v, 1))
	return result
}

// addHL16 implements ADD HL,rr: Z unchanged, H from bit 11, C from bit 15.
func (c *CPU) addHL16(b uint16) {
	a := c.HL.Uint16()
	sum := uint32(a) + uint32(b)
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, (a&0xFFF)+(b&0xFFF) > 0xFFF)
	c.setFlag(flagCarry, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned implements the shared arithmetic for ADD SP,d and
// LD HL,SP+d: both add a signed 8-bit displacement to SP and derive
// H/C from the unsigned low-byte addition, clearing Z and N.
func (c *CPU) addSPSigned(d int8) uint16 {
	sp := c.SP
	result := uint16(int32(sp) + int32(d))
	half := (sp&0xF)+(uint16(uint8(d))&0xF) > 0xF
	carry := (sp&0xFF)+uint16(uint8(d)) > 0xFF
	c.setFlags(false, false, half, carry)
	return result
}

// daa implements the decimal-adjust-accumulator algorithm for packed BCD
// correction after ADD/ADC/SUB/SBC.
func (c *CPU) daa() {
	a := c.A
	var adjust uint8
	carry := c.flag(flagCarry)
	if c.flag(flagSubtract) {
		if c.flag(flagHalfCarry) {
			adjust += 0x06
		}
		if carry {
			adjust += 0x60
		}
		a -= adjust
	} else {
		if c.flag(flagHalfCarry) || a&0xF > 0x9 {
			adjust += 0x06
		}
		if carry || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}
	c.setFlag(flagZero, a == 0)
	c.setFlag(flagHalfCarry, false)
	c.setFlag(flagCarry, carry)
	c.A = a
}
