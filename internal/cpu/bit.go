package cpu

import "github.com/mrostron/gomeboy/pkg/bits"

// testBit sets Z from the complement of bit `n` of v, N=0, H=1; carry is
// untouched.
func (c *CPU) testBit(v uint8, n uint8) {
	c.setFlag(flagZero, !bits.Test(v, n))
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, true)
}

func setBit(v, n uint8) uint8   { return bits.Set(v, n) }
func clearBit(v, n uint8) uint8 { return bits.Reset(v, n) }
