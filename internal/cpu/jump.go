package cpu

// jr reads a signed displacement and adds it to PC (which already points
// past the displacement byte).
func (c *CPU) jr() {
	d := int8(c.fetch())
	c.PC = uint16(int32(c.PC) + int32(d))
}

func (c *CPU) jrConditional(cc uint8) {
	d := int8(c.fetch())
	if c.condition(cc) {
		c.PC = uint16(int32(c.PC) + int32(d))
	}
}

func (c *CPU) jpConditional(cc uint8) {
	addr := c.fetch16()
	if c.condition(cc) {
		c.PC = addr
	}
}

func (c *CPU) callConditional(cc uint8) {
	addr := c.fetch16()
	if c.condition(cc) {
		c.push(c.PC)
		c.PC = addr
	}
}

func (c *CPU) retConditional(cc uint8) {
	if c.condition(cc) {
		c.PC = c.pop()
	}
}
