package types

// Register is an 8-bit CPU register.
type Register = uint8

// RegisterPair aliases two 8-bit registers as a single 16-bit value, high
// byte first. It holds pointers rather than a copy so that writes through
// the pair are observed by 8-bit accesses to High/Low and vice versa.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the pair's value as a single 16-bit word.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 stores value into the pair, high byte first.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the Game Boy's eight 8-bit registers and exposes the
// four 16-bit views (AF, BC, DE, HL) over them. The (HL) "register" used
// by many opcodes is not a storage slot here — it is handled by the
// decoder as a bus read/write, see cpu.decode.
type Registers struct {
	A, F Register
	B, C Register
	D, E Register
	H, L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// Init wires the register pairs to their underlying 8-bit fields. Must be
// called once after a Registers value is constructed, since the pairs
// hold pointers into the struct itself.
func (r *Registers) Init() {
	r.AF = &RegisterPair{&r.A, &r.F}
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
}
