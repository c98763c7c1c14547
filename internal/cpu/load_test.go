package cpu

import "testing"

func TestLdRpNN_LoadsSixteenBitImmediate(t *testing.T) {
	c := newTestCPU(t, 0x21, 0x34, 0x12) // LD HL,$1234
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := c.HL.Uint16(); got != 0x1234 {
		t.Errorf("HL = %#04x, want $1234", got)
	}
}

func TestLdIndirectHLPlus_StoresAndIncrementsHL(t *testing.T) {
	c := newTestCPU(t, 0x22) // LD (HL+),A
	c.A = 0x42
	c.HL.SetUint16(0xC100)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := c.bus.Read(0xC100); got != 0x42 {
		t.Errorf("(HL) = %#02x, want 0x42", got)
	}
	if got := c.HL.Uint16(); got != 0xC101 {
		t.Errorf("HL = %#04x, want $C101", got)
	}
}

func TestLdIndirectHLMinus_LoadsAndDecrementsHL(t *testing.T) {
	c := newTestCPU(t, 0x3A) // LD A,(HL-)
	c.HL.SetUint16(0xC100)
	c.bus.Write(0xC100, 0x55)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x55 {
		t.Errorf("A = %#02x, want 0x55", c.A)
	}
	if got := c.HL.Uint16(); got != 0xC0FF {
		t.Errorf("HL = %#04x, want $C0FF", got)
	}
}

func TestPushPopBC_RoundTrips(t *testing.T) {
	c := newTestCPU(t, 0xC5, 0xC1) // PUSH BC; POP BC
	c.BC.SetUint16(0xBEEF)
	c.SP = 0xFFFE
	if err := c.Step(); err != nil {
		t.Fatalf("PUSH Step: %v", err)
	}
	c.BC.SetUint16(0x0000)
	if err := c.Step(); err != nil {
		t.Fatalf("POP Step: %v", err)
	}
	if got := c.BC.Uint16(); got != 0xBEEF {
		t.Errorf("BC = %#04x, want $BEEF", got)
	}
	if c.SP != 0xFFFE {
		t.Errorf("SP = %#04x, want $FFFE (balanced push/pop)", c.SP)
	}
}

func TestPopAF_MasksLowNibbleOfF(t *testing.T) {
	c := newTestCPU(t, 0xF1) // POP AF
	c.SP = 0xFFFC
	c.bus.Write(0xFFFC, 0xFF) // F, low byte popped first
	c.bus.Write(0xFFFD, 0x12) // A
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x12 {
		t.Errorf("A = %#02x, want 0x12", c.A)
	}
	if c.F != 0xF0 {
		t.Errorf("F = %#02x, want 0xF0 (low nibble forced to zero)", c.F)
	}
}

func TestLdhWriteAndRead_AddressesHighPage(t *testing.T) {
	c := newTestCPU(t, 0xE0, 0x47, 0xF0, 0x47) // LDH ($47),A; LDH A,($47)
	c.A = 0x91
	if err := c.Step(); err != nil {
		t.Fatalf("LDH write Step: %v", err)
	}
	if got := c.bus.Read(0xFF47); got != 0x91 {
		t.Errorf("$FF47 = %#02x, want 0x91", got)
	}
	c.A = 0
	if err := c.Step(); err != nil {
		t.Fatalf("LDH read Step: %v", err)
	}
	if c.A != 0x91 {
		t.Errorf("A = %#02x, want 0x91", c.A)
	}
}

func TestLdIndirectC_AddressesHighPage(t *testing.T) {
	c := newTestCPU(t, 0xE2, 0xF2) // LD (C),A; LD A,(C)
	c.A = 0x77
	c.C = 0x10
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := c.bus.Read(0xFF10); got != 0x77 {
		t.Errorf("$FF10 = %#02x, want 0x77", got)
	}
	c.A = 0
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x77 {
		t.Errorf("A = %#02x, want 0x77", c.A)
	}
}

func TestAddSPSigned_CarriesOutOfLowByte(t *testing.T) {
	c := newTestCPU(t, 0xE8, 0x01) // ADD SP,1
	c.SP = 0x0FFF
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.SP != 0x1000 {
		t.Errorf("SP = %#04x, want $1000", c.SP)
	}
	if !c.flag(flagHalfCarry) || !c.flag(flagCarry) {
		t.Errorf("F = %#02x, want H and C set for $0FFF+$01 low-byte addition", c.F)
	}
	if c.flag(flagZero) || c.flag(flagSubtract) {
		t.Errorf("F = %#02x, want Z and N clear", c.F)
	}
}

func TestLdHLSPPlusD_LeavesSPUnchanged(t *testing.T) {
	c := newTestCPU(t, 0xF8, 0x02) // LD HL,SP+2
	c.SP = 0xC000
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := c.HL.Uint16(); got != 0xC002 {
		t.Errorf("HL = %#04x, want $C002", got)
	}
	if c.SP != 0xC000 {
		t.Errorf("SP = %#04x, want unchanged $C000", c.SP)
	}
}

func TestRst_PushesPCAndJumpsToVector(t *testing.T) {
	c := newTestCPU(t, 0xDF) // RST $18
	startPC := c.PC
	c.SP = 0xFFFE
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0018 {
		t.Errorf("PC = %#04x, want $0018", c.PC)
	}
	if ret := c.pop(); ret != startPC+1 {
		t.Errorf("pushed return address = %#04x, want %#04x", ret, startPC+1)
	}
}

func TestStep_IllegalOpcodeReturnsDecodeError(t *testing.T) {
	c := newTestCPU(t, 0xD3) // undocumented/illegal
	startPC := c.PC
	err := c.Step()
	var decodeErr *DecodeError
	if err == nil {
		t.Fatal("expected a DecodeError, got nil")
	}
	if de, ok := err.(*DecodeError); ok {
		decodeErr = de
	} else {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if decodeErr.Opcode != 0xD3 || decodeErr.PC != startPC {
		t.Errorf("DecodeError = %+v, want {PC:%#04x Opcode:0xD3}", decodeErr, startPC)
	}
}
