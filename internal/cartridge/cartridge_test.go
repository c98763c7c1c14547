package cartridge

import "testing"

// buildROM constructs a ROM image of the given number of 16KiB banks,
// each bank's first byte set to its own index so bank-select tests can
// read it back and identify which bank is mapped.
func buildROM(banks int, cartType Type, romSizeCode, ramSizeCode uint8) []byte {
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	rom[0x147] = byte(cartType)
	rom[0x148] = romSizeCode
	rom[0x149] = ramSizeCode
	title := []byte("TESTROM")
	copy(rom[0x134:0x144], title)
	return rom
}

func TestParseHeader_TooShort(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 0x10)); err != ErrHeaderTooShort {
		t.Errorf("err = %v, want ErrHeaderTooShort", err)
	}
}

func TestNew_UnsupportedMapperIsFatal(t *testing.T) {
	rom := buildROM(2, Type(0x7F), 0, 0)
	_, err := New(rom)
	if err == nil {
		t.Fatal("expected LoadError for unsupported mapper")
	}
	if le, ok := err.(*LoadError); !ok || !le.UnsupportedMapper {
		t.Errorf("err = %#v, want UnsupportedMapper LoadError", err)
	}
}

func TestROMOnly_IgnoresControlWrites(t *testing.T) {
	rom := buildROM(2, ROM, 0, 0)
	cart, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cart.Write(0x2000, 0x05) // would select a bank on a real mapper
	if got := cart.Read(0x4000); got != 1 {
		t.Errorf("bank-1 marker byte = %d, want 1 (no banking on ROM_ONLY)", got)
	}
}

func TestMBC1_BankZeroCoercedToOne(t *testing.T) {
	rom := buildROM(4, MBC1, 0, 0)
	cart, _ := New(rom)
	cart.Write(0x2000, 0x00) // select bank 0 -> coerced to 1
	if got := cart.Read(0x4000); got != 1 {
		t.Errorf("marker = %d, want 1", got)
	}
}

func TestMBC1_SelectsUpperBanks(t *testing.T) {
	rom := buildROM(8, MBC1, 1, 0) // 8 banks fits in 3 bits; low5|bank2<<5 addresses it fine
	cart, _ := New(rom)
	cart.Write(0x2000, 0x05) // low 5 bits = 5
	if got := cart.Read(0x4000); got != 5 {
		t.Errorf("marker = %d, want 5", got)
	}
}

func TestMBC1_RAMDisabledByDefault(t *testing.T) {
	rom := buildROM(2, MBC1RAM, 0, 0x02) // 8KiB RAM
	cart, _ := New(rom)
	cart.Write(0xA000, 0x42)
	if got := cart.Read(0xA000); got != 0xFF {
		t.Errorf("RAM read = %#02x, want 0xFF while disabled", got)
	}
	cart.Write(0x0000, 0x0A) // enable
	cart.Write(0xA000, 0x42)
	if got := cart.Read(0xA000); got != 0x42 {
		t.Errorf("RAM read = %#02x, want 0x42 once enabled", got)
	}
}

func TestMBC2_RAMIsNibbleWideAndMirrored(t *testing.T) {
	rom := buildROM(2, MBC2, 0, 0)
	cart, _ := New(rom)
	cart.Write(0x0000, 0x0A) // enable (address bit 8 clear)
	cart.Write(0xA000, 0xF3) // only the low nibble (0x3) is stored
	if got := cart.Read(0xA000); got != 0xF3 {
		t.Errorf("MBC2 RAM read = %#02x, want 0xF3 (stored nibble, upper nibble forced high)", got)
	}
	if got := cart.Read(0xA200); got != 0xF3 {
		t.Errorf("MBC2 RAM at mirrored address = %#02x, want 0xF3", got)
	}
}

func TestMBC3_RTCLatchRegistersStoreWrittenByte(t *testing.T) {
	rom := buildROM(2, MBC3TIMERRAMBATT, 0, 0x02)
	cart, _ := New(rom)
	cart.Write(0x0000, 0x0A) // enable RAM/RTC
	cart.Write(0x4000, 0x08) // select RTC seconds register
	cart.Write(0xA000, 0x2A) // write into it
	cart.Write(0x6000, 0x00) // latch sequence
	cart.Write(0x6000, 0x01)
	if got := cart.Read(0xA000); got != 0x2A {
		t.Errorf("RTC register read = %#02x, want 0x2A", got)
	}
}

func TestMBC5_NineBitROMBank(t *testing.T) {
	rom := buildROM(512, MBC5, 8, 0) // enough banks to exercise the high bit
	cart, _ := New(rom)
	cart.Write(0x2000, 0xFF) // low 8 bits
	cart.Write(0x3000, 0x01) // bit 8
	if got := cart.Read(0x4000); got != byte(0x1FF) {
		t.Errorf("marker = %d, want %d", got, byte(0x1FF))
	}
}

func TestHasBattery(t *testing.T) {
	cases := map[Type]bool{
		ROM:         false,
		MBC1RAM:     false,
		MBC1RAMBATT: true,
		MBC2BATT:    true,
		MBC5RAMBATT: true,
	}
	for typ, want := range cases {
		if got := typ.hasBattery(); got != want {
			t.Errorf("%s.hasBattery() = %v, want %v", typ, got, want)
		}
	}
}
