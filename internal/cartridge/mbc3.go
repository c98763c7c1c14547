package cartridge

// mbc3 implements header types $0F-$13: 7-bit ROM bank register, a RAM
// bank register that is overloaded with RTC register selection for
// values $08-$0C, and an RTC latch write sequence ($00 then $01 to
// $6000-$7FFF). The RTC clock itself is not modeled: a byte written to
// a selected RTC register is stored and read back unchanged, and the
// latch sequence does not alter those stored values.
type mbc3 struct {
	banks [][]byte
	ram   []byte

	ramEnabled bool
	romBank    uint8
	ramBank    uint8 // 0-3 selects a RAM bank, 8-C selects an RTC register
	latchState uint8 // tracks the $00 -> $01 latch write sequence
	rtcLatched [5]uint8
}

func newMBC3(rom []byte, ramSize uint) *mbc3 {
	m := &mbc3{banks: romBanks(rom), romBank: 1}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	return m
}

func (m *mbc3) selectedROMBank() int {
	bank := int(m.romBank & 0x7F)
	if bank == 0 {
		bank = 1
	}
	if bank >= len(m.banks) {
		bank %= len(m.banks)
	}
	return bank
}

func (m *mbc3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.banks[0][address]
	case address < 0x8000:
		return m.banks[m.selectedROMBank()][address-0x4000]
	default: // $A000-$BFFF
		if !m.ramEnabled {
			return 0xFF
		}
		if m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			return m.rtcLatched[m.ramBank-0x08]
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBank)*0x2000 + int(address-0xA000)
		return m.ram[off%len(m.ram)]
	}
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		m.ramBank = value
	case address < 0x8000:
		// RTC latch: writing 0 then 1 snapshots the (unmodeled) clock.
		if value == 0x00 {
			m.latchState = 0x00
		} else if value == 0x01 && m.latchState == 0x00 {
			m.latchState = 0x01
		}
	default: // $A000-$BFFF
		if !m.ramEnabled {
			return
		}
		if m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			m.rtcLatched[m.ramBank-0x08] = value
			return
		}
		if len(m.ram) == 0 {
			return
		}
		off := int(m.ramBank)*0x2000 + int(address-0xA000)
		m.ram[off%len(m.ram)] = value
	}
}

func (m *mbc3) RAM() []byte { return m.ram }
func (m *mbc3) LoadRAM(data []byte) {
	if len(m.ram) == 0 {
		return
	}
	copy(m.ram, data)
}
