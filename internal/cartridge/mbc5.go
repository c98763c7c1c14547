package cartridge

// mbc5 implements header types $19-$1E: a full 9-bit ROM bank register
// (split across two write windows) and a 4-bit RAM bank register. Unlike
// MBC1, bank 0 is a legal selection at $4000-$7FFF.
type mbc5 struct {
	banks [][]byte
	ram   []byte

	ramEnabled bool
	romBankLo  uint8
	romBankHi  uint8
	ramBank    uint8
}

func newMBC5(rom []byte, ramSize uint) *mbc5 {
	m := &mbc5{banks: romBanks(rom), romBankLo: 1}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	return m
}

func (m *mbc5) selectedROMBank() int {
	bank := int(m.romBankHi)<<8 | int(m.romBankLo)
	if bank >= len(m.banks) {
		bank %= len(m.banks)
	}
	return bank
}

func (m *mbc5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.banks[0][address]
	case address < 0x8000:
		return m.banks[m.selectedROMBank()][address-0x4000]
	default:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBank)*0x2000 + int(address-0xA000)
		return m.ram[off%len(m.ram)]
	}
}

func (m *mbc5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBankLo = value
	case address < 0x4000:
		m.romBankHi = value & 0x01
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address < 0x8000:
		// no banking-mode register on MBC5
	default:
		if m.ramEnabled && len(m.ram) > 0 {
			off := int(m.ramBank)*0x2000 + int(address-0xA000)
			m.ram[off%len(m.ram)] = value
		}
	}
}

func (m *mbc5) RAM() []byte { return m.ram }
func (m *mbc5) LoadRAM(data []byte) {
	if len(m.ram) == 0 {
		return
	}
	copy(m.ram, data)
}
