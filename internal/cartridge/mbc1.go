package cartridge

// mbc1 implements header types $01/$02/$03: 5-bit ROM bank register, 2-bit
// RAM-bank/upper-ROM-bank register, and a banking-mode select.
type mbc1 struct {
	banks [][]byte
	ram   []byte

	ramEnabled bool
	romBank    uint8 // low 5 bits, as written
	bank2      uint8 // upper 2 bits: RAM bank, or upper ROM bank bits
	ramBanking bool  // banking mode: false == ROM banking (mode 0)
}

func newMBC1(rom []byte, ramSize uint) *mbc1 {
	m := &mbc1{
		banks:   romBanks(rom),
		romBank: 1,
	}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	return m
}

func (m *mbc1) selectedROMBank() int {
	bank := m.romBank & 0x1F
	if bank == 0 {
		bank = 1 // bank 0 is never visible at $4000-$7FFF
	}
	full := int(bank)
	if !m.ramBanking {
		full |= int(m.bank2) << 5
	}
	if full >= len(m.banks) {
		full %= len(m.banks)
	}
	return full
}

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.banks[0][address]
	case address < 0x8000:
		return m.banks[m.selectedROMBank()][address-0x4000]
	default: // $A000-$BFFF
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)]
	}
}

func (m *mbc1) ramOffset(address uint16) int {
	bank := 0
	if m.ramBanking {
		bank = int(m.bank2)
	}
	off := bank*0x2000 + int(address-0xA000)
	return off % len(m.ram)
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x1F
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.ramBanking = value&0x01 != 0
	default: // $A000-$BFFF
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

func (m *mbc1) RAM() []byte { return m.ram }
func (m *mbc1) LoadRAM(data []byte) {
	if len(m.ram) == 0 {
		return
	}
	copy(m.ram, data)
}
