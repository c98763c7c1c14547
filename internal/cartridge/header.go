package cartridge

import (
	"fmt"
	"strings"
)

// Type identifies the mapper family encoded at header byte $0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM ONLY"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	default:
		return fmt.Sprintf("unknown ($%02X)", uint8(t))
	}
}

// hasBattery reports whether RAM for this mapper type should be persisted
// across runs.
func (t Type) hasBattery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3RAMBATT,
		MBC5RAMBATT, MBC5RUMBLERAMBATT:
		return true
	}
	return false
}

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024, // unofficial, some headers use it
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed cartridge header, $0100-$014F.
type Header struct {
	Title         string
	CartridgeType Type
	ROMBanks      uint
	RAMSize       uint
}

// ErrHeaderTooShort is returned by ParseHeader when the ROM image is too
// small to contain a header.
var ErrHeaderTooShort = fmt.Errorf("cartridge: ROM image shorter than header (0x150 bytes)")

// ParseHeader parses the header embedded in a full ROM image.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, ErrHeaderTooShort
	}
	h := Header{}

	title := rom[0x134:0x144]
	if i := indexOfZero(title); i >= 0 {
		title = title[:i]
	}
	h.Title = strings.TrimSpace(string(title))

	h.CartridgeType = Type(rom[0x147])

	// ROM size code: 32KiB * (1 << n) == (1<<n)*2 banks of 16KiB.
	h.ROMBanks = 2 << rom[0x148]

	h.RAMSize = ramSizes[rom[0x149]]

	return h, nil
}

func indexOfZero(b []byte) int {
	for i, v := range b {
		if v == 0 {
			return i
		}
	}
	return -1
}

func (h Header) String() string {
	return fmt.Sprintf("%s [%s] ROM banks: %d RAM: %dKiB", h.Title, h.CartridgeType, h.ROMBanks, h.RAMSize/1024)
}
