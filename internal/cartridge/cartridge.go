// Package cartridge provides the byte-addressable view of a ROM image
// plus its optional external RAM, with bank registers mutated by writes
// into specific ROM-address windows. See internal/cartridge/mbc*.go for
// the individual mapper families.
package cartridge

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash"
)

// LoadError is returned by New when a ROM image cannot be loaded: it is
// truncated, or its header names an unsupported mapper. This is fatal
// to the caller and is never retried. UnsupportedMapper distinguishes
// the two so callers (e.g. the CLI) can report a distinct exit code.
type LoadError struct {
	Reason            string
	UnsupportedMapper bool
}

func (e *LoadError) Error() string { return "cartridge: " + e.Reason }

// Cartridge is the byte-addressable view of ROM (+ external RAM) used by
// the memory bus. All reads/writes into $0000-$7FFF and $A000-$BFFF are
// forwarded to the selected MemoryBankController.
type Cartridge struct {
	MemoryBankController
	header   Header
	checksum string
}

// New parses the header of rom and constructs the appropriate mapper. An
// unsupported mapper byte or a too-small image yields a *LoadError.
func New(rom []byte) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, &LoadError{Reason: err.Error()}
	}

	var mbc MemoryBankController
	switch header.CartridgeType {
	case ROM:
		mbc = newROMOnly(rom)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		mbc = newMBC1(rom, header.RAMSize)
	case MBC2, MBC2BATT:
		mbc = newMBC2(rom)
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		mbc = newMBC3(rom, header.RAMSize)
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		mbc = newMBC5(rom, header.RAMSize)
	default:
		return nil, &LoadError{
			Reason:            fmt.Sprintf("unsupported cartridge type %s ($%02X)", header.CartridgeType, uint8(header.CartridgeType)),
			UnsupportedMapper: true,
		}
	}

	sum := xxhash.Sum64(rom)
	sumBytes := []byte{
		byte(sum >> 56), byte(sum >> 48), byte(sum >> 40), byte(sum >> 32),
		byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum),
	}
	return &Cartridge{
		MemoryBankController: mbc,
		header:               header,
		checksum:             hex.EncodeToString(sumBytes),
	}, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header { return c.header }

// Title returns the cartridge's title field.
func (c *Cartridge) Title() string { return c.header.Title }

// HasBattery reports whether this cartridge's external RAM should be
// persisted across runs.
func (c *Cartridge) HasBattery() bool { return c.header.CartridgeType.hasBattery() }

// Filename returns a hex xxhash of the full ROM image, an identifier
// that tells apart two carts sharing a title. Save files are not named
// from it: sav.Path derives them from the ROM file's own path.
func (c *Cartridge) Filename() string {
	return c.checksum
}
