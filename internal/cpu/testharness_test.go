package cpu

import (
	"testing"

	"github.com/mrostron/gomeboy/internal/cartridge"
	"github.com/mrostron/gomeboy/internal/interrupts"
	"github.com/mrostron/gomeboy/internal/mmu"
	"github.com/mrostron/gomeboy/internal/ppu"
	"github.com/mrostron/gomeboy/internal/types"
)

// newTestROM builds the smallest valid ROM_ONLY image ParseHeader
// accepts: two 16KiB banks, header type $00, ROM-size code $00 (2
// banks), RAM-size code $00.
func newTestROM() []byte {
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = 0xFF
	}
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	return rom
}

// newTestCPU wires a CPU to a real Bus backed by a minimal ROM_ONLY
// cartridge, exactly as gameboy.New would, then loads prog into work
// RAM at $C000 and points PC there. Work RAM is used as scratch because
// it is plain read/write memory unconstrained by mapper semantics,
// leaving every test free to focus on the instruction under test.
func newTestCPU(t *testing.T, prog ...uint8) *CPU {
	t.Helper()
	cart, err := cartridge.New(newTestROM())
	if err != nil {
		t.Fatalf("building test cartridge: %v", err)
	}
	irq := interrupts.New()
	p := ppu.New(irq)
	bus := mmu.New(cart, p, irq, nil, nil)

	c := New(bus, irq)
	c.ApplyPostBootState()

	const base = types.WRAMStart
	for i, b := range prog {
		bus.Write(base+uint16(i), b)
	}
	c.PC = base
	return c
}
