package mmu

import (
	"testing"

	"github.com/mrostron/gomeboy/internal/boot"
	"github.com/mrostron/gomeboy/internal/cartridge"
	"github.com/mrostron/gomeboy/internal/interrupts"
	"github.com/mrostron/gomeboy/internal/ppu"
	"github.com/mrostron/gomeboy/internal/types"
)

func newTestCart(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = 0xFF
	}
	rom[0x147] = 0x00 // ROM_ONLY
	rom[0x148] = 0x00 // 2 banks
	rom[0x149] = 0x00 // no RAM
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatalf("building test cartridge: %v", err)
	}
	return cart
}

func TestEchoRAM_MirrorsWRAM(t *testing.T) {
	cart := newTestCart(t)
	irq := interrupts.New()
	p := ppu.New(irq)
	bus := New(cart, p, irq, nil, nil)

	bus.Write(0xC005, 0x42)
	if got := bus.Read(0xE005); got != 0x42 {
		t.Errorf("echo read = %#02x, want 0x42", got)
	}
	bus.Write(0xE010, 0x7E)
	if got := bus.Read(0xC010); got != 0x7E {
		t.Errorf("WRAM after echo write = %#02x, want 0x7E", got)
	}
}

func TestUnusableRegion_ReadsFFAndIgnoresWrites(t *testing.T) {
	cart := newTestCart(t)
	irq := interrupts.New()
	p := ppu.New(irq)
	bus := New(cart, p, irq, nil, nil)

	bus.Write(0xFEA5, 0x11)
	if got := bus.Read(0xFEA5); got != 0xFF {
		t.Errorf("unusable region read = %#02x, want 0xFF", got)
	}
}

func TestBootLatch_UnmapsPermanentlyOnAnyNonzeroWrite(t *testing.T) {
	cart := newTestCart(t)
	irq := interrupts.New()
	p := ppu.New(irq)
	bootROM, err := boot.New(make([]byte, 256))
	if err != nil {
		t.Fatalf("boot.New: %v", err)
	}
	bus := New(cart, p, irq, bootROM, nil)

	if got := bus.Read(0x0000); got != 0x00 {
		t.Errorf("boot ROM read = %#02x, want 0x00 (boot image is zeroed)", got)
	}

	bus.Write(types.BDIS, 0x01)
	if got := bus.Read(0x0000); got != 0xFF {
		t.Errorf("after boot disable, read = %#02x, want cartridge byte 0xFF", got)
	}

	bus.Write(types.BDIS, 0x00) // any subsequent write must not re-latch it on
	if got := bus.Read(0x0000); got != 0xFF {
		t.Errorf("boot ROM window must stay unmapped once disabled, got %#02x", got)
	}
}

func TestRunDMA_CopiesIntoOAM(t *testing.T) {
	cart := newTestCart(t)
	irq := interrupts.New()
	p := ppu.New(irq)
	bus := New(cart, p, irq, nil, nil)

	for i := 0; i < 160; i++ {
		bus.Write(0xC100+uint16(i), uint8(i))
	}
	bus.Write(types.DMA, 0xC1)

	for i := 0; i < 160; i++ {
		if got := bus.Read(0xFE00 + uint16(i)); got != uint8(i) {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, got, uint8(i))
		}
	}
}

func TestIE_RoutesThroughInterruptController(t *testing.T) {
	cart := newTestCart(t)
	irq := interrupts.New()
	p := ppu.New(irq)
	bus := New(cart, p, irq, nil, nil)

	bus.Write(types.IE, 0x1F)
	if irq.Enable != 0x1F {
		t.Errorf("irq.Enable = %#02x, want 0x1F", irq.Enable)
	}
	if got := bus.Read(types.IE); got != 0x1F {
		t.Errorf("IE read = %#02x, want 0x1F", got)
	}
}

func TestUnmappedIO_AcceptsWritesAndReadsBackVerbatim(t *testing.T) {
	cart := newTestCart(t)
	irq := interrupts.New()
	p := ppu.New(irq)
	bus := New(cart, p, irq, nil, nil)

	bus.Write(types.TIMA, 0x37)
	if got := bus.Read(types.TIMA); got != 0x37 {
		t.Errorf("TIMA read = %#02x, want 0x37", got)
	}
}
