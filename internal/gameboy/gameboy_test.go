package gameboy

import (
	"errors"
	"testing"

	"github.com/mrostron/gomeboy/internal/cpu"
	"github.com/mrostron/gomeboy/pkg/display/headless"
)

// newLoopROM builds the smallest valid ROM_ONLY image whose entry point
// at $0100 is a tight backward JR, so Run has something to step forever
// without ever hitting a DecodeError.
func newLoopROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x100] = 0x18 // JR -2
	rom[0x101] = 0xFE
	rom[0x147] = 0x00 // ROM_ONLY
	rom[0x148] = 0x00 // 2 banks
	rom[0x149] = 0x00 // no RAM
	return rom
}

func TestRun_PresentsFramesAndStopsOnHostShutdown(t *testing.T) {
	gb, err := New(newLoopROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	display := headless.New(3)
	err = gb.Run(display, display)
	if err != ErrHostShutdown {
		t.Fatalf("Run error = %v, want ErrHostShutdown", err)
	}

	_, count := display.LastFrame()
	if count != 3 {
		t.Errorf("frames presented = %d, want 3", count)
	}
}

func TestRun_StopsImmediatelyOnDecodeError(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x100] = 0xD3 // illegal opcode
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00

	var caught *cpu.DecodeError
	gb, err := New(rom, WithDecodeErrorHandler(func(e *cpu.DecodeError) {
		caught = e
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	display := headless.New(0)
	runErr := gb.Run(display, display)
	var decErr *cpu.DecodeError
	if !errors.As(runErr, &decErr) {
		t.Fatalf("Run error = %v, want a *cpu.DecodeError", runErr)
	}
	if caught == nil {
		t.Error("expected the DecodeErrorHandler to have been invoked")
	}
}

func TestString_IncludesCartridgeHeader(t *testing.T) {
	gb, err := New(newLoopROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := gb.String(); got == "" {
		t.Error("String() returned empty")
	}
}

func TestSaveRAM_NoOpWithoutBattery(t *testing.T) {
	gb, err := New(newLoopROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := gb.SaveRAM("/tmp/does-not-matter.gb"); err != nil {
		t.Errorf("SaveRAM = %v, want nil for a batteryless cartridge", err)
	}
}
