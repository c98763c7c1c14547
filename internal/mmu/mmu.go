// Package mmu implements the single read/write façade the CPU uses to
// touch everything outside its own register file: boot ROM, cartridge,
// video RAM, work RAM, OAM, I/O registers, HRAM, and the interrupt
// registers. There is no hidden aliasing — every instruction's memory
// effect is fully described by the Read/Write calls it issues.
package mmu

import (
	"github.com/mrostron/gomeboy/internal/boot"
	"github.com/mrostron/gomeboy/internal/cartridge"
	"github.com/mrostron/gomeboy/internal/interrupts"
	"github.com/mrostron/gomeboy/internal/ppu"
	"github.com/mrostron/gomeboy/internal/types"
	"github.com/mrostron/gomeboy/pkg/log"
)

// Bus is the memory-mapped address space of the machine.
type Bus struct {
	boot        *boot.ROM
	bootLatched bool // once true, boot ROM is unmapped for the remainder of the run

	Cart *cartridge.Cartridge
	PPU  *ppu.PPU
	IRQ  *interrupts.Controller

	wram [0x2000]byte
	hram [0x7F]byte

	// io holds the registers this core stores but does not give
	// behavior to (timer, serial, joypad, APU): writes are accepted
	// and read back verbatim, matching real hardware's don't-care
	// registers for functionality this core's scope excludes.
	io map[uint16]uint8

	log log.Logger
}

// New constructs a Bus over the given cartridge and PPU, optionally with
// a boot ROM. If boot is nil, the boot-ROM window is considered already
// latched off (the caller is expected to have applied the post-boot
// register snapshot itself).
func New(cart *cartridge.Cartridge, p *ppu.PPU, irq *interrupts.Controller, bootROM *boot.ROM, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNull()
	}
	b := &Bus{
		boot:        bootROM,
		bootLatched: bootROM == nil,
		Cart:        cart,
		PPU:         p,
		IRQ:         irq,
		io:          make(map[uint16]uint8),
		log:         logger,
	}
	b.applyPostBootIO()
	return b
}

// applyPostBootIO seeds the documented I/O register values used when no
// boot ROM runs (spec §6, "Post-boot register snapshot").
func (b *Bus) applyPostBootIO() {
	b.io[0xFF05] = 0x00 // TIMA
	b.io[0xFF06] = 0x00 // TMA
	b.io[0xFF07] = 0x00 // TAC
	b.io[0xFF10] = 0x80 // NR10
	b.io[0xFF11] = 0xBF // NR11
	b.io[0xFF12] = 0xF3 // NR12
	b.io[0xFF14] = 0xBF // NR14
}

// Read returns the byte visible to the guest at address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= types.BootROMEnd:
		if !b.bootLatched {
			return b.boot.Read(address)
		}
		return b.Cart.Read(address)
	case address <= types.CartSwitchEnd:
		return b.Cart.Read(address)
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		return b.PPU.Read(address)
	case address >= types.CartRAMStart && address <= types.CartRAMEnd:
		return b.Cart.Read(address)
	case address >= types.WRAMStart && address <= types.WRAMEnd:
		return b.wram[address-types.WRAMStart]
	case address >= types.EchoStart && address <= types.EchoEnd:
		return b.wram[address-types.EchoStart]
	case address >= types.OAMStart && address <= types.OAMEnd:
		return b.PPU.Read(address)
	case address >= types.UnusableStart && address <= types.UnusableEnd:
		return 0xFF
	case address >= types.IOStart && address <= types.IOEnd:
		return b.readIO(address)
	case address >= types.HRAMStart && address <= types.HRAMEnd:
		return b.hram[address-types.HRAMStart]
	case address == types.IE:
		return b.IRQ.Read(address)
	}
	return 0xFF
}

func (b *Bus) readIO(address uint16) uint8 {
	if ppu.IsRegister(address) {
		return b.PPU.ReadRegister(address)
	}
	if address == types.IF {
		return b.IRQ.Read(address)
	}
	if v, ok := b.io[address]; ok {
		return v
	}
	return 0xFF
}

// Write stores value at address, applying the bus's special-cased
// registers (LY, DMA, boot latch, IF) along the way.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= types.CartSwitchEnd:
		// Writes into ROM space are never memory writes; they are
		// mapper control operations.
		b.Cart.Write(address, value)
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		b.PPU.Write(address, value)
	case address >= types.CartRAMStart && address <= types.CartRAMEnd:
		b.Cart.Write(address, value)
	case address >= types.WRAMStart && address <= types.WRAMEnd:
		b.wram[address-types.WRAMStart] = value
	case address >= types.EchoStart && address <= types.EchoEnd:
		b.wram[address-types.EchoStart] = value
	case address >= types.OAMStart && address <= types.OAMEnd:
		b.PPU.Write(address, value)
	case address >= types.UnusableStart && address <= types.UnusableEnd:
		// writes silently ignored
	case address >= types.IOStart && address <= types.IOEnd:
		b.writeIO(address, value)
	case address >= types.HRAMStart && address <= types.HRAMEnd:
		b.hram[address-types.HRAMStart] = value
	case address == types.IE:
		b.IRQ.Write(address, value)
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch address {
	case types.DMA:
		b.runDMA(value)
		return
	case types.BDIS:
		if value != 0 {
			b.bootLatched = true
		}
		return
	case types.IF:
		b.IRQ.Write(address, value)
		return
	}
	if ppu.IsRegister(address) {
		b.PPU.WriteRegister(address, value)
		return
	}
	// unrecognized I/O write: accepted silently, not a BusViolation.
	b.io[address] = value
}

// runDMA performs the 160-byte copy from src*0x100 into OAM, atomically
// with respect to instruction stepping.
func (b *Bus) runDMA(src uint8) {
	base := uint16(src) << 8
	for i := uint16(0); i < 160; i++ {
		b.PPU.WriteOAM(uint8(i), b.Read(base+i))
	}
}
