// Package ppu implements the frame-timing driver and background-only
// rasterizer described by the spec: LY advancement, VBlank scheduling,
// and a frame-edge sampling of VRAM into a displayable image. It does
// not implement a pixel FIFO, sprites, or the window layer.
package ppu

import (
	"github.com/mrostron/gomeboy/internal/interrupts"
	"github.com/mrostron/gomeboy/internal/types"
)

const (
	// ScreenWidth is the number of visible pixels per scanline.
	ScreenWidth = 160
	// ScreenHeight is the number of visible scanlines.
	ScreenHeight = 144
	// ticksPerLine is the coarse tick budget per scanline: the spec
	// models one CPU instruction as one tick, and allots ~456 of them
	// per line, which is the real hardware's per-scanline dot count
	// reused here as a coarse instruction-count budget.
	ticksPerLine = 456
	totalLines   = 154
)

// Frame is a fully rasterized picture: four-level grey shades (0 =
// lightest, 3 = darkest) after palette translation, ready to hand to a
// presentation sink.
type Frame [ScreenHeight][ScreenWidth]uint8

// PPU owns video RAM, OAM, the LCD registers, and the LY/VBlank timing
// state. It implements the VRAM ($8000-$9FFF) and OAM ($FE00-$FE9F)
// portions of the bus contract.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat      uint8
	scy, scx        uint8
	ly, lyc         uint8
	bgp, obp0, obp1 uint8
	wy, wx          uint8

	irq *interrupts.Controller

	lineTicks uint32

	frame      Frame
	frameReady bool
}

// New returns a PPU wired to the given interrupt controller, with the
// documented post-boot register values.
func New(irq *interrupts.Controller) *PPU {
	return &PPU{
		irq:  irq,
		lcdc: 0x91,
		bgp:  0xFC,
	}
}

// Tick advances the timing driver by one coarse tick (one executed
// instruction, per the spec's simplified model). Every ticksPerLine
// ticks, LY advances by one line; reaching line 144 raises the VBlank
// interrupt; wrapping from 153 back to 0 rasterizes the background into
// a fresh Frame.
func (p *PPU) Tick() {
	p.lineTicks++
	if p.lineTicks < ticksPerLine {
		return
	}
	p.lineTicks = 0

	p.ly++
	if p.ly == ScreenHeight {
		p.irq.Request(interrupts.VBlankBit)
	}
	if p.ly == totalLines {
		p.ly = 0
		p.rasterize()
		p.frameReady = true
	}
}

// FrameReady reports whether a new frame has been rasterized since the
// last call to TakeFrame.
func (p *PPU) FrameReady() bool { return p.frameReady }

// TakeFrame returns the most recently rasterized frame and clears the
// ready flag.
func (p *PPU) TakeFrame() Frame {
	p.frameReady = false
	return p.frame
}

// ReadVRAM returns the byte at the given VRAM-relative offset ($0000-$1FFF).
func (p *PPU) ReadVRAM(offset uint16) uint8 { return p.vram[offset] }

// WriteOAM stores value at the given OAM-relative offset ($00-$9F). Used
// directly by the bus's DMA implementation.
func (p *PPU) WriteOAM(offset uint8, value uint8) { p.oam[offset] = value }

// Read implements the bus contract for VRAM and OAM addresses.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		return p.vram[address-types.VRAMStart]
	case address >= types.OAMStart && address <= types.OAMEnd:
		return p.oam[address-types.OAMStart]
	}
	return 0xFF
}

// Write implements the bus contract for VRAM and OAM addresses.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		p.vram[address-types.VRAMStart] = value
	case address >= types.OAMStart && address <= types.OAMEnd:
		p.oam[address-types.OAMStart] = value
	}
}

// ReadRegister returns the value of the given LCD I/O register.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		return p.stat | 0x80
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}
	return 0xFF
}

// WriteRegister stores value into the given LCD I/O register. Writes to
// LY always clear it to 0, regardless of value, per the spec.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case types.LCDC:
		p.lcdc = value
	case types.STAT:
		p.stat = value & 0x78
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		p.ly = 0
	case types.LYC:
		p.lyc = value
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	}
}

// IsRegister reports whether address names one of the LCD registers
// handled by ReadRegister/WriteRegister.
func IsRegister(address uint16) bool {
	switch address {
	case types.LCDC, types.STAT, types.SCY, types.SCX, types.LY, types.LYC,
		types.BGP, types.OBP0, types.OBP1, types.WY, types.WX:
		return true
	}
	return false
}
