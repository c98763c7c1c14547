// Package cpu implements the fetch/decode/execute loop for the Game
// Boy's Sharp SM83 core: the register file, flag arithmetic, the
// CB-prefix sub-decoder, and the HALT/STOP/interrupt interaction.
package cpu

import (
	"fmt"

	"github.com/mrostron/gomeboy/internal/interrupts"
	"github.com/mrostron/gomeboy/internal/mmu"
	"github.com/mrostron/gomeboy/internal/types"
)

// mode is the CPU's run state.
type mode uint8

const (
	modeRunning mode = iota
	modeHalted
	modeStopped
	// modeHaltBug models the documented HALT bug: HALT executed with
	// IME=0 and an interrupt already pending leaves the CPU running
	// but fails to advance PC past the following opcode, so that
	// instruction effectively executes twice.
	modeHaltBug
	// modeEnableIME models EI's delayed effect: IME is armed here and
	// takes effect only after the next instruction has executed.
	modeEnableIME
)

// DecodeError is reported when the fetched opcode is one of the
// documented "disallowed" bytes the real hardware locks up on. The core
// logs it and terminates the run rather than the process.
type DecodeError struct {
	PC     uint16
	Opcode uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode $%02X at $%04X", e.Opcode, e.PC)
}

// CPU is the Sharp SM83 interpreter core.
type CPU struct {
	types.Registers
	PC, SP uint16

	IME bool

	mode mode
	bus  *mmu.Bus
	irq  *interrupts.Controller

	// Halted is exported so tests / drivers can observe the wait
	// state without reaching into the mode field.
	Halted bool
}

// New returns a CPU wired to bus and irq, with registers zeroed. Callers
// are expected to follow with either a boot-ROM run or ApplyPostBootState.
func New(bus *mmu.Bus, irq *interrupts.Controller) *CPU {
	c := &CPU{bus: bus, irq: irq}
	c.Registers.Init()
	return c
}

// ApplyPostBootState snaps the register file and I/O latches to the
// documented values used when no boot ROM is supplied (spec §6).
func (c *CPU) ApplyPostBootState() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.bus.Write(types.LCDC, 0x91)
	c.bus.Write(types.BGP, 0xFC)
	c.bus.Write(types.IE, 0x00)
}

// fetch reads the byte at PC and advances PC by one.
func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian 16-bit immediate at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

// push writes a 16-bit value to the stack, high byte first, predecrementing SP.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop reads a 16-bit value off the stack, postincrementing SP.
func (c *CPU) pop() uint16 {
	lo := uint16(c.bus.Read(c.SP))
	c.SP++
	hi := uint16(c.bus.Read(c.SP))
	c.SP++
	return hi<<8 | lo
}

// Step executes one unit of CPU work and returns any DecodeError
// encountered. A single call may: run one instruction, service a
// pending interrupt, or (while halted/stopped) simply observe that the
// CPU remains waiting.
func (c *CPU) Step() error {
	switch c.mode {
	case modeHalted, modeStopped:
		if !c.irq.Pending() {
			return nil
		}
		// waking from HALT lands exactly at an instruction boundary,
		// with nothing fetched yet this step: fall through to the
		// interrupt check below without executing an instruction.
		c.mode = modeRunning
		c.Halted = false
	case modeEnableIME:
		c.IME = true
		c.mode = modeRunning
		if err := c.step(); err != nil {
			return err
		}
	case modeHaltBug:
		// the opcode at PC is fetched but PC does not advance past it,
		// so the next Step re-executes the same instruction.
		pc := c.PC
		if err := c.step(); err != nil {
			return err
		}
		c.PC = pc
		c.mode = modeRunning
	default:
		if err := c.step(); err != nil {
			return err
		}
	}

	if c.IME && c.irq.Pending() {
		c.serviceInterrupt()
	}
	return nil
}

// step fetches and executes exactly one instruction.
func (c *CPU) step() error {
	pc := c.PC
	opcode := c.fetch()
	if opcode == 0xCB {
		cb := c.fetch()
		c.executeCB(cb)
		return nil
	}
	if isIllegalOpcode(opcode) {
		return &DecodeError{PC: pc, Opcode: opcode}
	}
	c.execute(opcode)
	return nil
}

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt: pushes PC, clears IF's bit and IME, and jumps to the vector.
func (c *CPU) serviceInterrupt() {
	bit, ok := c.irq.NextBit()
	if !ok {
		return
	}
	c.irq.Clear(bit)
	c.IME = false
	c.push(c.PC)
	c.PC = c.irq.Vector(bit)
	if c.mode == modeHalted || c.mode == modeStopped {
		c.mode = modeRunning
		c.Halted = false
	}
}

func isIllegalOpcode(opcode uint8) bool {
	switch opcode {
	case 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD:
		return true
	}
	return false
}

// registerIndex returns a pointer to the 8-bit register named by the
// structural 3-bit encoding used throughout the instruction set: 0=B,
// 1=C, 2=D, 3=E, 4=H, 5=L, 7=A. Encoding 6, "(HL)", is handled by the
// decoder as a bus access and never reaches this function.
func (c *CPU) registerIndex(index uint8) *uint8 {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("cpu: invalid register index %d", index))
}
