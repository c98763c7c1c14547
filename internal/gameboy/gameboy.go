// Package gameboy composes the cartridge, bus, interrupt controller,
// CPU, and PPU into a runnable machine, and drives the outer loop: CPU
// step -> frame-timing tick -> (on VBlank wrap) rasterize -> present,
// with the host's poll_events call made once per outer-loop iteration
// rather than once per instruction.
package gameboy

import (
	"errors"
	"fmt"
	"time"

	"github.com/mrostron/gomeboy/internal/boot"
	"github.com/mrostron/gomeboy/internal/cartridge"
	"github.com/mrostron/gomeboy/internal/cpu"
	"github.com/mrostron/gomeboy/internal/interrupts"
	"github.com/mrostron/gomeboy/internal/mmu"
	"github.com/mrostron/gomeboy/internal/ppu"
	"github.com/mrostron/gomeboy/internal/sav"
	"github.com/mrostron/gomeboy/pkg/log"
)

// Presenter receives a completed frame at each VBlank wrap. Out of
// scope for this core beyond the interface itself: concrete adapters
// live in pkg/display.
type Presenter interface {
	Present(frame ppu.Frame)
}

// EventSource is polled once per outer-loop iteration. It reports only
// whether the host wants to terminate the run; joypad/input plumbing is
// a non-goal of this core.
type EventSource interface {
	PollEvents() (quit bool)
}

// DecodeErrorHandler is invoked when the CPU encounters an undocumented
// opcode (spec §7's DecodeFailure). The run terminates immediately
// after this callback returns.
type DecodeErrorHandler func(err *cpu.DecodeError)

// GameBoy is the composed machine.
type GameBoy struct {
	Cart *cartridge.Cartridge
	Bus  *mmu.Bus
	IRQ  *interrupts.Controller
	CPU  *cpu.CPU
	PPU  *ppu.PPU

	log         log.Logger
	onDecodeErr DecodeErrorHandler
}

// Option configures a GameBoy at construction time.
type Option func(*options)

type options struct {
	bootROM     []byte
	ramSnapshot []byte
	logger      log.Logger
	onDecodeErr DecodeErrorHandler
}

// WithBootROM supplies an authentic 256-byte boot ROM to run instead of
// snapping directly to the post-boot register state.
func WithBootROM(rom []byte) Option {
	return func(o *options) { o.bootROM = rom }
}

// WithSavedRAM seeds the cartridge's external RAM from a previously
// persisted image (see internal/sav).
func WithSavedRAM(data []byte) Option {
	return func(o *options) { o.ramSnapshot = data }
}

// WithLogger overrides the default logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDecodeErrorHandler registers a callback for DecodeFailure (spec
// §7). If omitted, decode errors are only returned from Run.
func WithDecodeErrorHandler(h DecodeErrorHandler) Option {
	return func(o *options) { o.onDecodeErr = h }
}

// New constructs a GameBoy over romImage, applying any Options. An
// unsupported mapper or truncated ROM yields a *cartridge.LoadError
// (spec's LoadFailure, fatal to the caller).
func New(romImage []byte, opts ...Option) (*GameBoy, error) {
	o := &options{logger: log.NewNull()}
	for _, opt := range opts {
		opt(o)
	}

	cart, err := cartridge.New(romImage)
	if err != nil {
		return nil, err
	}
	if o.ramSnapshot != nil {
		cart.LoadRAM(o.ramSnapshot)
	}

	irq := interrupts.New()
	p := ppu.New(irq)

	var bootROM *boot.ROM
	if o.bootROM != nil {
		bootROM, err = boot.New(o.bootROM)
		if err != nil {
			return nil, &cartridge.LoadError{Reason: err.Error()}
		}
	}

	bus := mmu.New(cart, p, irq, bootROM, o.logger)
	c := cpu.New(bus, irq)
	if bootROM == nil {
		c.ApplyPostBootState()
	}

	return &GameBoy{
		Cart:        cart,
		Bus:         bus,
		IRQ:         irq,
		CPU:         c,
		PPU:         p,
		log:         o.logger,
		onDecodeErr: o.onDecodeErr,
	}, nil
}

// ErrHostShutdown is returned by Run when the host's EventSource asked
// to terminate. It is not a failure (spec §7's HostShutdown).
var ErrHostShutdown = errors.New("gameboy: host requested shutdown")

// Run drives the machine until either a DecodeError occurs or the host
// requests shutdown. Each outer-loop iteration executes CPU steps until
// a complete frame has been rasterized, presents it, and then polls the
// host exactly once.
func (g *GameBoy) Run(present Presenter, events EventSource) error {
	for {
		for !g.PPU.FrameReady() {
			if err := g.CPU.Step(); err != nil {
				var decErr *cpu.DecodeError
				if errors.As(err, &decErr) {
					g.log.Errorf("halting run: %v", decErr)
					if g.onDecodeErr != nil {
						g.onDecodeErr(decErr)
					}
				}
				return err
			}
			g.PPU.Tick()
		}
		present.Present(g.PPU.TakeFrame())

		if events.PollEvents() {
			return ErrHostShutdown
		}
	}
}

// String renders a short human-readable summary, used by the CLI at
// startup to confirm what loaded.
func (g *GameBoy) String() string {
	return fmt.Sprintf("gomeboy: %s", g.Cart.Header())
}

// SaveRAM persists the cartridge's battery-backed RAM to romPath's
// companion .sav file. It is a no-op for cartridges with no battery or
// no external RAM.
func (g *GameBoy) SaveRAM(romPath string) error {
	if !g.Cart.HasBattery() {
		return nil
	}
	ram := g.Cart.RAM()
	if len(ram) == 0 {
		return nil
	}
	return sav.Save(sav.Path(romPath), ram)
}

// SaveEvery starts a background ticker that calls SaveRAM(romPath) every
// d, logging (rather than failing the run on) any write error. It
// returns a stop function that halts the ticker; callers should still
// call SaveRAM once more after Run returns, since the ticker will not
// fire exactly at shutdown.
func (g *GameBoy) SaveEvery(d time.Duration, romPath string) (stop func()) {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := g.SaveRAM(romPath); err != nil {
					g.log.Errorf("periodic save: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
