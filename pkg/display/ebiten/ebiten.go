// Package ebiten adapts a GameBoy's output to an Ebitengine window. It
// satisfies gameboy.Presenter and gameboy.EventSource, so the emulation
// loop and the window loop run on separate goroutines: Present copies a
// finished frame into a shared buffer under a mutex, and Ebitengine's
// own Update/Draw callbacks read it back out on its own schedule.
package ebiten

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/mrostron/gomeboy/internal/ppu"
)

// shadeRGBA maps the four DMG grey levels produced by the renderer to
// the classic green-tinted palette.
var shadeRGBA = [4]color.RGBA{
	{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF},
	{R: 0x88, G: 0xC0, B: 0x70, A: 0xFF},
	{R: 0x34, G: 0x68, B: 0x56, A: 0xFF},
	{R: 0x08, G: 0x18, B: 0x20, A: 0xFF},
}

const scale = 4

// Display is a ebiten.Game driving a window sized to the DMG screen,
// scaled up for visibility. The native 160x144 frame is upscaled by the
// fixed factor `scale` with x/image/draw's nearest-neighbor scaler before
// it touches the GPU-backed ebiten.Image, rather than through ebiten's
// own GeoM scaling. The window is not resizable.
type Display struct {
	title string

	mu    sync.Mutex
	frame ppu.Frame
	dirty bool

	closing atomic.Bool

	native *image.RGBA
	scaled *image.RGBA
	img    *ebiten.Image
}

// New constructs a Display. Call Run to start the window's event loop;
// it blocks until the window is closed, so it should run on its own
// goroutine alongside the GameBoy's own Run loop.
func New(title string) *Display {
	return &Display{
		title:  title,
		native: image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight)),
		scaled: image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*scale, ppu.ScreenHeight*scale)),
		img:    ebiten.NewImage(ppu.ScreenWidth*scale, ppu.ScreenHeight*scale),
	}
}

// Present implements gameboy.Presenter.
func (d *Display) Present(frame ppu.Frame) {
	d.mu.Lock()
	d.frame = frame
	d.dirty = true
	d.mu.Unlock()
}

// PollEvents implements gameboy.EventSource.
func (d *Display) PollEvents() bool {
	return d.closing.Load()
}

// Run starts the Ebitengine window loop on the calling goroutine. It
// returns once the window has been closed.
func (d *Display) Run() error {
	ebiten.SetWindowSize(ppu.ScreenWidth*scale, ppu.ScreenHeight*scale)
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	err := ebiten.RunGame(d)
	d.closing.Store(true)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (d *Display) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (d *Display) Draw(screen *ebiten.Image) {
	d.mu.Lock()
	if !d.dirty {
		d.mu.Unlock()
		screen.DrawImage(d.img, nil)
		return
	}
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			d.native.SetRGBA(x, y, shadeRGBA[d.frame[y][x]&3])
		}
	}
	d.dirty = false
	d.mu.Unlock()

	draw.NearestNeighbor.Scale(d.scaled, d.scaled.Bounds(), d.native, d.native.Bounds(), draw.Src, nil)
	d.img.WritePixels(d.scaled.Pix)
	screen.DrawImage(d.img, nil)
}

// Layout implements ebiten.Game.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenWidth * scale, ppu.ScreenHeight * scale
}
