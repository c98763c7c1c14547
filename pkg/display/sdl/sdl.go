// Package sdl adapts a GameBoy's output to an SDL2 window, as an
// alternative to the Ebitengine-backed display for hosts that already
// depend on go-sdl2 elsewhere in their toolchain.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mrostron/gomeboy/internal/ppu"
	"github.com/mrostron/gomeboy/pkg/log"
)

const scale = 4

// shadeRGB mirrors the Ebitengine adapter's palette so a ROM looks the
// same regardless of which display backend is chosen.
var shadeRGB = [4][3]uint8{
	{0xE0, 0xF8, 0xD0},
	{0x88, 0xC0, 0x70},
	{0x34, 0x68, 0x56},
	{0x08, 0x18, 0x20},
}

// Display owns an SDL window, renderer, and streaming texture sized to
// the DMG screen. Unlike the Ebitengine adapter, SDL's event pump and
// rendering must both happen on the thread that created the window, so
// Present draws each frame immediately and PollEvents pumps events
// directly; both are called from the caller's own loop.
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	log      log.Logger

	pixels [ppu.ScreenHeight * ppu.ScreenWidth * 4]byte
	quit   bool
}

// New initializes SDL's video subsystem and creates the window. Close
// must be called when done.
func New(title string, logger log.Logger) (*Display, error) {
	if logger == nil {
		logger = log.NewNull()
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		ppu.ScreenWidth*scale, ppu.ScreenHeight*scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create texture: %w", err)
	}

	return &Display{window: window, renderer: renderer, texture: texture, log: logger}, nil
}

// Present implements gameboy.Presenter. It converts the frame into the
// pixel buffer, uploads it to the texture, and presents the renderer.
func (d *Display) Present(frame ppu.Frame) {
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			rgb := shadeRGB[frame[y][x]&3]
			i := (y*ppu.ScreenWidth + x) * 4
			d.pixels[i+0] = rgb[0]
			d.pixels[i+1] = rgb[1]
			d.pixels[i+2] = rgb[2]
			d.pixels[i+3] = 0xFF
		}
	}
	if err := d.texture.Update(nil, d.pixels[:], ppu.ScreenWidth*4); err != nil {
		d.log.Errorf("sdl: texture update: %v", err)
		return
	}
	d.renderer.Clear()
	d.renderer.Copy(d.texture, nil, nil)
	d.renderer.Present()
}

// PollEvents implements gameboy.EventSource.
func (d *Display) PollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			d.quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				d.quit = true
			}
		}
	}
	return d.quit
}

// Close releases the texture, renderer, window, and video subsystem.
func (d *Display) Close() {
	d.texture.Destroy()
	d.renderer.Destroy()
	d.window.Destroy()
	sdl.Quit()
}
