// Package headless provides a gameboy.Presenter/EventSource pair with
// no window system at all, for automated runs and tests: frames are
// kept in memory rather than drawn, and shutdown is driven by a
// FrameLimit or an explicit Stop call instead of window events.
package headless

import (
	"sync"

	"github.com/mrostron/gomeboy/internal/ppu"
)

// Display accumulates frames and reports quit once FrameLimit frames
// have been presented (0 means unbounded, rely on Stop instead).
type Display struct {
	mu         sync.Mutex
	last       ppu.Frame
	count      int
	FrameLimit int
	stopped    bool
}

// New constructs a Display. A FrameLimit of 0 runs until Stop is
// called.
func New(frameLimit int) *Display {
	return &Display{FrameLimit: frameLimit}
}

// Present implements gameboy.Presenter.
func (d *Display) Present(frame ppu.Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = frame
	d.count++
}

// PollEvents implements gameboy.EventSource.
func (d *Display) PollEvents() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return true
	}
	return d.FrameLimit > 0 && d.count >= d.FrameLimit
}

// Stop requests termination on the next PollEvents call.
func (d *Display) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

// LastFrame returns the most recently presented frame and how many
// frames have been presented so far.
func (d *Display) LastFrame() (ppu.Frame, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.count
}
