// Command gomeboy runs a DMG ROM image against the gomeboy core,
// presenting frames through a chosen display backend.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrostron/gomeboy/internal/cartridge"
	"github.com/mrostron/gomeboy/internal/gameboy"
	"github.com/mrostron/gomeboy/internal/sav"
	"github.com/mrostron/gomeboy/pkg/display/ebiten"
	"github.com/mrostron/gomeboy/pkg/display/headless"
	"github.com/mrostron/gomeboy/pkg/display/sdl"
	"github.com/mrostron/gomeboy/pkg/log"
)

const (
	exitOK = iota
	exitConstructFailure
	exitLoadFailure
	exitUnsupportedMapper
)

// saveInterval is how often battery-backed RAM is flushed to disk while
// the emulator runs, independent of the mandatory save performed at
// shutdown.
const saveInterval = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	bootPath := flag.String("boot", "", "path to a boot ROM image")
	displayKind := flag.String("display", "ebiten", "display backend: ebiten, sdl, or none")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gomeboy [-boot path] [-display ebiten|sdl|none] <path-to-rom>")
		return exitLoadFailure
	}
	romPath := flag.Arg(0)

	logger := log.New()

	romImage, err := os.ReadFile(romPath)
	if err != nil {
		logger.Errorf("reading rom: %v", err)
		return exitLoadFailure
	}

	var opts []gameboy.Option
	opts = append(opts, gameboy.WithLogger(logger))

	if *bootPath != "" {
		bootImage, err := os.ReadFile(*bootPath)
		if err != nil {
			logger.Errorf("reading boot rom: %v", err)
			return exitLoadFailure
		}
		opts = append(opts, gameboy.WithBootROM(bootImage))
	}

	ramImage, err := sav.Load(sav.Path(romPath))
	if err != nil {
		logger.Errorf("loading save ram: %v", err)
	} else if ramImage != nil {
		opts = append(opts, gameboy.WithSavedRAM(ramImage))
	}

	gb, err := gameboy.New(romImage, opts...)
	if err != nil {
		var loadErr *cartridge.LoadError
		if errors.As(err, &loadErr) {
			logger.Errorf("loading rom: %v", loadErr)
			if loadErr.UnsupportedMapper {
				return exitUnsupportedMapper
			}
			return exitLoadFailure
		}
		logger.Errorf("constructing emulator: %v", err)
		return exitConstructFailure
	}
	logger.Infof("%s", gb)

	stopSaving := gb.SaveEvery(saveInterval, romPath)
	defer stopSaving()

	var runErr error
	switch *displayKind {
	case "sdl":
		display, err := sdl.New("gomeboy", logger)
		if err != nil {
			logger.Errorf("sdl display: %v", err)
			return exitConstructFailure
		}
		defer display.Close()
		runErr = gb.Run(display, display)
	case "none":
		display := headless.New(0)
		runErr = gb.Run(display, display)
	default:
		display := ebiten.New("gomeboy")
		errCh := make(chan error, 1)
		go func() { errCh <- gb.Run(display, display) }()
		if err := display.Run(); err != nil {
			logger.Errorf("display: %v", err)
		}
		runErr = <-errCh
	}

	if runErr != nil && !errors.Is(runErr, gameboy.ErrHostShutdown) {
		logger.Errorf("run stopped: %v", runErr)
	}

	if err := gb.SaveRAM(romPath); err != nil {
		logger.Errorf("saving ram: %v", err)
	}

	return exitOK
}
