// Package sav persists battery-backed cartridge RAM to an adjacent
// ".sav" file, compressed with brotli the way the teacher compresses its
// save-state payloads.
package sav

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/brotli/go/cbrotli"
)

// Path returns the save-file path for a ROM at romPath: same directory
// and basename, ".sav" extension.
func Path(romPath string) string {
	base := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	return filepath.Join(filepath.Dir(romPath), base+".sav")
}

// Load reads and decompresses the save file at path. A missing file is
// not an error: it is treated as zero-initialized RAM (nil, nil).
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return cbrotli.Decode(raw)
}

// Save compresses ram and writes it to path, creating or truncating the
// file as needed.
func Save(path string, ram []byte) error {
	if len(ram) == 0 {
		return nil
	}
	encoded, err := cbrotli.Encode(ram, cbrotli.WriterOptions{Quality: 9})
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}
