package ppu

// shade maps a 2-bit palette index through the background palette
// register to a four-level grey shade.
func shade(palette, index uint8) uint8 {
	return (palette >> (index * 2)) & 0x03
}

// tileLine decodes one 8-pixel row of a tile (2 bytes, low-plane then
// high-plane) into eight 2-bit color indices, most significant pixel
// (bit 7) first.
func tileLine(lo, hi uint8) [8]uint8 {
	var row [8]uint8
	for n := uint8(0); n < 8; n++ {
		bitLo := (lo >> (7 - n)) & 1
		bitHi := (hi >> (7 - n)) & 1
		row[n] = bitLo | bitHi<<1
	}
	return row
}

// rasterize samples VRAM at the current frame edge and fills p.frame
// with the background layer, the only layer this core models.
func (p *PPU) rasterize() {
	unsignedTiles := p.lcdc&0x10 != 0
	tileDataBase := uint16(0x8800)
	if unsignedTiles {
		tileDataBase = 0x8000
	}

	mapBase := uint16(0x9800)
	if p.lcdc&0x08 != 0 {
		mapBase = 0x9C00
	}

	for y := 0; y < ScreenHeight; y++ {
		bgY := uint8(y) + p.scy
		tileRow := uint16(bgY / 8)
		lineInTile := uint16(bgY % 8)

		for x := 0; x < ScreenWidth; x++ {
			bgX := uint8(x) + p.scx
			tileCol := uint16(bgX / 8)
			colInTile := bgX % 8

			mapIndex := p.vram[mapBase-0x8000+tileRow*32+tileCol]

			var tileAddr uint16
			if unsignedTiles {
				tileAddr = tileDataBase + uint16(mapIndex)*16
			} else {
				tileAddr = uint16(int32(tileDataBase) + 0x800 + int32(int8(mapIndex))*16)
			}

			lo := p.vram[tileAddr-0x8000+lineInTile*2]
			hi := p.vram[tileAddr-0x8000+lineInTile*2+1]
			row := tileLine(lo, hi)

			p.frame[y][x] = shade(p.bgp, row[colInTile])
		}
	}
}
