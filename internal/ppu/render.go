package ppu

import (
	"sort"
)

// RenderFrame composes one full frame into the framebuffer from the
// background, window, and sprite layers. When the LCD is disabled the
// framebuffer is left untouched.
func (p *PPU) RenderFrame() {
	if p.LCDCReg&LCDCDisplayEnable == 0 {
		return
	}

	for i := range p.bgIndex {
		p.bgIndex[i] = 0
	}

	if p.LCDCReg&LCDCBGEnable != 0 {
		p.renderBackground()
	}

	// The window is a second background layer; it only draws when the
	// background layer itself is on
	if p.LCDCReg&LCDCWindowEnable != 0 && p.LCDCReg&LCDCBGEnable != 0 {
		p.renderWindow()
	}

	if p.LCDCReg&LCDCOBJEnable != 0 {
		p.renderSprites()
	}
}

// tilePixel decodes the color index of pixel (x, y) of the tile whose
// 16 bytes start at tileAddr. Each row is two interleaved bitplanes:
// the low plane first, the high plane second, pixel 0 at bit 7.
func (p *PPU) tilePixel(tileAddr int, x, y int) uint8 {
	low := (p.VRAM[tileAddr+y*2] >> (7 - uint(x))) & 1
	high := (p.VRAM[tileAddr+y*2+1] >> (7 - uint(x))) & 1
	return (high << 1) | low
}

// mapShade resolves a tile color index through a palette-mapping
// register to a displayed shade
func mapShade(reg uint8, colorIndex uint8) uint8 {
	return (reg >> (colorIndex * 2)) & 0x03
}

// tileDataAddr resolves a tile index to its VRAM offset per LCDC bit 4:
// unsigned indexing from 0x8000, or signed indexing centered on 0x9000
func (p *PPU) tileDataAddr(tileIndex uint8) int {
	if p.LCDCReg&LCDCTileData != 0 {
		return int(tileIndex) * 16
	}
	return 0x0800 + (int(int8(tileIndex))+128)*16
}

// setPixel writes a shade to the framebuffer and records the source
// color index for the sprite priority rule
func (p *PPU) setPixel(x, y int, shade uint8, colorIndex uint8) {
	p.bgIndex[y*ScreenWidth+x] = colorIndex
	rgb := shadePalette[shade]
	offset := (y*ScreenWidth + x) * 3
	p.Framebuffer[offset] = rgb[0]
	p.Framebuffer[offset+1] = rgb[1]
	p.Framebuffer[offset+2] = rgb[2]
}

// renderBackground draws the scrolled 256x256 background plane
func (p *PPU) renderBackground() {
	mapBase := tileMapLow
	if p.LCDCReg&LCDCBGTileMap != 0 {
		mapBase = tileMapHigh
	}

	for y := 0; y < ScreenHeight; y++ {
		by := (y + int(p.SCY)) & 0xFF
		tileRow := by / 8
		pixelRow := by % 8

		for x := 0; x < ScreenWidth; x++ {
			bx := (x + int(p.SCX)) & 0xFF
			tileCol := bx / 8
			pixelCol := bx % 8

			tileIndex := p.VRAM[mapBase+tileRow*32+tileCol]
			colorIndex := p.tilePixel(p.tileDataAddr(tileIndex), pixelCol, pixelRow)
			p.setPixel(x, y, mapShade(p.BGP, colorIndex), colorIndex)
		}
	}
}

// renderWindow overlays the window layer. The window is positioned at
// (WX-7, WY) and is not scrolled; pixels left of or above it keep the
// background.
func (p *PPU) renderWindow() {
	mapBase := tileMapLow
	if p.LCDCReg&LCDCWindowTileMap != 0 {
		mapBase = tileMapHigh
	}

	for y := 0; y < ScreenHeight; y++ {
		wyLine := y - int(p.WY)
		if wyLine < 0 {
			continue
		}
		tileRow := (wyLine / 8) % 32
		pixelRow := wyLine % 8

		for x := 0; x < ScreenWidth; x++ {
			wxCol := x - (int(p.WX) - 7)
			if wxCol < 0 {
				continue
			}
			tileCol := (wxCol / 8) % 32

			tileIndex := p.VRAM[mapBase+tileRow*32+tileCol]
			colorIndex := p.tilePixel(p.tileDataAddr(tileIndex), wxCol%8, pixelRow)
			p.setPixel(x, y, mapShade(p.BGP, colorIndex), colorIndex)
		}
	}
}

// renderSprites draws all 40 OAM entries. Overlap ordering: the sprite
// with the lower X coordinate wins, and on X ties the lower OAM index
// wins; losers are drawn first so winners paint over them.
func (p *PPU) renderSprites() {
	order := make([]int, 40)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		xa := p.OAM[order[a]*4+1]
		xb := p.OAM[order[b]*4+1]
		if xa != xb {
			return xa > xb
		}
		return order[a] > order[b]
	})

	for _, index := range order {
		p.renderSprite(index)
	}
}

// renderSprite draws a single OAM entry
func (p *PPU) renderSprite(index int) {
	offset := index * 4
	y := int(p.OAM[offset]) - 16
	x := int(p.OAM[offset+1]) - 8
	tileIndex := p.OAM[offset+2]
	attrs := p.OAM[offset+3]

	behindBG := attrs&0x80 != 0
	yFlip := attrs&0x40 != 0
	xFlip := attrs&0x20 != 0
	paletteReg := p.OBP0
	if attrs&0x10 != 0 {
		paletteReg = p.OBP1
	}

	height := 8
	if p.LCDCReg&LCDCOBJSize != 0 {
		// 8x16 mode: the index low bit is ignored and the second tile
		// immediately follows the first
		height = 16
		tileIndex &= 0xFE
	}

	for row := 0; row < height; row++ {
		py := y + row
		if py < 0 || py >= ScreenHeight {
			continue
		}

		srcRow := row
		if yFlip {
			srcRow = height - 1 - row
		}
		// Sprites always use unsigned 0x8000-based tile data
		tileAddr := (int(tileIndex) + srcRow/8) * 16

		for col := 0; col < 8; col++ {
			px := x + col
			if px < 0 || px >= ScreenWidth {
				continue
			}

			srcCol := col
			if xFlip {
				srcCol = 7 - col
			}

			colorIndex := p.tilePixel(tileAddr, srcCol, srcRow%8)
			if colorIndex == 0 {
				// Color index 0 is transparent
				continue
			}
			if behindBG && p.bgIndex[py*ScreenWidth+px] != 0 {
				// Background keeps priority over this sprite wherever
				// its own color index is non-zero
				continue
			}

			rgb := shadePalette[mapShade(paletteReg, colorIndex)]
			fb := (py*ScreenWidth + px) * 3
			p.Framebuffer[fb] = rgb[0]
			p.Framebuffer[fb+1] = rgb[1]
			p.Framebuffer[fb+2] = rgb[2]
		}
	}
}
