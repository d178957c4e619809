package ppu

import (
	"dmg-core/internal/debug"
)

// Display geometry and memory sizes
const (
	ScreenWidth  = 160
	ScreenHeight = 144

	// Framebuffer is RGB, three bytes per pixel, row-major
	FramebufferSize = ScreenWidth * ScreenHeight * 3

	VRAMSize = 0x2000 // 8 KiB: 384 tiles + two 32x32 tile maps
	OAMSize  = 0xA0   // 40 sprites x 4 bytes
)

// LCDC bit masks
const (
	LCDCBGEnable      = 1 << 0 // Background layer on
	LCDCOBJEnable     = 1 << 1 // Sprite layer on
	LCDCOBJSize       = 1 << 2 // 0: 8x8 sprites, 1: 8x16
	LCDCBGTileMap     = 1 << 3 // 0: map at 0x9800, 1: 0x9C00
	LCDCTileData      = 1 << 4 // 0: signed data at 0x8800, 1: unsigned at 0x8000
	LCDCWindowEnable  = 1 << 5 // Window layer on
	LCDCWindowTileMap = 1 << 6 // 0: map at 0x9800, 1: 0x9C00
	LCDCDisplayEnable = 1 << 7 // LCD on
)

// Tile map base offsets within VRAM
const (
	tileMapLow  = 0x1800 // 0x9800
	tileMapHigh = 0x1C00 // 0x9C00
)

// shadePalette maps the four DMG shades to RGB, lightest to darkest
var shadePalette = [4][3]uint8{
	{255, 255, 255},
	{192, 192, 192},
	{96, 96, 96},
	{0, 0, 0},
}

// PPU represents the pixel processing unit. It owns VRAM, OAM, the
// LCD control and palette registers, and the output framebuffer.
type PPU struct {
	VRAM [VRAMSize]uint8
	OAM  [OAMSize]uint8

	// LCD registers
	LCDCReg uint8
	SCY     uint8
	SCX     uint8
	WY      uint8
	WX      uint8

	// Palette-mapping registers: four 2-bit shade selectors each
	BGP  uint8
	OBP0 uint8
	OBP1 uint8

	// Output framebuffer, RGB row-major
	Framebuffer [FramebufferSize]uint8

	// Background color index per pixel from the last composition pass,
	// consulted by the sprite priority rule
	bgIndex [ScreenWidth * ScreenHeight]uint8

	logger *debug.Logger
}

// NewPPU creates a new PPU instance
func NewPPU(logger *debug.Logger) *PPU {
	p := &PPU{logger: logger}
	p.Reset()
	return p
}

// Reset restores the documented post-boot state: LCD and BG enabled,
// identity palettes, white framebuffer. VRAM is seeded with a visible
// test pattern so an un-programmed machine still shows output.
func (p *PPU) Reset() {
	for i := range p.Framebuffer {
		p.Framebuffer[i] = 0xFF
	}
	for i := range p.VRAM {
		p.VRAM[i] = 0
	}
	for i := range p.OAM {
		p.OAM[i] = 0
	}
	for i := range p.bgIndex {
		p.bgIndex[i] = 0
	}

	p.LCDCReg = 0x91
	p.SCY = 0
	p.SCX = 0
	p.WY = 0
	p.WX = 0
	p.BGP = 0xE4
	p.OBP0 = 0xE4
	p.OBP1 = 0xE4

	p.loadTestPattern()

	if p.logger != nil {
		p.logger.LogPPU(debug.LogLevelInfo, "PPU reset", nil)
	}
}

// loadTestPattern fills tile data with a checker pattern, the first
// tile map with sequential tile indices, and places one sprite
func (p *PPU) loadTestPattern() {
	for t := 0; t < 384; t++ {
		for y := 0; y < 8; y++ {
			row := uint8(0x55)
			if y%2 == 1 {
				row = 0xAA
			}
			p.VRAM[t*16+y*2] = row
			p.VRAM[t*16+y*2+1] = row
		}
	}

	for i := 0; i < 1024; i++ {
		p.VRAM[tileMapLow+i] = uint8(i % 384)
	}

	// One sprite near the upper-left corner
	p.OAM[0] = 50 // Y + 16
	p.OAM[1] = 50 // X + 8
	p.OAM[2] = 1  // tile index
	p.OAM[3] = 0  // attributes
}

// ReadVRAM reads a byte from VRAM; offset in [0, 0x2000)
func (p *PPU) ReadVRAM(offset uint16) uint8 {
	return p.VRAM[offset]
}

// WriteVRAM writes a byte to VRAM; offset in [0, 0x2000)
func (p *PPU) WriteVRAM(offset uint16, value uint8) {
	p.VRAM[offset] = value
}

// ReadOAM reads a byte from OAM; offset in [0, 0xA0)
func (p *PPU) ReadOAM(offset uint16) uint8 {
	return p.OAM[offset]
}

// WriteOAM writes a byte to OAM; offset in [0, 0xA0)
func (p *PPU) WriteOAM(offset uint16, value uint8) {
	p.OAM[offset] = value
}

// LCDC returns the LCD control register
func (p *PPU) LCDC() uint8 { return p.LCDCReg }

// SetLCDC sets the LCD control register
func (p *PPU) SetLCDC(value uint8) { p.LCDCReg = value }

// SetSCY sets the background vertical scroll
func (p *PPU) SetSCY(value uint8) { p.SCY = value }

// SetSCX sets the background horizontal scroll
func (p *PPU) SetSCX(value uint8) { p.SCX = value }

// SetBGP sets the background palette register
func (p *PPU) SetBGP(value uint8) { p.BGP = value }

// SetOBP0 sets object palette 0
func (p *PPU) SetOBP0(value uint8) { p.OBP0 = value }

// SetOBP1 sets object palette 1
func (p *PPU) SetOBP1(value uint8) { p.OBP1 = value }

// SetWY sets the window top position
func (p *PPU) SetWY(value uint8) { p.WY = value }

// SetWX sets the window left position (biased by 7)
func (p *PPU) SetWX(value uint8) { p.WX = value }

// GetFramebuffer returns the output framebuffer. Valid to read between
// RenderFrame calls; the embedder coordinates any cross-thread access.
func (p *PPU) GetFramebuffer() []uint8 {
	return p.Framebuffer[:]
}
