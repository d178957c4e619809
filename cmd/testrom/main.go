package main

import (
	"fmt"
	"os"

	"dmg-core/internal/rom"
)

// Builds a small test ROM: a striped background drawn from copied tile
// data, a window band in the lower-right corner, and one sprite.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: testrom <output.gb>")
		os.Exit(1)
	}
	outputPath := os.Args[1]

	b := rom.NewBuilder()

	// Tile data staged in ROM, copied to VRAM at startup
	const tileData = 0x2000
	b.Data(tileData, rom.SolidTile(1))       // tile 1: light grey
	b.Data(tileData+16, rom.SolidTile(2))    // tile 2: dark grey
	b.Data(tileData+32, rom.SolidTile(3))    // tile 3: black, used by the sprite
	b.Data(tileData+48, rom.SolidTile(0))    // tile 4: white

	// Program
	b.Org(rom.EntryPoint)

	// Identity palettes, no scroll
	b.LoadA(0xE4)
	b.StoreHigh(0x47) // BGP
	b.StoreHigh(0x48) // OBP0
	b.StoreHigh(0x49) // OBP1
	b.LoadA(0x00)
	b.StoreHigh(0x42) // SCY
	b.StoreHigh(0x43) // SCX

	// Window band position: lower-right quadrant
	b.LoadA(96)
	b.StoreHigh(0x4A) // WY
	b.LoadA(87) // WX = 80 + 7
	b.StoreHigh(0x4B)

	// Copy the four staged tiles into tile slots 1-4 (0x8010)
	b.CopyBlock(0x8010, tileData, 64)

	// First two tile map rows: stripes of tile 1 and tile 2
	b.FillBlock(0x9800, 1, 32)
	b.FillBlock(0x9820, 2, 32)
	// Window map shows tile 4 (white)
	b.FillBlock(0x9C00, 4, 64)

	// One sprite at screen (72, 64) using the black tile
	b.LoadHL(0xFE00)
	b.LoadA(80) // Y + 16
	b.StoreAIncHL()
	b.LoadA(80) // X + 8
	b.StoreAIncHL()
	b.LoadA(3) // tile index
	b.StoreAIncHL()
	b.LoadA(0) // attributes
	b.StoreAIncHL()

	// LCD on: BG + OBJ + window, unsigned tile data, window map 0x9C00
	b.LoadA(0xF3)
	b.StoreHigh(0x40) // LCDC

	b.JumpSelf()

	if err := b.WriteFile(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Test ROM written to %s\n", outputPath)
}
