package panels

import (
	"fmt"
	"image"
	"image/color"

	"dmg-core/internal/emulator"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DMG shades as displayed by the tile viewer, lightest to darkest
var tileShades = [4]color.RGBA{
	{255, 255, 255, 255},
	{192, 192, 192, 255},
	{96, 96, 96, 255},
	{0, 0, 0, 255},
}

// TileViewer creates a panel showing the 384 VRAM tiles as a grid.
// Returns the container and an update function to call periodically.
func TileViewer(emu *emulator.Emulator) (*fyne.Container, func()) {
	// Palette source selector
	paletteSelect := widget.NewSelect([]string{"BGP", "OBP0", "OBP1", "Raw"}, func(string) {})
	paletteSelect.SetSelected("BGP")
	paletteLabel := widget.NewLabel("Palette:")

	// Tiles per row
	gridSizeSelect := widget.NewSelect([]string{"16", "24", "32"}, func(string) {})
	gridSizeSelect.SetSelected("16")
	gridSizeLabel := widget.NewLabel("Tiles Per Row:")

	currentGridSize := 16

	// paletteReg returns the selected palette-mapping register; "Raw"
	// shows color indices unmapped
	paletteReg := func() (uint8, bool) {
		switch paletteSelect.Selected {
		case "BGP":
			return emu.PPU.BGP, true
		case "OBP0":
			return emu.PPU.OBP0, true
		case "OBP1":
			return emu.PPU.OBP1, true
		default:
			return 0, false
		}
	}

	tileRaster := canvas.NewRaster(func(w, h int) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		if emu == nil || emu.PPU == nil {
			return img
		}

		tilesPerRow := currentGridSize
		tilePixelSize := 9 // 8 pixels + 1 grid line

		// Fill background
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, color.RGBA{32, 32, 32, 255})
			}
		}

		reg, mapped := paletteReg()

		for tile := 0; tile < 384; tile++ {
			gridX := (tile % tilesPerRow) * tilePixelSize
			gridY := (tile / tilesPerRow) * tilePixelSize
			if gridY >= h {
				break
			}

			base := tile * 16
			for py := 0; py < 8; py++ {
				low := emu.PPU.VRAM[base+py*2]
				high := emu.PPU.VRAM[base+py*2+1]
				for px := 0; px < 8; px++ {
					ci := ((high >> (7 - uint(px)) & 1) << 1) | (low >> (7 - uint(px)) & 1)
					shade := ci
					if mapped {
						shade = (reg >> (ci * 2)) & 0x03
					}
					if gridX+px < w && gridY+py < h {
						img.Set(gridX+px, gridY+py, tileShades[shade])
					}
				}
			}
		}

		return img
	})
	tileRaster.SetMinSize(fyne.NewSize(400, 400))
	tileScroll := container.NewScroll(tileRaster)
	tileScroll.SetMinSize(fyne.NewSize(400, 400))

	infoLabel := widget.NewLabel("")

	updateFunc := func() {
		if emu == nil || emu.PPU == nil {
			infoLabel.SetText("PPU not available")
			return
		}

		var gridSize int
		if _, err := fmt.Sscanf(gridSizeSelect.Selected, "%d", &gridSize); err == nil {
			currentGridSize = gridSize
		}

		infoLabel.SetText(fmt.Sprintf(
			"LCDC: 0x%02X | BGP: 0x%02X | OBP0: 0x%02X | OBP1: 0x%02X | SCX/SCY: %d/%d",
			emu.PPU.LCDCReg, emu.PPU.BGP, emu.PPU.OBP0, emu.PPU.OBP1, emu.PPU.SCX, emu.PPU.SCY))

		tileRaster.Refresh()
	}

	paletteSelect.OnChanged = func(string) { updateFunc() }
	gridSizeSelect.OnChanged = func(string) { updateFunc() }

	updateFunc()

	controls := container.NewHBox(
		paletteLabel,
		paletteSelect,
		gridSizeLabel,
		gridSizeSelect,
	)

	return container.NewVBox(
		widget.NewLabel("Tile Viewer"),
		controls,
		infoLabel,
		tileScroll,
	), updateFunc
}
