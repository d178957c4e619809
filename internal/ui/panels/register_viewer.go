package panels

import (
	"fmt"

	"dmg-core/internal/cpu"
	"dmg-core/internal/emulator"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RegisterViewer creates a panel showing CPU and LCD registers.
// Returns the container and an update function to call periodically.
// window is needed for clipboard access.
func RegisterViewer(emu *emulator.Emulator, window fyne.Window) (*fyne.Container, func()) {
	registerText := widget.NewMultiLineEntry()
	registerText.Wrapping = fyne.TextWrapOff
	registerText.Disable() // read-only but selectable
	registerScroll := container.NewScroll(registerText)
	registerScroll.SetMinSize(fyne.NewSize(300, 300))

	flag := func(f uint8, bit uint8) int {
		if f&(1<<bit) != 0 {
			return 1
		}
		return 0
	}

	formatRegisterState := func() string {
		if emu == nil || emu.CPU == nil {
			return "CPU not available\n"
		}

		state := emu.CPU.State
		var text string

		text += "=== CPU Registers ===\n\n"
		text += fmt.Sprintf("  AF: 0x%02X%02X   BC: 0x%02X%02X\n", state.A, state.F, state.B, state.C)
		text += fmt.Sprintf("  DE: 0x%02X%02X   HL: 0x%02X%02X\n", state.D, state.E, state.H, state.L)
		text += fmt.Sprintf("  SP: 0x%04X   PC: 0x%04X\n", state.SP, state.PC)

		text += fmt.Sprintf("\nFlags (0x%02X):\n", state.F)
		text += fmt.Sprintf("  Z: %d  N: %d  H: %d  C: %d\n",
			flag(state.F, cpu.FlagZ), flag(state.F, cpu.FlagN),
			flag(state.F, cpu.FlagH), flag(state.F, cpu.FlagC))

		text += "\nState:\n"
		text += fmt.Sprintf("  IME: %v  Halted: %v\n", state.IME, state.Halted)
		text += fmt.Sprintf("  Cycles: %d\n", state.Cycles)
		text += fmt.Sprintf("  FPS: %.1f  Cycles/frame: %d\n", emu.GetFPS(), emu.GetCPUCyclesPerFrame())
		text += fmt.Sprintf("  Running: %v  Paused: %v\n", emu.Running, emu.Paused)

		text += "\n=== LCD Registers ===\n\n"
		text += fmt.Sprintf("  LCDC: 0x%02X\n", emu.PPU.LCDCReg)
		text += fmt.Sprintf("  SCY/SCX: %d/%d   WY/WX: %d/%d\n",
			emu.PPU.SCY, emu.PPU.SCX, emu.PPU.WY, emu.PPU.WX)
		text += fmt.Sprintf("  BGP: 0x%02X  OBP0: 0x%02X  OBP1: 0x%02X\n",
			emu.PPU.BGP, emu.PPU.OBP0, emu.PPU.OBP1)

		text += "\n=== Interrupts ===\n\n"
		text += fmt.Sprintf("  IE: 0x%02X  IF: 0x%02X\n",
			emu.Bus.Read8(0xFFFF), emu.Bus.Read8(0xFF0F))

		text += "\n=== Cartridge ===\n\n"
		text += fmt.Sprintf("  Loaded: %v  Generation: %d\n",
			emu.Cartridge.Loaded(), emu.Cartridge.Generation())

		return text
	}

	updateFunc := func() {
		registerText.SetText(formatRegisterState())
	}

	copyBtn := widget.NewButton("Copy All", func() {
		if registerText.Text != "" && window != nil {
			window.Clipboard().SetContent(registerText.Text)
		}
	})

	updateFunc()

	return container.NewVBox(
		widget.NewLabel("Registers"),
		container.NewHBox(copyBtn),
		registerScroll,
	), updateFunc
}
