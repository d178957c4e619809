package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"dmg-core/internal/cpu"
	"dmg-core/internal/debug"
	"dmg-core/internal/emulator"
	"dmg-core/internal/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// The debugger runs the emulator headless on a background goroutine
// and inspects it from a Fyne shell: tile viewer, register viewer, and
// log viewer, plus run control.
func main() {
	romPath := flag.String("rom", "", "Path to ROM file (.gb)")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	flag.Parse()

	logger := debug.NewLogger(10000)
	logger.SetComponentEnabled(debug.ComponentCPU, true)
	logger.SetComponentEnabled(debug.ComponentPPU, true)
	logger.SetComponentEnabled(debug.ComponentMemory, true)
	logger.SetComponentEnabled(debug.ComponentSystem, true)

	emu := emulator.NewEmulatorWithLogger(logger)
	if *trace {
		if adapter, ok := emu.CPU.Log.(*cpu.CPULoggerAdapter); ok {
			adapter.SetLevel(cpu.CPULogInstructions)
		}
	}

	if *romPath != "" {
		romData, err := os.ReadFile(*romPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
			os.Exit(1)
		}
		if err := emu.LoadROM(romData); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
			os.Exit(1)
		}
	} else {
		emu.LoadTestProgram()
	}

	a := app.New()
	window := a.NewWindow("dmg-core debugger")

	tileView, updateTiles := panels.TileViewer(emu)
	registerView, updateRegisters := panels.RegisterViewer(emu, window)
	logView, updateLogs := panels.LogViewer(logger, window)

	// Run control. Breakpoints are checked at frame boundaries: the
	// emulation goroutine pauses when PC sits on one between frames.
	dbg := debug.NewDebugger()
	pauseBtn := widget.NewButton("Pause", nil)
	pauseBtn.OnTapped = func() {
		if emu.Paused {
			emu.Resume()
			dbg.Resume()
			pauseBtn.SetText("Pause")
		} else {
			emu.Pause()
			dbg.Pause()
			pauseBtn.SetText("Resume")
		}
	}
	stepBtn := widget.NewButton("Step", func() {
		if emu.Paused {
			emu.CPU.Step()
			emu.PPU.RenderFrame()
		}
	})
	resetBtn := widget.NewButton("Reset", func() {
		emu.Reset()
	})

	bpEntry := widget.NewEntry()
	bpEntry.SetPlaceHolder("PC hex, e.g. 0150")
	bpBtn := widget.NewButton("Break At", func() {
		var addr uint16
		if _, err := fmt.Sscanf(bpEntry.Text, "%x", &addr); err == nil {
			dbg.SetBreakpoint(addr)
		}
	})
	bpClearBtn := widget.NewButton("Clear BPs", func() {
		dbg.ClearBreakpoints()
	})

	controls := container.NewHBox(pauseBtn, stepBtn, resetBtn, bpEntry, bpBtn, bpClearBtn)

	tabs := container.NewAppTabs(
		container.NewTabItem("Tiles", tileView),
		container.NewTabItem("Registers", registerView),
		container.NewTabItem("Log", logView),
	)

	window.SetContent(container.NewBorder(controls, nil, nil, nil, tabs))
	window.Resize(fyne.NewSize(800, 600))

	if runtime.GOOS == "linux" {
		if err := applyX11MaximizeHint(window); err != nil {
			logger.LogUIf(debug.LogLevelDebug, "X11 maximize hint: %v", err)
		}
	}

	// Emulation loop
	emu.Start()
	go func() {
		for {
			if !emu.Paused && dbg.CheckBreakpoint(emu.CPU.State.PC) {
				emu.Pause()
				logger.LogSystemf(debug.LogLevelInfo, "breakpoint hit at %04X", emu.CPU.State.PC)
			}
			if err := emu.RunFrame(); err != nil {
				logger.LogSystemf(debug.LogLevelError, "emulation error: %v", err)
				return
			}
			if !emu.Running {
				return
			}
			if emu.Paused {
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()

	// Periodic panel refresh
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			fyne.Do(func() {
				updateTiles()
				updateRegisters()
				updateLogs()
			})
		}
	}()

	window.ShowAndRun()
	emu.Stop()
	logger.Shutdown()
}
