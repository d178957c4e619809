package main

import (
	"flag"
	"fmt"
	"os"

	"dmg-core/internal/cpu"
	"dmg-core/internal/debug"
	"dmg-core/internal/emulator"
	"dmg-core/internal/ui"
)

func main() {
	romPath := flag.String("rom", "", "Path to ROM file (.gb)")
	unlimited := flag.Bool("unlimited", false, "Run at unlimited speed (no frame limit)")
	scale := flag.Int("scale", 3, "Display scale (1-6)")
	enableLogging := flag.Bool("log", false, "Enable logging (disabled by default)")
	trace := flag.Bool("trace", false, "Log every executed instruction (implies -log)")
	flag.Parse()

	if *scale < 1 || *scale > 6 {
		fmt.Fprintf(os.Stderr, "Error: scale must be between 1 and 6\n")
		os.Exit(1)
	}

	var emu *emulator.Emulator
	if *enableLogging || *trace {
		logger := debug.NewLogger(10000)
		logger.SetComponentEnabled(debug.ComponentCPU, true)
		logger.SetComponentEnabled(debug.ComponentPPU, true)
		logger.SetComponentEnabled(debug.ComponentMemory, true)
		logger.SetComponentEnabled(debug.ComponentInput, true)
		logger.SetComponentEnabled(debug.ComponentUI, true)
		logger.SetComponentEnabled(debug.ComponentSystem, true)
		emu = emulator.NewEmulatorWithLogger(logger)
		if *trace {
			if adapter, ok := emu.CPU.Log.(*cpu.CPULoggerAdapter); ok {
				adapter.SetLevel(cpu.CPULogInstructions)
			}
		}
	} else {
		emu = emulator.NewEmulator()
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
		fmt.Printf("ROM loaded: %s\n", *romPath)
	} else {
		// No ROM given: run the built-in test program against the
		// reset-time video test pattern
		emu.LoadTestProgram()
		fmt.Println("No ROM given; running built-in test program")
	}

	emu.SetFrameLimit(!*unlimited)

	fmt.Println("Controls:")
	fmt.Println("  Arrow Keys - D-pad")
	fmt.Println("  Z / X - A / B")
	fmt.Println("  Enter / Right Shift - Start / Select")
	fmt.Println("  Space - Pause/Resume")
	fmt.Println("  Ctrl+R - Reset")
	fmt.Println("  F5 / F7 - Save / Load state")
	fmt.Println("  Alt+F - Toggle fullscreen")
	fmt.Println("  ESC - Quit")

	uiInstance, err := ui.NewUI(emu, *scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating UI: %v\n", err)
		os.Exit(1)
	}

	if err := uiInstance.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "UI error: %v\n", err)
		os.Exit(1)
	}
}
