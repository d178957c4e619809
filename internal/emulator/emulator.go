package emulator

import (
	"fmt"
	"time"

	"dmg-core/internal/clock"
	"dmg-core/internal/cpu"
	"dmg-core/internal/debug"
	"dmg-core/internal/input"
	"dmg-core/internal/memory"
	"dmg-core/internal/ppu"
)

// Emulator owns the three core components and drives them one frame at
// a time. The CPU reaches the graphics unit only through the bus; the
// emulator holds all three and passes handles downward.
type Emulator struct {
	CPU       *cpu.CPU
	Bus       *memory.Bus
	Cartridge *memory.Cartridge
	PPU       *ppu.PPU
	Input     *input.Joypad
	Logger    *debug.Logger

	// Frame pacing
	Clock *clock.FrameClock

	// Performance tracking
	FPS               float64
	FrameCount        uint64
	FPSUpdateTime     time.Time
	CPUCyclesPerFrame uint64

	// State
	Running bool
	Paused  bool
}

// NewEmulator creates an emulator with a default logger
func NewEmulator() *Emulator {
	return NewEmulatorWithLogger(debug.NewLogger(10000))
}

// NewEmulatorWithLogger creates an emulator wired to the given logger
func NewEmulatorWithLogger(logger *debug.Logger) *Emulator {
	cartridge := memory.NewCartridge()
	gpu := ppu.NewPPU(logger)
	joypad := input.NewJoypad()

	bus := memory.NewBus(cartridge, gpu)
	bus.Joypad = joypad
	bus.SetLogger(logger)

	cpuLogger := cpu.NewCPULoggerAdapter(logger, cpu.CPULogNone)
	core := cpu.NewCPU(bus, cpuLogger)

	return &Emulator{
		CPU:           core,
		Bus:           bus,
		Cartridge:     cartridge,
		PPU:           gpu,
		Input:         joypad,
		Logger:        logger,
		Clock:         clock.NewFrameClock(),
		FPSUpdateTime: time.Now(),
	}
}

// LoadROM loads a ROM image into the cartridge. Oversized images are
// loaded truncated with a warning; an empty image is an error.
func (e *Emulator) LoadROM(data []uint8) error {
	truncated, err := e.Cartridge.LoadROM(data)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}
	if truncated && e.Logger != nil {
		e.Logger.LogSystemf(debug.LogLevelWarning,
			"ROM is %d bytes; only the first 32 KiB are mapped (no MBC)", len(data))
	}
	return nil
}

// LoadTestProgram installs the built-in smoke program in place of a ROM
func (e *Emulator) LoadTestProgram() {
	e.Cartridge.LoadTestProgram()
	if e.Logger != nil {
		e.Logger.LogSystem(debug.LogLevelInfo, "loaded built-in test program", nil)
	}
}

// RunFrame executes one frame: the CPU runs until the T-state budget is
// met, the VBlank request flag is raised, and the graphics unit
// composes the frame. Frame pacing is applied afterwards.
func (e *Emulator) RunFrame() error {
	if !e.Running || e.Paused {
		return nil
	}

	cyclesBefore := e.CPU.State.Cycles
	e.CPU.RunCycles(clock.CyclesPerFrame)
	e.CPUCyclesPerFrame = e.CPU.State.Cycles - cyclesBefore

	// Delivery is stubbed, but the flag is visible to polling programs
	e.Bus.RequestInterrupt(memory.IntVBlank)

	e.PPU.RenderFrame()

	e.FrameCount++
	now := time.Now()
	if now.Sub(e.FPSUpdateTime) >= time.Second {
		e.FPS = float64(e.FrameCount) / now.Sub(e.FPSUpdateTime).Seconds()
		e.FrameCount = 0
		e.FPSUpdateTime = now
	}

	e.Clock.EndFrame()
	return nil
}

// Start starts the emulator
func (e *Emulator) Start() {
	e.Running = true
	e.Paused = false
}

// Stop stops the emulator
func (e *Emulator) Stop() {
	e.Running = false
}

// Pause pauses the emulator
func (e *Emulator) Pause() {
	e.Paused = true
}

// Resume resumes the emulator
func (e *Emulator) Resume() {
	e.Paused = false
}

// Reset restores CPU and PPU state and releases all buttons. The
// loaded ROM and its generation counter are retained.
func (e *Emulator) Reset() {
	e.CPU.Reset()
	e.PPU.Reset()
	e.Input.Reset()
	e.Clock.Reset()
}

// SetFrameLimit sets the frame limit mode
func (e *Emulator) SetFrameLimit(enabled bool) {
	e.Clock.SetLimit(enabled)
}

// GetFPS returns the measured frame rate
func (e *Emulator) GetFPS() float64 {
	return e.FPS
}

// GetCPUCyclesPerFrame returns the T-states consumed by the last frame
func (e *Emulator) GetCPUCyclesPerFrame() uint64 {
	return e.CPUCyclesPerFrame
}

// GetFramebuffer returns the PPU output framebuffer
func (e *Emulator) GetFramebuffer() []uint8 {
	return e.PPU.GetFramebuffer()
}

// SetButton forwards a host button state change to the joypad
func (e *Emulator) SetButton(button int, pressed bool) {
	e.Input.SetButton(button, pressed)
}
