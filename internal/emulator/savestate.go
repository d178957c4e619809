package emulator

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"dmg-core/internal/cpu"
	"dmg-core/internal/ppu"
)

// SaveState represents a complete machine snapshot. The ROM image is
// not captured; a state is only meaningful against the ROM that was
// loaded when it was taken.
type SaveState struct {
	// Version for compatibility checking
	Version uint16

	CPUState cpu.CPUState

	PPUState PPUState

	MemoryState MemoryState

	// Emulator run state
	Running bool
	Paused  bool
}

// PPUState represents graphics unit state for save/load. The
// framebuffer is omitted; it is recomposed on the next frame.
type PPUState struct {
	VRAM [ppu.VRAMSize]uint8
	OAM  [ppu.OAMSize]uint8

	LCDC uint8
	SCY  uint8
	SCX  uint8
	WY   uint8
	WX   uint8
	BGP  uint8
	OBP0 uint8
	OBP1 uint8
}

// MemoryState represents bus-owned storage for save/load
type MemoryState struct {
	WRAM [0x2000]uint8
	HRAM [0x7F]uint8
	IO   [0x80]uint8
	IE   uint8
}

// Save serializes the current machine state
func (e *Emulator) Save() ([]byte, error) {
	state := SaveState{
		Version:     1,
		CPUState:    e.CPU.State,
		PPUState:    e.savePPUState(),
		MemoryState: e.saveMemoryState(),
		Running:     e.Running,
		Paused:      e.Paused,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode save state: %w", err)
	}
	return buf.Bytes(), nil
}

// Load restores a machine state produced by Save
func (e *Emulator) Load(data []byte) error {
	var state SaveState
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&state); err != nil {
		return fmt.Errorf("failed to decode save state: %w", err)
	}

	if state.Version != 1 {
		return fmt.Errorf("unsupported save state version: %d (expected 1)", state.Version)
	}

	e.CPU.State = state.CPUState
	e.loadPPUState(state.PPUState)
	e.loadMemoryState(state.MemoryState)
	e.Running = state.Running
	e.Paused = state.Paused

	// Recompose the framebuffer from the restored video state
	e.PPU.RenderFrame()

	return nil
}

// SaveToFile writes the current machine state to a file
func (e *Emulator) SaveToFile(filename string) error {
	data, err := e.Save()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save state: %w", err)
	}
	return nil
}

// LoadFromFile restores a machine state from a file
func (e *Emulator) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read save state: %w", err)
	}
	return e.Load(data)
}

// savePPUState extracts graphics unit state for saving
func (e *Emulator) savePPUState() PPUState {
	return PPUState{
		VRAM: e.PPU.VRAM,
		OAM:  e.PPU.OAM,
		LCDC: e.PPU.LCDCReg,
		SCY:  e.PPU.SCY,
		SCX:  e.PPU.SCX,
		WY:   e.PPU.WY,
		WX:   e.PPU.WX,
		BGP:  e.PPU.BGP,
		OBP0: e.PPU.OBP0,
		OBP1: e.PPU.OBP1,
	}
}

// loadPPUState restores graphics unit state
func (e *Emulator) loadPPUState(state PPUState) {
	e.PPU.VRAM = state.VRAM
	e.PPU.OAM = state.OAM
	e.PPU.LCDCReg = state.LCDC
	e.PPU.SCY = state.SCY
	e.PPU.SCX = state.SCX
	e.PPU.WY = state.WY
	e.PPU.WX = state.WX
	e.PPU.BGP = state.BGP
	e.PPU.OBP0 = state.OBP0
	e.PPU.OBP1 = state.OBP1
}

// saveMemoryState extracts bus-owned storage for saving
func (e *Emulator) saveMemoryState() MemoryState {
	return MemoryState{
		WRAM: e.Bus.WRAM,
		HRAM: e.Bus.HRAM,
		IO:   e.Bus.IO,
		IE:   e.Bus.IE,
	}
}

// loadMemoryState restores bus-owned storage
func (e *Emulator) loadMemoryState(state MemoryState) {
	e.Bus.WRAM = state.WRAM
	e.Bus.HRAM = state.HRAM
	e.Bus.IO = state.IO
	e.Bus.IE = state.IE
}
