package rom

import (
	"fmt"
	"os"
)

// ImageSize is the fixed 32 KiB ROM image the builder produces
const ImageSize = 0x8000

// EntryPoint is where execution begins after reset
const EntryPoint = 0x0100

// Builder assembles small LR35902 test ROMs. Code is emitted at a
// moving cursor; data blocks can be placed anywhere in the image.
type Builder struct {
	image  [ImageSize]uint8
	cursor int
}

// NewBuilder creates a builder with the cursor at the entry point
func NewBuilder() *Builder {
	return &Builder{cursor: EntryPoint}
}

// Org moves the emit cursor
func (b *Builder) Org(addr uint16) {
	b.cursor = int(addr)
}

// Cursor returns the current emit address
func (b *Builder) Cursor() uint16 {
	return uint16(b.cursor)
}

// Emit appends raw bytes at the cursor
func (b *Builder) Emit(bytes ...uint8) {
	for _, v := range bytes {
		if b.cursor < ImageSize {
			b.image[b.cursor] = v
			b.cursor++
		}
	}
}

// Data places a block of bytes at a fixed address without moving the
// cursor
func (b *Builder) Data(addr uint16, bytes []uint8) {
	copy(b.image[addr:], bytes)
}

// NOP emits a no-op
func (b *Builder) NOP() { b.Emit(0x00) }

// LoadA emits LD A,n
func (b *Builder) LoadA(value uint8) { b.Emit(0x3E, value) }

// LoadB emits LD B,n
func (b *Builder) LoadB(value uint8) { b.Emit(0x06, value) }

// LoadHL emits LD HL,nn
func (b *Builder) LoadHL(addr uint16) { b.Emit(0x21, uint8(addr), uint8(addr>>8)) }

// LoadDE emits LD DE,nn
func (b *Builder) LoadDE(addr uint16) { b.Emit(0x11, uint8(addr), uint8(addr>>8)) }

// StoreAIncHL emits LD (HL+),A
func (b *Builder) StoreAIncHL() { b.Emit(0x22) }

// LoadAIncDE emits LD A,(DE); INC DE
func (b *Builder) LoadAIncDE() { b.Emit(0x1A, 0x13) }

// StoreHigh emits LDH (offset),A
func (b *Builder) StoreHigh(offset uint8) { b.Emit(0xE0, offset) }

// DecB emits DEC B
func (b *Builder) DecB() { b.Emit(0x05) }

// JRNZ emits JR NZ with a raw displacement
func (b *Builder) JRNZ(disp int8) { b.Emit(0x20, uint8(disp)) }

// Jump emits JP nn
func (b *Builder) Jump(addr uint16) { b.Emit(0xC3, uint8(addr), uint8(addr>>8)) }

// JumpSelf emits a jump to its own address, the usual idle loop
func (b *Builder) JumpSelf() {
	addr := uint16(b.cursor)
	b.Jump(addr)
}

// CopyBlock emits an unrolled-count copy loop moving n bytes (1-255)
// from src to dst using B as the counter
func (b *Builder) CopyBlock(dst, src uint16, n uint8) {
	b.LoadDE(src)
	b.LoadHL(dst)
	b.LoadB(n)
	// loop: LD A,(DE); INC DE; LD (HL+),A; DEC B; JR NZ,loop
	b.LoadAIncDE()
	b.StoreAIncHL()
	b.DecB()
	b.JRNZ(-6)
}

// FillBlock emits a fill loop writing value to n consecutive bytes
// (1-255) starting at dst
func (b *Builder) FillBlock(dst uint16, value uint8, n uint8) {
	b.LoadHL(dst)
	b.LoadB(n)
	b.LoadA(value)
	// loop: LD (HL+),A; DEC B; JR NZ,loop
	b.StoreAIncHL()
	b.DecB()
	b.JRNZ(-4)
}

// Bytes returns a copy of the assembled image
func (b *Builder) Bytes() []uint8 {
	out := make([]uint8, ImageSize)
	copy(out, b.image[:])
	return out
}

// WriteFile writes the assembled image to disk
func (b *Builder) WriteFile(path string) error {
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write ROM image: %w", err)
	}
	return nil
}

// SolidTile returns the 16 bytes of a tile whose every pixel has the
// given color index
func SolidTile(colorIndex uint8) []uint8 {
	low := uint8(0x00)
	high := uint8(0x00)
	if colorIndex&0x01 != 0 {
		low = 0xFF
	}
	if colorIndex&0x02 != 0 {
		high = 0xFF
	}
	tile := make([]uint8, 16)
	for y := 0; y < 8; y++ {
		tile[y*2] = low
		tile[y*2+1] = high
	}
	return tile
}
