package memory

import (
	"testing"

	"dmg-core/internal/input"
)

// mockVideo records forwarded VRAM/OAM/register traffic
type mockVideo struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	lcdc uint8
	scy, scx, bgp, obp0, obp1, wy, wx uint8

	lcdcWrites int
}

func (v *mockVideo) ReadVRAM(offset uint16) uint8         { return v.vram[offset] }
func (v *mockVideo) WriteVRAM(offset uint16, value uint8) { v.vram[offset] = value }
func (v *mockVideo) ReadOAM(offset uint16) uint8          { return v.oam[offset] }
func (v *mockVideo) WriteOAM(offset uint16, value uint8)  { v.oam[offset] = value }
func (v *mockVideo) LCDC() uint8                          { return v.lcdc }
func (v *mockVideo) SetLCDC(value uint8)                  { v.lcdc = value; v.lcdcWrites++ }
func (v *mockVideo) SetSCY(value uint8)                   { v.scy = value }
func (v *mockVideo) SetSCX(value uint8)                   { v.scx = value }
func (v *mockVideo) SetBGP(value uint8)                   { v.bgp = value }
func (v *mockVideo) SetOBP0(value uint8)                  { v.obp0 = value }
func (v *mockVideo) SetOBP1(value uint8)                  { v.obp1 = value }
func (v *mockVideo) SetWY(value uint8)                    { v.wy = value }
func (v *mockVideo) SetWX(value uint8)                    { v.wx = value }

func newTestBus() (*Bus, *mockVideo) {
	video := &mockVideo{}
	return NewBus(NewCartridge(), video), video
}

func TestWRAMAndHRAMRoundTrip(t *testing.T) {
	b, _ := newTestBus()

	for _, addr := range []uint16{0xC000, 0xC001, 0xD234, 0xDFFF, 0xFF80, 0xFFAB, 0xFFFE} {
		b.Write8(addr, 0x5A)
		if got := b.Read8(addr); got != 0x5A {
			t.Errorf("addr 0x%04X: expected 0x5A, got 0x%02X", addr, got)
		}
	}
}

func TestROMReadsAndIgnoredWrites(t *testing.T) {
	b, _ := newTestBus()
	if _, err := b.Cartridge.LoadROM([]uint8{0x12, 0x34}); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	if b.Read8(0x0000) != 0x12 || b.Read8(0x0001) != 0x34 {
		t.Error("ROM bytes must read back the loaded image")
	}

	b.Write8(0x0000, 0xFF)
	b.Write8(0x7FFF, 0xFF)
	if b.Read8(0x0000) != 0x12 {
		t.Error("writes into the ROM region must be dropped")
	}
	if b.Read8(0x7FFF) != 0x00 {
		t.Error("unwritten ROM tail must stay zero")
	}
}

func TestUnmappedRegionsReadZeroDropWrites(t *testing.T) {
	b, _ := newTestBus()

	for _, addr := range []uint16{0xA000, 0xBFFF, 0xE000, 0xFDFF, 0xFEA0, 0xFEFF} {
		b.Write8(addr, 0x99)
		if got := b.Read8(addr); got != 0 {
			t.Errorf("unmapped addr 0x%04X: expected 0, got 0x%02X", addr, got)
		}
	}
}

func TestVRAMAndOAMForwarding(t *testing.T) {
	b, video := newTestBus()

	b.Write8(0x8000, 0x11)
	b.Write8(0x9FFF, 0x22)
	if video.vram[0x0000] != 0x11 || video.vram[0x1FFF] != 0x22 {
		t.Error("VRAM writes must forward to the video unit")
	}
	if b.Read8(0x8000) != 0x11 || b.Read8(0x9FFF) != 0x22 {
		t.Error("VRAM reads must come from the video unit")
	}

	b.Write8(0xFE00, 0x33)
	b.Write8(0xFE9F, 0x44)
	if video.oam[0x00] != 0x33 || video.oam[0x9F] != 0x44 {
		t.Error("OAM writes must forward to the video unit")
	}
	if b.Read8(0xFE00) != 0x33 || b.Read8(0xFE9F) != 0x44 {
		t.Error("OAM reads must come from the video unit")
	}
}

func TestLCDRegisterWritesNotifyVideo(t *testing.T) {
	b, video := newTestBus()

	writes := []struct {
		addr  uint16
		value uint8
		got   func() uint8
	}{
		{AddrLCDC, 0x93, func() uint8 { return video.lcdc }},
		{AddrSCY, 0x10, func() uint8 { return video.scy }},
		{AddrSCX, 0x20, func() uint8 { return video.scx }},
		{AddrBGP, 0xE4, func() uint8 { return video.bgp }},
		{AddrOBP0, 0xD2, func() uint8 { return video.obp0 }},
		{AddrOBP1, 0x1B, func() uint8 { return video.obp1 }},
		{AddrWY, 0x40, func() uint8 { return video.wy }},
		{AddrWX, 0x07, func() uint8 { return video.wx }},
	}

	for _, w := range writes {
		b.Write8(w.addr, w.value)
		if got := w.got(); got != w.value {
			t.Errorf("write 0x%04X: video unit saw 0x%02X, expected 0x%02X", w.addr, got, w.value)
		}
	}

	// Shadow bytes track the writes too (LCDC reads come from the video
	// unit instead)
	if b.IO[AddrSCY-0xFF00] != 0x10 {
		t.Error("SCY shadow must be updated")
	}
	if b.Read8(AddrSCY) != 0x10 {
		t.Error("SCY reads return the shadow byte")
	}
}

func TestLCDCReadsFromVideoUnit(t *testing.T) {
	b, video := newTestBus()
	video.lcdc = 0x85

	if got := b.Read8(AddrLCDC); got != 0x85 {
		t.Errorf("LCDC read: expected video unit value 0x85, got 0x%02X", got)
	}
}

func TestPlainIOWritesOnlyUpdateShadow(t *testing.T) {
	b, video := newTestBus()

	b.Write8(0xFF01, 0x42) // serial data: shadow only
	if b.Read8(0xFF01) != 0x42 {
		t.Error("plain I/O write must be readable from the shadow")
	}
	if video.lcdcWrites != 0 {
		t.Error("plain I/O write must not notify the video unit")
	}
}

func TestInterruptRegisters(t *testing.T) {
	b, _ := newTestBus()

	b.Write8(AddrIE, 0x1F)
	if b.Read8(AddrIE) != 0x1F {
		t.Error("IE must be byte-addressable")
	}

	b.Write8(AddrIF, 0x00)
	b.RequestInterrupt(IntVBlank)
	if b.Read8(AddrIF)&0x01 == 0 {
		t.Error("RequestInterrupt must set the VBlank bit in IF")
	}
	b.RequestInterrupt(IntJoypad)
	if b.Read8(AddrIF)&0x10 == 0 {
		t.Error("RequestInterrupt must set the joypad bit in IF")
	}
}

func TestRead16Write16LittleEndian(t *testing.T) {
	b, _ := newTestBus()

	for _, addr := range []uint16{0xC000, 0xCFFE, 0xFF80, 0x8000, 0xFE00} {
		b.Write16(addr, 0xBEEF)
		if got := b.Read16(addr); got != 0xBEEF {
			t.Errorf("16-bit round trip at 0x%04X: expected 0xBEEF, got 0x%04X", addr, got)
		}
		if low := b.Read8(addr); low != 0xEF {
			t.Errorf("low byte at 0x%04X: expected 0xEF, got 0x%02X", addr, low)
		}
		if high := b.Read8(addr + 1); high != 0xBE {
			t.Errorf("high byte at 0x%04X: expected 0xBE, got 0x%02X", addr+1, high)
		}
	}
}

func TestJoypadRegisterRouting(t *testing.T) {
	b, _ := newTestBus()
	joypad := input.NewJoypad()
	b.Joypad = joypad

	// Nothing pressed, nothing selected: all lines high
	if got := b.Read8(AddrJOYP); got != 0xFF {
		t.Errorf("idle JOYP: expected 0xFF, got 0x%02X", got)
	}

	// Select the d-pad matrix and press Left
	joypad.SetButton(input.ButtonLeft, true)
	b.Write8(AddrJOYP, 0x20) // bit 4 low selects the d-pad
	got := b.Read8(AddrJOYP)
	if got&0x02 != 0 {
		t.Errorf("JOYP with Left pressed: expected bit 1 low, got 0x%02X", got)
	}
	if got&0x01 == 0 {
		t.Errorf("JOYP: unpressed Right must read high, got 0x%02X", got)
	}
}
