package rom

import (
	"testing"
)

func TestBuilderEmitsAtEntryPoint(t *testing.T) {
	b := NewBuilder()
	b.LoadA(0x3C)
	b.JumpSelf()

	image := b.Bytes()
	if len(image) != ImageSize {
		t.Fatalf("image size: expected %d, got %d", ImageSize, len(image))
	}
	if image[EntryPoint] != 0x3E || image[EntryPoint+1] != 0x3C {
		t.Errorf("entry bytes: expected LD A,0x3C, got 0x%02X 0x%02X",
			image[EntryPoint], image[EntryPoint+1])
	}
	// JumpSelf targets its own first byte
	if image[0x0102] != 0xC3 || image[0x0103] != 0x02 || image[0x0104] != 0x01 {
		t.Errorf("JumpSelf encoding: got 0x%02X 0x%02X 0x%02X",
			image[0x0102], image[0x0103], image[0x0104])
	}
}

func TestDataPlacementLeavesCursorAlone(t *testing.T) {
	b := NewBuilder()
	b.Data(0x2000, []uint8{0xDE, 0xAD})
	b.NOP()

	image := b.Bytes()
	if image[0x2000] != 0xDE || image[0x2001] != 0xAD {
		t.Error("Data must place bytes at the given address")
	}
	if image[EntryPoint] != 0x00 {
		t.Error("Data must not move the emit cursor")
	}
}

func TestCopyBlockEncoding(t *testing.T) {
	b := NewBuilder()
	b.CopyBlock(0x8010, 0x2000, 48)

	image := b.Bytes()
	want := []uint8{
		0x11, 0x00, 0x20, // LD DE,0x2000
		0x21, 0x10, 0x80, // LD HL,0x8010
		0x06, 48, // LD B,48
		0x1A, 0x13, // LD A,(DE); INC DE
		0x22,       // LD (HL+),A
		0x05,       // DEC B
		0x20, 0xFA, // JR NZ,-6
	}
	for i, w := range want {
		if image[EntryPoint+i] != w {
			t.Errorf("CopyBlock byte %d: expected 0x%02X, got 0x%02X", i, w, image[EntryPoint+i])
		}
	}
}

func TestFillBlockEncoding(t *testing.T) {
	b := NewBuilder()
	b.FillBlock(0x9800, 1, 32)

	image := b.Bytes()
	want := []uint8{
		0x21, 0x00, 0x98, // LD HL,0x9800
		0x06, 32, // LD B,32
		0x3E, 0x01, // LD A,1
		0x22,       // LD (HL+),A
		0x05,       // DEC B
		0x20, 0xFC, // JR NZ,-4
	}
	for i, w := range want {
		if image[EntryPoint+i] != w {
			t.Errorf("FillBlock byte %d: expected 0x%02X, got 0x%02X", i, w, image[EntryPoint+i])
		}
	}
}

func TestSolidTile(t *testing.T) {
	for ci := uint8(0); ci < 4; ci++ {
		tile := SolidTile(ci)
		if len(tile) != 16 {
			t.Fatalf("SolidTile length: expected 16, got %d", len(tile))
		}
		for y := 0; y < 8; y++ {
			low := tile[y*2]
			high := tile[y*2+1]
			wantLow := uint8(0x00)
			if ci&0x01 != 0 {
				wantLow = 0xFF
			}
			wantHigh := uint8(0x00)
			if ci&0x02 != 0 {
				wantHigh = 0xFF
			}
			if low != wantLow || high != wantHigh {
				t.Errorf("SolidTile(%d) row %d: got 0x%02X,0x%02X", ci, y, low, high)
			}
		}
	}
}
