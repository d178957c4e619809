package memory

import (
	"testing"
)

func TestLoadROMRetainsBytesVerbatim(t *testing.T) {
	c := NewCartridge()
	data := []uint8{0x31, 0xFE, 0xFF, 0xC3, 0x00, 0x01}

	truncated, err := c.LoadROM(data)
	if err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if truncated {
		t.Error("small image must not report truncation")
	}
	for i, want := range data {
		if got := c.Read8(uint16(i)); got != want {
			t.Errorf("ROM[%d]: expected 0x%02X, got 0x%02X", i, want, got)
		}
	}
	// Tail reads zero
	if c.Read8(uint16(len(data))) != 0 || c.Read8(0x7FFF) != 0 {
		t.Error("bytes past the image must read 0")
	}
	if !c.Loaded() {
		t.Error("Loaded must report true after a successful load")
	}
}

func TestLoadROMZeroFillsPreviousImage(t *testing.T) {
	c := NewCartridge()
	big := make([]uint8, ROMSize)
	for i := range big {
		big[i] = 0xAA
	}
	if _, err := c.LoadROM(big); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}

	small := []uint8{0x01, 0x02}
	if _, err := c.LoadROM(small); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if c.Read8(0) != 0x01 || c.Read8(1) != 0x02 {
		t.Error("second load must replace the first image")
	}
	if c.Read8(2) != 0x00 || c.Read8(0x4000) != 0x00 {
		t.Error("second load must zero-fill the tail of the window")
	}
}

func TestLoadROMTruncatesOversizedImage(t *testing.T) {
	c := NewCartridge()
	data := make([]uint8, ROMSize+100)
	for i := range data {
		data[i] = uint8(i)
	}

	truncated, err := c.LoadROM(data)
	if err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if !truncated {
		t.Error("oversized image must report truncation")
	}
	if got := c.Read8(ROMSize - 1); got != uint8((ROMSize-1)&0xFF) {
		t.Errorf("last mapped byte: expected 0x%02X, got 0x%02X", uint8((ROMSize-1)&0xFF), got)
	}
}

func TestLoadROMEmptyIsError(t *testing.T) {
	c := NewCartridge()

	_, err := c.LoadROM(nil)
	if err == nil {
		t.Fatal("empty image must be an error")
	}
	if c.Loaded() {
		t.Error("failed load must not mark the cartridge loaded")
	}
	if c.Generation() != 0 {
		t.Error("failed load must not advance the generation counter")
	}
}

func TestGenerationIsMonotonic(t *testing.T) {
	c := NewCartridge()
	data := []uint8{0x00}

	if c.Generation() != 0 {
		t.Fatalf("fresh cartridge generation: expected 0, got %d", c.Generation())
	}
	for want := uint32(1); want <= 3; want++ {
		if _, err := c.LoadROM(data); err != nil {
			t.Fatalf("LoadROM failed: %v", err)
		}
		if c.Generation() != want {
			t.Errorf("generation after load %d: expected %d, got %d", want, want, c.Generation())
		}
	}

	// A failed load leaves the counter alone
	c.LoadROM(nil)
	if c.Generation() != 3 {
		t.Errorf("generation after failed load: expected 3, got %d", c.Generation())
	}
}

func TestLoadTestProgram(t *testing.T) {
	c := NewCartridge()
	c.LoadTestProgram()

	if !c.Loaded() {
		t.Error("test program must mark the cartridge loaded")
	}
	if c.Generation() != 1 {
		t.Errorf("test program generation: expected 1, got %d", c.Generation())
	}
	// LD A,0x3C at the entry point
	if c.Read8(0x0100) != 0x3E || c.Read8(0x0101) != 0x3C {
		t.Errorf("entry bytes: expected 0x3E,0x3C, got 0x%02X,0x%02X",
			c.Read8(0x0100), c.Read8(0x0101))
	}
	// JP 0x0104 closing the loop
	if c.Read8(0x0106) != 0xC3 || c.Read8(0x0107) != 0x04 || c.Read8(0x0108) != 0x01 {
		t.Error("test program must loop back to 0x0104")
	}
}
