package debug

import (
	"testing"
)

func TestLoggingIsOptInPerComponent(t *testing.T) {
	l := NewLogger(100)
	l.LogCPU(LogLevelInfo, "dropped", nil)
	l.Shutdown()

	if entries := l.GetEntries(); len(entries) != 0 {
		t.Errorf("disabled component must not record entries, got %d", len(entries))
	}
}

func TestEnabledComponentRecords(t *testing.T) {
	l := NewLogger(100)
	l.SetComponentEnabled(ComponentCPU, true)
	l.LogCPU(LogLevelInfo, "first", nil)
	l.LogCPUf(LogLevelWarning, "opcode 0x%02X", 0xD3)
	l.Shutdown()

	entries := l.GetEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "first" {
		t.Errorf("first entry: got %q", entries[0].Message)
	}
	if entries[1].Message != "opcode 0xD3" {
		t.Errorf("formatted entry: got %q", entries[1].Message)
	}
	if entries[1].Level != LogLevelWarning {
		t.Errorf("entry level: got %v", entries[1].Level)
	}
}

func TestMinLevelFiltersVerboseEntries(t *testing.T) {
	l := NewLogger(100)
	l.SetComponentEnabled(ComponentPPU, true)
	l.SetMinLevel(LogLevelInfo)

	l.LogPPU(LogLevelDebug, "too verbose", nil)
	l.LogPPU(LogLevelWarning, "kept", nil)
	l.Shutdown()

	entries := l.GetEntries()
	if len(entries) != 1 || entries[0].Message != "kept" {
		t.Fatalf("expected only the warning entry, got %v", entries)
	}
}

func TestRingBufferKeepsNewestEntries(t *testing.T) {
	l := NewLogger(100)
	l.SetComponentEnabled(ComponentSystem, true)
	for i := 0; i < 150; i++ {
		l.LogSystemf(LogLevelInfo, "entry %d", i)
	}
	l.Shutdown()

	entries := l.GetEntries()
	if len(entries) != 100 {
		t.Fatalf("ring buffer: expected 100 entries, got %d", len(entries))
	}
	if entries[0].Message != "entry 50" {
		t.Errorf("oldest surviving entry: expected 'entry 50', got %q", entries[0].Message)
	}
	if entries[99].Message != "entry 149" {
		t.Errorf("newest entry: expected 'entry 149', got %q", entries[99].Message)
	}
}

func TestGetRecentEntries(t *testing.T) {
	l := NewLogger(100)
	l.SetComponentEnabled(ComponentSystem, true)
	for i := 0; i < 10; i++ {
		l.LogSystemf(LogLevelInfo, "entry %d", i)
	}
	l.Shutdown()

	recent := l.GetRecentEntries(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	if recent[2].Message != "entry 9" {
		t.Errorf("most recent: expected 'entry 9', got %q", recent[2].Message)
	}
}

func TestLogLevelString(t *testing.T) {
	cases := map[LogLevel]string{
		LogLevelError:   "ERROR",
		LogLevelWarning: "WARNING",
		LogLevelInfo:    "INFO",
		LogLevelDebug:   "DEBUG",
		LogLevelTrace:   "TRACE",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String(): expected %q, got %q", level, want, got)
		}
	}
}
