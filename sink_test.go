package smartdebug

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func newFixedWidthConsole(buf *bytes.Buffer, width int) *ConsoleSink {
	s := NewConsoleSink(buf)
	s.width = func() int { return width }
	return s
}

func TestConsoleSink_RightJustifiesLocation(t *testing.T) {
	buf := &bytes.Buffer{}
	s := newFixedWidthConsole(buf, 40)
	rec := OutputRecord{
		Message: "hello ",
		Loc:     Location{File: "main.go", Line: "7", Column: Unknown},
	}

	if err := s.Emit(LevelLog, rec); err != nil {
		t.Fatalf("Emit error: %v", err)
	}

	line := strings.TrimSuffix(buf.String(), "\n")
	if len(line) != 40 {
		t.Errorf("expected line padded to width 40, got %d: %q", len(line), line)
	}
	if !strings.HasPrefix(line, "[LOG] hello ") {
		t.Errorf("unexpected prefix: %q", line)
	}
	if !strings.HasSuffix(line, "(main.go:7:?)") {
		t.Errorf("location must sit at the right edge: %q", line)
	}
}

func TestConsoleSink_NarrowWidthKeepsOneSpace(t *testing.T) {
	buf := &bytes.Buffer{}
	s := newFixedWidthConsole(buf, 10)
	rec := OutputRecord{
		Message: "a long message that overflows",
		Loc:     Location{File: "f.go", Line: "1", Column: Unknown},
	}

	if err := s.Emit(LevelWarn, rec); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if !strings.Contains(buf.String(), " (f.go:1:?)") {
		t.Errorf("overflowing line still separates the location: %q", buf.String())
	}
}

func TestConsoleSink_LevelTags(t *testing.T) {
	tests := []struct {
		level string
		tag   string
	}{
		{LevelLog, "[LOG]"},
		{LevelInfo, "[INFO]"},
		{LevelWarn, "[WARN]"},
		{LevelError, "[ERROR]"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			s := newFixedWidthConsole(buf, 60)
			if err := s.Emit(tt.level, OutputRecord{Message: "m "}); err != nil {
				t.Fatalf("Emit error: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.tag+" ") {
				t.Errorf("expected prefix %q, got %q", tt.tag, buf.String())
			}
		})
	}
}

func TestConsoleSink_UnsupportedLevel(t *testing.T) {
	s := newFixedWidthConsole(&bytes.Buffer{}, 60)
	if err := s.Emit("verbose", OutputRecord{Message: "m "}); err == nil {
		t.Error("expected an error for an unsupported level")
	}
}

func TestMemorySink_BoundedRing(t *testing.T) {
	s := NewMemorySink(3)
	for i := 0; i < 5; i++ {
		if err := s.Emit(LevelLog, OutputRecord{Message: fmt.Sprintf("m%d ", i)}); err != nil {
			t.Fatalf("Emit error: %v", err)
		}
	}

	records := s.Records()
	if len(records) != 3 {
		t.Fatalf("expected ring capped at 3, got %d", len(records))
	}
	for i, want := range []string{"m2 ", "m3 ", "m4 "} {
		if records[i].Message != want {
			t.Errorf("record %d: expected %q, got %q", i, want, records[i].Message)
		}
	}
}

func TestMemorySink_AcceptsAnyLevel(t *testing.T) {
	s := NewMemorySink(0)
	if err := s.Emit("custom-level", OutputRecord{Message: "m "}); err != nil {
		t.Errorf("memory sink must accept any level, got %v", err)
	}
}

func TestTeeSink_ForwardsToAllMembers(t *testing.T) {
	a := NewMemorySink(0)
	b := NewMemorySink(0)
	tee := NewTeeSink(a, b)

	if err := tee.Emit(LevelInfo, OutputRecord{Message: "m "}); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("expected both members to receive the record, got %d and %d", a.Len(), b.Len())
	}
}

func TestTeeSink_ErrorDoesNotStarveLaterMembers(t *testing.T) {
	buf := &bytes.Buffer{}
	console := newFixedWidthConsole(buf, 60)
	mem := NewMemorySink(0)
	tee := NewTeeSink(console, mem)

	err := tee.Emit("verbose", OutputRecord{Message: "m "})
	if err == nil {
		t.Error("expected the console member's error to surface")
	}
	if mem.Len() != 1 {
		t.Error("later members must still receive the record")
	}
}
