package smartdebug

import (
	"strings"
	"testing"
)

func TestResolve_CallerFileAndLine(t *testing.T) {
	loc := Resolve(ResolveOptions{})

	if loc.File != "location_test.go" {
		t.Errorf("expected file location_test.go, got %q", loc.File)
	}
	if loc.Line == Unknown {
		t.Error("expected a resolved line")
	}
	if loc.Column != Unknown {
		t.Errorf("column is not recoverable and must stay %q, got %q", Unknown, loc.Column)
	}
	if len(loc.Stack) == 0 {
		t.Fatal("expected stack frames")
	}
	if !strings.Contains(loc.Stack[0], "TestResolve_CallerFileAndLine") {
		t.Errorf("top frame should be the caller, got %q", loc.Stack[0])
	}
}

func TestResolve_DeterministicForSameLine(t *testing.T) {
	var locs []Location
	for i := 0; i < 2; i++ {
		locs = append(locs, Resolve(ResolveOptions{}))
	}

	if locs[0].File != locs[1].File || locs[0].Line != locs[1].Line || locs[0].Column != locs[1].Column {
		t.Errorf("two resolutions from one line differ: %v vs %v", locs[0], locs[1])
	}
}

func TestResolve_SkipDiscardsWrapperFrames(t *testing.T) {
	wrapper := func() Location {
		return Resolve(ResolveOptions{Skip: 1})
	}
	loc := wrapper()

	if !strings.Contains(loc.Stack[0], "TestResolve_SkipDiscardsWrapperFrames") {
		t.Errorf("Skip=1 should attribute the wrapper's caller, got %q", loc.Stack[0])
	}
}

func TestResolve_EmptyCaptureDegradesToSentinels(t *testing.T) {
	// A skip beyond the stack depth yields no frames; every field must
	// degrade rather than fail.
	loc := Resolve(ResolveOptions{Skip: 10000})

	if loc.File != Unknown || loc.Line != Unknown || loc.Column != Unknown {
		t.Errorf("expected all-sentinel location, got %v", loc)
	}
	if loc.Rendered() != "(?:?:?)" {
		t.Errorf("expected (?:?:?), got %q", loc.Rendered())
	}
}

func TestResolve_ExplicitOverridesWin(t *testing.T) {
	tests := []struct {
		name     string
		opts     ResolveOptions
		wantFile string
		wantLine string
	}{
		{
			name:     "file and line",
			opts:     ResolveOptions{File: "app.js", Line: 17},
			wantFile: "app.js",
			wantLine: "17",
		},
		{
			name:     "file only",
			opts:     ResolveOptions{File: "app.js"},
			wantFile: "app.js",
		},
		{
			name:     "overrides apply even with no usable frames",
			opts:     ResolveOptions{Skip: 10000, File: "handler.go", Line: 3},
			wantFile: "handler.go",
			wantLine: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Resolve(tt.opts)
			if loc.File != tt.wantFile {
				t.Errorf("expected file %q, got %q", tt.wantFile, loc.File)
			}
			if tt.wantLine != "" && loc.Line != tt.wantLine {
				t.Errorf("expected line %q, got %q", tt.wantLine, loc.Line)
			}
		})
	}
}

func TestLocation_RenderedForm(t *testing.T) {
	loc := Location{File: "main.go", Line: "42", Column: Unknown}
	want := "(main.go:42:?)"
	if loc.Rendered() != want {
		t.Errorf("expected %q, got %q", want, loc.Rendered())
	}
	if loc.String() != loc.Rendered() {
		t.Error("String must return the rendered form")
	}
}
