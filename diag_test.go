package smartdebug

import (
	"testing"

	fwdiag "github.com/hashicorp/terraform-plugin-framework/diag"
	sdkdiag "github.com/hashicorp/terraform-plugin-sdk/v2/diag"
)

func TestFWDiagSink_SeverityMapping(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected string
	}{
		{name: "error maps to error", level: LevelError, expected: "Error"},
		{name: "warn maps to warning", level: LevelWarn, expected: "Warning"},
		{name: "log maps to warning", level: LevelLog, expected: "Warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags fwdiag.Diagnostics
			sink := &FWDiagSink{Diags: &diags}

			rec := OutputRecord{Message: "boom ", Loc: Location{File: "f.go", Line: "3", Column: Unknown}}
			if err := sink.Emit(tt.level, rec); err != nil {
				t.Fatalf("Emit error: %v", err)
			}

			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(diags))
			}
			if got := diags[0].Severity().String(); got != tt.expected {
				t.Errorf("expected severity %s, got %s", tt.expected, got)
			}
			if diags[0].Summary() != "boom" {
				t.Errorf("expected trimmed message as summary, got %q", diags[0].Summary())
			}
			if diags[0].Detail() != "(f.go:3:?)" {
				t.Errorf("expected rendered location as detail, got %q", diags[0].Detail())
			}
		})
	}
}

func TestFWDiagSink_UnsupportedLevel(t *testing.T) {
	var diags fwdiag.Diagnostics
	sink := &FWDiagSink{Diags: &diags}
	if err := sink.Emit("verbose", OutputRecord{}); err == nil {
		t.Error("expected an error for an unsupported level")
	}
	if len(diags) != 0 {
		t.Errorf("unsupported level must not append, got %d", len(diags))
	}
}

func TestSDKDiagSink_SeverityMapping(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected sdkdiag.Severity
	}{
		{name: "error maps to error", level: LevelError, expected: sdkdiag.Error},
		{name: "info maps to warning", level: LevelInfo, expected: sdkdiag.Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags sdkdiag.Diagnostics
			sink := &SDKDiagSink{Diags: &diags}

			if err := sink.Emit(tt.level, OutputRecord{Message: "boom "}); err != nil {
				t.Fatalf("Emit error: %v", err)
			}
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(diags))
			}
			if diags[0].Severity != tt.expected {
				t.Errorf("expected severity %v, got %v", tt.expected, diags[0].Severity)
			}
		})
	}
}
