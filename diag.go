// diag.go
// Sink adapters for hosts that surface diagnostics through the Terraform
// plugin ecosystem. A provider embedding smartdebug can route records into
// tflog or straight into its diagnostics, keeping one diagnostic stream.
package smartdebug

import (
	"context"
	"fmt"
	"strings"

	fwdiag "github.com/hashicorp/terraform-plugin-framework/diag"
	tflog "github.com/hashicorp/terraform-plugin-log/tflog"
	sdkdiag "github.com/hashicorp/terraform-plugin-sdk/v2/diag"
)

// TFLogSink emits records through tflog using the context captured at
// construction, which must carry the provider's logger.
type TFLogSink struct {
	ctx context.Context
}

func NewTFLogSink(ctx context.Context) *TFLogSink {
	return &TFLogSink{ctx: ctx}
}

func (s *TFLogSink) Emit(level string, rec OutputRecord) error {
	fields := map[string]any{"location": rec.Loc.Rendered()}
	switch level {
	case LevelLog:
		tflog.Debug(s.ctx, rec.Message, fields)
	case LevelInfo:
		tflog.Info(s.ctx, rec.Message, fields)
	case LevelWarn:
		tflog.Warn(s.ctx, rec.Message, fields)
	case LevelError:
		tflog.Error(s.ctx, rec.Message, fields)
	default:
		return fmt.Errorf("tflog sink: unsupported level %q", level)
	}
	return nil
}

// FWDiagSink appends records to plugin-framework diagnostics. Error-level
// records become error diagnostics; every other supported level becomes a
// warning, the only other severity the framework carries.
type FWDiagSink struct {
	Diags *fwdiag.Diagnostics
}

func (s *FWDiagSink) Emit(level string, rec OutputRecord) error {
	summary, detail := diagParts(rec)
	switch level {
	case LevelError:
		s.Diags.AddError(summary, detail)
	case LevelLog, LevelInfo, LevelWarn:
		s.Diags.AddWarning(summary, detail)
	default:
		return fmt.Errorf("framework diag sink: unsupported level %q", level)
	}
	return nil
}

// SDKDiagSink appends records to SDKv2 diagnostics, with the same severity
// collapse as FWDiagSink.
type SDKDiagSink struct {
	Diags *sdkdiag.Diagnostics
}

func (s *SDKDiagSink) Emit(level string, rec OutputRecord) error {
	summary, detail := diagParts(rec)
	severity := sdkdiag.Warning
	switch level {
	case LevelError:
		severity = sdkdiag.Error
	case LevelLog, LevelInfo, LevelWarn:
	default:
		return fmt.Errorf("sdk diag sink: unsupported level %q", level)
	}
	*s.Diags = append(*s.Diags, sdkdiag.Diagnostic{
		Severity: severity,
		Summary:  summary,
		Detail:   detail,
	})
	return nil
}

// diagParts splits a record into diagnostic summary and detail: the message
// as summary, the rendered location as detail.
func diagParts(rec OutputRecord) (string, string) {
	summary := strings.TrimSpace(rec.Message)
	if summary == "" {
		summary = "smartdebug message"
	}
	return summary, rec.Loc.Rendered()
}
