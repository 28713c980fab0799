package smartdebug

import (
	"testing"
	"testing/fstest"

	"github.com/YakDriver/smartdebug/internal"
)

// memFS wraps an in-memory file map in the config FileSystem.
func memFS(files map[string]string) FileSystem {
	m := fstest.MapFS{}
	for path, data := range files {
		m[path] = &fstest.MapFile{Data: []byte(data)}
	}
	return &internal.WrappedFS{FS: m}
}

func TestContext_GlobalFlagDefaultsOff(t *testing.T) {
	ctx := NewContext()
	if ctx.GlobalEnabled() {
		t.Error("global flag must default to off")
	}
	ctx.SetGlobal(true)
	if !ctx.GlobalEnabled() {
		t.Error("SetGlobal(true) not observed")
	}
	ctx.SetGlobal(false)
	if ctx.GlobalEnabled() {
		t.Error("SetGlobal(false) must clear the flag")
	}
}

func TestBootstrap_SeedsGlobalFlag(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   bool
	}{
		{
			name:   "debug true",
			config: `smartdebug { debug = true }`,
			want:   true,
		},
		{
			name:   "debug false",
			config: `smartdebug { debug = false }`,
			want:   false,
		},
		{
			name:   "absent defaults off",
			config: `smartdebug {}`,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			fsys := memFS(map[string]string{
				"smartdebug/smartdebug.hcl": tt.config,
			})
			if err := ctx.Bootstrap(fsys, nil, "."); err != nil {
				t.Fatalf("Bootstrap error: %v", err)
			}
			if got := ctx.GlobalEnabled(); got != tt.want {
				t.Errorf("expected global flag %t, got %t", tt.want, got)
			}
		})
	}
}

func TestBootstrap_AppliesGroupStates(t *testing.T) {
	ctx := NewContext()
	fsys := memFS(map[string]string{
		"smartdebug/smartdebug.hcl": `
group "render" { enabled = false }
group "physics" { enabled = true }
`,
	})
	if err := ctx.Bootstrap(fsys, nil, "."); err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}

	if ctx.Groups().Enabled("render") {
		t.Error("expected group render disabled")
	}
	if !ctx.Groups().Enabled("physics") {
		t.Error("expected group physics enabled")
	}
	if !ctx.Groups().Enabled(GlobalGroup) {
		t.Error("global group must stay enabled unless configured off")
	}
}

func TestContext_AttachViewerKeepsParity(t *testing.T) {
	ctx := NewContext()
	console := NewMemorySink(0)
	ctx.SetSink(console)
	viewer := NewMemorySink(0)
	ctx.AttachViewer(viewer)
	ctx.SetGlobal(true)

	d := NewIn(ctx)
	d.Register(map[string]any{"a": struct{}{}}, true)
	d.Probe("a").Log("shared")

	if viewer.Len() != 1 || console.Len() != 1 {
		t.Errorf("expected viewer and console to both receive the record, got %d and %d",
			viewer.Len(), console.Len())
	}
}

func TestBootstrap_MissingConfigLeavesDefaults(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Bootstrap(memFS(nil), nil, "."); err != nil {
		t.Fatalf("Bootstrap with empty FS must not fail: %v", err)
	}
	if ctx.GlobalEnabled() {
		t.Error("empty config must leave the global flag off")
	}
}
