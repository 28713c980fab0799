// Package smartdebug is an in-process diagnostic layer. Program objects are
// registered under string keys and emit leveled debug messages and timing
// measurements, gated by per-key and global on/off switches. Emitted records
// carry the true call site of the debug call, with the layer's own frames
// stripped, even though emission passes through wrapper functions.
//
// The layer fails soft: anything unresolvable about a call site degrades to
// a "?" sentinel, unsupported sink levels are re-emitted as errors, and a
// suppressed call performs no observable work at all.
package smartdebug

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/YakDriver/smartdebug/internal"
)

// Context is the process-wide diagnostic context: the global debug flag, the
// active output sink, the profiler group registry, and the list of every
// probe ever registered. State is created explicitly; nothing happens at
// module load. All methods are safe for concurrent use.
type Context struct {
	mu         sync.Mutex
	global     atomic.Bool
	sink       Sink
	groups     *GroupSet
	registered []*Probe
	config     *internal.Config
}

// NewContext returns a Context with the global flag off, a console sink on
// stderr, and an empty group registry (the reserved "global" group enabled).
func NewContext() *Context {
	return &Context{
		sink:   NewConsoleSink(os.Stderr),
		groups: NewGroupSet(),
	}
}

// SetGlobal sets the process-wide debug flag. A message emits only when this
// flag and the probe's own flag are both on.
func (c *Context) SetGlobal(state bool) {
	c.global.Store(state)
}

// GlobalEnabled reports the process-wide debug flag.
func (c *Context) GlobalEnabled() bool {
	return c.global.Load()
}

// SetSink replaces the active output sink. Pass a TeeSink to keep console
// parity alongside an attached viewer.
func (c *Context) SetSink(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = s
}

// AttachViewer tees an external viewer over the current sink, so the viewer
// and the console see the same records. Until a viewer is attached, records
// go to the console alone.
func (c *Context) AttachViewer(v Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = NewTeeSink(v, c.sink)
}

// Sink returns the active output sink.
func (c *Context) Sink() Sink {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink
}

// Groups returns the profiler group registry shared by every Profiler
// created in this context.
func (c *Context) Groups() *GroupSet {
	return c.groups
}

// RegisteredKeys returns the key of every probe ever registered in this
// context, in registration order. Retained for bulk sweeps; gating itself
// never consults this list.
func (c *Context) RegisteredKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, len(c.registered))
	for i, p := range c.registered {
		keys[i] = p.Key()
	}
	return keys
}

// track records a probe in the process-wide registration list.
func (c *Context) track(p *Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registered = append(c.registered, p)
}

// probeDefault looks up a bootstrap-configured initial state for a key.
func (c *Context) probeDefault(key string) (bool, bool) {
	c.mu.Lock()
	cfg := c.config
	c.mu.Unlock()
	if cfg == nil {
		return false, false
	}
	return cfg.ProbeDefault(key)
}

// Bootstrap loads the merged smartdebug.hcl configuration from fsys and
// applies it: the global flag seed, internal logging, configured group
// states, and per-key initial states for later registrations. Absent config
// leaves every default in place; the global flag defaults to off.
func (c *Context) Bootstrap(fsys FileSystem, relStackPaths []string, baseDir string) error {
	cfg, err := internal.LoadConfig(fsys, relStackPaths, baseDir)
	if err != nil {
		return err
	}
	internal.ConfigureLogger(cfg)
	if seed, ok := cfg.GlobalDebug(); ok {
		c.SetGlobal(seed)
	}
	for name, state := range cfg.GroupStates() {
		if name == "" {
			internal.Debugf("ignoring group state with empty name")
			continue
		}
		c.groups.Set(name, state)
	}
	c.mu.Lock()
	c.config = cfg
	c.mu.Unlock()
	internal.Debugf("bootstrap applied: %d probe states, %d group states", len(cfg.Probes), len(cfg.Groups))
	return nil
}

// FileSystem is the filesystem abstraction used for bootstrap config
// discovery. See NewWrappedFS for wrapping a directory tree.
type FileSystem = internal.FileSystem

// NewWrappedFS returns a FileSystem rooted at the given directory.
func NewWrappedFS(root string) FileSystem {
	return internal.NewWrappedFS(root)
}

var (
	defaultCtx  *Context
	defaultOnce sync.Once
)

// Default returns the lazily-created default Context used by the
// package-level convenience functions.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultCtx = NewContext()
	})
	return defaultCtx
}

// SetGlobal sets the global debug flag on the default context.
func SetGlobal(state bool) {
	Default().SetGlobal(state)
}

// GlobalEnabled reports the global debug flag on the default context.
func GlobalEnabled() bool {
	return Default().GlobalEnabled()
}

// SetSink replaces the output sink on the default context.
func SetSink(s Sink) {
	Default().SetSink(s)
}

// SetFS bootstraps the default context from a config filesystem, mirroring
// the in-process "ambient configuration read once at initialization".
func SetFS(fsys FileSystem, baseDir string) error {
	return Default().Bootstrap(fsys, nil, baseDir)
}
