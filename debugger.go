package smartdebug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/YakDriver/smartdebug/internal"
)

// Debugger is a façade over a set of registered objects. Each key maps to a
// Probe, the emitting surface for that object. Several Debugger façades may
// coexist in one Context; their probes gate independently but share the
// global flag and sink.
type Debugger struct {
	ctx    *Context
	mu     sync.Mutex
	probes map[string]*Probe
}

// New returns a Debugger bound to the default context.
func New() *Debugger {
	return NewIn(Default())
}

// NewIn returns a Debugger bound to ctx.
func NewIn(ctx *Context) *Debugger {
	return &Debugger{ctx: ctx, probes: make(map[string]*Probe)}
}

// Register creates one Probe per (key, object) pair. The object reference is
// held but never copied or mutated; the debug flag lives on the Probe.
//
// initial is the starting debug state for every new probe. Omitting it is
// tolerated with a warning and a default of off. A bootstrap-configured
// probe state for a key overrides initial.
//
// Registering a key that already exists replaces its probe.
func (d *Debugger) Register(objects map[string]any, initial ...bool) {
	state := false
	if len(initial) == 0 {
		internal.GetGlobalLogger().Warn("smartdebug: no initial debug state given at registration, defaulting to off")
	} else {
		state = initial[0]
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for key, target := range objects {
		st := state
		if v, ok := d.ctx.probeDefault(key); ok {
			st = v
		}
		p := &Probe{key: key, target: target, dbg: d}
		p.enabled.Store(st)
		d.probes[key] = p
		d.ctx.track(p)
		internal.Debugf("registered probe %q (enabled=%t)", key, st)
	}
}

// Probe returns the probe for key, or nil when the key was never registered.
func (d *Debugger) Probe(key string) *Probe {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.probes[key]
}

// Keys returns the registered keys in sorted order.
func (d *Debugger) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]string, 0, len(d.probes))
	for k := range d.probes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetState sets the debug flag of the named probes, or of every probe when
// no key is given, and returns the full state snapshot. Unknown keys are
// ignored.
func (d *Debugger) SetState(state bool, keys ...string) map[string]string {
	d.mu.Lock()
	if len(keys) == 0 {
		for _, p := range d.probes {
			p.enabled.Store(state)
		}
	} else {
		for _, key := range keys {
			if p, ok := d.probes[key]; ok {
				p.enabled.Store(state)
			}
		}
	}
	d.mu.Unlock()
	return d.State()
}

// On enables the named probes, or all probes when no key is given.
func (d *Debugger) On(keys ...string) map[string]string {
	return d.SetState(true, keys...)
}

// Off disables the named probes, or all probes when no key is given.
func (d *Debugger) Off(keys ...string) map[string]string {
	return d.SetState(false, keys...)
}

// State returns each registered key mapped to "on" or "off".
func (d *Debugger) State() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	snapshot := make(map[string]string, len(d.probes))
	for key, p := range d.probes {
		if p.enabled.Load() {
			snapshot[key] = "on"
		} else {
			snapshot[key] = "off"
		}
	}
	return snapshot
}

// Probe is the emitting surface synthesized for one registered object. It
// holds a non-owning reference to the object and the object's debug flag;
// the probe's lifetime follows its owner's.
type Probe struct {
	key     string
	target  any
	enabled atomic.Bool
	dbg     *Debugger
}

// Key returns the registration key.
func (p *Probe) Key() string {
	return p.key
}

// Target returns the registered object.
func (p *Probe) Target() any {
	return p.target
}

// Enabled reports the probe's debug flag.
func (p *Probe) Enabled() bool {
	return p.enabled.Load()
}

// SetEnabled sets the probe's debug flag, independent of all other probes.
func (p *Probe) SetEnabled(state bool) {
	p.enabled.Store(state)
}

// Log emits at the default severity.
func (p *Probe) Log(args ...any) {
	p.emit(LevelLog, 1, args)
}

// Info emits at info severity.
func (p *Probe) Info(args ...any) {
	p.emit(LevelInfo, 1, args)
}

// Warn emits at warn severity.
func (p *Probe) Warn(args ...any) {
	p.emit(LevelWarn, 1, args)
}

// Error emits at error severity.
func (p *Probe) Error(args ...any) {
	p.emit(LevelError, 1, args)
}

// Emit emits at an arbitrary severity. Levels beyond the standard set reach
// the sink untouched, so a sink may recognize more than the built-ins do.
func (p *Probe) Emit(level string, args ...any) {
	p.emit(level, 1, args)
}

// EmitDepth emits at an arbitrary severity, attributing the call site depth
// additional frames up the stack. Wrappers around a probe pass the number of
// frames they add.
func (p *Probe) EmitDepth(level string, depth int, args ...any) {
	p.emit(level, depth+1, args)
}

// emit is the single gate-resolve-forward path. skip counts the frames
// between emit and the true caller.
func (p *Probe) emit(level string, skip int, args []any) {
	ctx := p.dbg.ctx
	if !ctx.GlobalEnabled() || !p.enabled.Load() {
		return
	}

	loc := Resolve(ResolveOptions{Skip: skip + 1})
	rec := OutputRecord{
		Level:   level,
		Message: joinArgs(args),
		Stack:   strings.Join(loc.Stack, "\n"),
		Loc:     loc,
	}

	sink := ctx.Sink()
	if err := sink.Emit(level, rec); err != nil {
		rec.Level = LevelError
		rec.Message = fmt.Sprintf("unsupported log level %q: %s", level, rec.Message)
		if err := sink.Emit(LevelError, rec); err != nil {
			internal.Debugf("sink rejected error-level fallback: %v", err)
		}
	}
}

// joinArgs renders each argument followed by a single space.
func joinArgs(args []any) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(fmt.Sprint(a))
		b.WriteString(" ")
	}
	return b.String()
}
