package smartdebug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// GlobalGroup is the reserved group gating every profiler regardless of its
// own group or instance override.
const GlobalGroup = "global"

// GroupSet is the registry of named profiler groups. Toggling an entry
// mass-enables or -disables every profiler in that group; the reserved
// "global" entry gates all of them.
type GroupSet struct {
	mu     sync.Mutex
	states map[string]bool
}

// NewGroupSet returns a registry with only the "global" group, enabled.
func NewGroupSet() *GroupSet {
	return &GroupSet{states: map[string]bool{GlobalGroup: true}}
}

// Set declares or updates a group. An empty name is programmer misuse and
// panics.
func (g *GroupSet) Set(name string, state bool) {
	if name == "" {
		panic("smartdebug: profiler group name must be non-empty")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[name] = state
}

// Declare registers a group as enabled the first time it is referenced,
// leaving an existing state untouched.
func (g *GroupSet) Declare(name string) {
	if name == "" {
		panic("smartdebug: profiler group name must be non-empty")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.states[name]; !ok {
		g.states[name] = true
	}
}

// Enabled reports a group's state. An undeclared group reads as disabled.
func (g *GroupSet) Enabled(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.states[name]
}

// States returns a copy of the registry.
func (g *GroupSet) States() map[string]bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]bool, len(g.states))
	for k, v := range g.states {
		out[k] = v
	}
	return out
}

// Sample is one recorded timing segment.
type Sample struct {
	Name    string
	Elapsed time.Duration
}

// Profiler measures elapsed wall-clock time per named segment, either as a
// manual stopwatch (Start/Stop) or by wrapping a callable (Wrap, Timed).
// Samples record only while the profiler is effectively active: the instance
// override AND its group AND the "global" group must all be on.
//
// There is no nested timing: starting a new segment always closes the
// current one first.
type Profiler struct {
	ctx      *Context
	mu       sync.Mutex
	name     string
	initName string
	group    string
	active   bool
	running  bool
	started  time.Time
	results  []Sample
	now      func() time.Time
	out      io.Writer
}

// NewProfiler returns a stopwatch-mode profiler in the default context,
// named name, in the "global" group, active.
func NewProfiler(name string) *Profiler {
	return NewProfilerIn(Default(), name)
}

// NewProfilerIn returns a profiler bound to ctx.
func NewProfilerIn(ctx *Context, name string) *Profiler {
	return &Profiler{
		ctx:      ctx,
		name:     name,
		initName: name,
		group:    GlobalGroup,
		active:   true,
		now:      time.Now,
		out:      os.Stderr,
	}
}

// SetGroup moves the profiler into a named group, auto-declaring an unknown
// group as enabled. An empty name panics.
func (p *Profiler) SetGroup(name string) {
	if name == "" {
		panic("smartdebug: profiler group name must be non-empty")
	}
	p.ctx.Groups().Declare(name)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.group = name
}

// Group returns the profiler's group name.
func (p *Profiler) Group() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.group
}

// SetActive sets the instance-level override. Even when true, the profiler
// only records while its group and the "global" group are enabled.
func (p *Profiler) SetActive(state bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = state
}

// Active reports the effective activity: instance override AND group AND
// "global" group.
func (p *Profiler) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeLocked()
}

func (p *Profiler) activeLocked() bool {
	groups := p.ctx.Groups()
	return p.active && groups.Enabled(GlobalGroup) && groups.Enabled(p.group)
}

// Running reports whether a segment is currently open.
func (p *Profiler) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// SetOutput redirects elapsed prints and reports, which default to stderr.
func (p *Profiler) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
}

// SetClock replaces the time source. Only tests need this.
func (p *Profiler) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

// Start opens a segment. With a name, the segment records under it;
// otherwise under the profiler's construction name. A segment already
// running is closed first. Inactive profilers no-op.
func (p *Profiler) Start(name ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.activeLocked() {
		return
	}
	if p.running {
		p.stopLocked()
	}
	if len(name) > 0 && name[0] != "" {
		p.name = name[0]
	} else {
		p.name = p.initName
	}
	p.running = true
	p.started = p.now()
}

// Stop closes the current segment and returns its elapsed time, appending a
// sample while the profiler is active. Stopping while idle is a no-op that
// returns zero. Pass true to also print the elapsed time.
func (p *Profiler) Stop(print ...bool) time.Duration {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return 0
	}
	name := p.name
	elapsed := p.stopLocked()
	out := p.out
	p.mu.Unlock()

	if len(print) > 0 && print[0] {
		fmt.Fprintf(out, "%s: %.2f ms\n", name, durationMillis(elapsed))
	}
	return elapsed
}

// stopLocked closes the open segment, recording a sample when active.
// Callers hold p.mu and have checked p.running.
func (p *Profiler) stopLocked() time.Duration {
	elapsed := p.now().Sub(p.started)
	p.running = false
	if p.activeLocked() {
		p.results = append(p.results, Sample{Name: p.name, Elapsed: elapsed})
	}
	return elapsed
}

// Results returns a copy of the recorded samples, in order.
func (p *Profiler) Results() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Sample, len(p.results))
	copy(out, p.results)
	return out
}

// Reset discards all recorded samples.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = nil
}

// Wrap returns a callable that brackets fn with Start/Stop. The original fn
// is untouched; timing state lives in the profiler.
func (p *Profiler) Wrap(fn func()) func() {
	return func() {
		p.Start()
		defer p.Stop()
		fn()
	}
}

// Time runs fn as one segment under name.
func (p *Profiler) Time(name string, fn func()) {
	p.Start(name)
	defer p.Stop()
	fn()
}

// Timed wraps a callable returning a value, preserving its result.
func Timed[R any](p *Profiler, fn func() R) func() R {
	return func() R {
		p.Start()
		defer p.Stop()
		return fn()
	}
}

// Timed1 wraps a single-argument callable, preserving argument and result.
func Timed1[A, R any](p *Profiler, fn func(A) R) func(A) R {
	return func(a A) R {
		p.Start()
		defer p.Stop()
		return fn(a)
	}
}

// ReportRow is one row of the aggregate report, pre-formatted: milliseconds
// to 2 decimals, seconds to 6.
type ReportRow struct {
	Name         string
	Milliseconds string
	Seconds      string
}

// Report aggregates the recorded samples into rows. A segment name identical
// to the immediately preceding one is blanked to cut noise from repeated
// loops. When any samples exist, "total" and "average" rows are appended.
func (p *Profiler) Report() []ReportRow {
	samples := p.Results()
	rows := make([]ReportRow, 0, len(samples)+2)
	prev := ""
	totalMs := 0.0
	for _, s := range samples {
		name := s.Name
		if name == prev {
			name = ""
		} else {
			prev = s.Name
		}
		ms := durationMillis(s.Elapsed)
		totalMs += ms
		rows = append(rows, reportRow(name, ms))
	}
	if len(samples) > 0 {
		rows = append(rows, reportRow("total", totalMs))
		rows = append(rows, reportRow("average", totalMs/float64(len(samples))))
	}
	return rows
}

// FormatReport renders the report as a fixed-width, delimiter-padded block.
func (p *Profiler) FormatReport() string {
	rows := p.Report()
	nameWidth := len("segment")
	msWidth := len("ms")
	for _, r := range rows {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
		if len(r.Milliseconds) > msWidth {
			msWidth = len(r.Milliseconds)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s | %*s | %s\n", nameWidth, "segment", msWidth, "ms", "s")
	b.WriteString(strings.Repeat("-", nameWidth+msWidth+len("0.000000")+6))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s | %*s | %s\n", nameWidth, r.Name, msWidth, r.Milliseconds, r.Seconds)
	}
	return b.String()
}

// PrintResults writes the aggregate report to the profiler's writer.
func (p *Profiler) PrintResults() {
	p.mu.Lock()
	out := p.out
	p.mu.Unlock()
	fmt.Fprint(out, p.FormatReport())
}

func reportRow(name string, ms float64) ReportRow {
	return ReportRow{
		Name:         name,
		Milliseconds: fmt.Sprintf("%.2f", ms),
		Seconds:      fmt.Sprintf("%.6f", ms/1000),
	}
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
