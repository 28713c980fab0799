package smartdebug

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// Unknown is the sentinel used for any call-site fragment that cannot be
// resolved. Stack shapes vary across platforms and inlining decisions, so
// resolution always degrades to this sentinel instead of failing.
const Unknown = "?"

// Location is the resolved origin of a diagnostic call: the caller's file,
// line, and column, plus the human-readable frames below it. Column is not
// recoverable from the Go runtime and stays Unknown unless overridden.
type Location struct {
	File   string
	Line   string
	Column string
	Stack  []string
}

// Rendered returns the canonical "(file:line:col)" form.
func (l Location) Rendered() string {
	return "(" + l.File + ":" + l.Line + ":" + l.Column + ")"
}

func (l Location) String() string {
	return l.Rendered()
}

// ResolveOptions controls call-site resolution.
//
// Skip is the number of stack frames between Resolve's caller and the frame
// that should be attributed, so the instrumentation layer can discard its
// own indirection. Callers sitting one wrapper deeper than usual add one.
//
// File and Line, when set, override the resolved values. This serves callers
// that already know their origin, such as a process-level error handler.
type ResolveOptions struct {
	Skip int
	File string
	Line int
}

// Resolve captures the current call stack and returns the Location of the
// frame Skip levels above the caller. It never fails: an empty or
// unparseable capture yields a Location with every field set to Unknown.
func Resolve(opts ResolveOptions) Location {
	loc := Location{File: Unknown, Line: Unknown, Column: Unknown}

	pcs := make([]uintptr, 32)
	// +2 skips runtime.Callers and Resolve itself.
	n := runtime.Callers(opts.Skip+2, pcs)
	if n > 0 {
		frames := runtime.CallersFrames(pcs[:n])
		first := true
		for {
			frame, more := frames.Next()
			loc.Stack = append(loc.Stack, describeFrame(frame))
			if first {
				first = false
				if frame.File != "" {
					loc.File = filepath.Base(frame.File)
				}
				if frame.Line > 0 {
					loc.Line = strconv.Itoa(frame.Line)
				}
			}
			if !more {
				break
			}
		}
	}

	if opts.File != "" {
		loc.File = opts.File
	}
	if opts.Line > 0 {
		loc.Line = strconv.Itoa(opts.Line)
	}
	return loc
}

// describeFrame renders one stack frame as "function (file:line)", with
// Unknown standing in for any missing piece.
func describeFrame(frame runtime.Frame) string {
	fn := frame.Function
	if fn == "" {
		fn = Unknown
	}
	file := Unknown
	if frame.File != "" {
		file = filepath.Base(frame.File)
	}
	line := Unknown
	if frame.Line > 0 {
		line = strconv.Itoa(frame.Line)
	}
	return fn + " (" + file + ":" + line + ")"
}
