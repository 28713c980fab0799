package smartdebug

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/eapache/queue"
)

// Severity levels recognized by the built-in sinks. Emit accepts any level
// string; a sink that does not recognize one rejects it and the router
// re-emits the record at LevelError.
const (
	LevelLog   = "log"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// OutputRecord is the unit handed to a Sink: a resolved, ready-to-render
// diagnostic message. Records are produced fresh per call and not retained
// by the router.
type OutputRecord struct {
	Level   string
	Message string
	Stack   string
	Loc     Location
}

// Sink receives resolved output records. Implementations must not retain
// rec.Loc.Stack beyond the call unless they copy it.
//
// Emit returns an error only when the level is not supported; the router
// recovers by re-emitting at LevelError.
type Sink interface {
	Emit(level string, rec OutputRecord) error
}

// consoleTags maps supported levels to their console prefixes.
var consoleTags = map[string]string{
	LevelLog:   "[LOG]",
	LevelInfo:  "[INFO]",
	LevelWarn:  "[WARN]",
	LevelError: "[ERROR]",
}

// ConsoleSink writes records to a writer, one line per record, with the
// rendered location right-justified to the detected terminal width.
type ConsoleSink struct {
	mu    sync.Mutex
	out   io.Writer
	width func() int
}

// NewConsoleSink returns a ConsoleSink writing to out. The location column
// is sized to the terminal width when out is a terminal, 80 otherwise.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out, width: terminalWidth}
}

func (s *ConsoleSink) Emit(level string, rec OutputRecord) error {
	tag, ok := consoleTags[level]
	if !ok {
		return fmt.Errorf("console sink: unsupported level %q", level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	line := tag + " " + rec.Message
	loc := rec.Loc.Rendered()
	pad := s.width() - len(line) - len(loc)
	if pad < 1 {
		pad = 1
	}
	_, err := fmt.Fprintf(s.out, "%s%s%s\n", line, strings.Repeat(" ", pad), loc)
	return err
}

// MemorySink retains the most recent records in a bounded ring. It stands in
// for an attached viewer and doubles as the natural sink for tests.
type MemorySink struct {
	mu  sync.Mutex
	buf *queue.Queue
	cap int
}

// DefaultMemoryCapacity bounds a MemorySink constructed with a non-positive
// capacity.
const DefaultMemoryCapacity = 256

func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemorySink{buf: queue.New(), cap: capacity}
}

// Emit accepts every level; the ring drops the oldest record when full.
func (s *MemorySink) Emit(level string, rec OutputRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Add(rec)
	for s.buf.Length() > s.cap {
		s.buf.Remove()
	}
	return nil
}

// Records returns the retained records, oldest first.
func (s *MemorySink) Records() []OutputRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OutputRecord, 0, s.buf.Length())
	for i := 0; i < s.buf.Length(); i++ {
		out = append(out, s.buf.Get(i).(OutputRecord))
	}
	return out
}

// Len returns the number of retained records.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Length()
}

// TeeSink forwards every record to all member sinks, in order. An attached
// viewer keeps console parity by teeing itself with a ConsoleSink.
type TeeSink struct {
	sinks []Sink
}

func NewTeeSink(sinks ...Sink) *TeeSink {
	return &TeeSink{sinks: sinks}
}

// Emit forwards to every member and returns the first error seen, after all
// members have been offered the record.
func (s *TeeSink) Emit(level string, rec OutputRecord) error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Emit(level, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
