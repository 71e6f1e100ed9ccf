package buffer

import (
	"io"
	"strings"
	"sync"
)

// LineEnding specifies the line ending style used when the buffer is
// joined back into a single string.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is a line-oriented text store.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	tick       uint64
	revisionID RevisionID
	lineEnding LineEnding
	modifiable bool

	subMu     sync.RWMutex
	listeners map[int]Listener
	nextSub   int
}

// NewBuffer creates a buffer holding a single empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		modifiable: true,
		listeners:  make(map[int]Listener),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. Any of the
// supported line endings split lines; a single trailing line ending does
// not produce an extra empty line.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(append([]Option{WithLineEnding(DetectLineEnding(s))}, opts...)...)
	b.lines = SplitLines(s)
	return b
}

// NewBufferFromLines creates a buffer from a slice of lines.
func NewBufferFromLines(lines []string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if len(lines) > 0 {
		b.lines = append([]string(nil), lines...)
	}
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// SplitLines splits text into lines on LF, CRLF or CR.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Read Operations

// LineCount returns the number of lines. It is never less than one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of a 1-indexed line, or "" when out of range.
func (b *Buffer) Line(n int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// LineLen returns the byte length of a 1-indexed line, or 0 when out of range.
func (b *Buffer) LineLen(n int) int {
	return len(b.Line(n))
}

// GetLines returns a copy of lines start..end inclusive.
func (b *Buffer) GetLines(start, end int) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start < 1 || end > len(b.lines) || end < start-1 {
		return nil, &RangeError{Start: start, End: end, Lines: len(b.lines)}
	}
	return append([]string(nil), b.lines[start-1:end]...), nil
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.lines...)
}

// Text joins the lines with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// Write Operations

// SetLines replaces lines start..end inclusive with lines. When end is
// start-1 nothing is removed and lines are inserted before start; start may
// be LineCount()+1 to append. It returns the actual change in line count,
// which accounts for a fully deleted buffer collapsing to one empty line.
func (b *Buffer) SetLines(start, end int, lines []string) (int, error) {
	b.mu.Lock()

	if !b.modifiable {
		b.mu.Unlock()
		return 0, ErrNotModifiable
	}
	n := len(b.lines)
	if start < 1 || start > n+1 || end < start-1 || end > n {
		b.mu.Unlock()
		return 0, &RangeError{Start: start, End: end, Lines: n}
	}

	old := append([]string(nil), b.lines[start-1:end]...)
	inserted := append([]string(nil), lines...)

	next := make([]string, 0, n-len(old)+len(inserted))
	next = append(next, b.lines[:start-1]...)
	next = append(next, inserted...)
	next = append(next, b.lines[end:]...)
	if len(next) == 0 {
		next = []string{""}
		inserted = []string{""}
	}

	b.lines = next
	b.tick++
	b.revisionID = NewRevisionID()

	change := Change{
		Start:    start,
		End:      end,
		OldLines: old,
		NewLines: inserted,
		Tick:     b.tick,
		Revision: b.revisionID,
	}
	delta := len(next) - n
	b.mu.Unlock()

	b.notify(change)
	return delta, nil
}

// SetLine replaces a single line.
func (b *Buffer) SetLine(n int, text string) error {
	_, err := b.SetLines(n, n, []string{text})
	return err
}

// InsertLines inserts lines before line at.
func (b *Buffer) InsertLines(at int, lines []string) error {
	_, err := b.SetLines(at, at-1, lines)
	return err
}

// DeleteLines removes lines start..end inclusive.
func (b *Buffer) DeleteLines(start, end int) (int, error) {
	return b.SetLines(start, end, nil)
}

// Buffer State

// Tick returns the modification counter.
func (b *Buffer) Tick() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tick
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is a single empty line.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Modifiable reports whether edits are accepted.
func (b *Buffer) Modifiable() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modifiable
}

// SetModifiable toggles whether edits are accepted.
func (b *Buffer) SetModifiable(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modifiable = on
}

// Snapshot returns a read-only snapshot of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		lines:      append([]string(nil), b.lines...),
		tick:       b.tick,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
	}
}

// Subscriptions

// Subscribe registers a listener for changes and returns a function that
// removes it.
func (b *Buffer) Subscribe(l Listener) func() {
	b.subMu.Lock()
	id := b.nextSub
	b.nextSub++
	b.listeners[id] = l
	b.subMu.Unlock()

	return func() {
		b.subMu.Lock()
		delete(b.listeners, id)
		b.subMu.Unlock()
	}
}

func (b *Buffer) notify(c Change) {
	b.subMu.RLock()
	ls := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		ls = append(ls, l)
	}
	b.subMu.RUnlock()

	for _, l := range ls {
		l(c)
	}
}
