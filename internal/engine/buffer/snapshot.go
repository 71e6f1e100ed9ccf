package buffer

import "strings"

// Snapshot is a read-only copy of a buffer at a specific tick.
// It is safe for concurrent access and does not change when the
// buffer is modified.
type Snapshot struct {
	lines      []string
	tick       uint64
	revisionID RevisionID
	lineEnding LineEnding
}

// Lines returns a copy of the snapshot lines.
func (s *Snapshot) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Line returns the text of a 1-indexed line, or "" when out of range.
func (s *Snapshot) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Text joins the lines with the buffer's line ending.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// Tick returns the modification counter at snapshot time.
func (s *Snapshot) Tick() uint64 {
	return s.tick
}

// RevisionID returns the buffer revision at snapshot time.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}
