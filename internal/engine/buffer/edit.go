package buffer

import "fmt"

// Change describes one successful SetLines call. Start..End is the
// replaced line range before the edit (End == Start-1 for a pure
// insertion); NewLines is what now occupies the range starting at Start.
type Change struct {
	Start    int
	End      int
	OldLines []string
	NewLines []string
	Tick     uint64
	Revision RevisionID
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch {
	case c.End < c.Start:
		return fmt.Sprintf("Insert(%d, %d lines)", c.Start, len(c.NewLines))
	case len(c.NewLines) == 0:
		return fmt.Sprintf("Delete(%d..%d)", c.Start, c.End)
	default:
		return fmt.Sprintf("Replace(%d..%d, %d lines)", c.Start, c.End, len(c.NewLines))
	}
}

// Delta returns the change in line count.
func (c Change) Delta() int {
	return len(c.NewLines) - len(c.OldLines)
}

// Listener receives buffer changes.
type Listener func(Change)
