package history

import (
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Target is what the tree replays operations against.
type Target interface {
	SetLines(start, end int, lines []string) (int, error)
}

// Operation represents a single undoable line-range replacement.
type Operation struct {
	Start    int      // first line replaced, 1-indexed
	OldLines []string // lines removed by the edit
	NewLines []string // lines inserted by the edit
}

// FromChange converts a buffer change notification into an operation.
func FromChange(c buffer.Change) Operation {
	return Operation{
		Start:    c.Start,
		OldLines: append([]string(nil), c.OldLines...),
		NewLines: append([]string(nil), c.NewLines...),
	}
}

// Invert returns the operation that undoes op.
func (op Operation) Invert() Operation {
	return Operation{Start: op.Start, OldLines: op.NewLines, NewLines: op.OldLines}
}

// Apply performs the operation on t.
func (op Operation) Apply(t Target) error {
	end := op.Start + len(op.OldLines) - 1
	if _, err := t.SetLines(op.Start, end, op.NewLines); err != nil {
		return fmt.Errorf("apply %s: %w", op, err)
	}
	return nil
}

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	return fmt.Sprintf("lines %d+%d -> %d", op.Start, len(op.OldLines), len(op.NewLines))
}
