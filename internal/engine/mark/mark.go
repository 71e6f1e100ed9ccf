package mark

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Names of the marks the editor maintains.
const (
	Context     = '\'' // position before the latest jump; ` is the same mark
	ChangeStart = '['
	ChangeEnd   = ']'
	VisualStart = '<'
	VisualEnd   = '>'
	LastChange  = '.'
	LastInsert  = '^'
)

// ErrInvalidMark indicates a rune that names no mark, or one that m
// cannot set.
var ErrInvalidMark = errors.New("invalid mark")

// Normalize maps ` to ', which name the same mark.
func Normalize(name rune) rune {
	if name == '`' {
		return Context
	}
	return name
}

// IsUser reports whether name is a mark the user sets with m.
func IsUser(name rune) bool {
	return (name >= 'a' && name <= 'z') || (name >= 'A' && name <= 'Z')
}

// Valid reports whether name can be jumped to with ' or `.
func Valid(name rune) bool {
	switch Normalize(name) {
	case Context, ChangeStart, ChangeEnd, VisualStart, VisualEnd, LastChange, LastInsert:
		return true
	}
	return IsUser(name)
}

// Settable reports whether m accepts name.
func Settable(name rune) bool {
	switch Normalize(name) {
	case Context, ChangeStart, ChangeEnd, VisualStart, VisualEnd:
		return true
	}
	return IsUser(name)
}

// Table holds the marks of one buffer. It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	marks map[rune]buffer.Position
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{marks: make(map[rune]buffer.Position)}
}

// Set places a mark.
func (t *Table) Set(name rune, p buffer.Position) error {
	name = Normalize(name)
	if !Valid(name) {
		return fmt.Errorf("%w: %q", ErrInvalidMark, name)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.marks[name] = p
	return nil
}

// Mark returns a mark's position, or false if it is not set.
func (t *Table) Mark(name rune) (buffer.Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.marks[Normalize(name)]
	return p, ok
}

// Delete removes a mark.
func (t *Table) Delete(name rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.marks, Normalize(name))
}

// Clear removes every mark.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.marks)
}

// User returns a copy of the user marks.
func (t *Table) User() map[rune]buffer.Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[rune]buffer.Position)
	for name, p := range t.marks {
		if IsUser(name) {
			out[name] = p
		}
	}
	return out
}
