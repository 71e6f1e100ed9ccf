package operator

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/textobject"
)

// Target is what an operator acts on. Exactly one field is set.
type Target struct {
	Motion *motion.Motion
	Object *textobject.Object

	// Lines applies the operator to count lines from the cursor, as a
	// doubled operator does.
	Lines bool

	// Selection is a Visual selection or an explicit range.
	Selection *buffer.Region

	// Extent replays the size of an earlier selection from the cursor.
	Extent *Extent
}

// Extent is the size of a selection, kept so dot-repeat can act on an
// area of the same size at a new position.
type Extent struct {
	Wise  buffer.Wise
	Lines int

	// Chars is the number of characters of a one-line characterwise
	// selection.
	Chars int

	// EndCol is the last column of a multi-line characterwise selection.
	EndCol int

	// Width is the display width of a block; ToEOL marks a block that
	// was stretched to the end of every line.
	Width int
	ToEOL bool
}

// Request is one operator application.
type Request struct {
	Op       Op
	Register rune // 0 for the default
	Cursor   cursor.Cursor
	Target   Target

	// Count is the typed count, 0 when none was given. For motions,
	// objects and Lines it sizes the target; with a Selection or Extent
	// it repeats the shift operators instead.
	Count int
}

// Result is the outcome of an engine operation.
type Result struct {
	// Seq is the committed undo node, 0 when nothing was committed.
	Seq int

	Cursor cursor.Cursor

	// Region is the normalized region the operator acted on.
	Region buffer.Region

	// Insert is set when the caller must enter Insert mode. The undo
	// group stays open until EndInsert.
	Insert bool
}

// InsertKind says where typing starts when Insert mode is entered.
type InsertKind uint8

const (
	InsertNone      InsertKind = iota
	InsertBefore               // i
	InsertAfter                // a
	InsertLineStart            // I
	InsertLineEnd              // A
	InsertColumnOne            // gI
	OpenBelow                  // o
	OpenAbove                  // O
	ReplaceMode                // R
)

var insertKeys = [...]string{"", "i", "a", "I", "A", "gI", "o", "O", "R"}

// String returns the key that starts the insert.
func (k InsertKind) String() string {
	if int(k) < len(insertKeys) {
		return insertKeys[k]
	}
	return "?"
}

// Action is the kind of a repeatable change.
type Action uint8

const (
	ActOperator Action = iota + 1
	ActInsert
	ActPut
	ActReplaceChar
	ActToggleChar
)

// LastChange is the change dot-repeat replays.
type LastChange struct {
	Action   Action
	Op       Op
	Target   Target
	Count    int
	Register rune

	Insert InsertKind
	Text   string // text typed in Insert or Replace mode

	Char rune // r argument

	Before      bool // P rather than p
	CursorAfter bool // gp, gP
}

// PutRequest is a p, P, gp or gP command.
type PutRequest struct {
	Register rune
	Count    int
	Cursor   cursor.Cursor

	// Before puts before the cursor (P).
	Before bool

	// CursorAfter leaves the cursor just after the new text (gp).
	CursorAfter bool

	// Selection, when set, is replaced by the register text.
	Selection *buffer.Region
}
