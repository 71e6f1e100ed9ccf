package vim

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/textobject"
)

// Action is the kind of a parsed command.
type Action uint8

const (
	ActNone Action = iota

	// ActMotion moves the cursor, or the selection head in Visual mode.
	ActMotion

	// ActOperator applies Op. Outside Visual mode the target is Motion,
	// Object or, with Linewise, Count lines. In Visual mode it is the
	// selection, taken whole when Linewise is set.
	ActOperator

	// ActObject extends the selection over a text object.
	ActObject

	ActInsert       // Insert names where typing starts
	ActVisual       // start or switch Visual mode of shape Wise
	ActSelect       // start Select mode of shape Wise
	ActToggleSelect // <C-g> between Visual and Select
	ActReselect     // gv
	ActSwapAnchor   // o and O in Visual mode
	ActPut          // p P gp gP
	ActReplaceChar  // r{c}
	ActToggleChar   // ~
	ActUndo         // u
	ActRedo         // <C-r>
	ActStepBack     // g-
	ActStepForward  // g+
	ActRepeat       // .
	ActCmdline      // : with Char ':'
	ActRecord       // q{reg}, or q alone to stop
	ActPlay         // @{reg}
	ActSetMark      // m{a-zA-Z'`[]<>}
	ActEscape       // <Esc>
)

var actionNames = [...]string{
	ActNone:         "none",
	ActMotion:       "motion",
	ActOperator:     "operator",
	ActObject:       "object",
	ActInsert:       "insert",
	ActVisual:       "visual",
	ActSelect:       "select",
	ActToggleSelect: "toggle-select",
	ActReselect:     "reselect",
	ActSwapAnchor:   "swap-anchor",
	ActPut:          "put",
	ActReplaceChar:  "replace-char",
	ActToggleChar:   "toggle-char",
	ActUndo:         "undo",
	ActRedo:         "redo",
	ActStepBack:     "step-back",
	ActStepForward:  "step-forward",
	ActRepeat:       "repeat",
	ActCmdline:      "cmdline",
	ActRecord:       "record",
	ActPlay:         "play",
	ActSetMark:      "set-mark",
	ActEscape:       "escape",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Command is one complete command.
type Command struct {
	Action Action

	// Count is the product of every count typed, 0 when none was.
	Count    int
	Register rune

	Op       operator.Op
	Motion   *motion.Motion
	Object   *textobject.Object
	Linewise bool

	Insert operator.InsertKind
	Wise   buffer.Wise

	// Put placement.
	Before      bool
	CursorAfter bool

	// Char is the argument of r, the register of q and @, the mark of
	// m, or the command-line type.
	Char rune

	// Keys is the typed sequence in key notation.
	Keys string
}

// Counted returns the count, 1 when none was typed.
func (c *Command) Counted() int {
	return max(c.Count, 1)
}

// NeedsPattern reports whether the command waits for a search pattern
// from the command line.
func (c *Command) NeedsPattern() bool {
	return c.Motion != nil && c.Motion.Kind.NeedsPattern() && c.Motion.Pattern == ""
}

// IsChange reports whether running the command may modify the buffer.
func (c *Command) IsChange() bool {
	switch c.Action {
	case ActOperator:
		return c.Op.IsChange()
	case ActInsert, ActPut, ActReplaceChar, ActToggleChar, ActRepeat:
		return true
	}
	return false
}

func (c *Command) String() string {
	return c.Keys
}
