package mode

import (
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Kind is the primary mode.
type Kind uint8

const (
	KindNormal Kind = iota
	KindInsert
	KindReplace
	KindVisual
	KindSelect
	KindCommandLine
	KindOperatorPending
	KindTerminal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindInsert:
		return "insert"
	case KindReplace:
		return "replace"
	case KindVisual:
		return "visual"
	case KindSelect:
		return "select"
	case KindCommandLine:
		return "cmdline"
	case KindOperatorPending:
		return "operator"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Sub is the sub-variant of Visual, Select, CommandLine and Terminal.
type Sub uint8

const (
	SubNone Sub = iota

	// Visual and Select shapes.
	SubChar
	SubLine
	SubBlock

	// Command-line sub-modes.
	SubCmdNormal
	SubCmdInsert
	SubCmdReplace

	// Terminal sub-modes.
	SubTermInsert
	SubTermNormal
)

// Mode is the active editor mode.
type Mode struct {
	Kind Kind
	Sub  Sub

	// Operator and Count are set only for KindOperatorPending.
	Operator string
	Count    int
}

// Frequently used modes.
var (
	Normal  = Mode{Kind: KindNormal}
	Insert  = Mode{Kind: KindInsert}
	Replace = Mode{Kind: KindReplace}
)

// Visual returns the Visual mode of the given shape.
func Visual(w buffer.Wise) Mode {
	return Mode{Kind: KindVisual, Sub: subFor(w)}
}

// Select returns the Select mode of the given shape.
func Select(w buffer.Wise) Mode {
	return Mode{Kind: KindSelect, Sub: subFor(w)}
}

// CommandLine returns a command-line mode. sub is one of the SubCmd values.
func CommandLine(sub Sub) Mode {
	return Mode{Kind: KindCommandLine, Sub: sub}
}

// Terminal returns a terminal mode. sub is SubTermInsert or SubTermNormal.
func Terminal(sub Sub) Mode {
	return Mode{Kind: KindTerminal, Sub: sub}
}

// OperatorPending returns the operator-pending mode for op.
func OperatorPending(op string, count int) Mode {
	return Mode{Kind: KindOperatorPending, Operator: op, Count: count}
}

func subFor(w buffer.Wise) Sub {
	switch w {
	case buffer.Linewise:
		return SubLine
	case buffer.Blockwise:
		return SubBlock
	default:
		return SubChar
	}
}

// Wise returns the selection shape of a Visual or Select mode.
func (m Mode) Wise() buffer.Wise {
	switch m.Sub {
	case SubLine:
		return buffer.Linewise
	case SubBlock:
		return buffer.Blockwise
	default:
		return buffer.Charwise
	}
}

// Code returns the short mode code reported by mode().
func (m Mode) Code() string {
	switch m.Kind {
	case KindNormal:
		return "n"
	case KindInsert:
		return "i"
	case KindReplace:
		return "R"
	case KindVisual:
		return [...]string{"v", "V", "\x16"}[m.Wise()]
	case KindSelect:
		return [...]string{"s", "S", "\x13"}[m.Wise()]
	case KindCommandLine:
		return "c"
	case KindOperatorPending:
		return "no"
	case KindTerminal:
		if m.Sub == SubTermNormal {
			return "nt"
		}
		return "t"
	}
	return ""
}

// DisplayName returns the status line text, empty for modes without one.
func (m Mode) DisplayName() string {
	switch m.Kind {
	case KindInsert:
		return "-- INSERT --"
	case KindReplace:
		return "-- REPLACE --"
	case KindVisual:
		return [...]string{"-- VISUAL --", "-- VISUAL LINE --", "-- VISUAL BLOCK --"}[m.Wise()]
	case KindSelect:
		return [...]string{"-- SELECT --", "-- SELECT LINE --", "-- SELECT BLOCK --"}[m.Wise()]
	case KindTerminal:
		if m.Sub != SubTermNormal {
			return "-- TERMINAL --"
		}
	}
	return ""
}

// String returns a readable mode name, e.g. "visual_line" or "operator(d)".
func (m Mode) String() string {
	switch m.Kind {
	case KindVisual, KindSelect:
		return m.Kind.String() + [...]string{"", "_line", "_block"}[m.Wise()]
	case KindCommandLine:
		switch m.Sub {
		case SubCmdNormal:
			return "cmdline_normal"
		case SubCmdReplace:
			return "cmdline_replace"
		}
		return "cmdline_insert"
	case KindOperatorPending:
		return fmt.Sprintf("operator(%s)", m.Operator)
	case KindTerminal:
		if m.Sub == SubTermNormal {
			return "terminal_normal"
		}
		return "terminal"
	}
	return m.Kind.String()
}

// AllowsInsertion reports whether typed text is inserted.
func (m Mode) AllowsInsertion() bool {
	return m.Kind == KindInsert || m.Kind == KindReplace || (m.Kind == KindTerminal && m.Sub != SubTermNormal)
}

// IsVisual reports whether a selection is active.
func (m Mode) IsVisual() bool {
	return m.Kind == KindVisual || m.Kind == KindSelect
}

// AllowsPastEOL reports whether the cursor may sit one past the last byte.
func (m Mode) AllowsPastEOL() bool {
	return m.Kind == KindInsert || m.Kind == KindReplace
}

// CursorStyle returns the cursor style for this mode.
func (m Mode) CursorStyle() CursorStyle {
	switch m.Kind {
	case KindInsert, KindCommandLine, KindTerminal:
		return CursorBar
	case KindReplace, KindOperatorPending:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to Mode) bool {
	if from.Kind == to.Kind && from.Sub == to.Sub {
		return true
	}
	switch from.Kind {
	case KindNormal:
		switch to.Kind {
		case KindInsert, KindReplace, KindVisual, KindSelect, KindCommandLine, KindOperatorPending:
			return true
		case KindTerminal:
			return to.Sub == SubTermNormal
		}
	case KindInsert:
		return to.Kind == KindNormal || to.Kind == KindReplace
	case KindReplace:
		return to.Kind == KindNormal || to.Kind == KindInsert
	case KindVisual:
		switch to.Kind {
		case KindNormal, KindVisual, KindSelect, KindOperatorPending, KindInsert, KindCommandLine:
			return true
		}
	case KindSelect:
		switch to.Kind {
		case KindNormal, KindVisual, KindSelect, KindInsert:
			return true
		}
	case KindCommandLine:
		return to.Kind == KindNormal || to.Kind == KindVisual || to.Kind == KindCommandLine
	case KindOperatorPending:
		return to.Kind == KindNormal || to.Kind == KindVisual || to.Kind == KindCommandLine
	case KindTerminal:
		if from.Sub == SubTermNormal {
			return to.Kind == KindNormal || (to.Kind == KindTerminal && to.Sub == SubTermInsert)
		}
		return to.Kind == KindTerminal && to.Sub == SubTermNormal
	}
	return false
}
