package cursor

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/text"
)

// Selection is a Visual or Select mode selection.
// Anchor is where the selection started; Head follows the cursor.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position
	Head   Position
	Wise   buffer.Wise

	// HeadWant is the head's curswant, used to stretch a block selection
	// to the end of every line after `$`.
	HeadWant int
}

// NewSelection creates a selection of the given shape starting at pos.
func NewSelection(pos Position, wise buffer.Wise) Selection {
	return Selection{Anchor: pos, Head: pos, Wise: wise, HeadWant: -1}
}

// WithHead returns the selection extended to the cursor c.
func (s Selection) WithHead(c Cursor) Selection {
	s.Head = c.Pos
	s.HeadWant = c.Curswant
	return s
}

// Swap exchanges anchor and head (Visual `o`).
func (s Selection) Swap() Selection {
	s.Anchor, s.Head = s.Head, s.Anchor
	s.HeadWant = -1
	return s
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	if s.Head.Before(s.Anchor) {
		return s.Head
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	if s.Head.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Head
}

// IsForward returns true if the head is at or after the anchor.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// Region converts the selection into the region an operator acts on.
// Characterwise selections are inclusive of the character under the end.
func (s Selection) Region(lines Lines, tabstop int) buffer.Region {
	start, end := s.Start(), s.End()
	switch s.Wise {
	case buffer.Linewise:
		return buffer.LineRegion(start.Line, end.Line)
	case buffer.Blockwise:
		aLine := lines.Line(s.Anchor.Line)
		hLine := lines.Line(s.Head.Line)
		a0 := text.VirtCol(aLine, s.Anchor.Col-1, tabstop)
		a1 := text.VirtEnd(aLine, s.Anchor.Col-1, tabstop)
		h0 := text.VirtCol(hLine, s.Head.Col-1, tabstop)
		h1 := text.VirtEnd(hLine, s.Head.Col-1, tabstop)
		left, right := min(a0, h0), max(a1, h1)
		if s.HeadWant == MaxCol {
			right = MaxCol
		}
		top := buffer.Pos(start.Line, 1)
		bot := buffer.Pos(end.Line, 1)
		return buffer.BlockRegion(top, bot, left, right)
	default:
		if s.HeadWant == MaxCol && s.IsForward() {
			// After `$` the selection takes the line break as well.
			end.Col = len(lines.Line(end.Line)) + 1
		}
		return buffer.CharRegion(start, end, true)
	}
}
