package cursor

import (
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/text"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// MaxCol is the curswant value set by `$`.
const MaxCol = buffer.MaxCol

// Lines is the read-only view of a buffer the cursor clamps against.
type Lines interface {
	Line(n int) string
	LineCount() int
}

// Rule selects how far right the cursor may rest.
type Rule uint8

const (
	RuleNormal Rule = iota
	RuleInsert
)

// Config carries the options that influence clamping.
type Config struct {
	Rule       Rule
	VirtualAll bool
	TabStop    int
}

// Cursor is the editing cursor.
// Cursor is an immutable value type.
type Cursor struct {
	Pos      Position
	Coladd   int
	Curswant int
}

// New creates a cursor at the given position with curswant unset.
func New(pos Position) Cursor {
	return Cursor{Pos: pos, Curswant: -1}
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	if c.Coladd > 0 {
		return fmt.Sprintf("Cursor%s+%d", c.Pos, c.Coladd)
	}
	return fmt.Sprintf("Cursor%s", c.Pos)
}

// Line returns the cursor line.
func (c Cursor) Line() int {
	return c.Pos.Line
}

// Col returns the cursor byte column.
func (c Cursor) Col() int {
	return c.Pos.Col
}

// MoveTo places the cursor at pos and resets curswant to the resulting
// display column. This is the path for horizontal and explicit-column
// movement.
func (c Cursor) MoveTo(lines Lines, pos Position, cfg Config) Cursor {
	pos, coladd := Clamp(lines, pos, cfg)
	next := Cursor{Pos: pos, Coladd: coladd}
	next.Curswant = next.VirtCol(lines, cfg.TabStop)
	return next
}

// MoveKeepWant places the cursor at pos without touching curswant.
func (c Cursor) MoveKeepWant(lines Lines, pos Position, cfg Config) Cursor {
	pos, coladd := Clamp(lines, pos, cfg)
	return Cursor{Pos: pos, Coladd: coladd, Curswant: c.Curswant}
}

// MoveVertical moves to line, choosing the column from curswant. The
// desired column survives so a chain of j/k keeps its alignment.
func (c Cursor) MoveVertical(lines Lines, line int, cfg Config) Cursor {
	want := c.Curswant
	if want < 0 {
		want = c.VirtCol(lines, cfg.TabStop)
	}
	line = ClampLine(lines, line)
	s := lines.Line(line)

	var col, coladd int
	if want == MaxCol {
		col = lastCol(s, cfg.Rule)
	} else {
		idx, past := text.IndexAtVirtCol(s, want, cfg.TabStop)
		col = idx + 1
		if cfg.VirtualAll {
			coladd = past
		}
	}
	pos, extra := Clamp(lines, buffer.Pos(line, col), cfg)
	if cfg.VirtualAll {
		coladd += extra
	}
	return Cursor{Pos: pos, Coladd: coladd, Curswant: want}
}

// ToLineEnd moves to the end of the line and pins curswant to MaxCol.
func (c Cursor) ToLineEnd(lines Lines, line int, cfg Config) Cursor {
	line = ClampLine(lines, line)
	col := lastCol(lines.Line(line), cfg.Rule)
	return Cursor{Pos: buffer.Pos(line, col), Curswant: MaxCol}
}

// WithCurswant returns the cursor with an explicit desired column.
func (c Cursor) WithCurswant(want int) Cursor {
	c.Curswant = want
	return c
}

// Reclamp re-applies the column rule, for example after leaving Insert mode
// or after the line under the cursor was shortened.
func (c Cursor) Reclamp(lines Lines, cfg Config) Cursor {
	pos, coladd := Clamp(lines, c.Pos, cfg)
	if cfg.VirtualAll {
		coladd += c.Coladd
	}
	return Cursor{Pos: pos, Coladd: coladd, Curswant: c.Curswant}
}

// VirtCol returns the 0-based display column of the cursor, including coladd.
func (c Cursor) VirtCol(lines Lines, tabstop int) int {
	return text.VirtCol(lines.Line(c.Pos.Line), c.Pos.Col-1, tabstop) + c.Coladd
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c.Pos == other.Pos && c.Coladd == other.Coladd
}

// ClampLine limits line to [1, LineCount].
func ClampLine(lines Lines, line int) int {
	if line < 1 {
		return 1
	}
	if n := lines.LineCount(); line > n {
		return n
	}
	return line
}

// Clamp applies the column rule to pos. It returns the clamped position
// and, under virtualedit=all, how many cells the request lay past the end.
func Clamp(lines Lines, pos Position, cfg Config) (Position, int) {
	pos.Line = ClampLine(lines, pos.Line)
	s := lines.Line(pos.Line)

	if pos.Col < 1 {
		pos.Col = 1
	}
	limit := lastCol(s, cfg.Rule)
	if cfg.VirtualAll {
		limit = len(s) + 1
	}
	coladd := 0
	if pos.Col > limit {
		if cfg.VirtualAll {
			coladd = pos.Col - limit
		}
		pos.Col = limit
	}
	pos.Col = text.Snap(s, pos.Col-1) + 1
	return pos, coladd
}

func lastCol(s string, rule Rule) int {
	if rule == RuleInsert {
		return len(s) + 1
	}
	return text.Last(s) + 1
}
