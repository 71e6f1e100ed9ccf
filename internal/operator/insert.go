package operator

import (
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/engine/text"
)

// pendingInsert is an insert between BeginInsert and EndInsert.
type pendingInsert struct {
	tx     tx
	kind   InsertKind
	count  int
	before buffer.Position
	block  *blockInsert

	// change is the operator the insert completes, for c.
	change *LastChange
}

// blockInsert copies the text typed on the first line of a block to the
// block's other lines.
type blockInsert struct {
	first, last int
	vcol        int

	pad   bool // pad short lines out to vcol (A)
	toEOL bool // append at each line end ($A)

	// reach marks the lines that took part in a block change.
	reach []bool
}

// BeginInsert opens an undo group and moves to where typing starts for
// kind; o and O open the new line. count repeats the typed text when the
// insert ends. The returned cursor follows the Insert rule.
func (e *Engine) BeginInsert(kind InsertKind, count int, c cursor.Cursor) (cursor.Cursor, error) {
	if e.pending != nil {
		return c, ErrInsertActive
	}
	if !e.buf.Modifiable() {
		return c, fmt.Errorf("insert: %w", buffer.ErrNotModifiable)
	}
	t := e.begin()
	pos, err := e.startInsert(kind, c)
	if err != nil {
		return c, e.rollback(t, err)
	}
	e.pending = &pendingInsert{tx: t, kind: kind, count: max(count, 1), before: c.Pos}
	return e.at(pos, cursor.RuleInsert), nil
}

func (e *Engine) startInsert(kind InsertKind, c cursor.Cursor) (buffer.Position, error) {
	line := c.Pos.Line
	s := e.buf.Line(line)
	idx := min(c.Pos.Index(), len(s))
	switch kind {
	case InsertAfter:
		if s != "" {
			idx = text.Next(s, idx)
		}
	case InsertLineStart:
		idx = len(text.Indent(s))
	case InsertLineEnd:
		idx = len(s)
	case InsertColumnOne:
		idx = 0
	case OpenBelow:
		if err := e.buf.InsertLines(line+1, []string{""}); err != nil {
			return c.Pos, err
		}
		return buffer.Pos(line+1, 1), nil
	case OpenAbove:
		if err := e.buf.InsertLines(line, []string{""}); err != nil {
			return c.Pos, err
		}
		return buffer.Pos(line, 1), nil
	}
	return buffer.Pos(line, idx+1), nil
}

// BeginBlockInsert starts a Visual block I or, with appendText, A. The
// text typed on the first line is copied to the other lines of the block
// by EndInsert. Lines too short to reach the block are skipped by I and
// padded by A.
func (e *Engine) BeginBlockInsert(reg buffer.Region, appendText bool, c cursor.Cursor) (cursor.Cursor, error) {
	if e.pending != nil {
		return c, ErrInsertActive
	}
	if !e.buf.Modifiable() {
		return c, fmt.Errorf("insert: %w", buffer.ErrNotModifiable)
	}
	reg = reg.Normalize()
	b := &blockInsert{first: reg.FirstLine(), last: reg.LastLine(), vcol: reg.StartVCol}
	if appendText {
		if reg.EndVCol == buffer.MaxCol {
			b.toEOL = true
		} else {
			b.vcol, b.pad = reg.EndVCol+1, true
		}
	}

	t := e.begin()
	ts := e.opts.TabStop()
	s := e.buf.Line(b.first)
	var idx int
	switch {
	case b.toEOL:
		idx = len(s)
	case b.pad:
		if w := text.Width(s, ts); w < b.vcol {
			end := buffer.Pos(b.first, len(s)+1)
			if _, err := e.splice(end, end, strings.Repeat(" ", b.vcol-w)); err != nil {
				return c, e.rollback(t, err)
			}
			s = e.buf.Line(b.first)
		}
		idx, _ = text.IndexAtVirtCol(s, b.vcol, ts)
	default:
		idx, _ = text.IndexAtVirtCol(s, b.vcol, ts)
	}
	e.pending = &pendingInsert{tx: t, kind: InsertBefore, count: 1, before: c.Pos, block: b}
	return e.at(buffer.Pos(b.first, idx+1), cursor.RuleInsert), nil
}

// Edit replaces the text from from up to to with s during an insert and
// returns the position after the new text. "\n" in s breaks the line.
func (e *Engine) Edit(from, to buffer.Position, s string) (buffer.Position, error) {
	if e.pending == nil {
		return from, ErrNotInserting
	}
	return e.splice(from, to, s)
}

// Overwrite replaces characters from pos with s, one for each character
// typed, as Replace mode does. Past the line end s is appended; a "\n"
// breaks the line without replacing anything. It returns the position
// after the text and the text that was replaced.
func (e *Engine) Overwrite(pos buffer.Position, s string) (buffer.Position, string, error) {
	if e.pending == nil {
		return pos, "", ErrNotInserting
	}
	return e.overwrite(pos, s)
}

func (e *Engine) overwrite(pos buffer.Position, s string) (buffer.Position, string, error) {
	var replaced strings.Builder
	var err error
	for i, piece := range strings.Split(s, "\n") {
		if i > 0 {
			if pos, err = e.splice(pos, pos, "\n"); err != nil {
				return pos, replaced.String(), err
			}
		}
		line := e.buf.Line(pos.Line)
		idx := min(pos.Index(), len(line))
		end := idx
		for k := text.Count(piece); k > 0 && end < len(line); k-- {
			end = text.Next(line, end)
		}
		replaced.WriteString(line[idx:end])
		if pos, err = e.splice(buffer.Pos(pos.Line, idx+1), buffer.Pos(pos.Line, end+1), piece); err != nil {
			return pos, replaced.String(), err
		}
	}
	return pos, replaced.String(), nil
}

// splice replaces the text between two positions with s.
func (e *Engine) splice(from, to buffer.Position, s string) (buffer.Position, error) {
	a := e.buf.Line(from.Line)
	b := e.buf.Line(to.Line)
	ai := min(max(from.Index(), 0), len(a))
	bi := min(max(to.Index(), 0), len(b))

	pieces := strings.Split(s, "\n")
	pieces[0] = a[:ai] + pieces[0]
	last := len(pieces) - 1
	endIdx := len(pieces[last])
	pieces[last] += b[bi:]
	if _, err := e.buf.SetLines(from.Line, to.Line, pieces); err != nil {
		return from, err
	}
	return buffer.Pos(from.Line+last, endIdx+1), nil
}

// insertPieces inserts pieces at at, one per line.
func (e *Engine) insertPieces(at buffer.Position, pieces []string) (buffer.Position, error) {
	return e.splice(at, at, strings.Join(pieces, "\n"))
}

// EndInsert finishes the open insert. typed is the text typed since the
// insert began, c the Insert mode cursor. The text is repeated for a
// count and copied down a block, the undo group is committed as one node,
// and the insert becomes the change dot-repeat replays. The cursor steps
// back onto the last inserted character.
func (e *Engine) EndInsert(typed string, c cursor.Cursor) (Result, error) {
	p := e.pending
	if p == nil {
		return Result{}, ErrNotInserting
	}
	e.pending = nil

	end := c.Pos
	var err error
	for i := 1; i < p.count && typed != "" && err == nil; i++ {
		switch p.kind {
		case OpenBelow, OpenAbove:
			next := buffer.Pos(end.Line+1, 1)
			if err = e.buf.InsertLines(next.Line, []string{""}); err == nil {
				end, err = e.splice(next, next, typed)
			}
		case ReplaceMode:
			end, _, err = e.overwrite(end, typed)
		default:
			end, err = e.splice(end, end, typed)
		}
	}
	if err == nil && p.block != nil && typed != "" && !strings.Contains(typed, "\n") {
		err = e.blockInsert(p.block, typed)
	}
	if err != nil {
		return Result{}, e.rollback(p.tx, err)
	}

	s := e.buf.Line(end.Line)
	idx := min(end.Index(), len(s))
	if idx > 0 {
		idx = text.Prev(s, idx)
	}
	after := e.at(buffer.Pos(end.Line, idx+1), cursor.RuleNormal)
	if p.block != nil {
		first := e.buf.Line(p.block.first)
		bi, _ := text.IndexAtVirtCol(first, p.block.vcol, e.opts.TabStop())
		if p.block.toEOL {
			bi = text.Last(first)
		}
		after = e.at(buffer.Pos(p.block.first, bi+1), cursor.RuleNormal)
	}
	seq := e.commit(p.tx, p.before, after.Pos)

	ch := p.change
	if ch == nil {
		ch = &LastChange{Action: ActInsert, Insert: p.kind, Count: p.count}
	}
	ch.Text = typed
	e.last = ch
	e.regs.Provide('.', register.Chars(typed))
	e.log.Debug("insert ended", "kind", p.kind.String(), "seq", seq)
	return Result{Seq: seq, Cursor: after}, nil
}

// cancelInsert abandons the open insert, reverting everything it did.
func (e *Engine) cancelInsert(cause error) error {
	p := e.pending
	if p == nil {
		return cause
	}
	e.pending = nil
	return e.rollback(p.tx, cause)
}

func (e *Engine) blockInsert(b *blockInsert, typed string) error {
	last := min(b.last, e.buf.LineCount())
	if last <= b.first {
		return nil
	}
	lines, err := e.buf.GetLines(b.first+1, last)
	if err != nil {
		return err
	}
	ts := e.opts.TabStop()
	for i, s := range lines {
		if b.toEOL {
			lines[i] = s + typed
			continue
		}
		w := text.Width(s, ts)
		switch {
		case b.reach != nil:
			if i+1 >= len(b.reach) || !b.reach[i+1] {
				continue
			}
		case w <= b.vcol && !b.pad:
			continue
		}
		if w < b.vcol {
			s += strings.Repeat(" ", b.vcol-w)
		}
		idx, _ := text.IndexAtVirtCol(s, b.vcol, ts)
		lines[i] = s[:idx] + typed + s[idx:]
	}
	_, err = e.buf.SetLines(b.first+1, last, lines)
	return err
}
