package operator

import (
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/text"
)

// edit runs f as one undoable change outside the operator path.
func (e *Engine) edit(name string, before buffer.Position, f func() (Result, error)) (Result, error) {
	if e.pending != nil {
		return Result{}, ErrInsertActive
	}
	if !e.buf.Modifiable() {
		return Result{}, fmt.Errorf("%s: %w", name, buffer.ErrNotModifiable)
	}
	t := e.begin()
	res, err := f()
	if err != nil {
		return Result{}, e.rollback(t, err)
	}
	res.Seq = e.commit(t, before, res.Cursor.Pos)
	return res, nil
}

// ReplaceChars replaces count characters from the cursor with r, as r
// does. It fails when fewer than count characters remain on the line. A
// line break replaces all count characters with a single break.
func (e *Engine) ReplaceChars(c cursor.Cursor, count int, r rune) (Result, error) {
	n := max(count, 1)
	line := c.Pos.Line
	s := e.buf.Line(line)
	idx := min(c.Pos.Index(), len(s))
	end := idx
	for range n {
		if end >= len(s) {
			return Result{}, fmt.Errorf("replace %d characters: %w", n, buffer.ErrOutOfRange)
		}
		end = text.Next(s, end)
	}

	res, err := e.edit("replace", c.Pos, func() (Result, error) {
		if r == '\r' || r == '\n' {
			if _, err := e.buf.SetLines(line, line, []string{s[:idx], s[end:]}); err != nil {
				return Result{}, err
			}
			return Result{Cursor: e.firstNonBlank(line + 1)}, nil
		}
		rep := strings.Repeat(string(r), n)
		if err := e.buf.SetLine(line, s[:idx]+rep+s[end:]); err != nil {
			return Result{}, err
		}
		last := idx + len(rep) - len(string(r))
		return Result{Cursor: e.at(buffer.Pos(line, last+1), cursor.RuleNormal)}, nil
	})
	if err != nil {
		return Result{}, err
	}
	e.last = &LastChange{Action: ActReplaceChar, Count: count, Char: r}
	return res, nil
}

// ToggleChars switches the case of count characters from the cursor and
// moves past them, as ~ does.
func (e *Engine) ToggleChars(c cursor.Cursor, count int) (Result, error) {
	line := c.Pos.Line
	s := e.buf.Line(line)
	if s == "" {
		return Result{Cursor: c}, nil
	}
	idx := min(c.Pos.Index(), len(s))
	end := idx
	for k := max(count, 1); k > 0 && end < len(s); k-- {
		end = text.Next(s, end)
	}
	res, err := e.edit("toggle case", c.Pos, func() (Result, error) {
		if err := e.buf.SetLine(line, s[:idx]+strings.Map(toggle, s[idx:end])+s[end:]); err != nil {
			return Result{}, err
		}
		return Result{Cursor: e.at(buffer.Pos(line, end+1), cursor.RuleNormal)}, nil
	})
	if err != nil {
		return Result{}, err
	}
	e.last = &LastChange{Action: ActToggleChar, Count: count}
	return res, nil
}

// ReplaceSelection replaces every character of a selection with r, as
// Visual r does.
func (e *Engine) ReplaceSelection(reg buffer.Region, r rune, c cursor.Cursor) (Result, error) {
	sp := span{reg: reg.Normalize(), visual: true}
	rep := string(r)
	return e.edit("replace", c.Pos, func() (Result, error) {
		err := e.mapText(sp, func(s string) string {
			return strings.Repeat(rep, text.Count(s))
		})
		if err != nil {
			return Result{}, err
		}
		start := sp.reg.Start
		if sp.reg.Wise == buffer.Linewise {
			start = buffer.Pos(sp.reg.FirstLine(), 1)
		}
		if sp.reg.Wise == buffer.Blockwise {
			return Result{Cursor: e.blockStart(sp.reg, cursor.RuleNormal), Region: sp.reg}, nil
		}
		return Result{Cursor: e.at(start, cursor.RuleNormal), Region: sp.reg}, nil
	})
}

// ReplaceLines replaces lines first..last with lines as one undoable
// change. An Ex command that rewrites lines goes through here.
func (e *Engine) ReplaceLines(first, last int, lines []string, c cursor.Cursor) (Result, error) {
	return e.edit("replace lines", c.Pos, func() (Result, error) {
		if _, err := e.buf.SetLines(first, last, lines); err != nil {
			return Result{}, err
		}
		line := min(first, e.buf.LineCount())
		return Result{Cursor: e.firstNonBlank(line), Region: buffer.LineRegion(first, max(first+len(lines)-1, first))}, nil
	})
}
