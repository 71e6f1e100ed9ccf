package operator

import (
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/engine/text"
)

// Put inserts register text count times: linewise text below or above
// the cursor line, characterwise text after or before the cursor, and
// blockwise text column by column from the cursor. With a selection the
// selection is replaced; p then leaves the replaced text in the unnamed
// register and P does not.
func (e *Engine) Put(req PutRequest) (Result, error) {
	if e.pending != nil {
		return Result{}, ErrInsertActive
	}
	if !e.buf.Modifiable() {
		return Result{}, fmt.Errorf("put: %w", buffer.ErrNotModifiable)
	}
	name := req.Register
	if name == 0 {
		name = register.Unnamed
	}
	if name == '=' {
		return Result{}, fmt.Errorf("put %q: %w", name, ErrEmptyRegister)
	}
	content := e.regs.Read(name)
	if content.IsEmpty() {
		return Result{}, fmt.Errorf("put %q: %w", name, ErrEmptyRegister)
	}
	return e.putContent(req, content)
}

// putContent puts content that was already read, so the expression
// register and dot-repeat can share the path.
func (e *Engine) putContent(req PutRequest, content register.Content) (Result, error) {
	t := e.begin()
	res, err := e.put(req, content)
	if err != nil {
		return Result{}, e.rollback(t, err)
	}
	res.Seq = e.commit(t, req.Cursor.Pos, res.Cursor.Pos)
	if req.Selection == nil {
		e.last = &LastChange{
			Action:      ActPut,
			Count:       req.Count,
			Register:    req.Register,
			Before:      req.Before,
			CursorAfter: req.CursorAfter,
		}
	}
	return res, nil
}

// PutText puts the value of an evaluated expression, as "=p does.
func (e *Engine) PutText(req PutRequest, content register.Content) (Result, error) {
	if e.pending != nil {
		return Result{}, ErrInsertActive
	}
	if content.IsEmpty() {
		return Result{}, fmt.Errorf("put expression: %w", ErrEmptyRegister)
	}
	return e.putContent(req, content)
}

func (e *Engine) put(req PutRequest, content register.Content) (Result, error) {
	n := max(req.Count, 1)
	if req.Selection != nil {
		return e.replaceSelection(req, content, n)
	}
	c := req.Cursor
	switch content.Wise {
	case buffer.Linewise:
		at := c.Pos.Line + 1
		if req.Before {
			at = c.Pos.Line
		}
		return e.putLines(at, content.Lines, n, req.CursorAfter)
	case buffer.Blockwise:
		s := e.buf.Line(c.Pos.Line)
		vcol := c.VirtCol(e.buf, e.opts.TabStop())
		if !req.Before && s != "" {
			vcol = text.VirtEnd(s, min(c.Pos.Index(), len(s)), e.opts.TabStop()) + 1
		}
		return e.putBlock(c.Pos.Line, vcol, content, n, req.CursorAfter)
	}
	s := e.buf.Line(c.Pos.Line)
	idx := min(c.Pos.Index(), len(s))
	if !req.Before && s != "" {
		idx = text.Next(s, idx)
	}
	return e.putChars(buffer.Pos(c.Pos.Line, idx+1), content.Lines, n, req.CursorAfter)
}

// putLines inserts count copies of lines before line at.
func (e *Engine) putLines(at int, lines []string, count int, after bool) (Result, error) {
	var all []string
	for range count {
		all = append(all, lines...)
	}
	if err := e.buf.InsertLines(at, all); err != nil {
		return Result{}, err
	}
	reg := buffer.LineRegion(at, at+len(all)-1)
	if after {
		next := at + len(all)
		if next > e.buf.LineCount() {
			return Result{Cursor: e.at(buffer.Pos(e.buf.LineCount(), 1), cursor.RuleNormal), Region: reg}, nil
		}
		return Result{Cursor: e.at(buffer.Pos(next, 1), cursor.RuleNormal), Region: reg}, nil
	}
	return Result{Cursor: e.firstNonBlank(at), Region: reg}, nil
}

// putChars inserts count copies of characterwise text at at. One-line
// text leaves the cursor on its last character, more lines on its first.
func (e *Engine) putChars(at buffer.Position, lines []string, count int, after bool) (Result, error) {
	pieces := strings.Split(strings.Repeat(strings.Join(lines, "\n"), count), "\n")
	end, err := e.insertPieces(at, pieces)
	if err != nil {
		return Result{}, err
	}
	reg := buffer.CharRegion(at, end, false)
	switch {
	case after:
		return Result{Cursor: e.at(end, cursor.RuleNormal), Region: reg}, nil
	case len(pieces) == 1:
		s := e.buf.Line(end.Line)
		last := text.Prev(s, end.Index())
		return Result{Cursor: e.at(buffer.Pos(end.Line, last+1), cursor.RuleNormal), Region: reg}, nil
	}
	return Result{Cursor: e.at(at, cursor.RuleNormal), Region: reg}, nil
}

// putBlock inserts a block at display column vcol of line and the lines
// below it, adding lines at the end of the buffer as needed. Short lines
// are padded with spaces up to vcol.
func (e *Engine) putBlock(line, vcol int, content register.Content, count int, after bool) (Result, error) {
	ts := e.opts.TabStop()
	n := e.buf.LineCount()
	last := min(line+len(content.Lines)-1, n)
	old, err := e.buf.GetLines(line, last)
	if err != nil {
		return Result{}, err
	}

	out := make([]string, len(content.Lines))
	var startIdx, endIdx int
	for i, piece := range content.Lines {
		s := ""
		if i < len(old) {
			s = old[i]
		}
		if w := text.Width(s, ts); w < vcol {
			s += strings.Repeat(" ", vcol-w)
		}
		idx, _ := text.IndexAtVirtCol(s, vcol, ts)
		padded := piece + strings.Repeat(" ", max(content.Width-text.Width(piece, ts), 0))
		ins := strings.Repeat(padded, count-1) + piece
		if idx < len(s) {
			ins = strings.Repeat(padded, count)
		}
		out[i] = s[:idx] + ins + s[idx:]
		if i == 0 {
			startIdx = idx
		}
		endIdx = idx + len(ins)
	}
	if _, err := e.buf.SetLines(line, last, out); err != nil {
		return Result{}, err
	}

	bottom := line + len(out) - 1
	reg := buffer.BlockRegion(buffer.Pos(line, 1), buffer.Pos(bottom, 1), vcol, vcol+content.Width*count-1)
	if after {
		return Result{Cursor: e.at(buffer.Pos(bottom, endIdx+1), cursor.RuleNormal), Region: reg}, nil
	}
	return Result{Cursor: e.at(buffer.Pos(line, startIdx+1), cursor.RuleNormal), Region: reg}, nil
}

// replaceSelection deletes the selection and puts content in its place.
func (e *Engine) replaceSelection(req PutRequest, content register.Content, count int) (Result, error) {
	sp := span{reg: req.Selection.Normalize(), visual: true}
	reg := sp.reg
	removed := e.content(sp)
	whole := reg.Wise == buffer.Linewise && reg.FirstLine() == 1 && reg.LastLine() == e.buf.LineCount()
	if err := e.remove(sp); err != nil {
		return Result{}, err
	}
	if !req.Before {
		if err := e.regs.RecordDelete(0, removed, false); err != nil {
			return Result{}, err
		}
	}

	switch reg.Wise {
	case buffer.Linewise:
		res, err := e.putLines(reg.FirstLine(), content.Lines, count, req.CursorAfter)
		if err == nil && whole {
			// The emptied buffer's last line is left over.
			_, err = e.buf.DeleteLines(e.buf.LineCount(), e.buf.LineCount())
		}
		return res, err
	case buffer.Blockwise:
		top := reg.FirstLine()
		if content.Wise == buffer.Charwise && len(content.Lines) == 1 {
			lines := make([]string, reg.LineCount())
			for i := range lines {
				lines[i] = content.Lines[0]
			}
			content = register.Block(lines, text.Width(content.Lines[0], e.opts.TabStop()))
			count = 1
		}
		return e.putBlock(top, reg.StartVCol, register.Block(content.Lines, max(content.Width, e.widest(content.Lines))), count, req.CursorAfter)
	}

	switch content.Wise {
	case buffer.Linewise:
		// Lines go between the two halves of the split line.
		s := e.buf.Line(reg.Start.Line)
		idx := min(reg.Start.Index(), len(s))
		var out []string
		out = append(out, s[:idx])
		for range count {
			out = append(out, content.Lines...)
		}
		out = append(out, s[idx:])
		if _, err := e.buf.SetLines(reg.Start.Line, reg.Start.Line, out); err != nil {
			return Result{}, err
		}
		return Result{Cursor: e.firstNonBlank(reg.Start.Line + 1), Region: buffer.LineRegion(reg.Start.Line+1, reg.Start.Line+len(out)-2)}, nil
	case buffer.Blockwise:
		c := cursor.New(reg.Start)
		return e.putBlock(reg.Start.Line, c.VirtCol(e.buf, e.opts.TabStop()), content, count, req.CursorAfter)
	}
	return e.putChars(reg.Start, content.Lines, count, req.CursorAfter)
}

func (e *Engine) widest(lines []string) int {
	w := 0
	for _, s := range lines {
		w = max(w, text.Width(s, e.opts.TabStop()))
	}
	return w
}
