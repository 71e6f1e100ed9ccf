package operator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/text"
)

// indent returns white space filling width display columns, using tabs
// unless expandtab is set.
func (e *Engine) indent(width int) string {
	if width <= 0 {
		return ""
	}
	ts := e.opts.TabStop()
	if e.opts.ExpandTab() || ts <= 0 {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/ts) + strings.Repeat(" ", width%ts)
}

func (e *Engine) shift(req Request, sp span) (Result, error) {
	amount := 1
	if sp.visual && req.Count > 0 {
		amount = req.Count
	}
	delta := e.opts.ShiftWidth() * amount
	if req.Op == ShiftLeft {
		delta = -delta
	}

	reg := sp.reg
	var err error
	if reg.Wise == buffer.Blockwise {
		err = e.shiftBlock(reg, delta)
	} else {
		err = e.shiftLines(reg.FirstLine(), reg.LastLine(), delta)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Cursor: e.firstNonBlank(reg.FirstLine()), Region: reg}, nil
}

// shiftLines changes the indent of every non-empty line by delta columns.
func (e *Engine) shiftLines(first, last, delta int) error {
	lines, err := e.buf.GetLines(first, last)
	if err != nil {
		return err
	}
	ts := e.opts.TabStop()
	for i, s := range lines {
		if s == "" {
			continue
		}
		ind := text.Indent(s)
		lines[i] = e.indent(text.Width(ind, ts)+delta) + s[len(ind):]
	}
	_, err = e.buf.SetLines(first, last, lines)
	return err
}

// shiftBlock moves the text right of a block's left edge. Shifting left
// removes up to -delta columns of white space at the edge.
func (e *Engine) shiftBlock(reg buffer.Region, delta int) error {
	ts := e.opts.TabStop()
	return e.mapBlock(reg, func(s string, from, _ int) string {
		if from >= len(s) {
			return s
		}
		if delta > 0 {
			return s[:from] + strings.Repeat(" ", delta) + s[from:]
		}
		j, removed := from, 0
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') && removed < -delta {
			removed += text.VirtEnd(s, j, ts) - text.VirtCol(s, j, ts) + 1
			j++
		}
		return s[:from] + s[j:]
	})
}

func opens(s string) bool {
	s = strings.TrimRight(s, " \t")
	return s != "" && strings.ContainsRune("{([", rune(s[len(s)-1]))
}

func closes(body string) bool {
	return body != "" && strings.ContainsRune("})]", rune(body[0]))
}

// reindent indents lines by bracket depth: one shiftwidth deeper after a
// line ending in an open bracket, one shallower for a line starting with
// a close bracket. The first line follows the nearest non-blank line
// above the region. Blank lines are emptied.
func (e *Engine) reindent(sp span) (Result, error) {
	first, last := sp.reg.FirstLine(), sp.reg.LastLine()
	sw, ts := e.opts.ShiftWidth(), e.opts.TabStop()

	level, open := 0, false
	for p := first - 1; p >= 1; p-- {
		if s := e.buf.Line(p); strings.TrimSpace(s) != "" {
			level, open = text.Width(text.Indent(s), ts), opens(s)
			break
		}
	}

	lines, err := e.buf.GetLines(first, last)
	if err != nil {
		return Result{}, err
	}
	for i, s := range lines {
		body := strings.TrimLeft(s, " \t")
		if body == "" {
			lines[i] = ""
			continue
		}
		w := level
		if open {
			w += sw
		}
		if closes(body) {
			w -= sw
		}
		w = max(w, 0)
		lines[i] = e.indent(w) + body
		level, open = w, opens(body)
	}
	if _, err := e.buf.SetLines(first, last, lines); err != nil {
		return Result{}, err
	}
	return Result{Cursor: e.firstNonBlank(first), Region: sp.reg}, nil
}

// defaultWidth is the format width when textwidth is 0.
const defaultWidth = 79

// format refills each paragraph of the region to textwidth. Paragraphs
// are separated by blank lines and keep the indent of their first line.
func (e *Engine) format(sp span) (Result, error) {
	first, last := sp.reg.FirstLine(), sp.reg.LastLine()
	tw := e.opts.TextWidth()
	if tw <= 0 {
		tw = defaultWidth
	}
	ts := e.opts.TabStop()

	lines, err := e.buf.GetLines(first, last)
	if err != nil {
		return Result{}, err
	}
	var out []string
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			out = append(out, lines[i])
			i++
			continue
		}
		indent := text.Indent(lines[i])
		var words []string
		for ; i < len(lines) && strings.TrimSpace(lines[i]) != ""; i++ {
			words = append(words, strings.Fields(lines[i])...)
		}
		cur := ""
		for _, w := range words {
			switch {
			case cur == "":
				cur = indent + w
			case text.Width(cur+" "+w, ts) > tw:
				out = append(out, cur)
				cur = indent + w
			default:
				cur += " " + w
			}
		}
		out = append(out, cur)
	}
	if _, err := e.buf.SetLines(first, last, out); err != nil {
		return Result{}, err
	}
	end := first + len(out) - 1
	return Result{Cursor: e.firstNonBlank(end), Region: sp.reg}, nil
}

func toggle(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	}
	return r
}

func rot13(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+13)%26
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+13)%26
	}
	return r
}

func caseMapper(op Op) func(string) string {
	switch op {
	case Lower:
		return strings.ToLower
	case Upper:
		return strings.ToUpper
	case Rot13:
		return func(s string) string { return strings.Map(rot13, s) }
	}
	return func(s string) string { return strings.Map(toggle, s) }
}

func (e *Engine) changeCase(req Request, sp span) (Result, error) {
	if err := e.mapText(sp, caseMapper(req.Op)); err != nil {
		return Result{}, err
	}
	reg := sp.reg
	var c cursor.Cursor
	switch reg.Wise {
	case buffer.Linewise:
		c = req.Cursor.MoveVertical(e.buf, reg.FirstLine(), e.cfg(cursor.RuleNormal))
	case buffer.Blockwise:
		c = e.blockStart(reg, cursor.RuleNormal)
	default:
		c = e.at(reg.Start, cursor.RuleNormal)
	}
	return Result{Cursor: c, Region: reg}, nil
}

// join joins the region's lines, at least two. J drops the leading white
// space of each joined line and separates the parts with one space,
// unless the left part already ends in white space, the right part is
// empty or starts with ')'. gJ joins the lines as they are.
func (e *Engine) join(req Request, sp span) (Result, error) {
	first, last := sp.reg.FirstLine(), sp.reg.LastLine()
	if last == first {
		last++
	}
	last = min(last, e.buf.LineCount())
	if first >= last {
		return Result{}, fmt.Errorf("%s at the last line: %w", req.Op, buffer.ErrOutOfRange)
	}

	lines, err := e.buf.GetLines(first, last)
	if err != nil {
		return Result{}, err
	}
	s, col := lines[0], 0
	for _, next := range lines[1:] {
		col = len(s)
		if req.Op == Join {
			next = strings.TrimLeft(next, " \t")
			if s != "" && next != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\t") && next[0] != ')' {
				s += " "
			}
		}
		s += next
	}
	if _, err := e.buf.SetLines(first, last, []string{s}); err != nil {
		return Result{}, err
	}
	return Result{Cursor: e.at(buffer.Pos(first, col+1), cursor.RuleNormal), Region: buffer.LineRegion(first, last)}, nil
}
