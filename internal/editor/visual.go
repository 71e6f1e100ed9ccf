package editor

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/text"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/operator"
)

// visual starts Visual mode of shape w, switches the shape, or leaves
// Visual mode when w is the shape already active.
func (s *Session) visual(w buffer.Wise) error {
	if s.sel == nil {
		if err := s.modes.Switch(mode.Visual(w)); err != nil {
			return err
		}
		sel := cursor.NewSelection(s.cur.Pos, w)
		s.sel = &sel
		return nil
	}
	if s.sel.Wise == w && s.modes.IsKind(mode.KindVisual) {
		return s.leaveVisual(mode.Normal)
	}
	if err := s.modes.Switch(mode.Visual(w)); err != nil {
		return err
	}
	sel := *s.sel
	sel.Wise = w
	s.sel = &sel
	return nil
}

// startSelect starts Select mode of shape w at the cursor.
func (s *Session) startSelect(w buffer.Wise) error {
	if err := s.modes.Switch(mode.Select(w)); err != nil {
		return err
	}
	if s.sel == nil {
		sel := cursor.NewSelection(s.cur.Pos, w)
		s.sel = &sel
	}
	return nil
}

// toggleSelect switches between Visual and Select mode keeping the
// selection.
func (s *Session) toggleSelect() error {
	if s.sel == nil {
		return nil
	}
	to := mode.Select(s.sel.Wise)
	if s.modes.IsKind(mode.KindSelect) {
		to = mode.Visual(s.sel.Wise)
	}
	return s.modes.Switch(to)
}

// reselect restores the previous selection, as gv does. In Visual mode
// the current selection becomes the previous one.
func (s *Session) reselect() error {
	if s.last == nil {
		return ErrNoPreviousSelection
	}
	sel := *s.last
	sel.Anchor = s.at(sel.Anchor, cursor.RuleNormal).Pos
	sel.Head = s.at(sel.Head, cursor.RuleNormal).Pos
	if err := s.modes.Switch(mode.Visual(sel.Wise)); err != nil {
		return err
	}
	if s.sel != nil {
		prev := *s.sel
		s.last = &prev
	}
	s.sel = &sel
	s.cur = s.at(sel.Head, cursor.RuleNormal)
	if sel.HeadWant == cursor.MaxCol {
		s.cur = s.cur.WithCurswant(cursor.MaxCol)
	}
	return nil
}

// swapAnchor moves the cursor to the other end of the selection.
func (s *Session) swapAnchor() error {
	if s.sel == nil {
		return nil
	}
	sel := s.sel.Swap()
	s.sel = &sel
	s.cur = s.at(sel.Head, cursor.RuleNormal)
	return nil
}

// extendObject grows the selection over a text object. A fresh
// one-character selection becomes the object; a larger one is widened to
// cover it.
func (s *Session) extendObject(cmd *vim.Command) error {
	if s.sel == nil {
		return nil
	}
	reg, err := s.objects.Resolve(*cmd.Object, cmd.Count, s.cur.Pos)
	if err != nil {
		return err
	}
	reg = reg.Normalize()
	start, end := reg.Start, reg.End
	if reg.Wise == buffer.Linewise {
		start, end = buffer.Pos(reg.FirstLine(), 1), buffer.Pos(reg.LastLine(), 1)
	} else if !reg.Inclusive {
		end = s.lastChar(end)
		if end.Before(start) {
			end = start
		}
	}

	sel := *s.sel
	if sel.Anchor != sel.Head {
		if sel.Start().Before(start) {
			start = sel.Start()
		}
		if end.Before(sel.End()) {
			end = sel.End()
		}
	}
	sel.Anchor, sel.Head, sel.HeadWant = start, end, -1
	if reg.Wise == buffer.Linewise && sel.Wise == buffer.Charwise {
		if err := s.modes.Switch(mode.Visual(buffer.Linewise)); err != nil {
			return err
		}
		sel.Wise = buffer.Linewise
	}
	s.sel = &sel
	s.cur = s.at(end, cursor.RuleNormal)
	return nil
}

// saveSelection remembers the selection for gv and in '< and '>, and
// ends it.
func (s *Session) saveSelection() {
	if s.sel == nil {
		return
	}
	sel := *s.sel
	s.last = &sel
	s.setMark(mark.VisualStart, sel.Start())
	s.setMark(mark.VisualEnd, sel.End())
	s.sel = nil
}

// leaveVisual ends the selection and switches to the mode to.
func (s *Session) leaveVisual(to mode.Mode) error {
	s.saveSelection()
	if s.modes.Current() == to {
		return nil
	}
	return s.modes.Switch(to)
}

// selectionRegion returns the region an operator acts on in Visual mode.
// whole takes every line the selection touches; for a block D and C it
// runs to the end of each line instead.
func (s *Session) selectionRegion(op operator.Op, whole bool) buffer.Region {
	reg := s.sel.Region(s.buf, s.opts.TabStop())
	if !whole {
		return reg
	}
	if reg.Wise == buffer.Blockwise && (op == operator.Delete || op == operator.Change) {
		reg.EndVCol = buffer.MaxCol
		return reg
	}
	return buffer.LineRegion(reg.FirstLine(), reg.LastLine())
}

// lastChar returns the position of the character before p, stepping to
// the end of the previous line from column 1.
func (s *Session) lastChar(p buffer.Position) buffer.Position {
	if p.Col > 1 {
		line := s.buf.Line(p.Line)
		return buffer.Pos(p.Line, text.Prev(line, min(p.Index(), len(line)))+1)
	}
	if p.Line == 1 {
		return p
	}
	prev := s.buf.Line(p.Line - 1)
	return buffer.Pos(p.Line-1, max(text.Last(prev), 0)+1)
}
