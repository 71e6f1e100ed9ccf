package editor

import (
	"context"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/operator"
)

// execute runs one complete Normal or Visual mode command.
func (s *Session) execute(ctx context.Context, cmd *vim.Command) error {
	switch cmd.Action {
	case vim.ActEscape:
		return s.leaveVisual(mode.Normal)
	case vim.ActMotion:
		return s.move(ctx, cmd)
	case vim.ActOperator:
		return s.operate(ctx, cmd)
	case vim.ActObject:
		return s.extendObject(cmd)
	case vim.ActInsert:
		return s.insert(cmd)
	case vim.ActVisual:
		return s.visual(cmd.Wise)
	case vim.ActSelect:
		return s.startSelect(cmd.Wise)
	case vim.ActToggleSelect:
		return s.toggleSelect()
	case vim.ActReselect:
		return s.reselect()
	case vim.ActSwapAnchor:
		return s.swapAnchor()
	case vim.ActPut:
		if cmd.Register == '=' {
			return s.openCmdline('=', cmd, "")
		}
		return s.put(cmd, nil)
	case vim.ActReplaceChar:
		return s.replaceChar(cmd)
	case vim.ActToggleChar:
		res, err := s.ops.ToggleChars(s.cur, cmd.Count)
		if err != nil {
			return err
		}
		s.cur = res.Cursor
	case vim.ActUndo, vim.ActRedo, vim.ActStepBack, vim.ActStepForward:
		return s.travel(cmd)
	case vim.ActRepeat:
		res, err := s.ops.Repeat(ctx, cmd.Count, s.cur)
		if err != nil {
			return err
		}
		s.cur = res.Cursor
	case vim.ActCmdline:
		return s.exCmdline(cmd)
	case vim.ActRecord:
		return s.record(cmd.Char)
	case vim.ActSetMark:
		return s.marks.Set(cmd.Char, s.cur.Pos)
	case vim.ActPlay:
		return s.player.Play(ctx, cmd.Char, cmd.Counted(), func(e key.Event) error {
			return s.feed(ctx, e)
		})
	}
	return nil
}

// move moves the cursor, dragging the selection head along in Visual
// mode.
func (s *Session) move(ctx context.Context, cmd *vim.Command) error {
	res, err := s.motions.Resolve(ctx, *cmd.Motion, cmd.Count, s.cur)
	if err != nil {
		return err
	}
	from := s.cur.Pos
	s.cur = res.Apply(s.buf, s.cur, s.cfg(cursor.RuleNormal))
	if cmd.Motion.Kind.Jumps() && s.cur.Pos != from {
		s.setMark(mark.Context, from)
	}
	if s.sel != nil {
		sel := s.sel.WithHead(s.cur)
		s.sel = &sel
	}
	return nil
}

// operate applies an operator to a motion, an object, count lines or the
// selection.
func (s *Session) operate(ctx context.Context, cmd *vim.Command) error {
	req := operator.Request{
		Op:       cmd.Op,
		Register: cmd.Register,
		Cursor:   s.cur,
		Count:    cmd.Count,
	}
	if s.sel != nil {
		reg := s.selectionRegion(cmd.Op, cmd.Linewise)
		req.Target.Selection = &reg
		res, err := s.ops.Apply(ctx, req)
		if err != nil {
			s.fallback("leave visual", s.leaveVisual(mode.Normal))
			return err
		}
		if cmd.Op == operator.Yank {
			s.markYank(res.Region)
		}
		if !res.Insert {
			s.cur = res.Cursor
			return s.leaveVisual(mode.Normal)
		}
		s.saveSelection()
		return s.enterInsert(res.Cursor, false)
	}

	switch {
	case cmd.Motion != nil:
		req.Target.Motion = cmd.Motion
	case cmd.Object != nil:
		req.Target.Object = cmd.Object
	default:
		req.Target.Lines = true
	}
	res, err := s.ops.Apply(ctx, req)
	if err != nil {
		return err
	}
	if cmd.Op == operator.Yank {
		s.markYank(res.Region)
	}
	if res.Insert {
		return s.enterInsert(res.Cursor, false)
	}
	s.cur = res.Cursor
	return nil
}

// markYank sets '[ and '] around yanked text, which the buffer listener
// does for changes.
func (s *Session) markYank(r buffer.Region) {
	s.setMark(mark.ChangeStart, r.Start)
	s.setMark(mark.ChangeEnd, r.End)
}

// insert starts Insert or Replace mode. From Visual mode I and A insert
// at the selection's start or end, on every line of a block.
func (s *Session) insert(cmd *vim.Command) error {
	if s.sel == nil {
		c, err := s.ops.BeginInsert(cmd.Insert, cmd.Count, s.cur)
		if err != nil {
			return err
		}
		return s.enterInsert(c, cmd.Insert == operator.ReplaceMode)
	}

	sel := *s.sel
	appending := cmd.Insert == operator.InsertLineEnd
	var c cursor.Cursor
	var err error
	switch {
	case sel.Wise == buffer.Blockwise:
		c, err = s.ops.BeginBlockInsert(sel.Region(s.buf, s.opts.TabStop()), appending, s.cur)
	case sel.Wise == buffer.Linewise && appending:
		c, err = s.ops.BeginInsert(operator.InsertLineEnd, 1, s.at(buffer.Pos(sel.End().Line, 1), cursor.RuleNormal))
	case sel.Wise == buffer.Linewise:
		c, err = s.ops.BeginInsert(operator.InsertLineStart, 1, s.at(buffer.Pos(sel.Start().Line, 1), cursor.RuleNormal))
	case appending:
		c, err = s.ops.BeginInsert(operator.InsertAfter, 1, s.at(sel.End(), cursor.RuleNormal))
	default:
		c, err = s.ops.BeginInsert(operator.InsertBefore, 1, s.at(sel.Start(), cursor.RuleNormal))
	}
	if err != nil {
		return err
	}
	s.saveSelection()
	return s.enterInsert(c, false)
}

// enterInsert switches to Insert or Replace mode after the engine opened
// an insert at c.
func (s *Session) enterInsert(c cursor.Cursor, replace bool) error {
	to := mode.Insert
	if replace {
		to = mode.Replace
	}
	if err := s.modes.Switch(to); err != nil {
		if _, eerr := s.ops.EndInsert("", c); eerr != nil {
			s.log.Warn("closing insert failed", "error", eerr.Error())
		}
		return err
	}
	s.cur = c
	s.ins = newInsertState(c.Pos, replace)
	return nil
}

// put runs p, P, gp or gP. content, when set, is put instead of the
// register, as for "=p.
func (s *Session) put(cmd *vim.Command, content *register.Content) error {
	req := operator.PutRequest{
		Register:    cmd.Register,
		Count:       cmd.Count,
		Cursor:      s.cur,
		Before:      cmd.Before,
		CursorAfter: cmd.CursorAfter,
	}
	visual := s.sel != nil
	if visual {
		reg := s.sel.Region(s.buf, s.opts.TabStop())
		req.Selection = &reg
	}

	var res operator.Result
	var err error
	if content != nil {
		res, err = s.ops.PutText(req, *content)
	} else {
		res, err = s.ops.Put(req)
	}
	if err == nil {
		s.cur = res.Cursor
	}
	if visual {
		s.fallback("leave visual", s.leaveVisual(mode.Normal))
	}
	return err
}

func (s *Session) replaceChar(cmd *vim.Command) error {
	if s.sel == nil {
		res, err := s.ops.ReplaceChars(s.cur, cmd.Count, cmd.Char)
		if err != nil {
			return err
		}
		s.cur = res.Cursor
		return nil
	}
	res, err := s.ops.ReplaceSelection(s.sel.Region(s.buf, s.opts.TabStop()), cmd.Char, s.cur)
	if err == nil {
		s.cur = res.Cursor
	}
	s.fallback("leave visual", s.leaveVisual(mode.Normal))
	return err
}

// travel walks the undo tree count steps. Running out of history after
// the first step ends the walk quietly.
func (s *Session) travel(cmd *vim.Command) error {
	step := s.tree.Undo
	switch cmd.Action {
	case vim.ActRedo:
		step = s.tree.Redo
	case vim.ActStepBack:
		step = s.tree.StepBack
	case vim.ActStepForward:
		step = s.tree.StepForward
	}
	for i := range cmd.Counted() {
		p, err := step(s.buf)
		if err != nil {
			if i == 0 {
				return err
			}
			break
		}
		s.cur = s.at(p, cursor.RuleNormal)
	}
	return nil
}

// record starts recording into reg, or stops when reg is 0.
func (s *Session) record(reg rune) error {
	if reg == 0 {
		events, err := s.rec.StopRecording()
		s.parser.SetRecording(false)
		if err != nil {
			return err
		}
		s.log.Debug("recording stopped", "keys", len(events))
		return nil
	}
	if err := s.rec.StartRecording(reg); err != nil {
		return err
	}
	s.parser.SetRecording(true)
	s.log.Debug("recording started", "register", string(reg))
	return nil
}
