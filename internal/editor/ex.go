package editor

import (
	"context"
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/operator"
)

// exEditor is the Editor an Ex handler gets. The session lock is already
// held by the command that ran the handler.
type exEditor struct {
	s *Session
}

func (e exEditor) Lines() []string {
	return e.s.buf.Lines()
}

func (e exEditor) Cursor() buffer.Position {
	return e.s.cur.Pos
}

func (e exEditor) ApplyRange(ctx context.Context, op operator.Op, reg buffer.Region) error {
	return e.s.applyRange(ctx, op, reg)
}

func (e exEditor) ReplaceLines(first, last int, lines []string) error {
	return e.s.replaceLines(first, last, lines)
}

func (e exEditor) LastSelection() (buffer.Region, bool) {
	return e.s.lastSelection()
}

// ApplyRange applies op to an explicit region, the way an Ex command such
// as :d or :> acts on a line range. It goes through the operator engine
// like a typed command and commits one undo node. The session must be in
// Normal mode. Change is rejected since it needs Insert mode.
func (s *Session) ApplyRange(ctx context.Context, op operator.Op, reg buffer.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	before := s.cur.Pos
	err := s.applyRange(ctx, op, reg)
	s.finish(before, err)
	return err
}

func (s *Session) applyRange(ctx context.Context, op operator.Op, reg buffer.Region) error {
	if op == operator.Change {
		return fmt.Errorf("%s on a range: %w", op, operator.ErrInvalidMotionForOperator)
	}
	res, err := s.ops.Apply(ctx, operator.Request{
		Op:     op,
		Cursor: s.cur,
		Target: operator.Target{Selection: &reg},
	})
	if err != nil {
		return err
	}
	s.cur = res.Cursor
	return nil
}

// ReplaceLines replaces lines first..last with lines as one undoable
// change.
func (s *Session) ReplaceLines(first, last int, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	before := s.cur.Pos
	err := s.replaceLines(first, last, lines)
	s.finish(before, err)
	return err
}

func (s *Session) replaceLines(first, last int, lines []string) error {
	res, err := s.ops.ReplaceLines(first, last, lines, s.cur)
	if err != nil {
		return err
	}
	s.cur = res.Cursor
	return nil
}

func (s *Session) lastSelection() (buffer.Region, bool) {
	if s.last == nil {
		return buffer.Region{}, false
	}
	sel := *s.last
	sel.Anchor = s.at(sel.Anchor, cursor.RuleNormal).Pos
	sel.Head = s.at(sel.Head, cursor.RuleNormal).Pos
	return sel.Region(s.buf, s.opts.TabStop()), true
}

// ready checks that an entry point other than Feed may run.
func (s *Session) ready() error {
	if s.closed {
		return ErrClosed
	}
	if !s.modes.IsKind(mode.KindNormal) {
		return ErrBusy
	}
	return nil
}
