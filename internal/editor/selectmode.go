package editor

import (
	"context"

	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
)

var selectMotions = map[key.Key]motion.Kind{
	key.KeyLeft:  motion.Left,
	key.KeyRight: motion.Right,
	key.KeyUp:    motion.Up,
	key.KeyDown:  motion.Down,
	key.KeyHome:  motion.LineStart,
	key.KeyEnd:   motion.LineEnd,
}

// selectKey handles a key in Select mode. Typing replaces the selection;
// the replaced text is discarded.
func (s *Session) selectKey(ctx context.Context, e key.Event) error {
	if s.sel == nil {
		return ErrBadState
	}
	switch {
	case e.IsEscape():
		return s.leaveVisual(mode.Normal)
	case e.IsCtrl('g'):
		return s.modes.Switch(mode.Visual(s.sel.Wise))
	case e.Is(key.KeyBackspace), e.IsCtrl('h'), e.Is(key.KeyDelete):
		return s.deleteSelection(ctx)
	case e.Is(key.KeyEnter):
		return s.typeOverSelection(ctx, "\n")
	case e.Is(key.KeyTab):
		return s.typeOverSelection(ctx, "\t")
	case e.IsChar():
		return s.typeOverSelection(ctx, string(e.Rune))
	}
	if k, ok := selectMotions[e.Key]; ok && e.Modifiers == key.ModNone {
		res, err := s.motions.Resolve(ctx, motion.Of(k), 0, s.cur)
		if err != nil {
			return err
		}
		s.cur = res.Apply(s.buf, s.cur, s.cfg(cursor.RuleNormal))
		sel := s.sel.WithHead(s.cur)
		s.sel = &sel
	}
	return nil
}

func (s *Session) deleteSelection(ctx context.Context) error {
	reg := s.sel.Region(s.buf, s.opts.TabStop())
	res, err := s.ops.Apply(ctx, operator.Request{
		Op:       operator.Delete,
		Register: '_',
		Cursor:   s.cur,
		Target:   operator.Target{Selection: &reg},
	})
	if err == nil {
		s.cur = res.Cursor
	}
	if lerr := s.leaveVisual(mode.Normal); err == nil {
		err = lerr
	}
	return err
}

// typeOverSelection changes the selection and types str in its place.
func (s *Session) typeOverSelection(ctx context.Context, str string) error {
	reg := s.sel.Region(s.buf, s.opts.TabStop())
	res, err := s.ops.Apply(ctx, operator.Request{
		Op:       operator.Change,
		Register: '_',
		Cursor:   s.cur,
		Target:   operator.Target{Selection: &reg},
	})
	if err != nil {
		s.fallback("leave select", s.leaveVisual(mode.Normal))
		return err
	}
	s.saveSelection()
	if err := s.enterInsert(res.Cursor, false); err != nil {
		return err
	}
	return s.typeText(str)
}
