package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/operator"
)

// ctrlOState is a Normal command run from Insert mode with <C-o>.
type ctrlOState struct {
	pos buffer.Position

	// eol is set when Insert mode was left past the line end, where it
	// resumes when the command does not move the cursor.
	eol bool
}

// Feed processes one key.
func (s *Session) Feed(ctx context.Context, e key.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	recording := s.rec.IsRecording()
	before := s.cur.Pos
	err := s.feed(ctx, e)
	if recording && s.rec.IsRecording() {
		s.rec.Record(e)
	}
	s.finish(before, err)
	return err
}

// FeedKeys feeds every key of a sequence in key notation, such as
// "d2w" or "ihello<Esc>". Like typing, a failing key does not stop the
// keys after it; the errors are joined.
func (s *Session) FeedKeys(ctx context.Context, keys string) error {
	events, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Feed(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// feed routes one key by mode. Macro playback re-enters here.
func (s *Session) feed(ctx context.Context, e key.Event) error {
	switch s.modes.Current().Kind {
	case mode.KindInsert, mode.KindReplace:
		return s.insertKey(e)
	case mode.KindCommandLine:
		return s.cmdlineKey(ctx, e)
	case mode.KindSelect:
		return s.selectKey(ctx, e)
	default:
		return s.normalKey(ctx, e)
	}
}

// normalKey feeds the command parser in Normal, Visual and
// Operator-pending mode.
func (s *Session) normalKey(ctx context.Context, e key.Event) error {
	visual := s.modes.IsKind(mode.KindVisual)
	res := s.parser.Feed(e, visual)

	switch res.Status {
	case vim.StatusPending:
		if op, n, ok := s.parser.PendingOperator(); ok && s.modes.IsKind(mode.KindNormal) {
			if err := s.modes.EnterOperatorPending(op.String(), n); err != nil {
				return err
			}
		}
		return nil
	case vim.StatusInvalid:
		if s.modes.IsKind(mode.KindOperatorPending) {
			s.fallback("abort operator", s.modes.Abort())
		}
		return s.resume(res.Err)
	}

	cmd := res.Command
	if cmd.NeedsPattern() {
		return s.openSearch(cmd)
	}
	if s.modes.IsKind(mode.KindOperatorPending) {
		if cmd.Action == vim.ActEscape {
			s.fallback("abort operator", s.modes.Abort())
			return s.resume(nil)
		}
		if err := s.modes.ExitOperatorPending(); err != nil {
			return err
		}
	}
	s.log.Debug("command", "keys", cmd.Keys, "action", cmd.Action.String())
	return s.resume(s.execute(ctx, cmd))
}

// resume returns to Insert mode after a <C-o> command and passes err on.
func (s *Session) resume(err error) error {
	o := s.ctrlO
	if o == nil || !s.modes.InCtrlO() {
		s.ctrlO = nil
		return err
	}
	normal := s.modes.IsKind(mode.KindNormal)
	s.modes.ExitCtrlO()
	s.ctrlO = nil
	if !normal {
		return err
	}

	kind := operator.InsertBefore
	if o.eol && s.cur.Pos == o.pos {
		kind = operator.InsertAfter
	}
	c, ierr := s.ops.BeginInsert(kind, 1, s.cur)
	if ierr != nil {
		s.fallback("leave ctrl-o", s.modes.Switch(mode.Normal))
		return errors.Join(err, fmt.Errorf("resume insert: %w", ierr))
	}
	s.cur = c
	s.ins = newInsertState(c.Pos, false)
	return err
}
