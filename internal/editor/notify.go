package editor

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/event"
	"github.com/dshills/vicore/internal/input/mode"
)

// subscribe forwards buffer and mode changes to the sink and keeps the
// marks on their lines. Buffer changes made while a command is still
// being typed reach the sink when the mode machine stops blocking.
func (s *Session) subscribe() {
	id := s.id.String()
	s.unsub = append(s.unsub,
		s.buf.Subscribe(func(c buffer.Change) {
			s.marks.Adjust(c)
			s.changed = true
		}),
		s.buf.Subscribe(func(c buffer.Change) {
			s.modes.Post(func() {
				s.sink.Send(event.NewBufferChanged(id, c))
			})
		}),
		s.modes.OnChange(func(from, to mode.Mode) {
			s.log.Debug("mode changed", "from", from.Code(), "to", to.Code())
			s.sink.Send(event.NewModeChanged(id, from.Code(), to.Code(), to.DisplayName()))
		}),
	)
}

// finish reports the outcome of one key.
func (s *Session) finish(before buffer.Position, err error) {
	if err != nil {
		s.lastErr = err
		s.log.Debug("command failed", "error", err.Error())
		s.sink.Send(event.NewNotice(s.id.String(), err))
	}
	if s.changed {
		s.changed = false
		s.setMark(mark.LastChange, s.cur.Pos)
	}
	if search, ok := s.motions.LastSearch(); ok {
		s.regs.Provide('/', register.Chars(search.Pattern))
	}
	if pos := s.cur.Pos; pos != before {
		id := s.id.String()
		s.modes.Post(func() {
			s.sink.Send(event.NewCursorMoved(id, pos))
		})
	}
}

// fallback logs a mode transition made while another error is already
// being returned. Its own failure leaves the mode where it was.
func (s *Session) fallback(what string, err error) {
	if err != nil {
		s.log.Debug("mode transition failed", "step", what, "mode", s.modes.Current().Code(), "error", err)
	}
}

// setMark places one of the marks the editor maintains.
func (s *Session) setMark(name rune, p buffer.Position) {
	if err := s.marks.Set(name, p); err != nil {
		s.log.Debug("mark not set", "mark", string(name), "error", err)
	}
}
