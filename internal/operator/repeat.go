package operator

import (
	"context"

	"github.com/dshills/vicore/internal/engine/cursor"
)

// Repeat replays the last change at c, as . does. A count replaces the
// original count and is kept for the next repeat. Repeating a put from a
// numbered register puts from the next one.
func (e *Engine) Repeat(ctx context.Context, count int, c cursor.Cursor) (Result, error) {
	if e.last == nil {
		return Result{}, ErrNoPreviousChange
	}
	ch := *e.last
	if count > 0 {
		ch.Count = count
	}

	switch ch.Action {
	case ActOperator:
		res, err := e.Apply(ctx, Request{
			Op:       ch.Op,
			Register: ch.Register,
			Count:    ch.Count,
			Target:   ch.Target,
			Cursor:   c,
		})
		if err != nil || !res.Insert {
			return res, err
		}
		end, err := e.splice(res.Cursor.Pos, res.Cursor.Pos, ch.Text)
		if err != nil {
			return Result{}, e.cancelInsert(err)
		}
		return e.EndInsert(ch.Text, cursor.New(end))

	case ActInsert:
		ic, err := e.BeginInsert(ch.Insert, ch.Count, c)
		if err != nil {
			return Result{}, err
		}
		end := ic.Pos
		if ch.Insert == ReplaceMode {
			end, _, err = e.overwrite(end, ch.Text)
		} else {
			end, err = e.splice(end, end, ch.Text)
		}
		if err != nil {
			return Result{}, e.cancelInsert(err)
		}
		return e.EndInsert(ch.Text, cursor.New(end))

	case ActPut:
		reg := ch.Register
		if reg >= '1' && reg < '9' {
			reg++
		}
		return e.Put(PutRequest{
			Register:    reg,
			Count:       ch.Count,
			Cursor:      c,
			Before:      ch.Before,
			CursorAfter: ch.CursorAfter,
		})

	case ActReplaceChar:
		return e.ReplaceChars(c, ch.Count, ch.Char)

	case ActToggleChar:
		return e.ToggleChars(c, ch.Count)
	}
	return Result{}, ErrNoPreviousChange
}
