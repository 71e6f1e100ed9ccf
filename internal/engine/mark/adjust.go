package mark

import "github.com/dshills/vicore/internal/engine/buffer"

// Adjust moves the marks after a buffer change and records the changed
// lines in '[ and ']. It is a buffer.Listener.
//
// Adjustment rules, with old lines Start..End replaced by len(NewLines):
//   - above the edit: unchanged
//   - below the edit: moved by the line delta
//   - on a replaced line that still exists: unchanged
//   - on a removed line: user marks are dropped, the others move to the
//     first line after the edit
func (t *Table) Adjust(c buffer.Change) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for name, p := range t.marks {
		line, ok := AdjustLine(p.Line, c)
		switch {
		case ok:
			p.Line = line
			t.marks[name] = p
		case IsUser(name):
			delete(t.marks, name)
		default:
			t.marks[name] = buffer.Pos(c.Start+len(c.NewLines), 1)
		}
	}

	last := c.Start + max(len(c.NewLines), 1) - 1
	t.marks[ChangeStart] = buffer.Pos(c.Start, 1)
	t.marks[ChangeEnd] = buffer.Pos(last, 1)
}

// AdjustLine returns where line is after c, or false if c removed it.
func AdjustLine(line int, c buffer.Change) (int, bool) {
	old, added := len(c.OldLines), len(c.NewLines)
	switch {
	case line < c.Start:
		return line, true
	case line >= c.Start+old:
		return line + added - old, true
	case line-c.Start < added:
		return line, true
	}
	return 0, false
}
