package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/engine/text"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/operator"
)

// insertState tracks one stay in Insert or Replace mode.
type insertState struct {
	// start is where typing began; <C-u> deletes back to it.
	start buffer.Position

	// typed is the net text typed, what dot-repeat inserts again.
	typed string

	replace bool

	// overwritten holds one entry per character typed in Replace mode,
	// so <BS> can put the original text back.
	overwritten []overwrite

	// awaitReg is set after <C-r>, waiting for the register name.
	awaitReg bool
}

type overwrite struct {
	typed string
	old   string
}

func newInsertState(start buffer.Position, replace bool) *insertState {
	return &insertState{start: start, replace: replace}
}

// insertKey handles a key in Insert or Replace mode.
func (s *Session) insertKey(e key.Event) error {
	in := s.ins
	if in == nil {
		return ErrBadState
	}
	if in.awaitReg {
		in.awaitReg = false
		if !e.IsChar() {
			return nil
		}
		return s.typeRegister(e.Rune)
	}

	switch {
	case e.IsEscape():
		return s.endInsert()
	case e.Is(key.KeyEnter), e.IsCtrl('m'), e.IsCtrl('j'):
		return s.typeText("\n")
	case e.Is(key.KeyTab), e.IsCtrl('i'):
		return s.typeText(s.tab())
	case e.Is(key.KeyBackspace), e.IsCtrl('h'):
		return s.backspace()
	case e.Is(key.KeyDelete):
		return s.deleteForward()
	case e.IsCtrl('w'):
		return s.deleteBack(s.wordStart(s.cur.Pos))
	case e.IsCtrl('u'):
		return s.deleteBack(s.lineStart(s.cur.Pos))
	case e.IsCtrl('o'):
		return s.ctrlOStart()
	case e.IsCtrl('r'):
		in.awaitReg = true
		return nil
	case e.Is(key.KeyInsert):
		return s.toggleReplace()
	case e.Key.IsArrow(), e.Is(key.KeyHome), e.Is(key.KeyEnd):
		return s.insertMove(e)
	case e.IsChar():
		return s.typeText(string(e.Rune))
	}
	return nil
}

// typeText enters str at the cursor, overwriting in Replace mode.
func (s *Session) typeText(str string) error {
	in := s.ins
	p := s.cur.Pos
	if !in.replace {
		next, err := s.ops.Edit(p, p, str)
		if err != nil {
			return err
		}
		in.typed += str
		s.cur = s.at(next, cursor.RuleInsert)
		return nil
	}

	for _, r := range str {
		ch := string(r)
		next, old, err := s.ops.Overwrite(p, ch)
		if err != nil {
			return err
		}
		in.overwritten = append(in.overwritten, overwrite{typed: ch, old: old})
		in.typed += ch
		p = next
	}
	s.cur = s.at(p, cursor.RuleInsert)
	return nil
}

// tab returns the text a <Tab> types.
func (s *Session) tab() string {
	if !s.opts.ExpandTab() {
		return "\t"
	}
	ts := max(s.opts.TabStop(), 1)
	line := s.buf.Line(s.cur.Pos.Line)
	vcol := text.Width(line[:min(s.cur.Pos.Index(), len(line))], ts)
	return strings.Repeat(" ", ts-vcol%ts)
}

// backspace deletes the character before the cursor, joining with the
// previous line at column 1. In Replace mode it restores what the typed
// character overwrote instead, and only moves left before the point
// where replacing began.
func (s *Session) backspace() error {
	in := s.ins
	p := s.cur.Pos
	if in.replace {
		n := len(in.overwritten)
		if n == 0 {
			if p.Col > 1 {
				s.cur = s.at(s.lastChar(p), cursor.RuleInsert)
			}
			return nil
		}
		top := in.overwritten[n-1]
		in.overwritten = in.overwritten[:n-1]
		in.typed = strings.TrimSuffix(in.typed, top.typed)
		if top.typed == "\n" {
			return s.joinBack(p)
		}
		from := buffer.Pos(p.Line, max(p.Col-len(top.typed), 1))
		if _, err := s.ops.Edit(from, p, top.old); err != nil {
			return err
		}
		s.cur = s.at(from, cursor.RuleInsert)
		return nil
	}

	if p.Col == 1 {
		if p.Line == 1 {
			return nil
		}
		in.typed = strings.TrimSuffix(in.typed, "\n")
		return s.joinBack(p)
	}
	return s.deleteBack(s.lastChar(p))
}

// joinBack joins line p.Line onto the end of the line above.
func (s *Session) joinBack(p buffer.Position) error {
	prev := s.buf.Line(p.Line - 1)
	end := buffer.Pos(p.Line-1, len(prev)+1)
	if _, err := s.ops.Edit(end, buffer.Pos(p.Line, 1), ""); err != nil {
		return err
	}
	s.cur = s.at(end, cursor.RuleInsert)
	return nil
}

// deleteBack deletes from from to the cursor on the cursor line.
func (s *Session) deleteBack(from buffer.Position) error {
	p := s.cur.Pos
	if !from.Before(p) {
		if p.Col == 1 && p.Line > 1 {
			return s.backspace()
		}
		return nil
	}
	line := s.buf.Line(p.Line)
	removed := line[from.Index():min(p.Index(), len(line))]
	if _, err := s.ops.Edit(from, p, ""); err != nil {
		return err
	}
	s.trimTyped(removed)
	s.cur = s.at(from, cursor.RuleInsert)
	return nil
}

// trimTyped drops removed from the end of the typed text. Text deleted
// from before the insert point is not part of it.
func (s *Session) trimTyped(removed string) {
	in := s.ins
	if strings.HasSuffix(in.typed, removed) {
		in.typed = strings.TrimSuffix(in.typed, removed)
		return
	}
	for removed != "" && in.typed != "" {
		r, n := utf8.DecodeLastRuneInString(removed)
		if t, _ := utf8.DecodeLastRuneInString(in.typed); t != r {
			return
		}
		in.typed = in.typed[:len(in.typed)-n]
		removed = removed[:len(removed)-n]
	}
}

// deleteForward deletes the character under the cursor, joining the next
// line at the line end.
func (s *Session) deleteForward() error {
	p := s.cur.Pos
	line := s.buf.Line(p.Line)
	idx := min(p.Index(), len(line))
	to := buffer.Pos(p.Line, text.Next(line, idx)+1)
	if idx >= len(line) {
		if p.Line >= s.buf.LineCount() {
			return nil
		}
		to = buffer.Pos(p.Line+1, 1)
	}
	_, err := s.ops.Edit(buffer.Pos(p.Line, idx+1), to, "")
	return err
}

// wordStart returns where <C-w> deletes back to: over blanks, then over
// one run of word or punctuation characters, stopping at the insert
// start when the cursor is past it.
func (s *Session) wordStart(p buffer.Position) buffer.Position {
	line := s.buf.Line(p.Line)
	i := min(p.Index(), len(line))
	floor := 0
	if st := s.ins.start; st.Line == p.Line && st.Index() < i {
		floor = st.Index()
	}
	for i > floor {
		r, n := utf8.DecodeLastRuneInString(line[:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= n
	}
	if i > floor {
		r, _ := utf8.DecodeLastRuneInString(line[:i])
		class := text.ClassOf(r, false)
		for i > floor {
			r, n := utf8.DecodeLastRuneInString(line[:i])
			if text.ClassOf(r, false) != class {
				break
			}
			i -= n
		}
	}
	return buffer.Pos(p.Line, i+1)
}

// lineStart returns where <C-u> deletes back to: the insert start when
// the cursor is past it on the same line, else the first non-blank, else
// column 1.
func (s *Session) lineStart(p buffer.Position) buffer.Position {
	if st := s.ins.start; st.Line == p.Line && st.Before(p) {
		return st
	}
	line := s.buf.Line(p.Line)
	if fnb := text.FirstNonBlank(line); fnb < p.Index() {
		return buffer.Pos(p.Line, fnb+1)
	}
	return buffer.Pos(p.Line, 1)
}

// typeRegister types the contents of a register, as <C-r> does.
func (s *Session) typeRegister(name rune) error {
	c, err := s.registerValue(name)
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return nil
	}
	return s.typeText(c.String())
}

// registerValue reads a register for typing. For = the last expression
// is evaluated again.
func (s *Session) registerValue(name rune) (register.Content, error) {
	c := s.regs.Read(name)
	if name != '=' || c.IsEmpty() {
		return c, nil
	}
	return s.regs.Evaluate(c.String())
}

// endInsert leaves Insert or Replace mode, committing the insert.
func (s *Session) endInsert() error {
	typed := s.ins.typed
	s.ins = nil
	res, err := s.ops.EndInsert(typed, s.cur)
	if serr := s.modes.Switch(mode.Normal); serr != nil && err == nil {
		err = serr
	}
	s.setMark(mark.LastInsert, s.cur.Pos)
	if err != nil {
		s.cur = s.at(s.cur.Pos, cursor.RuleNormal)
		return err
	}
	s.cur = res.Cursor
	return nil
}

// toggleReplace switches between Insert and Replace mode.
func (s *Session) toggleReplace() error {
	to := mode.Replace
	if s.ins.replace {
		to = mode.Insert
	}
	if err := s.modes.Switch(to); err != nil {
		return err
	}
	s.ins.replace = !s.ins.replace
	s.ins.overwritten = nil
	return nil
}

// insertMove moves the cursor in Insert mode. The insert so far is
// committed and a new one starts at the new position.
func (s *Session) insertMove(e key.Event) error {
	in := s.ins
	at := s.cur.Pos
	if _, err := s.ops.EndInsert(in.typed, s.cur); err != nil {
		return err
	}
	c := s.at(at, cursor.RuleInsert)
	switch {
	case e.Is(key.KeyLeft):
		if at.Col > 1 {
			c = s.at(s.lastChar(at), cursor.RuleInsert)
		}
	case e.Is(key.KeyRight):
		line := s.buf.Line(at.Line)
		c = s.at(buffer.Pos(at.Line, text.Next(line, min(at.Index(), len(line)))+1), cursor.RuleInsert)
	case e.Is(key.KeyHome):
		c = s.at(buffer.Pos(at.Line, 1), cursor.RuleInsert)
	case e.Is(key.KeyEnd):
		c = s.at(buffer.Pos(at.Line, len(s.buf.Line(at.Line))+1), cursor.RuleInsert)
	case e.Is(key.KeyUp), e.Is(key.KeyDown):
		line := at.Line - 1
		if e.Is(key.KeyDown) {
			line = at.Line + 1
		}
		c = s.cur.MoveVertical(s.buf, cursor.ClampLine(s.buf, line), s.cfg(cursor.RuleInsert))
	}

	kind := operator.InsertBefore
	if in.replace {
		kind = operator.ReplaceMode
	}
	ic, err := s.ops.BeginInsert(kind, 1, c)
	if err != nil {
		s.fallback("abandon insert", s.modes.Switch(mode.Normal))
		s.ins = nil
		return err
	}
	s.cur = ic
	s.ins = newInsertState(ic.Pos, in.replace)
	return nil
}

// ctrlOStart runs one Normal mode command from Insert mode.
func (s *Session) ctrlOStart() error {
	in := s.ins
	p := s.cur.Pos
	eol := p.Index() >= len(s.buf.Line(p.Line)) && p.Col > 1
	if _, err := s.ops.EndInsert(in.typed, s.cur); err != nil {
		return err
	}
	s.ins = nil
	if err := s.modes.EnterCtrlO(); err != nil {
		return err
	}
	s.cur = s.at(p, cursor.RuleNormal)
	s.ctrlO = &ctrlOState{pos: s.cur.Pos, eol: eol}
	return nil
}
