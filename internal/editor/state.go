package editor

import (
	"fmt"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/history"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/motion"
)

// StateVersion is the version of the exported state format.
const StateVersion = 1

// State is the persisted form of a session: the buffer, the cursor, the
// registers, the user marks and the whole undo tree.
type State struct {
	Version    int                      `yaml:"version"`
	Session    string                   `yaml:"session"`
	Lines      []string                 `yaml:"lines"`
	Cursor     StatePos                 `yaml:"cursor"`
	Registers  map[string]StateRegister `yaml:"registers,omitempty"`
	Marks      map[string]StatePos      `yaml:"marks,omitempty"`
	History    StateHistory             `yaml:"history"`
	LastSearch *StateSearch             `yaml:"last_search,omitempty"`
}

// StatePos is a position.
type StatePos struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

// StateRegister is one register value.
type StateRegister struct {
	Type  string   `yaml:"type"`
	Lines []string `yaml:"lines"`
	Width int      `yaml:"width,omitempty"`
}

// StateHistory is the undo tree.
type StateHistory struct {
	Current int         `yaml:"current"`
	Saved   int         `yaml:"saved"`
	Nodes   []StateNode `yaml:"nodes"`
}

// StateNode is one undo tree node.
type StateNode struct {
	Seq      int       `yaml:"seq"`
	Parent   int       `yaml:"parent"`
	Children []int     `yaml:"children,flow,omitempty"`
	Ops      []StateOp `yaml:"ops,omitempty"`
	Before   StatePos  `yaml:"before"`
	After    StatePos  `yaml:"after"`
	Time     time.Time `yaml:"time"`
}

// StateOp is one line-range replacement of a node.
type StateOp struct {
	Start int      `yaml:"start"`
	Old   []string `yaml:"old"`
	New   []string `yaml:"new"`
}

// StateSearch is the last search.
type StateSearch struct {
	Pattern  string `yaml:"pattern"`
	Backward bool   `yaml:"backward,omitempty"`
}

var wiseNames = map[buffer.Wise]string{
	buffer.Charwise:  "char",
	buffer.Linewise:  "line",
	buffer.Blockwise: "block",
}

func statePos(p buffer.Position) StatePos {
	return StatePos{Line: p.Line, Col: p.Col}
}

func (p StatePos) position() buffer.Position {
	return buffer.Pos(max(p.Line, 1), max(p.Col, 1))
}

// ExportState encodes the session as YAML. Clipboard registers are left
// out. The session must be in Normal mode.
func (s *Session) ExportState() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	st := State{
		Version: StateVersion,
		Session: s.id.String(),
		Lines:   s.buf.Lines(),
		Cursor:  statePos(s.cur.Pos),
		History: StateHistory{
			Current: s.tree.Current(),
			Saved:   s.tree.Saved(),
		},
	}

	for _, name := range s.regs.Names() {
		if register.KindOf(name) == register.KindClipboard {
			continue
		}
		c := s.regs.Read(name)
		if st.Registers == nil {
			st.Registers = make(map[string]StateRegister)
		}
		st.Registers[string(name)] = StateRegister{Type: wiseNames[c.Wise], Lines: c.Lines, Width: c.Width}
	}

	for name, p := range s.marks.User() {
		if st.Marks == nil {
			st.Marks = make(map[string]StatePos)
		}
		st.Marks[string(name)] = statePos(p)
	}

	for _, n := range s.tree.Nodes() {
		sn := StateNode{
			Seq:      n.Seq,
			Parent:   n.Parent,
			Children: n.Children,
			Before:   statePos(n.CursorBefore),
			After:    statePos(n.CursorAfter),
			Time:     n.Time,
		}
		for _, op := range n.Ops {
			sn.Ops = append(sn.Ops, StateOp{Start: op.Start, Old: op.OldLines, New: op.NewLines})
		}
		st.History.Nodes = append(st.History.Nodes, sn)
	}

	if search, ok := s.motions.LastSearch(); ok {
		st.LastSearch = &StateSearch{Pattern: search.Pattern, Backward: search.Dir == motion.Backward}
	}
	return yaml.Marshal(&st)
}

// ImportState replaces the session's buffer, cursor, registers, marks and
// undo tree with exported state. Nothing changes when the state is invalid.
// The session must be in Normal mode.
func (s *Session) ImportState(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: %v", ErrBadState, err)
	}
	if st.Version != StateVersion {
		return fmt.Errorf("%w: version %d", ErrBadState, st.Version)
	}

	regs := make(map[rune]register.Content, len(st.Registers))
	for name, r := range st.Registers {
		rn, size := utf8.DecodeRuneInString(name)
		if size != len(name) || !register.Valid(rn) {
			return fmt.Errorf("%w: register %q", ErrBadState, name)
		}
		c := register.Content{Lines: r.Lines, Width: r.Width}
		switch r.Type {
		case "char":
			c.Wise = buffer.Charwise
		case "line":
			c.Wise = buffer.Linewise
		case "block":
			c.Wise = buffer.Blockwise
		default:
			return fmt.Errorf("%w: register %q has type %q", ErrBadState, name, r.Type)
		}
		regs[rn] = c
	}

	marks := make(map[rune]buffer.Position, len(st.Marks))
	for name, p := range st.Marks {
		rn, size := utf8.DecodeRuneInString(name)
		if size != len(name) || !mark.IsUser(rn) {
			return fmt.Errorf("%w: mark %q", ErrBadState, name)
		}
		marks[rn] = p.position()
	}

	nodes := make([]history.Node, len(st.History.Nodes))
	for i, sn := range st.History.Nodes {
		n := history.Node{
			Seq:          sn.Seq,
			Parent:       sn.Parent,
			Children:     sn.Children,
			CursorBefore: sn.Before.position(),
			CursorAfter:  sn.After.position(),
			Time:         sn.Time,
		}
		for _, op := range sn.Ops {
			n.Ops = append(n.Ops, history.Operation{Start: op.Start, OldLines: op.Old, NewLines: op.New})
		}
		nodes[i] = n
	}
	if !s.buf.Modifiable() {
		return fmt.Errorf("import state: %w", buffer.ErrNotModifiable)
	}
	if err := s.tree.Restore(nodes, st.History.Current, st.History.Saved); err != nil {
		return fmt.Errorf("%w: %v", ErrBadState, err)
	}

	lines := st.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	if _, err := s.buf.SetLines(1, s.buf.LineCount(), lines); err != nil {
		return err
	}
	s.cur = s.at(st.Cursor.position(), cursor.RuleNormal)

	s.marks.Clear()
	for name, p := range marks {
		s.setMark(name, p)
	}
	s.changed = false

	for name, c := range regs {
		if register.IsReadOnly(name) {
			s.regs.Provide(name, c)
			continue
		}
		if err := s.regs.Write(name, c); err != nil {
			return err
		}
	}
	if st.LastSearch != nil {
		dir := motion.Forward
		if st.LastSearch.Backward {
			dir = motion.Backward
		}
		s.motions.SetLastSearch(motion.Search{Pattern: st.LastSearch.Pattern, Dir: dir})
	}
	s.sel, s.last = nil, nil
	s.log.Info("state imported", "from", st.Session, "lines", len(lines), "nodes", len(nodes))
	return nil
}
