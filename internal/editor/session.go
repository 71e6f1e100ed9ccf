package editor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/history"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/event"
	"github.com/dshills/vicore/internal/input/macro"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/logging"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/search"
	"github.com/dshills/vicore/internal/textobject"
)

// Session is one editing session over one buffer.
type Session struct {
	mu     sync.Mutex
	id     uuid.UUID
	log    *logging.Logger
	sink   event.Sink
	opts   config.Provider
	ex     ExHandler
	closed bool

	buf     *buffer.Buffer
	regs    *register.Store
	tree    *history.Tree
	marks   *mark.Table
	motions *motion.Resolver
	objects *textobject.Resolver
	ops     *operator.Engine
	modes   *mode.Manager
	parser  *vim.Parser
	rec     *macro.Recorder
	player  *macro.Player

	cur cursor.Cursor

	// sel is the selection in Visual and Select mode; last is the one gv
	// restores.
	sel  *cursor.Selection
	last *cursor.Selection

	ins   *insertState
	cmd   *cmdline
	ctrlO *ctrlOState

	// changed is set when the buffer changed during the current key.
	changed bool

	lastErr error
	unsub   []func()
}

// New creates a session editing lines, which may be empty.
func New(lines []string, opts ...Option) *Session {
	st := settings{
		id:   uuid.New(),
		opts: config.Static(config.Defaults()),
		log:  logging.Nop(),
		sink: event.Discard,
	}
	for _, opt := range opts {
		opt(&st)
	}

	s := &Session{
		id:     st.id,
		sink:   st.sink,
		opts:   st.opts,
		ex:     st.ex,
		log:    st.log.WithComponent("editor").WithSession(st.id.String()),
		buf:    buffer.NewBufferFromLines(lines),
		marks:  mark.NewTable(),
		modes:  mode.NewManager(),
		parser: vim.NewParser(),
	}

	var hopts []history.Option
	if st.clock != nil {
		hopts = append(hopts, history.WithClock(st.clock))
	}
	s.tree = history.New(hopts...)
	s.regs = register.NewStore(
		register.WithClipboard(st.clipboard),
		register.WithEvaluator(st.evaluator),
		register.WithLogger(s.log),
	)
	s.motions = motion.NewResolver(s.buf, s.opts, search.New(s.buf, s.opts))
	s.motions.SetMarks(s.marks)
	s.objects = textobject.NewResolver(s.buf, s.motions)
	s.ops = operator.New(s.buf, s.regs, s.tree,
		operator.WithOptions(s.opts),
		operator.WithMotions(s.motions),
		operator.WithObjects(s.objects),
		operator.WithLogger(st.log),
	)
	s.rec = macro.NewRecorder(s.regs)
	s.player = macro.NewPlayer(s.regs)
	s.cur = s.at(buffer.Pos(1, 1), cursor.RuleNormal)
	s.subscribe()

	s.log.Debug("session started", "lines", s.buf.LineCount())
	return s
}

// Close detaches the session from its collaborators.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, fn := range s.unsub {
		fn()
	}
	s.unsub = nil
	s.ops.Close()
	s.log.Debug("session closed")
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Lines returns a copy of the buffer lines.
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Lines()
}

// Text returns the buffer as one string.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Text()
}

// Cursor returns the cursor position.
func (s *Session) Cursor() buffer.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Pos
}

// CursorState returns the whole cursor, including curswant.
func (s *Session) CursorState() cursor.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Mode returns the active mode.
func (s *Session) Mode() mode.Mode {
	return s.modes.Current()
}

// ModeCode returns the mode code, such as "n", "i", "V" or "niI".
func (s *Session) ModeCode() string {
	return s.modes.Code()
}

// Selection returns the active Visual or Select selection.
func (s *Session) Selection() (cursor.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel == nil {
		return cursor.Selection{}, false
	}
	return *s.sel, true
}

// Pending returns the partial input shown on the status line: the keys of
// an unfinished command, or the command line being typed.
func (s *Session) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil {
		return string(s.cmd.typ) + string(s.cmd.text)
	}
	return s.parser.Pending()
}

// Recording returns the register a macro is being recorded into, or 0.
func (s *Session) Recording() rune {
	return s.rec.CurrentRegister()
}

// Register returns a copy of a register's content. The = register reads
// as its last expression.
func (s *Session) Register(name rune) register.Content {
	return s.regs.Read(name)
}

// Mark returns a mark's position, or false if it is not set.
func (s *Session) Mark(name rune) (buffer.Position, bool) {
	return s.marks.Mark(name)
}

// UndoNodes returns copies of the undo tree's nodes in sequence order.
func (s *Session) UndoNodes() []history.Node {
	return s.tree.Nodes()
}

// UndoLen returns the number of undo states, the original text included.
func (s *Session) UndoLen() int {
	return s.tree.Len()
}

// UndoCurrent returns the sequence number of the current undo state.
func (s *Session) UndoCurrent() int {
	return s.tree.Current()
}

// GotoChange moves the buffer to the state after undo node seq, on any
// branch of the tree, as :undo N does. Node 0 is the original text.
func (s *Session) GotoChange(seq int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	before := s.cur.Pos
	p, err := s.tree.Goto(s.buf, seq)
	if err == nil {
		s.cur = s.at(p, cursor.RuleNormal)
	}
	s.finish(before, err)
	return err
}

// Modified reports whether the buffer differs from the last save point.
func (s *Session) Modified() bool {
	return !s.tree.AtSavePoint()
}

// MarkSaved records the current state as saved.
func (s *Session) MarkSaved() {
	s.tree.MarkSaved()
}

// SetModifiable sets whether the buffer may be changed.
func (s *Session) SetModifiable(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetModifiable(on)
}

// LastError returns the error of the last key that failed.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError forgets the last error.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// cfg returns the cursor configuration for rule.
func (s *Session) cfg(rule cursor.Rule) cursor.Config {
	return cursor.Config{
		Rule:       rule,
		VirtualAll: s.opts.VirtualEdit() == "all",
		TabStop:    s.opts.TabStop(),
	}
}

// at returns a cursor at pos clamped by rule.
func (s *Session) at(pos buffer.Position, rule cursor.Rule) cursor.Cursor {
	return s.cur.MoveTo(s.buf, pos, s.cfg(rule))
}

// rule returns the column rule of the active mode.
func (s *Session) rule() cursor.Rule {
	if s.modes.Current().AllowsPastEOL() {
		return cursor.RuleInsert
	}
	return cursor.RuleNormal
}
