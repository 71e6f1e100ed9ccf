package operator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/history"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/engine/text"
	"github.com/dshills/vicore/internal/logging"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/textobject"
)

// Engine applies operators to one buffer.
// An Engine is not safe for concurrent use; the session serializes calls.
type Engine struct {
	buf     *buffer.Buffer
	regs    *register.Store
	tree    *history.Tree
	rec     *history.Recorder
	motions *motion.Resolver
	objects *textobject.Resolver
	opts    config.Provider
	log     *logging.Logger

	last    *LastChange
	pending *pendingInsert
}

// Option configures an Engine.
type Option func(*Engine)

// WithMotions sets the motion resolver. It should share the session's
// last search and last find state.
func WithMotions(r *motion.Resolver) Option {
	return func(e *Engine) {
		e.motions = r
	}
}

// WithObjects sets the text object resolver.
func WithObjects(r *textobject.Resolver) Option {
	return func(e *Engine) {
		e.objects = r
	}
}

// WithOptions sets the option provider.
func WithOptions(p config.Provider) Option {
	return func(e *Engine) {
		e.opts = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l.WithComponent("operator")
		}
	}
}

// New creates an engine over buf that writes regs and commits to tree.
func New(buf *buffer.Buffer, regs *register.Store, tree *history.Tree, opts ...Option) *Engine {
	e := &Engine{
		buf:  buf,
		regs: regs,
		tree: tree,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.opts == nil {
		e.opts = config.Static(config.Defaults())
	}
	if e.motions == nil {
		e.motions = motion.NewResolver(buf, e.opts, nil)
	}
	if e.objects == nil {
		e.objects = textobject.NewResolver(buf, e.motions)
	}
	e.rec = history.NewRecorder(buf)
	return e
}

// Close detaches the engine from its buffer.
func (e *Engine) Close() {
	e.rec.Close()
}

// LastChange returns the change dot-repeat would replay.
func (e *Engine) LastChange() (LastChange, bool) {
	if e.last == nil {
		return LastChange{}, false
	}
	return *e.last, true
}

// Inserting reports whether an insert is open.
func (e *Engine) Inserting() bool {
	return e.pending != nil
}

// span is a resolved target.
type span struct {
	reg buffer.Region

	// visual marks selection semantics: an inclusive end on a line end
	// takes the line break with it.
	visual bool

	// jump sends even a small delete to the numbered registers.
	jump bool
}

// Apply runs req as one undoable change. A Change returns with
// Result.Insert set and the undo group open; see EndInsert.
func (e *Engine) Apply(ctx context.Context, req Request) (Result, error) {
	if e.pending != nil {
		return Result{}, ErrInsertActive
	}
	if req.Op == None {
		return Result{}, fmt.Errorf("no operator: %w", ErrInvalidMotionForOperator)
	}
	sp, err := e.target(ctx, req)
	if err != nil {
		return Result{}, err
	}
	// The selection is measured before the buffer changes.
	ch := e.changeOf(req, sp)
	res, err := e.run(req, sp, ch)
	if err != nil {
		return Result{}, err
	}
	if req.Op.IsChange() && req.Op != Change {
		e.last = ch
	}
	return res, nil
}

func (e *Engine) changeOf(req Request, sp span) *LastChange {
	ch := &LastChange{
		Action:   ActOperator,
		Op:       req.Op,
		Target:   req.Target,
		Count:    req.Count,
		Register: req.Register,
	}
	if req.Target.Selection != nil {
		ch.Target = Target{Extent: e.extentOf(sp.reg)}
	}
	return ch
}

// target resolves what req acts on.
func (e *Engine) target(ctx context.Context, req Request) (span, error) {
	t := req.Target
	c := req.Cursor
	switch {
	case t.Selection != nil:
		return span{reg: t.Selection.Normalize(), visual: true}, nil
	case t.Extent != nil:
		return span{reg: e.fromExtent(*t.Extent, c), visual: true}, nil
	case t.Lines:
		last := min(c.Pos.Line+max(req.Count, 1)-1, e.buf.LineCount())
		return span{reg: buffer.LineRegion(c.Pos.Line, last)}, nil
	case t.Object != nil:
		reg, err := e.objects.Resolve(*t.Object, req.Count, c.Pos)
		if err != nil {
			return span{}, err
		}
		return span{reg: e.exclusive(reg.Normalize())}, nil
	case t.Motion != nil:
		m := *t.Motion
		if m.Kind.NeedsPattern() && m.Pattern == "" {
			if _, ok := e.motions.LastSearch(); !ok {
				return span{}, fmt.Errorf("%s%s without a pattern: %w", req.Op, m, ErrInvalidMotionForOperator)
			}
		}
		res, err := e.motions.Operand(ctx, m, req.Count, c, req.Op == Change)
		if err != nil {
			return span{}, err
		}
		return span{reg: e.exclusive(res.Region.Normalize()), jump: m.Kind.IsJump()}, nil
	}
	return span{}, fmt.Errorf("%s without a target: %w", req.Op, ErrInvalidMotionForOperator)
}

// exclusive applies the rule for an exclusive region that ends in column
// 1 of a later line: from within the indent it becomes linewise,
// otherwise its end moves back to the last character of the line before
// and it becomes inclusive.
func (e *Engine) exclusive(reg buffer.Region) buffer.Region {
	if reg.Wise != buffer.Charwise || reg.Inclusive || reg.End.Col != 1 || reg.End.Line <= reg.Start.Line {
		return reg
	}
	if reg.Start.Index() <= len(text.Indent(e.buf.Line(reg.Start.Line))) {
		return buffer.LineRegion(reg.Start.Line, reg.End.Line-1)
	}
	line := reg.End.Line - 1
	s := e.buf.Line(line)
	if s == "" {
		reg.End = buffer.Pos(line, 1)
		return reg
	}
	reg.End = buffer.Pos(line, text.Last(s)+1)
	reg.Inclusive = true
	return reg
}

// run executes the operator inside a transaction.
func (e *Engine) run(req Request, sp span, ch *LastChange) (Result, error) {
	if req.Op.IsChange() && !e.buf.Modifiable() {
		return Result{}, fmt.Errorf("%s: %w", req.Op, buffer.ErrNotModifiable)
	}
	if (req.Op == Join || req.Op == JoinRaw) && sp.reg.Wise == buffer.Blockwise {
		return Result{}, fmt.Errorf("%s over a block: %w", req.Op, ErrInvalidMotionForOperator)
	}

	t := e.begin()
	var (
		res   Result
		block *blockInsert
		err   error
	)
	switch req.Op {
	case Delete:
		res, err = e.delete(req, sp)
	case Change:
		res, block, err = e.change(req, sp)
	case Yank:
		res, err = e.yank(req, sp)
	case ShiftRight, ShiftLeft:
		res, err = e.shift(req, sp)
	case Reindent:
		res, err = e.reindent(sp)
	case Format:
		res, err = e.format(sp)
	case ToggleCase, Lower, Upper, Rot13:
		res, err = e.changeCase(req, sp)
	case Join, JoinRaw:
		res, err = e.join(req, sp)
	default:
		err = fmt.Errorf("%s: %w", req.Op, ErrInvalidMotionForOperator)
	}
	if err != nil {
		return Result{}, e.rollback(t, err)
	}

	if req.Op == Change {
		e.pending = &pendingInsert{
			tx:     t,
			before: req.Cursor.Pos,
			count:  1,
			block:  block,
			change: ch,
		}
		return res, nil
	}
	res.Seq = e.commit(t, req.Cursor.Pos, res.Cursor.Pos)
	e.log.Debug("applied", "op", req.Op.String(), "region", sp.reg.String(), "seq", res.Seq)
	return res, nil
}

// tx is an open transaction.
type tx struct {
	opened bool
	mark   int
	regs   register.Checkpoint
}

// begin opens an undo group unless one is already open, in which case
// the transaction nests inside it.
func (e *Engine) begin() tx {
	t := tx{regs: e.regs.Checkpoint()}
	if e.rec.Active() {
		t.mark = e.rec.Mark()
		return t
	}
	e.rec.Begin()
	t.opened = true
	return t
}

// rollback reverts the buffer and registers to the start of t and
// returns cause.
func (e *Engine) rollback(t tx, cause error) error {
	if err := e.rec.RollbackTo(e.buf, t.mark); err != nil {
		e.log.Error("rollback failed", "error", err)
	}
	if t.opened {
		e.rec.End()
	}
	e.regs.Restore(t.regs)
	e.log.Warn("rolled back", "error", cause)
	return cause
}

// commit closes t. A transaction that opened the group and changed the
// buffer commits one undo node and returns its sequence number.
func (e *Engine) commit(t tx, before, after buffer.Position) int {
	if !t.opened {
		return 0
	}
	ops := e.rec.End()
	if len(ops) == 0 {
		return 0
	}
	return e.tree.Commit(ops, before, after)
}

func (e *Engine) cfg(rule cursor.Rule) cursor.Config {
	return cursor.Config{
		Rule:       rule,
		VirtualAll: e.opts.VirtualEdit() == "all",
		TabStop:    e.opts.TabStop(),
	}
}

// at returns a fresh cursor at pos under rule.
func (e *Engine) at(pos buffer.Position, rule cursor.Rule) cursor.Cursor {
	return cursor.New(pos).MoveTo(e.buf, pos, e.cfg(rule))
}

func (e *Engine) firstNonBlank(line int) cursor.Cursor {
	line = cursor.ClampLine(e.buf, line)
	return e.at(buffer.Pos(line, text.FirstNonBlank(e.buf.Line(line))+1), cursor.RuleNormal)
}

// bounds returns a characterwise region as byte offsets: from (sl, si)
// up to but not including (el, ei).
func (e *Engine) bounds(sp span) (sl, si, el, ei int) {
	reg := sp.reg
	sl, el = reg.Start.Line, reg.End.Line
	si = min(max(reg.Start.Index(), 0), len(e.buf.Line(sl)))
	t := e.buf.Line(el)
	ei = min(max(reg.End.Index(), 0), len(t))
	if !reg.Inclusive {
		return sl, si, el, ei
	}
	if ei < len(t) {
		ei += text.CharLen(t, ei)
	} else if sp.visual && el < e.buf.LineCount() {
		el, ei = el+1, 0
	}
	return sl, si, el, ei
}

// blockCols returns the bytes of s covering display columns sv..ev.
func blockCols(s string, sv, ev, tabstop int) (from, to int) {
	from, _ = text.IndexAtVirtCol(s, sv, tabstop)
	if ev == buffer.MaxCol {
		return from, len(s)
	}
	to, _ = text.IndexAtVirtCol(s, ev, tabstop)
	if to < len(s) {
		to += text.CharLen(s, to)
	}
	return from, max(to, from)
}

// content extracts the text of a region as register content.
func (e *Engine) content(sp span) register.Content {
	reg := sp.reg
	switch reg.Wise {
	case buffer.Linewise:
		lines, _ := e.buf.GetLines(reg.FirstLine(), reg.LastLine())
		return register.LinesOf(lines...)
	case buffer.Blockwise:
		ts := e.opts.TabStop()
		var pieces []string
		width := 0
		for n := reg.FirstLine(); n <= reg.LastLine(); n++ {
			s := e.buf.Line(n)
			from, to := blockCols(s, reg.StartVCol, reg.EndVCol, ts)
			pieces = append(pieces, s[from:to])
			width = max(width, text.Width(s[from:to], ts))
		}
		if reg.EndVCol != buffer.MaxCol {
			width = reg.EndVCol - reg.StartVCol + 1
		}
		return register.Block(pieces, width)
	}

	if reg.IsEmpty() {
		return register.Content{Lines: []string{""}, Wise: buffer.Charwise}
	}
	sl, si, el, ei := e.bounds(sp)
	if sl == el {
		return register.Content{Lines: []string{e.buf.Line(sl)[si:ei]}, Wise: buffer.Charwise}
	}
	lines := []string{e.buf.Line(sl)[si:]}
	for n := sl + 1; n < el; n++ {
		lines = append(lines, e.buf.Line(n))
	}
	lines = append(lines, e.buf.Line(el)[:ei])
	return register.Content{Lines: lines, Wise: buffer.Charwise}
}

// remove deletes a region from the buffer.
func (e *Engine) remove(sp span) error {
	reg := sp.reg
	switch reg.Wise {
	case buffer.Linewise:
		_, err := e.buf.DeleteLines(reg.FirstLine(), reg.LastLine())
		return err
	case buffer.Blockwise:
		return e.mapBlock(reg, func(s string, from, to int) string {
			return s[:from] + s[to:]
		})
	}
	if reg.IsEmpty() {
		return nil
	}
	sl, si, el, ei := e.bounds(sp)
	_, err := e.buf.SetLines(sl, el, []string{e.buf.Line(sl)[:si] + e.buf.Line(el)[ei:]})
	return err
}

// mapBlock rewrites every line of a block region with f, which receives
// the bytes the block covers on that line.
func (e *Engine) mapBlock(reg buffer.Region, f func(s string, from, to int) string) error {
	first, last := reg.FirstLine(), reg.LastLine()
	lines, err := e.buf.GetLines(first, last)
	if err != nil {
		return err
	}
	ts := e.opts.TabStop()
	for i, s := range lines {
		from, to := blockCols(s, reg.StartVCol, reg.EndVCol, ts)
		lines[i] = f(s, from, to)
	}
	_, err = e.buf.SetLines(first, last, lines)
	return err
}

// mapText rewrites the text of a characterwise or linewise region with f,
// one line at a time.
func (e *Engine) mapText(sp span, f func(string) string) error {
	reg := sp.reg
	if reg.Wise == buffer.Blockwise {
		return e.mapBlock(reg, func(s string, from, to int) string {
			return s[:from] + f(s[from:to]) + s[to:]
		})
	}
	if reg.IsEmpty() {
		return nil
	}
	sl, si, el, ei := reg.FirstLine(), 0, reg.LastLine(), -1
	if reg.Wise == buffer.Charwise {
		sl, si, el, ei = e.bounds(sp)
	}
	lines, err := e.buf.GetLines(sl, el)
	if err != nil {
		return err
	}
	for i, s := range lines {
		lo, hi := 0, len(s)
		if i == 0 {
			lo = si
		}
		if i == len(lines)-1 && ei >= 0 {
			hi = ei
		}
		lines[i] = s[:lo] + f(s[lo:hi]) + s[hi:]
	}
	_, err = e.buf.SetLines(sl, el, lines)
	return err
}

// wholeLines reports whether only blanks precede a characterwise region
// on its first line and follow it on its last.
func (e *Engine) wholeLines(sp span) bool {
	sl, si, el, ei := e.bounds(sp)
	head := e.buf.Line(sl)[:si]
	tail := e.buf.Line(el)[ei:]
	return strings.Trim(head, " \t") == "" && strings.Trim(tail, " \t") == ""
}

func (e *Engine) delete(req Request, sp span) (Result, error) {
	// A multi-line characterwise delete over whole lines deletes the
	// lines, leaving no line of blanks behind.
	if sp.reg.Wise == buffer.Charwise && !sp.visual && sp.reg.LineCount() > 1 && e.wholeLines(sp) {
		sp.reg = buffer.LineRegion(sp.reg.FirstLine(), sp.reg.LastLine())
	}
	if sp.reg.IsEmpty() {
		return Result{Cursor: req.Cursor, Region: sp.reg}, nil
	}
	if err := e.regs.RecordDelete(req.Register, e.content(sp), sp.jump); err != nil {
		return Result{}, err
	}
	if err := e.remove(sp); err != nil {
		return Result{}, err
	}
	return Result{Cursor: e.afterDelete(req.Cursor, sp.reg), Region: sp.reg}, nil
}

func (e *Engine) afterDelete(c cursor.Cursor, reg buffer.Region) cursor.Cursor {
	switch reg.Wise {
	case buffer.Linewise:
		return e.firstNonBlank(min(reg.FirstLine(), e.buf.LineCount()))
	case buffer.Blockwise:
		return e.blockStart(reg, cursor.RuleNormal)
	}
	return c.MoveTo(e.buf, reg.Start, e.cfg(cursor.RuleNormal))
}

// blockStart returns a cursor at the left edge of a block on its first
// line.
func (e *Engine) blockStart(reg buffer.Region, rule cursor.Rule) cursor.Cursor {
	line := reg.FirstLine()
	idx, _ := text.IndexAtVirtCol(e.buf.Line(line), reg.StartVCol, e.opts.TabStop())
	return e.at(buffer.Pos(line, idx+1), rule)
}

func (e *Engine) change(req Request, sp span) (Result, *blockInsert, error) {
	reg := sp.reg
	if !reg.IsEmpty() {
		if err := e.regs.RecordDelete(req.Register, e.content(sp), sp.jump); err != nil {
			return Result{}, nil, err
		}
	}

	switch reg.Wise {
	case buffer.Linewise:
		if _, err := e.buf.SetLines(reg.FirstLine(), reg.LastLine(), []string{""}); err != nil {
			return Result{}, nil, err
		}
		c := e.at(buffer.Pos(reg.FirstLine(), 1), cursor.RuleInsert)
		return Result{Cursor: c, Region: reg, Insert: true}, nil, nil
	case buffer.Blockwise:
		block := &blockInsert{first: reg.FirstLine(), last: reg.LastLine(), vcol: reg.StartVCol}
		ts := e.opts.TabStop()
		for n := block.first; n <= block.last; n++ {
			block.reach = append(block.reach, text.Width(e.buf.Line(n), ts) > reg.StartVCol)
		}
		if err := e.remove(sp); err != nil {
			return Result{}, nil, err
		}
		return Result{Cursor: e.blockStart(reg, cursor.RuleInsert), Region: reg, Insert: true}, block, nil
	}
	if err := e.remove(sp); err != nil {
		return Result{}, nil, err
	}
	c := e.at(reg.Start, cursor.RuleInsert)
	return Result{Cursor: c, Region: reg, Insert: true}, nil, nil
}

func (e *Engine) yank(req Request, sp span) (Result, error) {
	reg := sp.reg
	if !reg.IsEmpty() {
		if err := e.regs.RecordYank(req.Register, e.content(sp)); err != nil {
			return Result{}, err
		}
	}
	c := req.Cursor
	switch reg.Wise {
	case buffer.Linewise:
		c = c.MoveVertical(e.buf, reg.FirstLine(), e.cfg(cursor.RuleNormal))
	case buffer.Blockwise:
		c = e.blockStart(reg, cursor.RuleNormal)
	default:
		c = c.MoveTo(e.buf, reg.Start, e.cfg(cursor.RuleNormal))
	}
	return Result{Cursor: c, Region: reg}, nil
}

// extentOf measures a selection for dot-repeat.
func (e *Engine) extentOf(reg buffer.Region) *Extent {
	x := &Extent{Wise: reg.Wise, Lines: reg.LineCount()}
	switch reg.Wise {
	case buffer.Blockwise:
		if reg.EndVCol == buffer.MaxCol {
			x.ToEOL = true
		} else {
			x.Width = reg.EndVCol - reg.StartVCol + 1
		}
	case buffer.Charwise:
		if x.Lines > 1 {
			x.EndCol = reg.End.Col
			break
		}
		s := e.buf.Line(reg.Start.Line)
		from := min(reg.Start.Index(), len(s))
		to := min(reg.End.Index(), len(s))
		if to < len(s) {
			to = text.Next(s, to)
		}
		x.Chars = max(text.Count(s[from:max(to, from)]), 1)
	}
	return x
}

// fromExtent lays an extent out from the cursor.
func (e *Engine) fromExtent(x Extent, c cursor.Cursor) buffer.Region {
	line := c.Pos.Line
	last := min(line+max(x.Lines, 1)-1, e.buf.LineCount())
	switch x.Wise {
	case buffer.Linewise:
		return buffer.LineRegion(line, last)
	case buffer.Blockwise:
		sv := c.VirtCol(e.buf, e.opts.TabStop())
		ev := sv + max(x.Width, 1) - 1
		if x.ToEOL {
			ev = buffer.MaxCol
		}
		return buffer.BlockRegion(buffer.Pos(line, 1), buffer.Pos(last, 1), sv, ev)
	}
	if x.Lines > 1 {
		return buffer.CharRegion(c.Pos, buffer.Pos(last, max(x.EndCol, 1)), true)
	}
	s := e.buf.Line(line)
	i := min(c.Pos.Index(), len(s))
	for k := 1; k < x.Chars && text.Next(s, i) < len(s); k++ {
		i = text.Next(s, i)
	}
	return buffer.CharRegion(c.Pos, buffer.Pos(line, i+1), true)
}
