package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrAtOldestChange = errors.New("already at oldest change")
	ErrAtNewestChange = errors.New("already at newest change")
	ErrUnknownChange  = errors.New("undo number not found")
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Node is one state in the undo tree. Node 0 is the root.
type Node struct {
	Seq      int
	Parent   int // -1 for the root
	Children []int

	Ops          []Operation
	CursorBefore Position
	CursorAfter  Position
	Time         time.Time
}

// Tree is a branching undo history stored as an arena of nodes indexed by
// sequence number.
type Tree struct {
	mu    sync.RWMutex
	nodes []Node
	cur   int
	saved int
	now   func() time.Time
}

// Option configures a Tree.
type Option func(*Tree)

// WithClock replaces time.Now, for deterministic time travel in tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tree) {
		t.now = now
	}
}

// New creates a tree holding only the root node.
func New(opts ...Option) *Tree {
	t := &Tree{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.nodes = []Node{{Seq: 0, Parent: -1, Time: t.now()}}
	return t
}

// Commit records ops as a new child of the current node and makes it
// current. It returns the new sequence number, or the current one when
// ops is empty.
func (t *Tree) Commit(ops []Operation, before, after Position) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(ops) == 0 {
		return t.cur
	}

	seq := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Seq:          seq,
		Parent:       t.cur,
		Ops:          append([]Operation(nil), ops...),
		CursorBefore: before,
		CursorAfter:  after,
		Time:         t.now(),
	})
	t.nodes[t.cur].Children = append(t.nodes[t.cur].Children, seq)
	t.cur = seq
	return seq
}

// Undo reverts the current node and moves to its parent. It returns the
// cursor recorded before the undone change.
func (t *Tree) Undo(target Target) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur == 0 {
		return Position{}, ErrAtOldestChange
	}
	n := t.nodes[t.cur]
	if err := revert(target, n); err != nil {
		return Position{}, err
	}
	t.cur = n.Parent
	return n.CursorBefore, nil
}

// Redo replays the most recently created child of the current node.
func (t *Tree) Redo(target Target) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kids := t.nodes[t.cur].Children
	if len(kids) == 0 {
		return Position{}, ErrAtNewestChange
	}
	n := t.nodes[kids[len(kids)-1]]
	if err := replay(target, n); err != nil {
		return Position{}, err
	}
	t.cur = n.Seq
	return n.CursorAfter, nil
}

// Goto moves to the state identified by seq, reverting up to the common
// ancestor and replaying down to the target. When the target is an
// ancestor of the current node the cursor is the one recorded before the
// last reverted change; otherwise it is the cursor after the target change.
func (t *Tree) Goto(target Target, seq int) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gotoLocked(target, seq)
}

func (t *Tree) gotoLocked(target Target, seq int) (Position, error) {
	if seq < 0 || seq >= len(t.nodes) {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownChange, seq)
	}
	if seq == t.cur {
		return t.nodes[seq].CursorAfter, nil
	}

	start := t.cur
	up, down := t.path(t.cur, seq)

	var pos Position
	for i, s := range up {
		n := t.nodes[s]
		if err := revert(target, n); err != nil {
			return t.unwind(target, start, up[:i], nil, err)
		}
		t.cur = n.Parent
		pos = n.CursorBefore
	}
	for i, s := range down {
		n := t.nodes[s]
		if err := replay(target, n); err != nil {
			return t.unwind(target, start, up, down[:i], err)
		}
		t.cur = s
		pos = n.CursorAfter
	}
	return pos, nil
}

// unwind undoes the steps of a failed Goto so the target and the tree are
// back at start. If that fails too the tree stays at the node reached and
// its cursor is returned with both errors.
func (t *Tree) unwind(target Target, start int, reverted, replayed []int, cause error) (Position, error) {
	for i := len(replayed) - 1; i >= 0; i-- {
		n := t.nodes[replayed[i]]
		if err := revert(target, n); err != nil {
			return t.nodes[t.cur].CursorAfter, errors.Join(cause, err)
		}
		t.cur = n.Parent
	}
	for i := len(reverted) - 1; i >= 0; i-- {
		n := t.nodes[reverted[i]]
		if err := replay(target, n); err != nil {
			return t.nodes[t.cur].CursorAfter, errors.Join(cause, err)
		}
		t.cur = n.Seq
	}
	t.cur = start
	return Position{}, cause
}

// path returns the nodes to revert (from, walking up) and the nodes to
// replay (walking down to to) between two nodes.
func (t *Tree) path(from, to int) (up, down []int) {
	depth := func(s int) int {
		d := 0
		for ; t.nodes[s].Parent >= 0; s = t.nodes[s].Parent {
			d++
		}
		return d
	}

	a, b := from, to
	da, db := depth(a), depth(b)
	for da > db {
		up = append(up, a)
		a = t.nodes[a].Parent
		da--
	}
	for db > da {
		down = append(down, b)
		b = t.nodes[b].Parent
		db--
	}
	for a != b {
		up = append(up, a)
		down = append(down, b)
		a, b = t.nodes[a].Parent, t.nodes[b].Parent
	}

	for i, j := 0, len(down)-1; i < j; i, j = i+1, j-1 {
		down[i], down[j] = down[j], down[i]
	}
	return up, down
}

// StepBack moves to sequence current-1 (g-).
func (t *Tree) StepBack(target Target) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur == 0 {
		return Position{}, ErrAtOldestChange
	}
	return t.gotoLocked(target, t.cur-1)
}

// StepForward moves to sequence current+1 (g+).
func (t *Tree) StepForward(target Target) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur+1 >= len(t.nodes) {
		return Position{}, ErrAtNewestChange
	}
	return t.gotoLocked(target, t.cur+1)
}

// Earlier travels back in time by d from the current state (:earlier).
func (t *Tree) Earlier(target Target, d time.Duration) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur == 0 {
		return Position{}, ErrAtOldestChange
	}
	limit := t.nodes[t.cur].Time.Add(-d)
	dest := 0
	for s := t.cur - 1; s > 0; s-- {
		if !t.nodes[s].Time.After(limit) {
			dest = s
			break
		}
	}
	return t.gotoLocked(target, dest)
}

// Later travels forward in time by d from the current state (:later).
func (t *Tree) Later(target Target, d time.Duration) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur+1 >= len(t.nodes) {
		return Position{}, ErrAtNewestChange
	}
	limit := t.nodes[t.cur].Time.Add(d)
	dest := t.cur + 1
	for s := len(t.nodes) - 1; s > t.cur; s-- {
		if !t.nodes[s].Time.After(limit) {
			dest = s
			break
		}
	}
	return t.gotoLocked(target, dest)
}

// revert undoes every operation of n, newest first. A node is reverted
// whole or not at all.
func revert(target Target, n Node) error {
	for i := len(n.Ops) - 1; i >= 0; i-- {
		if err := n.Ops[i].Invert().Apply(target); err != nil {
			for j := i + 1; j < len(n.Ops); j++ {
				_ = n.Ops[j].Apply(target)
			}
			return fmt.Errorf("undo %d: %w", n.Seq, err)
		}
	}
	return nil
}

// replay reapplies every operation of n in order, whole or not at all.
func replay(target Target, n Node) error {
	for i, op := range n.Ops {
		if err := op.Apply(target); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = n.Ops[j].Invert().Apply(target)
			}
			return fmt.Errorf("redo %d: %w", n.Seq, err)
		}
	}
	return nil
}

// Inspection

// Current returns the sequence number of the current state.
func (t *Tree) Current() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cur
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Node returns a copy of the node with the given sequence number.
func (t *Tree) Node(seq int) (Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if seq < 0 || seq >= len(t.nodes) {
		return Node{}, false
	}
	return cloneNode(t.nodes[seq]), true
}

// Nodes returns copies of every node in sequence order.
func (t *Tree) Nodes() []Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Node, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n Node) Node {
	n.Children = append([]int(nil), n.Children...)
	ops := make([]Operation, len(n.Ops))
	for i, op := range n.Ops {
		ops[i] = Operation{
			Start:    op.Start,
			OldLines: append([]string(nil), op.OldLines...),
			NewLines: append([]string(nil), op.NewLines...),
		}
	}
	n.Ops = ops
	return n
}

// UndoCount returns how many undo steps lead back to the root.
func (t *Tree) UndoCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d := 0
	for s := t.cur; t.nodes[s].Parent >= 0; s = t.nodes[s].Parent {
		d++
	}
	return d
}

// RedoCount returns how many redo steps follow the newest branch.
func (t *Tree) RedoCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d := 0
	for s := t.cur; len(t.nodes[s].Children) > 0; {
		kids := t.nodes[s].Children
		s = kids[len(kids)-1]
		d++
	}
	return d
}

// MarkSaved records the current state as the saved one.
func (t *Tree) MarkSaved() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saved = t.cur
}

// Saved returns the sequence number of the saved state.
func (t *Tree) Saved() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.saved
}

// AtSavePoint reports whether the current state is the saved one.
func (t *Tree) AtSavePoint() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cur == t.saved
}

// Restore replaces the tree contents, for importing persisted state.
// The nodes must form a valid tree rooted at index 0: every parent comes
// before its child, and every non-root node is listed exactly once in its
// parent's children.
func (t *Tree) Restore(nodes []Node, cur, saved int) error {
	if err := validate(nodes); err != nil {
		return err
	}
	if cur < 0 || cur >= len(nodes) || saved < 0 || saved >= len(nodes) {
		return fmt.Errorf("%w: current %d", ErrUnknownChange, cur)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes = make([]Node, len(nodes))
	for i, n := range nodes {
		t.nodes[i] = cloneNode(n)
	}
	t.cur, t.saved = cur, saved
	return nil
}

func validate(nodes []Node) error {
	if len(nodes) == 0 || nodes[0].Parent != -1 {
		return errors.New("history: missing root node")
	}
	listed := make([]int, len(nodes))
	for i, n := range nodes {
		if n.Seq != i {
			return fmt.Errorf("history: node %d has sequence %d", i, n.Seq)
		}
		if i > 0 && (n.Parent < 0 || n.Parent >= i) {
			return fmt.Errorf("history: node %d has invalid parent %d", i, n.Parent)
		}
		for _, c := range n.Children {
			if c <= 0 || c >= len(nodes) || nodes[c].Parent != i {
				return fmt.Errorf("history: node %d lists child %d", i, c)
			}
			listed[c]++
		}
	}
	for i := 1; i < len(nodes); i++ {
		if listed[i] != 1 {
			return fmt.Errorf("history: node %d is listed %d times by its parent", i, listed[i])
		}
	}
	return nil
}
