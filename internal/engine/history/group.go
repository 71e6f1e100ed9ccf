package history

import (
	"sync"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Recorder collects the changes a buffer reports while it is active, so
// that several edits can be committed as one node.
type Recorder struct {
	mu     sync.Mutex
	ops    []Operation
	active bool
	unsub  func()
}

// NewRecorder subscribes a recorder to buf. Call Close to detach it.
func NewRecorder(buf *buffer.Buffer) *Recorder {
	r := &Recorder{}
	r.unsub = buf.Subscribe(r.observe)
	return r
}

func (r *Recorder) observe(c buffer.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		r.ops = append(r.ops, FromChange(c))
	}
}

// Begin starts collecting. Nested calls are ignored.
func (r *Recorder) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return
	}
	r.active = true
	r.ops = nil
}

// Active reports whether the recorder is collecting.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// End stops collecting and returns the operations in the order they
// happened.
func (r *Recorder) End() []Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := r.ops
	r.ops = nil
	r.active = false
	return ops
}

// Rollback stops collecting and reverts every collected operation on t,
// newest first.
func (r *Recorder) Rollback(t Target) error {
	ops := r.End()
	for i := len(ops) - 1; i >= 0; i-- {
		if err := ops[i].Invert().Apply(t); err != nil {
			return err
		}
	}
	return nil
}

// Mark returns the number of operations collected so far, for RollbackTo.
func (r *Recorder) Mark() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

// RollbackTo reverts the operations collected after mark, newest first,
// and keeps collecting. Reverts are not themselves collected.
func (r *Recorder) RollbackTo(t Target, mark int) error {
	r.mu.Lock()
	mark = min(max(mark, 0), len(r.ops))
	ops := append([]Operation(nil), r.ops[mark:]...)
	r.ops = r.ops[:mark]
	active := r.active
	r.active = false
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.active = active
		r.mu.Unlock()
	}()
	for i := len(ops) - 1; i >= 0; i-- {
		if err := ops[i].Invert().Apply(t); err != nil {
			return err
		}
	}
	return nil
}

// Close detaches the recorder from its buffer.
func (r *Recorder) Close() {
	if r.unsub != nil {
		r.unsub()
	}
}
