package register

import (
	"fmt"
	"sync"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/logging"
)

// ClipboardProvider abstracts system clipboard access.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// Evaluator computes the value of the expression register.
type Evaluator interface {
	Eval(expr string) (string, error)
}

// Store manages all registers.
type Store struct {
	mu        sync.RWMutex
	registers map[rune]Content

	clipboard ClipboardProvider
	evaluator Evaluator
	log       *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClipboard wires the + and * registers to a clipboard.
func WithClipboard(p ClipboardProvider) Option {
	return func(s *Store) {
		s.clipboard = p
	}
}

// WithEvaluator wires the = register to an expression evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(s *Store) {
		s.evaluator = e
	}
}

// WithLogger sets the logger for clipboard failures.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates an empty register store.
func NewStore(opts ...Option) *Store {
	s := &Store{registers: make(map[rune]Content), log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the content of a register. Unknown and empty registers
// read as empty content. The = register reads as its last expression;
// Evaluate computes a value.
func (s *Store) Read(name rune) Content {
	name = lower(name)

	switch KindOf(name) {
	case KindInvalid, KindBlackHole:
		return Content{}
	case KindClipboard:
		s.mu.RLock()
		cb, local := s.clipboard, s.registers[name]
		s.mu.RUnlock()
		if cb == nil {
			return local.Clone()
		}
		txt, err := cb.Get()
		if err != nil {
			s.log.Debug("clipboard read failed", "register", string(name), "error", err)
			return local.Clone()
		}
		// The clipboard loses block shape; keep the local copy when the
		// text still matches it.
		if txt == local.String() {
			return local.Clone()
		}
		return FromText(txt)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registers[name].Clone()
}

// Write stores content in a register. Uppercase names append to the
// lowercase register. Writes to the black hole are discarded.
func (s *Store) Write(name rune, c Content) error {
	switch KindOf(name) {
	case KindInvalid:
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	case KindReadOnly:
		return fmt.Errorf("%w: %q", ErrReadOnlyRegister, name)
	case KindBlackHole:
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(name, c)
	return nil
}

// put stores without validation. The caller holds mu.
func (s *Store) put(name rune, c Content) {
	if KindOf(name) == KindAppend {
		name = lower(name)
		c = s.registers[name].Append(c)
	}
	s.registers[name] = c.Clone()

	if KindOf(name) == KindClipboard && s.clipboard != nil {
		if err := s.clipboard.Set(c.String()); err != nil {
			s.log.Debug("clipboard write failed", "register", string(name), "error", err)
		}
	}
}

// Provide updates a read-only register. Only the editor core calls this.
func (s *Store) Provide(name rune, c Content) {
	if KindOf(name) != KindReadOnly {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers[name] = c.Clone()
}

// RecordYank stores yanked text. Without an explicit register the text
// goes to 0 and the unnamed register; with one, to that register and the
// unnamed register.
func (s *Store) RecordYank(name rune, c Content) error {
	if err := s.checkTarget(name); err != nil {
		return err
	}
	if name == '_' {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == 0 || name == Unnamed {
		s.put('0', c)
		s.registers[Unnamed] = c.Clone()
		return nil
	}
	s.put(name, c)
	s.registers[Unnamed] = s.registers[lower(name)].Clone()
	return nil
}

// RecordDelete stores deleted or changed text.
//
// A delete that is linewise, spans more than one line, or uses one of the
// motions that always fill register 1 (forceNumbered) shifts 1-9 and lands
// in 1. Smaller deletes without an explicit register go to -. An explicit
// register also receives the text, and the unnamed register always points
// at the result.
func (s *Store) RecordDelete(name rune, c Content, forceNumbered bool) error {
	if err := s.checkTarget(name); err != nil {
		return err
	}
	if name == '_' {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	explicit := name != 0 && name != Unnamed
	if explicit {
		s.put(name, c)
	}

	big := c.Wise == buffer.Linewise || len(c.Lines) > 1 || forceNumbered
	if big {
		s.shift()
		s.registers['1'] = c.Clone()
	} else if !explicit {
		s.registers['-'] = c.Clone()
	}

	if explicit {
		s.registers[Unnamed] = s.registers[lower(name)].Clone()
	} else {
		s.registers[Unnamed] = c.Clone()
	}
	return nil
}

// shift moves 1-8 down to 2-9; the old 9 falls off. The caller holds mu.
func (s *Store) shift() {
	for i := '9'; i > '1'; i-- {
		if prev, ok := s.registers[i-1]; ok {
			s.registers[i] = prev
		} else {
			delete(s.registers, i)
		}
	}
}

func (s *Store) checkTarget(name rune) error {
	if name == 0 {
		return nil
	}
	switch KindOf(name) {
	case KindInvalid:
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	case KindReadOnly:
		return fmt.Errorf("%w: %q", ErrReadOnlyRegister, name)
	}
	return nil
}

// Evaluate runs expr through the expression evaluator and remembers it as
// the = register.
func (s *Store) Evaluate(expr string) (Content, error) {
	s.mu.Lock()
	eval := s.evaluator
	if eval != nil {
		s.registers['='] = Chars(expr)
	}
	s.mu.Unlock()

	if eval == nil {
		return Content{}, ErrNoEvaluator
	}
	out, err := eval.Eval(expr)
	if err != nil {
		return Content{}, fmt.Errorf("expression register: %w", err)
	}
	return FromText(out), nil
}

// Checkpoint is a saved copy of every register.
type Checkpoint struct {
	registers map[rune]Content
}

// Checkpoint captures the store so a failed operation can be undone.
func (s *Store) Checkpoint() Checkpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := Checkpoint{registers: make(map[rune]Content, len(s.registers))}
	for k, v := range s.registers {
		cp.registers[k] = v.Clone()
	}
	return cp
}

// Restore returns the store to a checkpoint.
func (s *Store) Restore(cp Checkpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registers = make(map[rune]Content, len(cp.registers))
	for k, v := range cp.registers {
		s.registers[k] = v.Clone()
	}
}

// Names returns the names of every non-empty register.
func (s *Store) Names() []rune {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := `"0123456789abcdefghijklmnopqrstuvwxyz-.:%#/=*+`
	var out []rune
	for _, r := range order {
		if c, ok := s.registers[r]; ok && !c.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}
