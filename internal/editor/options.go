package editor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/event"
	"github.com/dshills/vicore/internal/logging"
	"github.com/dshills/vicore/internal/operator"
)

// Editor is the view of a session an Ex handler works through. Its
// methods run inside the command that invoked the handler.
type Editor interface {
	Lines() []string
	Cursor() buffer.Position
	ApplyRange(ctx context.Context, op operator.Op, reg buffer.Region) error
	ReplaceLines(first, last int, lines []string) error

	// LastSelection is the region of the last Visual selection, which
	// the range '<,'> names.
	LastSelection() (buffer.Region, bool)
}

// ExHandler executes a : command line.
type ExHandler func(ctx context.Context, ed Editor, cmdline string) error

// Option configures a Session.
type Option func(*settings)

type settings struct {
	id        uuid.UUID
	opts      config.Provider
	log       *logging.Logger
	sink      event.Sink
	ex        ExHandler
	clipboard register.ClipboardProvider
	evaluator register.Evaluator
	clock     func() time.Time
}

// WithID sets the session identity. New sessions get a random one.
func WithID(id uuid.UUID) Option {
	return func(s *settings) {
		s.id = id
	}
}

// WithOptions sets the option provider.
func WithOptions(p config.Provider) Option {
	return func(s *settings) {
		if p != nil {
			s.opts = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSink sets where change notifications go.
func WithSink(sink event.Sink) Option {
	return func(s *settings) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithExHandler installs the handler for : commands.
func WithExHandler(h ExHandler) Option {
	return func(s *settings) {
		s.ex = h
	}
}

// WithClipboard wires the * and + registers to a clipboard.
func WithClipboard(p register.ClipboardProvider) Option {
	return func(s *settings) {
		s.clipboard = p
	}
}

// WithEvaluator wires the = register to an expression evaluator.
func WithEvaluator(e register.Evaluator) Option {
	return func(s *settings) {
		s.evaluator = e
	}
}

// WithClock replaces time.Now in the undo tree.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.clock = now
	}
}
