// Package app wires an editing session to its collaborators: options
// loaded from disk, the event bus, the expression evaluator, the system
// clipboard and a file. It drives the session from a stream of keys.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/editor"
	"github.com/dshills/vicore/internal/event"
	"github.com/dshills/vicore/internal/expr"
	"github.com/dshills/vicore/internal/logging"
)

// Application owns one session and the components around it.
type Application struct {
	mu sync.RWMutex

	log       *logging.Logger
	options   *config.Store
	watcher   *config.Watcher
	eventBus  *event.Bus
	evaluator *expr.Evaluator
	session   *editor.Session
	document  *Document
	metrics   *Metrics

	// unsub removes the application's own bus subscriptions.
	unsub []func()

	running atomic.Bool
	closed  atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the options file. Missing files are skipped.
	ConfigPath string

	// Watch reloads the options file when it changes.
	Watch bool

	// File is the file to edit. Empty edits Lines in a scratch buffer.
	File  string
	Lines []string

	// ReadOnly makes the buffer unmodifiable.
	ReadOnly bool

	// Clipboard connects the * and + registers to the system clipboard.
	Clipboard bool

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string

	// LogOutput receives log lines. Nil discards them.
	LogOutput io.Writer

	// ExprTimeout bounds one evaluation of the = register.
	ExprTimeout time.Duration
}

// New creates an application and starts its components.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Session returns the editing session.
func (app *Application) Session() *editor.Session {
	return app.session
}

// Document returns the file being edited.
func (app *Application) Document() *Document {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.document
}

// EventBus returns the bus the session reports to.
func (app *Application) EventBus() *event.Bus {
	return app.eventBus
}

// Options returns the live options.
func (app *Application) Options() *config.Store {
	return app.options
}

// Metrics returns the application counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown stops every component in reverse start order. It is safe to
// call more than once.
func (app *Application) Shutdown(ctx context.Context) error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	var errs []error
	for _, fn := range app.unsub {
		fn()
	}
	if app.session != nil {
		app.session.Close()
	}
	if app.evaluator != nil {
		app.evaluator.Close()
	}
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.eventBus != nil && app.eventBus.IsRunning() {
		if err := app.eventBus.Stop(ctx); err != nil {
			errs = append(errs, ErrShutdownTimeout)
		}
	}
	app.log.Debug("shutdown complete")
	return errors.Join(errs...)
}
