package app

import (
	"context"
	"io"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/editor"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/event"
	"github.com/dshills/vicore/internal/expr"
	"github.com/dshills/vicore/internal/logging"
)

// bootstrapper starts components in dependency order and stops the ones
// already started when a later one fails.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 6),
	}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initLogger,
		b.initConfig,
		b.initEventBus,
		b.initEvaluator,
		b.initDocument,
		b.initMetrics,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.log.Debug("bootstrap complete", "components", len(b.initOrder))
	return nil
}

func (b *bootstrapper) initLogger() error {
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	cfg := logging.DefaultConfig()
	cfg.Output = out
	if b.opts.LogLevel != "" {
		cfg.Level = logging.ParseLevel(b.opts.LogLevel)
	}
	b.app.log = logging.New(cfg)
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initConfig loads the options file and the environment, and starts
// watching the file when asked.
func (b *bootstrapper) initConfig() error {
	o, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.options = config.NewStore(o)
	b.initOrder = append(b.initOrder, "config")

	if !b.opts.Watch || b.opts.ConfigPath == "" {
		return nil
	}
	log := b.app.log.WithComponent("config")
	w, err := config.Watch(context.Background(), b.opts.ConfigPath, b.app.options,
		config.WithErrorHandler(func(err error) {
			log.Warn("reloading options failed", "path", b.opts.ConfigPath, "error", err)
		}))
	if err != nil {
		return &InitError{Component: "config watcher", Err: err}
	}
	b.app.watcher = w
	b.app.unsub = append(b.app.unsub, b.app.options.Subscribe(func(old, new config.Options) {
		log.Info("options reloaded", "tabstop", new.Tabstop, "shiftwidth", new.Shiftwidth)
	}))
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

func (b *bootstrapper) initEventBus() error {
	log := b.app.log.WithComponent("events")
	b.app.eventBus = event.NewBus(event.WithPanicHandler(func(err error) {
		log.Error("event handler panicked", "error", err)
	}))
	if err := b.app.eventBus.Start(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}
	b.initOrder = append(b.initOrder, "eventBus")
	return nil
}

func (b *bootstrapper) initEvaluator() error {
	var opts []expr.Option
	if b.opts.ExprTimeout > 0 {
		opts = append(opts, expr.WithTimeout(b.opts.ExprTimeout))
	}
	b.app.evaluator = expr.New(opts...)
	b.initOrder = append(b.initOrder, "evaluator")
	return nil
}

// initDocument reads the file and starts the session over it.
func (b *bootstrapper) initDocument() error {
	doc := NewScratchDocument()
	lines := b.opts.Lines
	if b.opts.File != "" {
		var err error
		if doc, lines, err = ReadDocument(b.opts.File); err != nil {
			return &InitError{Component: "document", Err: err}
		}
	}
	b.app.document = doc

	sopts := []editor.Option{
		editor.WithOptions(b.app.options),
		editor.WithLogger(b.app.log),
		editor.WithSink(b.app.eventBus),
		editor.WithEvaluator(b.app.evaluator),
		editor.WithExHandler(b.app.exCommand),
	}
	if b.opts.Clipboard {
		clip := register.SystemClipboard{}
		if clip.Available() {
			sopts = append(sopts, editor.WithClipboard(clip))
		} else {
			b.app.log.Warn("system clipboard unavailable")
		}
	}
	b.app.session = editor.New(lines, sopts...)
	if b.opts.ReadOnly {
		b.app.session.SetModifiable(false)
	}
	b.app.log.Info("editing", "file", doc.Name, "session", b.app.session.ID().String())
	b.initOrder = append(b.initOrder, "session")
	return nil
}

func (b *bootstrapper) initMetrics() error {
	b.app.unsub = append(b.app.unsub, b.app.eventBus.Subscribe(b.app.metrics.RecordEvent))
	b.initOrder = append(b.initOrder, "metrics")
	return nil
}

// cleanup stops started components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "session":
			b.app.session.Close()
		case "evaluator":
			b.app.evaluator.Close()
		case "eventBus":
			_ = b.app.eventBus.Stop(context.Background())
		case "watcher":
			_ = b.app.watcher.Close()
		}
	}
	for _, fn := range b.app.unsub {
		fn()
	}
	b.app.unsub = nil
}
