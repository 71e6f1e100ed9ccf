package app

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/input/key"
)

// Run feeds keys to the session until the channel closes, ctx ends or a
// command asks to quit. Command errors are reported by the session and do
// not stop the loop.
func (app *Application) Run(ctx context.Context, keys <-chan key.Event) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-keys:
			if !ok {
				return nil
			}
			if err := app.handleKey(ctx, e); errors.Is(err, ErrQuit) {
				return nil
			}
		}
	}
}

// RunKeys feeds a key notation string, such as "dw" or "ihi<Esc>", and
// returns the errors of the commands it ran.
func (app *Application) RunKeys(ctx context.Context, keys string) error {
	events, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range events {
		err := app.handleKey(ctx, e)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunScreen reads key events from a terminal screen and runs them. The
// screen must already be initialized; it is not drawn on.
func (app *Application) RunScreen(ctx context.Context, screen tcell.Screen) error {
	keys := make(chan key.Event)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer close(keys)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			kev, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			select {
			case keys <- key.FromTcell(kev):
			case <-ctx.Done():
				return
			}
		}
	}()
	return app.Run(ctx, keys)
}

func (app *Application) handleKey(ctx context.Context, e key.Event) error {
	start := time.Now()
	err := app.session.Feed(ctx, e)
	app.metrics.RecordKey(time.Since(start), err)
	return err
}
