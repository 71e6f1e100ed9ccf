// Package event carries change notifications from an editing session to a
// presentation layer.
//
// The session reports four kinds of event:
//
//	BufferChanged   - lines were replaced; carries the range and new lines
//	ModeChanged     - the active mode changed; carries both mode codes
//	CursorMoved     - the cursor came to rest somewhere new
//	Notice          - a command failed; carries the error
//
// A Sink receives events. Delivery is best-effort: a Sink must never block
// the session, so a slow consumer loses events instead of stalling input.
//
// # Bus
//
// Bus is the standard Sink. Send queues the event on a bounded channel and
// returns at once; a single goroutine drains the queue and fans each event
// out to the subscribed handlers in order. When the queue is full the event
// is dropped and counted in Stats.
//
//	bus := event.NewBus(event.WithQueueSize(256))
//	if err := bus.Start(); err != nil {
//	    return err
//	}
//	defer bus.Stop(context.Background())
//
//	unsub := bus.Subscribe(func(e event.Event) {
//	    redraw(e)
//	}, event.BufferChanged, event.CursorMoved)
//	defer unsub()
//
// # Thread Safety
//
// Bus is safe for concurrent use. Handlers run on the bus goroutine, one at
// a time; a panicking handler is recovered and reported to the panic
// handler without stopping delivery.
package event
