package event

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handler receives delivered events.
type Handler func(e Event)

// Stats counts the bus's traffic.
type Stats struct {
	Sent        uint64
	Delivered   uint64
	Dropped     uint64
	Panics      uint64
	Subscribers int
	QueueDepth  int
}

type subscription struct {
	handler Handler
	kinds   map[Kind]bool
}

func (s *subscription) wants(k Kind) bool {
	return len(s.kinds) == 0 || s.kinds[k]
}

// Bus is a lossy asynchronous Sink that fans events out to subscribers.
type Bus struct {
	config busConfig

	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64

	queue chan Event
	stop  chan struct{}
	done  chan struct{}

	running atomic.Bool

	sent      atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates a stopped bus.
func NewBus(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Bus{
		config: config,
		subs:   make(map[uint64]*subscription),
	}
}

// Start starts the delivery goroutine.
func (b *Bus) Start() error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrBusAlreadyRunning
	}
	b.mu.Lock()
	b.queue = make(chan Event, b.config.queueSize)
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	queue, stop, done := b.queue, b.stop, b.done
	b.mu.Unlock()

	go b.run(queue, stop, done)
	return nil
}

// Stop stops the bus after delivering what is already queued, or when ctx
// ends, whichever comes first.
func (b *Bus) Stop(ctx context.Context) error {
	if !b.running.CompareAndSwap(true, false) {
		return ErrBusNotRunning
	}
	b.mu.Lock()
	stop, done := b.stop, b.done
	b.mu.Unlock()

	close(stop)
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ErrShutdownTimeout
	}
}

// IsRunning returns true if the bus is running.
func (b *Bus) IsRunning() bool {
	return b.running.Load()
}

// Send queues e for delivery. It never blocks: when the bus is stopped or
// the queue is full the event is dropped.
func (b *Bus) Send(e Event) {
	b.sent.Add(1)
	if !b.running.Load() {
		b.dropped.Add(1)
		return
	}
	b.mu.RLock()
	queue := b.queue
	b.mu.RUnlock()

	select {
	case queue <- e:
	default:
		b.dropped.Add(1)
	}
}

// Subscribe registers h for events of the given kinds, or of every kind
// when none are given. The returned function removes the subscription.
func (b *Bus) Subscribe(h Handler, kinds ...Kind) func() {
	sub := &subscription{handler: h}
	if len(kinds) > 0 {
		sub.kinds = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			sub.kinds[k] = true
		}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Stats{
		Sent:        b.sent.Load(),
		Delivered:   b.delivered.Load(),
		Dropped:     b.dropped.Load(),
		Panics:      b.panics.Load(),
		Subscribers: len(b.subs),
		QueueDepth:  len(b.queue),
	}
}

func (b *Bus) run(queue chan Event, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case e := <-queue:
			b.deliver(e)
		case <-stop:
			// Drain what was queued before Stop.
			for {
				select {
				case e := <-queue:
					b.deliver(e)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) deliver(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.wants(e.Kind) {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.call(h, e)
	}
}

func (b *Bus) call(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			b.config.panicHandler(&PanicError{Kind: e.Kind, Value: r})
		}
	}()
	h(e)
	b.delivered.Add(1)
}
