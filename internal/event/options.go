package event

// BusOption configures a Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	// queueSize is the number of events held before Send drops.
	queueSize int

	// panicHandler is called when a handler panics.
	panicHandler func(error)
}

// defaultBusConfig returns sensible default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		queueSize:    1024,
		panicHandler: func(error) {},
	}
}

// WithQueueSize sets the event queue size.
func WithQueueSize(size int) BusOption {
	return func(c *busConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithPanicHandler sets the function told about recovered handler panics.
// The error matches ErrHandlerPanic.
func WithPanicHandler(h func(error)) BusOption {
	return func(c *busConfig) {
		if h != nil {
			c.panicHandler = h
		}
	}
}
