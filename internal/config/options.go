package config

import (
	"fmt"
	"sync"
)

// Provider gives read-only access to the options the core consults.
type Provider interface {
	TabStop() int
	ShiftWidth() int
	ExpandTab() bool
	IgnoreCase() bool
	SmartCase() bool
	WrapScan() bool
	VirtualEdit() string
	TextWidth() int
}

// Options is a plain set of option values.
type Options struct {
	Tabstop     int    `toml:"tabstop"`
	Shiftwidth  int    `toml:"shiftwidth"`
	Expandtab   bool   `toml:"expandtab"`
	Ignorecase  bool   `toml:"ignorecase"`
	Smartcase   bool   `toml:"smartcase"`
	Wrapscan    bool   `toml:"wrapscan"`
	Virtualedit string `toml:"virtualedit"`
	Textwidth   int    `toml:"textwidth"`
}

// Defaults returns Vim's default option values.
func Defaults() Options {
	return Options{
		Tabstop:    8,
		Shiftwidth: 8,
		Wrapscan:   true,
	}
}

// Validate checks every value is in its domain.
func (o Options) Validate() error {
	if o.Tabstop < 1 || o.Tabstop > 9999 {
		return fmt.Errorf("%w: tabstop=%d", ErrInvalidOption, o.Tabstop)
	}
	if o.Shiftwidth < 0 {
		return fmt.Errorf("%w: shiftwidth=%d", ErrInvalidOption, o.Shiftwidth)
	}
	if o.Textwidth < 0 {
		return fmt.Errorf("%w: textwidth=%d", ErrInvalidOption, o.Textwidth)
	}
	switch o.Virtualedit {
	case "", "none", "all", "block":
	default:
		return fmt.Errorf("%w: virtualedit=%q", ErrInvalidOption, o.Virtualedit)
	}
	return nil
}

// Static returns a Provider fixed at o.
func Static(o Options) Provider {
	return static{o}
}

type static struct{ o Options }

func (s static) TabStop() int        { return s.o.Tabstop }
func (s static) ExpandTab() bool     { return s.o.Expandtab }
func (s static) IgnoreCase() bool    { return s.o.Ignorecase }
func (s static) SmartCase() bool     { return s.o.Smartcase }
func (s static) WrapScan() bool      { return s.o.Wrapscan }
func (s static) VirtualEdit() string { return s.o.Virtualedit }
func (s static) TextWidth() int      { return s.o.Textwidth }

// ShiftWidth returns 'shiftwidth', or 'tabstop' when it is zero.
func (s static) ShiftWidth() int {
	if s.o.Shiftwidth == 0 {
		return s.o.Tabstop
	}
	return s.o.Shiftwidth
}

// Observer is called after the store's options change.
type Observer func(old, new Options)

// Store holds live options. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	opts      Options
	observers map[uint64]Observer
	nextID    uint64
}

// NewStore creates a store holding o.
func NewStore(o Options) *Store {
	return &Store{opts: o, observers: make(map[uint64]Observer)}
}

// Options returns a copy of the current values.
func (s *Store) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Set validates and installs o, then notifies observers.
func (s *Store) Set(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	old := s.opts
	s.opts = o
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	if old != o {
		for _, obs := range observers {
			obs(old, o)
		}
	}
	return nil
}

// Subscribe registers an observer. The returned function removes it.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = obs
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) current() static {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return static{s.opts}
}

func (s *Store) TabStop() int        { return s.current().TabStop() }
func (s *Store) ShiftWidth() int     { return s.current().ShiftWidth() }
func (s *Store) ExpandTab() bool     { return s.current().ExpandTab() }
func (s *Store) IgnoreCase() bool    { return s.current().IgnoreCase() }
func (s *Store) SmartCase() bool     { return s.current().SmartCase() }
func (s *Store) WrapScan() bool      { return s.current().WrapScan() }
func (s *Store) VirtualEdit() string { return s.current().VirtualEdit() }
func (s *Store) TextWidth() int      { return s.current().TextWidth() }
