package macro

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/vicore/internal/input/key"
)

// MaxDepth bounds how deeply macros may play other macros.
const MaxDepth = 100

// Handler processes one replayed key. A non-nil error stops playback.
type Handler func(e key.Event) error

// Player replays macros stored in registers.
type Player struct {
	store Storage

	mu         sync.Mutex
	depth      int
	lastPlayed rune
}

// NewPlayer creates a player reading macros from store.
func NewPlayer(store Storage) *Player {
	return &Player{store: store}
}

// Play replays the macro in reg count times through h. reg '@' is the last
// played register. Playback stops when ctx ends or h fails; the error is
// returned and the remaining keys are dropped.
func (p *Player) Play(ctx context.Context, reg rune, count int, h Handler) error {
	if !CanPlay(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	events, reg, err := p.load(reg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.depth >= MaxDepth {
		p.mu.Unlock()
		return ErrRecursionLimit
	}
	p.depth++
	p.lastPlayed = reg
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.depth--
		p.mu.Unlock()
	}()

	for range max(count, 1) {
		for _, e := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := h(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// load decodes the macro to play and resolves @@.
func (p *Player) load(reg rune) ([]key.Event, rune, error) {
	if reg == '@' {
		p.mu.Lock()
		reg = p.lastPlayed
		p.mu.Unlock()
		if reg == 0 {
			return nil, 0, ErrNoLastMacro
		}
	}

	c := p.store.Read(Normalize(reg))
	if c.IsEmpty() {
		return nil, reg, fmt.Errorf("%w: %q", ErrEmptyRegister, reg)
	}
	s := c.String()
	if reg == ':' {
		s = ":" + s + "<CR>"
	}
	events, err := Decode(s)
	if err != nil {
		return nil, reg, err
	}
	return events, reg, nil
}

// Playing reports whether a macro is being played.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.depth > 0
}

// LastPlayed returns the register @@ would play, or 0.
func (p *Player) LastPlayed() rune {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPlayed
}

// SetLastPlayed sets the register @@ plays, as when state is restored.
func (p *Player) SetLastPlayed(reg rune) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastPlayed = reg
}

// Decode turns register text into key events. Key notation such as <Esc>
// is decoded, and raw line breaks, tabs and escapes become the keys that
// type them.
func Decode(s string) ([]key.Event, error) {
	parsed, err := key.ParseSequence(s)
	if err != nil {
		return nil, err
	}
	events := parsed[:0]
	for _, e := range parsed {
		if e.Key == key.KeyRune && e.Modifiers == key.ModNone {
			switch e.Rune {
			case '\n', '\r':
				e = key.Special(key.KeyEnter)
			case '\t':
				e = key.Special(key.KeyTab)
			case 0x1b:
				e = key.Special(key.KeyEscape)
			}
		}
		events = append(events, e)
	}
	return events, nil
}
