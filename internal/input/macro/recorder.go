package macro

import (
	"fmt"
	"sync"

	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/input/key"
)

// Storage is where macros live: the session's register store.
type Storage interface {
	Read(name rune) register.Content
	Write(name rune, c register.Content) error
}

// Recorder records key sequences into registers.
type Recorder struct {
	mu        sync.Mutex
	store     Storage
	recording bool
	register  rune
	events    []key.Event
}

// NewRecorder creates a recorder that stores macros in store.
func NewRecorder(store Storage) *Recorder {
	return &Recorder{store: store}
}

// StartRecording begins recording to the specified register.
// Returns an error if already recording or if the register is invalid.
func (r *Recorder) StartRecording(reg rune) error {
	if !CanRecord(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w into %q", ErrAlreadyRecording, r.register)
	}
	r.recording = true
	r.register = reg
	r.events = nil
	return nil
}

// Record appends a key event to the current recording. It does nothing
// when not recording.
func (r *Recorder) Record(e key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, e)
	}
}

// StopRecording ends the recording and writes it to the register in key
// notation. It returns the recorded events.
func (r *Recorder) StopRecording() ([]key.Event, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	reg, events := r.register, r.events
	r.recording = false
	r.register = 0
	r.events = nil
	r.mu.Unlock()

	if err := r.store.Write(reg, register.Chars(key.FormatSequence(events))); err != nil {
		return events, fmt.Errorf("store macro: %w", err)
	}
	return events, nil
}

// Cancel abandons the recording without touching the register.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	r.register = 0
	r.events = nil
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// CurrentRegister returns the register being recorded to, or 0 if not recording.
func (r *Recorder) CurrentRegister() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register
}

// EventCount returns the number of events recorded so far.
func (r *Recorder) EventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
