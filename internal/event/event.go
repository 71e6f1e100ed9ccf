package event

import (
	"time"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Kind identifies what an event reports.
type Kind uint8

const (
	KindUnknown Kind = iota
	BufferChanged
	ModeChanged
	CursorMoved
	Notice
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case BufferChanged:
		return "buffer.changed"
	case ModeChanged:
		return "mode.changed"
	case CursorMoved:
		return "cursor.moved"
	case Notice:
		return "notice"
	default:
		return "unknown"
	}
}

// Event is one notification. Exactly one payload field is set, matching
// Kind.
type Event struct {
	Kind Kind

	// Session identifies the session that sent the event.
	Session string
	Time    time.Time

	Buffer *BufferChange
	Mode   *ModeChange
	Cursor *CursorMove
	Notice *NoticeInfo
}

// BufferChange reports lines Start..End (before the change) replaced by
// NewLines.
type BufferChange struct {
	Start    int
	End      int
	NewLines []string
	Tick     uint64
}

// ModeChange reports a mode transition by mode code.
type ModeChange struct {
	From string
	To   string

	// Display is the status line text of the new mode, such as
	// "-- INSERT --".
	Display string
}

// CursorMove reports where the cursor came to rest.
type CursorMove struct {
	Pos buffer.Position
}

// NoticeInfo reports a failed command.
type NoticeInfo struct {
	Err     error
	Message string
}

// NewBufferChanged creates a BufferChanged event from a buffer change.
func NewBufferChanged(session string, c buffer.Change) Event {
	return Event{
		Kind:    BufferChanged,
		Session: session,
		Time:    time.Now(),
		Buffer: &BufferChange{
			Start:    c.Start,
			End:      c.End,
			NewLines: append([]string(nil), c.NewLines...),
			Tick:     c.Tick,
		},
	}
}

// NewModeChanged creates a ModeChanged event.
func NewModeChanged(session, from, to, display string) Event {
	return Event{
		Kind:    ModeChanged,
		Session: session,
		Time:    time.Now(),
		Mode:    &ModeChange{From: from, To: to, Display: display},
	}
}

// NewCursorMoved creates a CursorMoved event.
func NewCursorMoved(session string, pos buffer.Position) Event {
	return Event{
		Kind:    CursorMoved,
		Session: session,
		Time:    time.Now(),
		Cursor:  &CursorMove{Pos: pos},
	}
}

// NewNotice creates a Notice event for err.
func NewNotice(session string, err error) Event {
	info := &NoticeInfo{Err: err}
	if err != nil {
		info.Message = err.Error()
	}
	return Event{
		Kind:    Notice,
		Session: session,
		Time:    time.Now(),
		Notice:  info,
	}
}

// Sink receives events. Send must not block.
type Sink interface {
	Send(e Event)
}

// SinkFunc adapts a function to a Sink. The function must not block.
type SinkFunc func(e Event)

// Send implements Sink.
func (f SinkFunc) Send(e Event) {
	f(e)
}

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})
