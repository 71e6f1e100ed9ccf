package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Char returns the event for typing r.
func Char(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns the event for Ctrl plus the letter r.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// Special returns the event for a non-character key.
func Special(k Key) Event {
	return Event{Key: k}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified reports whether Ctrl or Alt is held. Shift on a character
// is part of the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt) != 0
	}
	return e.Modifiers != ModNone
}

// IsChar returns true if the event types a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsCtrl reports whether the event is Ctrl plus the letter r.
func (e Event) IsCtrl(r rune) bool {
	return e.IsRune() && e.Modifiers == ModCtrl && e.Rune == unicode.ToLower(r)
}

// Is reports whether the event is the unmodified key k.
func (e Event) Is(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// IsEscape reports whether the event ends the current mode: <Esc> or <C-[>.
func (e Event) IsEscape() bool {
	return e.Is(KeyEscape) || e.IsCtrl('[')
}

// String returns the Vim notation of the event, e.g. "a", "<C-r>", "<CR>".
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(e.Rune)
	}
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	return "<" + e.Modifiers.String() + name + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}", e.Key, e.Rune, e.Modifiers.String())
}

// Text returns the events that type s literally.
func Text(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			events = append(events, Special(KeyEnter))
		case '\t':
			events = append(events, Special(KeyTab))
		case 0x1b:
			events = append(events, Special(KeyEscape))
		default:
			events = append(events, Char(r))
		}
	}
	return events
}

// FormatSequence renders events back into Vim notation.
func FormatSequence(events []Event) string {
	var out []byte
	for _, e := range events {
		out = append(out, e.String()...)
	}
	return string(out)
}
