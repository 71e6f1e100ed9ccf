package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key written in Vim notation.
//
// Supported forms:
//   - a single character: "a", "A", "@"
//   - a bracketed key: "<Esc>", "<CR>", "<BS>", "<Space>", "<lt>"
//   - modifiers: "<C-r>", "<C-S-Left>", "<A-x>"
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>' {
		return parseBracketed(spec[1 : len(spec)-1])
	}
	r, size := utf8.DecodeRuneInString(spec)
	if size != len(spec) {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return Char(r), nil
}

func parseBracketed(inner string) (Event, error) {
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		m, ok := modifierFromPrefix(inner[:1])
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		mods = mods.With(m)
		inner = inner[2:]
	}

	name := strings.ToLower(inner)
	if k, ok := keyNameMap[name]; ok {
		return Event{Key: k, Modifiers: mods}, nil
	}
	if r, ok := runeNames[name]; ok {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}

	r, size := utf8.DecodeRuneInString(inner)
	if size == 0 || size != len(inner) {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, inner)
	}
	if mods.Has(ModCtrl) {
		r = unicode.ToLower(r)
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
}

// MustParse parses a key specification and panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return e
}

// ParseSequence parses a typed key string such as "d2w", "ihi<Esc>" or
// "<C-v>jjd". A '<' that does not start a recognised bracketed key is
// taken literally.
func ParseSequence(s string) ([]Event, error) {
	events := make([]Event, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				if e, err := Parse(s[i : i+end+2]); err == nil {
					events = append(events, e)
					i += end + 2
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrInvalidSpec, i)
		}
		events = append(events, Char(r))
		i += size
	}
	return events, nil
}

// MustParseSequence parses a key string and panics on error.
func MustParseSequence(s string) []Event {
	events, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return events
}
