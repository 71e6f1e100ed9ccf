package motion

import (
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Kind identifies a motion. The set is closed; Resolve switches on it.
type Kind uint8

const (
	None Kind = iota

	Left          // h
	Right         // l
	LineStart     // 0
	FirstNonBlank // ^
	Column        // |
	LineEnd       // $
	LastNonBlank  // g_

	WordForward        // w
	BigWordForward     // W
	WordBackward       // b
	BigWordBackward    // B
	WordEnd            // e
	BigWordEnd         // E
	WordEndBackward    // ge
	BigWordEndBackward // gE

	FindForward       // f
	FindBackward      // F
	TillForward       // t
	TillBackward      // T
	RepeatFind        // ;
	RepeatFindReverse // ,

	Down          // j
	Up            // k
	NextLine      // + and <CR>
	PrevLine      // -
	CurrentLine   // _
	GotoLine      // G
	GotoFirstLine // gg

	MatchPair         // %
	SentenceForward   // )
	SentenceBackward  // (
	ParagraphForward  // }
	ParagraphBackward // {

	SearchForward  // /
	SearchBackward // ?
	SearchNext     // n
	SearchPrev     // N
	StarForward    // *
	StarBackward   // #

	MarkLine  // '
	MarkExact // `
)

var kindKeys = [...]string{
	None:               "",
	Left:               "h",
	Right:              "l",
	LineStart:          "0",
	FirstNonBlank:      "^",
	Column:             "|",
	LineEnd:            "$",
	LastNonBlank:       "g_",
	WordForward:        "w",
	BigWordForward:     "W",
	WordBackward:       "b",
	BigWordBackward:    "B",
	WordEnd:            "e",
	BigWordEnd:         "E",
	WordEndBackward:    "ge",
	BigWordEndBackward: "gE",
	FindForward:        "f",
	FindBackward:       "F",
	TillForward:        "t",
	TillBackward:       "T",
	RepeatFind:         ";",
	RepeatFindReverse:  ",",
	Down:               "j",
	Up:                 "k",
	NextLine:           "+",
	PrevLine:           "-",
	CurrentLine:        "_",
	GotoLine:           "G",
	GotoFirstLine:      "gg",
	MatchPair:          "%",
	SentenceForward:    ")",
	SentenceBackward:   "(",
	ParagraphForward:   "}",
	ParagraphBackward:  "{",
	SearchForward:      "/",
	SearchBackward:     "?",
	SearchNext:         "n",
	SearchPrev:         "N",
	StarForward:        "*",
	StarBackward:       "#",
	MarkLine:           "'",
	MarkExact:          "`",
}

// String returns the keys that invoke the motion.
func (k Kind) String() string {
	if int(k) < len(kindKeys) {
		return kindKeys[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// KindFromKeys returns the motion typed as keys, such as "w" or "gg".
func KindFromKeys(keys string) (Kind, bool) {
	if keys == "" {
		return None, false
	}
	for k, s := range kindKeys {
		if s == keys {
			return Kind(k), true
		}
	}
	return None, false
}

// NeedsChar reports whether the motion takes a character argument: the
// find target or the mark name.
func (k Kind) NeedsChar() bool {
	return (k >= FindForward && k <= TillBackward) || k == MarkLine || k == MarkExact
}

// NeedsPattern reports whether the motion reads a pattern from the
// command line.
func (k Kind) NeedsPattern() bool {
	return k == SearchForward || k == SearchBackward
}

// IsVertical reports whether the motion keeps the desired column.
func (k Kind) IsVertical() bool {
	return k == Down || k == Up
}

// IsJump reports whether a delete over this motion always goes to the
// numbered registers, even within one line.
func (k Kind) IsJump() bool {
	switch k {
	case MatchPair, SentenceForward, SentenceBackward, ParagraphForward, ParagraphBackward,
		SearchForward, SearchBackward, SearchNext, SearchPrev, MarkLine, MarkExact:
		return true
	}
	return false
}

// Jumps reports whether moving with the motion sets the ' mark to the
// position it left.
func (k Kind) Jumps() bool {
	switch k {
	case GotoLine, GotoFirstLine, MatchPair,
		SentenceForward, SentenceBackward, ParagraphForward, ParagraphBackward,
		SearchForward, SearchBackward, SearchNext, SearchPrev, StarForward, StarBackward,
		MarkLine, MarkExact:
		return true
	}
	return false
}

// Wise returns the motion's wise-ness.
func (k Kind) Wise() buffer.Wise {
	switch k {
	case Down, Up, NextLine, PrevLine, CurrentLine, GotoLine, GotoFirstLine, MarkLine:
		return buffer.Linewise
	}
	return buffer.Charwise
}

// Inclusive returns the default inclusivity of a charwise motion. The
// repeat and % motions depend on what they repeat or match and may be
// adjusted by Resolve.
func (k Kind) Inclusive() bool {
	switch k {
	case LineEnd, LastNonBlank, WordEnd, BigWordEnd, WordEndBackward, BigWordEndBackward,
		FindForward, TillForward, MatchPair:
		return true
	}
	return false
}

// Motion is a motion request with its argument.
type Motion struct {
	Kind    Kind
	Char    rune   // f F t T argument or mark name
	Pattern string // / and ? pattern; empty repeats the last search
}

// Of returns an argument-less motion.
func Of(k Kind) Motion {
	return Motion{Kind: k}
}

// String returns the motion as typed keys.
func (m Motion) String() string {
	switch {
	case m.Kind.NeedsChar():
		return m.Kind.String() + string(m.Char)
	case m.Kind.NeedsPattern():
		return m.Kind.String() + m.Pattern
	}
	return m.Kind.String()
}
