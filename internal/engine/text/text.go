// Package text holds the grapheme and display-width helpers shared by the
// cursor, motion and operator packages.
//
// Three units are in play. Columns are byte offsets, the unit stored in
// positions. Characters are grapheme clusters: the cursor never rests
// inside one. Virtual columns are display cells, where a tab advances to
// the next tabstop and wide runes take two cells.
package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CharLen returns the byte length of the grapheme cluster starting at i.
func CharLen(s string, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
	return len(cluster)
}

// CharAt returns the grapheme cluster starting at byte i.
func CharAt(s string, i int) string {
	n := CharLen(s, i)
	return s[i : i+n]
}

// Next returns the byte index of the cluster after the one at i.
// It returns len(s) when i is on the last cluster.
func Next(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	if i < 0 {
		return 0
	}
	return i + CharLen(s, i)
}

// Prev returns the byte index of the cluster before byte i.
// It returns 0 at the start of the line.
func Prev(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i > len(s) {
		i = len(s)
	}
	prev := 0
	for pos := 0; pos < i; {
		prev = pos
		pos += CharLen(s, pos)
	}
	return prev
}

// Snap returns the start of the cluster containing byte i. Indexes at or
// past the end snap to len(s).
func Snap(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for pos := 0; pos < len(s); {
		n := CharLen(s, pos)
		if i < pos+n {
			return pos
		}
		pos += n
	}
	return len(s)
}

// Last returns the byte index of the final cluster, or 0 for an empty line.
func Last(s string) int {
	if s == "" {
		return 0
	}
	return Prev(s, len(s))
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// RuneAt decodes the first rune of the cluster at i.
func RuneAt(s string, i int) rune {
	if i < 0 || i >= len(s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

// Class is the character class used by word motions.
type Class int

const (
	Blank Class = iota
	Word
	Punct
)

// ClassOf classifies r. With bigWord set every non-blank rune is Word.
func ClassOf(r rune, bigWord bool) Class {
	switch {
	case r == ' ' || r == '\t' || r == 0:
		return Blank
	case bigWord:
		return Word
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return Word
	case r < 0x100 || unicode.IsPunct(r) || unicode.IsSymbol(r):
		return Punct
	default:
		return Word
	}
}

// IsBlank reports whether r is a space or tab.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// FirstNonBlank returns the byte index of the first non-blank character,
// or the index of the last character when the line is all blanks.
func FirstNonBlank(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return Last(s)
}

// Indent returns the leading whitespace of s.
func Indent(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}

// cellWidth returns how many cells the cluster c occupies when it starts
// at virtual column vcol.
func cellWidth(c string, vcol, tabstop int) int {
	if c == "\t" {
		if tabstop <= 0 {
			tabstop = 8
		}
		return tabstop - vcol%tabstop
	}
	w := runewidth.StringWidth(c)
	if w == 0 {
		w = 1
	}
	return w
}

// VirtCol returns the 0-based display column at which byte i starts.
func VirtCol(s string, i, tabstop int) int {
	vcol := 0
	for pos := 0; pos < len(s) && pos < i; {
		c := CharAt(s, pos)
		vcol += cellWidth(c, vcol, tabstop)
		pos += len(c)
	}
	if i > len(s) {
		vcol += i - len(s)
	}
	return vcol
}

// VirtEnd returns the last display column occupied by the cluster at i.
func VirtEnd(s string, i, tabstop int) int {
	start := VirtCol(s, i, tabstop)
	if i >= len(s) {
		return start
	}
	return start + cellWidth(CharAt(s, i), start, tabstop) - 1
}

// Width returns the display width of s.
func Width(s string, tabstop int) int {
	return VirtCol(s, len(s), tabstop)
}

// IndexAtVirtCol returns the byte index of the cluster covering display
// column vcol, along with the number of cells vcol lies past the end of
// the line. The index is len(s) when vcol is beyond the text.
func IndexAtVirtCol(s string, vcol, tabstop int) (idx, past int) {
	cur := 0
	for pos := 0; pos < len(s); {
		c := CharAt(s, pos)
		w := cellWidth(c, cur, tabstop)
		if vcol < cur+w {
			return pos, 0
		}
		cur += w
		pos += len(c)
	}
	return len(s), vcol - cur
}
