package textobject

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/text"
)

// block selects the count'th enclosing bracket pair.
func (r *Resolver) block(from buffer.Position, count int, obj Object) (buffer.Region, bool) {
	if r.motions == nil {
		return buffer.Region{}, false
	}
	open, close := obj.Kind.delimiters()
	start, end, ok := r.motions.EnclosingPair(from, open, close, count)
	if !ok {
		return buffer.Region{}, false
	}
	if !obj.Inner {
		return buffer.CharRegion(start, end, true), true
	}

	// Skip the open bracket, and the line break when it ends its line.
	innerStart := buffer.Pos(start.Line, start.Col+1)
	if start.Col >= len(r.lines.Line(start.Line)) && start.Line < end.Line {
		innerStart = buffer.Pos(start.Line+1, 1)
	}
	// A close bracket behind nothing but indent leaves its line out.
	innerEnd := end
	closeLine := r.lines.Line(end.Line)
	if end.Line > innerStart.Line && onlyBlanks(closeLine[:end.Index()]) {
		innerEnd = buffer.Pos(end.Line, 1)
	}
	if innerEnd.Before(innerStart) {
		innerEnd = innerStart
	}
	return buffer.CharRegion(innerStart, innerEnd, false), true
}

func onlyBlanks(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}

const escape = '\\'

// nextQuote returns the index of the first q at or after i, skipping
// characters escaped by a backslash when escaped is set. It returns -1
// when there is none.
func nextQuote(s string, i int, q byte, escaped bool) int {
	for ; i < len(s); i++ {
		switch {
		case escaped && s[i] == escape:
			i++
		case s[i] == q:
			return i
		}
	}
	return -1
}

// prevQuote returns the index of the last unescaped q before i, or -1.
func prevQuote(s string, i int, q byte) int {
	for i--; i >= 0; i-- {
		n := 0
		for j := i - 1; j >= 0 && s[j] == escape; j-- {
			n++
		}
		if n%2 == 1 {
			continue
		}
		if s[i] == q {
			return i
		}
	}
	return -1
}

// quote selects a quoted string on the cursor line. With the cursor on a
// quote, quotes are paired from the start of the line to tell opening
// from closing. Otherwise the string runs from the quote before the cursor
// to the one after it, or is the first string after the cursor.
func (r *Resolver) quote(from buffer.Position, count int, obj Object) (buffer.Region, bool) {
	s := r.lines.Line(from.Line)
	q, _ := obj.Kind.delimiters()
	col := from.Index()
	if col >= len(s) {
		return buffer.Region{}, false
	}

	var start, end int
	if s[col] == q {
		start = 0
		for {
			start = nextQuote(s, start, q, false)
			if start < 0 || start > col {
				return buffer.Region{}, false
			}
			end = nextQuote(s, start+1, q, true)
			if end < 0 {
				return buffer.Region{}, false
			}
			if start <= col && col <= end {
				break
			}
			start = end + 1
		}
	} else {
		start = prevQuote(s, col, q)
		if start < 0 {
			start = nextQuote(s, col, q, true)
			if start < 0 {
				return buffer.Region{}, false
			}
		}
		end = nextQuote(s, start+1, q, true)
		if end < 0 {
			return buffer.Region{}, false
		}
	}

	if obj.Inner && count < 2 {
		if end == start+1 {
			p := buffer.Pos(from.Line, end+1)
			return buffer.CharRegion(p, p, false), true
		}
		return buffer.CharRegion(buffer.Pos(from.Line, start+2), buffer.Pos(from.Line, text.Prev(s, end)+1), true), true
	}
	if !obj.Inner {
		if end+1 < len(s) && text.IsBlank(rune(s[end+1])) {
			for end+1 < len(s) && text.IsBlank(rune(s[end+1])) {
				end++
			}
		} else {
			for start > 0 && text.IsBlank(rune(s[start-1])) {
				start--
			}
		}
	}
	return buffer.CharRegion(buffer.Pos(from.Line, start+1), buffer.Pos(from.Line, end+1), true), true
}
