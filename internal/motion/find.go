package motion

import (
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/text"
)

// find searches the line for the count'th occurrence of c. Till kinds land
// next to the match. On a repeat of t or T with a count of one the
// adjacent character is skipped so ; makes progress.
func (r *Resolver) find(p pos, k Kind, c rune, count int, repeat bool) (int, error) {
	s := r.line(p.line)
	forward := k == FindForward || k == TillForward
	till := k == TillForward || k == TillBackward
	stop := !(repeat && till && count == 1)

	idx := p.idx
	for ; count > 0; count-- {
		for {
			if forward {
				next := text.Next(s, idx)
				if next >= len(s) {
					return 0, fmt.Errorf("%s%c: %w", k, c, ErrNoMatch)
				}
				idx = next
			} else {
				if idx == 0 {
					return 0, fmt.Errorf("%s%c: %w", k, c, ErrNoMatch)
				}
				idx = text.Prev(s, idx)
			}
			if text.RuneAt(s, idx) == c && stop {
				break
			}
			stop = true
		}
	}
	if till {
		if forward {
			idx = text.Prev(s, idx)
		} else {
			idx = text.Next(s, idx)
		}
	}
	return idx, nil
}

const brackets = "(){}[]"

// matchPair finds the first bracket at or after the cursor on its line and
// jumps to its partner.
func (r *Resolver) matchPair(p pos) (pos, bool) {
	s := r.line(p.line)
	i := p.idx
	for ; i < len(s); i++ {
		if strings.IndexByte(brackets, s[i]) >= 0 {
			break
		}
	}
	if i >= len(s) {
		return pos{}, false
	}
	k := strings.IndexByte(brackets, s[i])
	open, close := brackets[k&^1], brackets[k|1]
	dir := Forward
	if k&1 == 1 {
		dir = Backward
	}
	return r.findPartner(pos{p.line, i}, open, close, dir, 0)
}

// findPartner scans from p in dir for the bracket that balances the one at
// p. depth is the number of extra levels to climb, used by text objects.
func (r *Resolver) findPartner(p pos, open, close byte, dir Direction, depth int) (pos, bool) {
	want, other := close, open
	if dir == Backward {
		want, other = open, close
	}
	level := depth
	for {
		if r.stepByte(&p, dir) == -1 {
			return pos{}, false
		}
		s := r.line(p.line)
		if p.idx >= len(s) {
			continue
		}
		switch s[p.idx] {
		case other:
			level++
		case want:
			if level == 0 {
				return p, true
			}
			level--
		}
	}
}

// stepByte is inc/dec by byte. Brackets are ASCII so byte steps cannot
// land inside a multibyte character on a match.
func (r *Resolver) stepByte(p *pos, dir Direction) int {
	if dir == Forward {
		if p.idx < len(r.line(p.line)) {
			p.idx++
			return 0
		}
		if p.line < r.lines.LineCount() {
			p.line++
			p.idx = 0
			return 1
		}
		return -1
	}
	if p.idx > 0 {
		p.idx--
		return 0
	}
	if p.line > 1 {
		p.line--
		p.idx = len(r.line(p.line))
		return 1
	}
	return -1
}

// EnclosingPair returns the brackets of the count'th open/close pair
// around from. A bracket under from counts as the innermost level.
func (r *Resolver) EnclosingPair(from buffer.Position, open, close byte, count int) (start, end buffer.Position, ok bool) {
	p := pos{from.Line, from.Index()}
	s := r.line(p.line)
	switch {
	case p.idx < len(s) && s[p.idx] == open:
		count--
	case p.idx < len(s) && s[p.idx] == close:
		partner, found := r.findPartner(p, open, close, Backward, 0)
		if !found {
			return start, end, false
		}
		p = partner
		count--
	}
	if count > 0 {
		outer, found := r.findPartner(p, open, close, Backward, count-1)
		if !found {
			return start, end, false
		}
		p = outer
	}
	e, found := r.findPartner(p, open, close, Forward, 0)
	if !found {
		return start, end, false
	}
	return p.position(), e.position(), true
}
