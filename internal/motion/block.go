package motion

import (
	"strings"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// white reports whether p is a space, a tab or the end of a non-empty line.
func (r *Resolver) white(p pos) bool {
	s := r.line(p.line)
	if p.idx >= len(s) {
		return s != ""
	}
	return s[p.idx] == ' ' || s[p.idx] == '\t'
}

// isSentenceStart reports whether a sentence begins at p. The first of a
// run of empty lines is a sentence of its own, and the first character
// after the run starts the next one. Otherwise a
// sentence begins at the first non-white character after a '.', '!' or
// '?' that is followed by optional closing characters and white space.
func (r *Resolver) isSentenceStart(p pos) bool {
	if r.empty(p) {
		return p.line == 1 || r.line(p.line-1) != ""
	}
	if r.white(p) {
		return false
	}
	q := p
	crossed := false
	for {
		if r.dec(&q) == -1 {
			return true
		}
		if r.empty(q) {
			return true
		}
		if !r.white(q) {
			break
		}
		crossed = true
	}
	if !crossed {
		return false
	}
	s := r.line(q.line)
	i := q.idx
	for i > 0 && strings.IndexByte(`)]"'`, s[i]) >= 0 {
		i--
	}
	return strings.IndexByte(".!?", s[i]) >= 0
}

func (r *Resolver) nextSentence(p pos) (pos, bool) {
	for {
		if r.inc(&p) == -1 {
			return p, false
		}
		if r.isSentenceStart(p) {
			return p, true
		}
	}
}

func (r *Resolver) prevSentence(p pos) pos {
	for {
		if r.dec(&p) == -1 {
			return p
		}
		if r.isSentenceStart(p) {
			return p
		}
	}
}

func (r *Resolver) sentenceForward(p pos, count int) pos {
	for ; count > 0; count-- {
		next, ok := r.nextSentence(p)
		p = next
		if !ok {
			break
		}
	}
	return p
}

func (r *Resolver) sentenceBackward(p pos, count int) pos {
	for ; count > 0; count-- {
		p = r.prevSentence(p)
	}
	return p
}

// SentenceStart returns the start of the sentence containing from.
func (r *Resolver) SentenceStart(from buffer.Position) buffer.Position {
	p := pos{from.Line, from.Index()}
	if r.isSentenceStart(p) {
		return from
	}
	return r.prevSentence(p).position()
}

// NextSentence returns the start of the sentence after from. The bool is
// false when from is in the last sentence; the position is then the end
// of the buffer.
func (r *Resolver) NextSentence(from buffer.Position) (buffer.Position, bool) {
	p, ok := r.nextSentence(pos{from.Line, from.Index()})
	return p.position(), ok
}

// paragraph moves over count paragraphs. A paragraph boundary is an empty
// line. Moving forward onto the last line lands on its last character,
// inclusively, so d} deletes to the end of the buffer.
func (r *Resolver) paragraph(p pos, count int, dir Direction) (pos, bool) {
	curr := p.line
	n := r.lines.LineCount()
	for ; count > 0; count-- {
		seen := false
		for first := true; ; first = false {
			if r.line(curr) != "" {
				seen = true
			}
			if !first && seen && r.line(curr) == "" {
				break
			}
			next := curr + int(dir)
			if next < 1 || next > n {
				count = 1
				break
			}
			curr = next
		}
	}
	if dir == Forward && curr == n {
		s := r.line(curr)
		if s != "" {
			return pos{curr, r.lastIdx(curr)}, true
		}
	}
	return pos{curr, 0}, false
}
