package motion

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/text"
)

// pos is a 1-based line and a 0-based byte index. idx == len(line) is the
// end-of-line position, which classifies as blank.
type pos struct {
	line, idx int
}

func (p pos) position() buffer.Position {
	return buffer.Pos(p.line, p.idx+1)
}

func (r *Resolver) line(n int) string {
	return r.lines.Line(n)
}

func (r *Resolver) clampLine(n int) int {
	if n < 1 {
		return 1
	}
	if c := r.lines.LineCount(); n > c {
		return c
	}
	return n
}

func (r *Resolver) empty(p pos) bool {
	return p.idx == 0 && r.line(p.line) == ""
}

func (r *Resolver) class(p pos, big bool) text.Class {
	s := r.line(p.line)
	if p.idx >= len(s) {
		return text.Blank
	}
	return text.ClassOf(text.RuneAt(s, p.idx), big)
}

// inc steps p forward one character. It returns 0 within the line, 2 when
// it stepped onto the end of the line, 1 when it crossed to the next line
// and -1 when p was already at the end of the buffer.
func (r *Resolver) inc(p *pos) int {
	s := r.line(p.line)
	if p.idx < len(s) {
		p.idx = text.Next(s, p.idx)
		if p.idx < len(s) {
			return 0
		}
		return 2
	}
	if p.line < r.lines.LineCount() {
		p.line++
		p.idx = 0
		return 1
	}
	return -1
}

// dec steps p back one character. From the start of a line it moves to
// the end-of-line position of the previous line and returns 1. It returns
// -1 at the start of the buffer.
func (r *Resolver) dec(p *pos) int {
	if p.idx > 0 {
		p.idx = text.Prev(r.line(p.line), p.idx)
		return 0
	}
	if p.line > 1 {
		p.line--
		p.idx = len(r.line(p.line))
		return 1
	}
	return -1
}

func (r *Resolver) step(p *pos, dir Direction) int {
	if dir == Forward {
		return r.inc(p)
	}
	return r.dec(p)
}

// skip moves p over characters of class c. It reports true when it ran
// into the edge of the buffer.
func (r *Resolver) skip(p *pos, c text.Class, big bool, dir Direction) bool {
	for r.class(*p, big) == c {
		if r.step(p, dir) == -1 {
			return true
		}
	}
	return false
}

// fwdWord moves to the start of the count'th next word. An empty line
// counts as a word. With eol set, as under an operator, the last count
// stops at the end of the line instead of crossing it.
func (r *Resolver) fwdWord(p pos, count int, big, eol bool) pos {
	for count > 0 {
		count--
		sclass := r.class(p, big)
		last := p.line == r.lines.LineCount()
		i := r.inc(&p)
		if i == -1 || (i >= 1 && last) {
			return p
		}
		if i >= 1 && eol && count == 0 {
			return p
		}

		if sclass != text.Blank {
			for r.class(p, big) == sclass {
				i = r.inc(&p)
				if i == -1 || (i >= 1 && eol && count == 0) {
					return p
				}
			}
		}
		for r.class(p, big) == text.Blank {
			if r.empty(p) {
				break
			}
			i = r.inc(&p)
			if i == -1 || (i >= 1 && eol && count == 0) {
				return p
			}
		}
	}
	return p
}

// endWord moves to the end of the count'th word. With stop set the first
// count stays in the current word when already at its end, as cw needs.
// With empty set an empty line stops the motion. The bool is false when
// the buffer ended first.
func (r *Resolver) endWord(p pos, count int, big, stop, empty bool) (pos, bool) {
	for count > 0 {
		count--
		sclass := r.class(p, big)
		if r.inc(&p) == -1 {
			return p, false
		}

		atEmpty := false
		switch {
		case sclass != text.Blank && r.class(p, big) == sclass:
			if r.skip(&p, sclass, big, Forward) {
				return p, false
			}
		case !stop || sclass == text.Blank:
			for r.class(p, big) == text.Blank {
				if empty && r.empty(p) {
					atEmpty = true
					break
				}
				if r.inc(&p) == -1 {
					return p, false
				}
			}
			if !atEmpty && r.skip(&p, r.class(p, big), big, Forward) {
				return p, false
			}
		}
		if !atEmpty {
			r.dec(&p)
		}
		stop = false
	}
	return p, true
}

// bckWord moves to the start of the count'th previous word.
func (r *Resolver) bckWord(p pos, count int, big bool) pos {
	for count > 0 {
		count--
		if r.dec(&p) == -1 {
			return p
		}
		atEmpty := false
		for r.class(p, big) == text.Blank {
			if r.empty(p) {
				atEmpty = true
				break
			}
			if r.dec(&p) == -1 {
				return p
			}
		}
		if atEmpty {
			continue
		}
		if r.skip(&p, r.class(p, big), big, Backward) {
			return p
		}
		r.inc(&p)
	}
	return p
}

// bckendWord moves to the end of the count'th previous word.
func (r *Resolver) bckendWord(p pos, count int, big bool) pos {
	for count > 0 {
		count--
		sclass := r.class(p, big)
		if r.dec(&p) == -1 {
			return p
		}
		if sclass != text.Blank {
			for r.class(p, big) == sclass {
				if r.dec(&p) == -1 {
					return p
				}
			}
		}
		for r.class(p, big) == text.Blank {
			if r.empty(p) {
				break
			}
			if r.dec(&p) == -1 {
				return p
			}
		}
	}
	return p
}
