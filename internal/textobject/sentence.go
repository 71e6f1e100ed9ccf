package textobject

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/text"
)

// white reports whether p is a blank, a line end or an empty line.
func (r *Resolver) white(p buffer.Position) bool {
	s := r.lines.Line(p.Line)
	i := p.Index()
	return i >= len(s) || s[i] == ' ' || s[i] == '\t'
}

func (r *Resolver) dec(p buffer.Position) (buffer.Position, bool) {
	if p.Col > 1 {
		s := r.lines.Line(p.Line)
		return buffer.Pos(p.Line, text.Prev(s, p.Index())+1), true
	}
	if p.Line > 1 {
		return buffer.Pos(p.Line-1, len(r.lines.Line(p.Line-1))+1), true
	}
	return p, false
}

func (r *Resolver) inc(p buffer.Position) buffer.Position {
	s := r.lines.Line(p.Line)
	if p.Index() < len(s) {
		return buffer.Pos(p.Line, text.Next(s, p.Index())+1)
	}
	if p.Line < r.lines.LineCount() {
		return buffer.Pos(p.Line+1, 1)
	}
	return p
}

// lastNonWhite returns the last non-white character before p.
func (r *Resolver) lastNonWhite(p buffer.Position) buffer.Position {
	for {
		prev, ok := r.dec(p)
		if !ok {
			return p
		}
		p = prev
		if !r.white(p) {
			return p
		}
	}
}

// sentenceEnd returns the last character of the sentence starting at or
// containing p.
func (r *Resolver) sentenceEnd(p buffer.Position) buffer.Position {
	next, _ := r.motions.NextSentence(p)
	return r.lastNonWhite(next)
}

// sentence selects count sentences. From the white space between two
// sentences, inner selects the white space and around adds the sentence
// after it.
func (r *Resolver) sentence(from buffer.Position, count int, inner bool) (buffer.Region, bool) {
	if r.motions == nil {
		return buffer.Region{}, false
	}
	start := r.motions.SentenceStart(from)
	end := r.sentenceEnd(from)

	if r.white(from) && from.After(end) {
		ws := r.inc(end)
		next, _ := r.motions.NextSentence(from)
		we, _ := r.dec(next)
		if inner {
			return buffer.CharRegion(ws, we, true), true
		}
		end = r.sentenceEnd(next)
		for i := 1; i < count; i++ {
			end = r.moreSentence(end)
		}
		return buffer.CharRegion(ws, end, true), true
	}

	for i := 1; i < count; i++ {
		end = r.moreSentence(end)
	}
	if inner {
		return buffer.CharRegion(start, end, true), true
	}

	s := r.lines.Line(end.Line)
	i := end.Index() + text.CharLen(s, end.Index())
	if i < len(s) && text.IsBlank(rune(s[i])) {
		for i+1 < len(s) && text.IsBlank(rune(s[i+1])) {
			i++
		}
		return buffer.CharRegion(start, buffer.Pos(end.Line, i+1), true), true
	}
	s = r.lines.Line(start.Line)
	j := start.Index()
	for j > 0 && text.IsBlank(rune(s[j-1])) {
		j--
	}
	if j > 0 {
		start = buffer.Pos(start.Line, j+1)
	}
	return buffer.CharRegion(start, end, true), true
}

// moreSentence extends end over the following sentence.
func (r *Resolver) moreSentence(end buffer.Position) buffer.Position {
	next, ok := r.motions.NextSentence(end)
	if !ok {
		return end
	}
	return r.sentenceEnd(next)
}
