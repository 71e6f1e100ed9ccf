package textobject

import (
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/text"
	"github.com/dshills/vicore/internal/motion"
)

// Resolver resolves text objects against one buffer.
type Resolver struct {
	lines   cursor.Lines
	motions *motion.Resolver
}

// NewResolver creates a resolver. The motion resolver supplies sentence
// boundaries and bracket matching.
func NewResolver(lines cursor.Lines, motions *motion.Resolver) *Resolver {
	return &Resolver{lines: lines, motions: motions}
}

// Resolve returns the region of obj around from. count is the typed count,
// 0 when none was given.
func (r *Resolver) Resolve(obj Object, count int, from buffer.Position) (buffer.Region, error) {
	n := max(count, 1)
	var (
		reg buffer.Region
		ok  bool
	)
	switch obj.Kind {
	case Word, BigWord:
		reg, ok = r.word(from, n, obj.Inner, obj.Kind == BigWord)
	case Sentence:
		reg, ok = r.sentence(from, n, obj.Inner)
	case Paragraph:
		reg, ok = r.paragraph(from, n, obj.Inner)
	case Paren, Bracket, Brace, Angle:
		reg, ok = r.block(from, n, obj)
	case DoubleQuote, SingleQuote, BackQuote:
		reg, ok = r.quote(from, n, obj)
	case Tag:
		reg, ok = r.tag(from, n, obj.Inner)
	}
	if !ok {
		return buffer.Region{}, fmt.Errorf("%s: %w", obj, ErrNoObjectAtCursor)
	}
	return reg, nil
}

type run struct {
	start, end int
	class      text.Class
}

// runs splits s into runs of one character class.
func runs(s string, big bool) []run {
	var out []run
	for i := 0; i < len(s); {
		c := text.ClassOf(text.RuneAt(s, i), big)
		j := text.Next(s, i)
		for j < len(s) && text.ClassOf(text.RuneAt(s, j), big) == c {
			j = text.Next(s, j)
		}
		out = append(out, run{i, j, c})
		i = j
	}
	return out
}

// word selects count words on the cursor line. Inner counts white space
// runs as words. Around takes each word with its trailing white space, or
// with the white space before it when none trails and it is not indent.
func (r *Resolver) word(from buffer.Position, count int, inner, big bool) (buffer.Region, bool) {
	s := r.lines.Line(from.Line)
	rs := runs(s, big)
	cur := -1
	for i, rn := range rs {
		if from.Index() >= rn.start && from.Index() < rn.end {
			cur = i
			break
		}
	}
	if cur < 0 {
		return buffer.Region{}, false
	}

	start := rs[cur].start
	last := cur
	if inner {
		last = min(cur+count-1, len(rs)-1)
	} else {
		onWhite := rs[cur].class == text.Blank
		last = cur - 1
		trailing := false
		for ; count > 0 && last+1 < len(rs); count-- {
			last++
			if onWhite {
				// white then word
				if last+1 < len(rs) {
					last++
				}
				continue
			}
			if last+1 < len(rs) && rs[last+1].class == text.Blank {
				last++
				trailing = true
			} else {
				trailing = false
			}
		}
		if !onWhite && !trailing && cur > 0 && rs[cur-1].class == text.Blank && rs[cur-1].start > 0 {
			start = rs[cur-1].start
		}
	}
	end := text.Prev(s, rs[last].end)
	return buffer.CharRegion(buffer.Pos(from.Line, start+1), buffer.Pos(from.Line, end+1), true), true
}

func (r *Resolver) blankLine(n int) bool {
	s := r.lines.Line(n)
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}

// extent returns the last line of the run of lines that share line's
// blankness.
func (r *Resolver) extent(line int, dir int) int {
	blank := r.blankLine(line)
	for next := line + dir; next >= 1 && next <= r.lines.LineCount() && r.blankLine(next) == blank; next += dir {
		line = next
	}
	return line
}

// paragraph selects count paragraphs. Lines holding only white space
// separate paragraphs. Around adds the following blank lines, or the
// preceding ones when none follow.
func (r *Resolver) paragraph(from buffer.Position, count int, inner bool) (buffer.Region, bool) {
	n := r.lines.LineCount()
	first := r.extent(from.Line, -1)
	last := r.extent(from.Line, 1)
	onBlank := r.blankLine(from.Line)

	if inner {
		for i := 1; i < count && last < n; i++ {
			last = r.extent(last+1, 1)
		}
		return buffer.LineRegion(first, last), true
	}

	trailing := false
	for i := 0; i < count; i++ {
		if i > 0 {
			if last >= n {
				break
			}
			last = r.extent(last+1, 1)
		}
		if last < n {
			last = r.extent(last+1, 1)
			trailing = true
		} else {
			trailing = false
		}
	}
	if !onBlank && !trailing && first > 1 {
		first = r.extent(first-1, -1)
	}
	return buffer.LineRegion(first, last), true
}
