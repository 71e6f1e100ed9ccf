package textobject

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/dshills/vicore/internal/engine/buffer"
)

var tagPattern = regexp2.MustCompile(`<(/?)([A-Za-z][^\s/>]*)[^>]*?(/?)>`, regexp2.None)

type tagPair struct {
	openStart, openEnd   int
	closeStart, closeEnd int
}

// flatten joins the buffer with newlines and returns the byte offset of
// every line start.
func (r *Resolver) flatten() (string, []int) {
	n := r.lines.LineCount()
	offsets := make([]int, n)
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		offsets[i-1] = sb.Len()
		sb.WriteString(r.lines.Line(i))
		if i < n {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), offsets
}

func toOffset(offsets []int, p buffer.Position) int {
	return offsets[p.Line-1] + p.Index()
}

func toPosition(offsets []int, off int) buffer.Position {
	line := sort.Search(len(offsets), func(i int) bool { return offsets[i] > off })
	return buffer.Pos(line, off-offsets[line-1]+1)
}

// tagPairs matches open and close tags. A close tag pops back to the
// nearest open tag of the same name; unmatched tags are ignored.
func tagPairs(s string) []tagPair {
	type open struct {
		name       string
		start, end int
	}
	var stack []open
	var pairs []tagPair
	runes := []rune(s)
	byteAt := runeOffsets(s, len(runes))

	m, err := tagPattern.FindStringMatch(s)
	for m != nil && err == nil {
		g := m.Groups()
		start := byteAt[m.Index]
		end := byteAt[m.Index+m.Length]
		name := g[2].String()
		switch {
		case g[3].Length > 0:
			// self-closing
		case g[1].Length == 0:
			stack = append(stack, open{name, start, end})
		default:
			for i := len(stack) - 1; i >= 0; i-- {
				if strings.EqualFold(stack[i].name, name) {
					pairs = append(pairs, tagPair{stack[i].start, stack[i].end, start, end})
					stack = stack[:i]
					break
				}
			}
		}
		m, err = tagPattern.FindNextMatch(m)
	}
	return pairs
}

// runeOffsets maps rune indexes, which regexp2 reports, to byte offsets.
func runeOffsets(s string, n int) []int {
	out := make([]int, 0, n+1)
	for i := range s {
		out = append(out, i)
	}
	return append(out, len(s))
}

// tag selects the count'th tag block around the cursor. A cursor inside
// either tag counts as inside the block.
func (r *Resolver) tag(from buffer.Position, count int, inner bool) (buffer.Region, bool) {
	s, offsets := r.flatten()
	off := toOffset(offsets, from)

	var around []tagPair
	for _, p := range tagPairs(s) {
		if p.openStart <= off && off < p.closeEnd {
			around = append(around, p)
		}
	}
	if len(around) < count {
		return buffer.Region{}, false
	}
	sort.Slice(around, func(i, j int) bool { return around[i].openStart > around[j].openStart })
	p := around[count-1]

	if !inner {
		return buffer.CharRegion(toPosition(offsets, p.openStart), toPosition(offsets, p.closeEnd-1), true), true
	}
	return buffer.CharRegion(toPosition(offsets, p.openEnd), toPosition(offsets, p.closeStart), false), true
}
