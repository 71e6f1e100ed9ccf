package motion

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/engine/text"
)

func (r *Resolver) searchMotion(ctx context.Context, m Motion, start pos, count int) (pos, error) {
	var s Search
	switch m.Kind {
	case SearchForward, SearchBackward:
		dir := Forward
		if m.Kind == SearchBackward {
			dir = Backward
		}
		s = Search{Pattern: m.Pattern, Dir: dir}
		if s.Pattern == "" {
			if r.lastSearch == nil {
				return pos{}, fmt.Errorf("no previous pattern: %w", ErrNoMatch)
			}
			s.Pattern = r.lastSearch.Pattern
		}
		r.lastSearch = &s
	case SearchNext, SearchPrev:
		if r.lastSearch == nil {
			return pos{}, fmt.Errorf("no previous pattern: %w", ErrNoMatch)
		}
		s = *r.lastSearch
		if m.Kind == SearchPrev {
			s.Dir = s.Dir.Reverse()
		}
	case StarForward, StarBackward:
		word, at, ok := r.wordUnder(start)
		if !ok {
			return pos{}, fmt.Errorf("no string under cursor: %w", ErrNoMatch)
		}
		s = Search{Pattern: word, Dir: Forward}
		if m.Kind == StarBackward {
			s.Dir = Backward
		}
		r.lastSearch = &s
		start = at
	}
	return r.search(ctx, s, start, count)
}

func (r *Resolver) search(ctx context.Context, s Search, from pos, count int) (pos, error) {
	if r.searcher == nil {
		return pos{}, fmt.Errorf("search %q: %w", s.Pattern, ErrNoMatch)
	}
	at := from.position()
	for ; count > 0; count-- {
		if err := ctx.Err(); err != nil {
			return pos{}, searchErr(s.Pattern, err)
		}
		next, ok, err := r.searcher.Find(ctx, s.Pattern, at, s.Dir, r.opts.WrapScan())
		if err != nil {
			return pos{}, searchErr(s.Pattern, err)
		}
		if !ok {
			return pos{}, fmt.Errorf("pattern not found %q: %w", s.Pattern, ErrNoMatch)
		}
		at = next
	}
	return pos{at.Line, at.Index()}, nil
}

// wordUnder finds the keyword under or after p on its line and returns a
// whole-word pattern for it with the keyword's start. Without a keyword it
// falls back to the non-blank string under or after p.
func (r *Resolver) wordUnder(p pos) (string, pos, bool) {
	s := r.line(p.line)
	if start, end, ok := runAt(s, p.idx, func(c rune) bool { return text.ClassOf(c, false) == text.Word }); ok {
		return `\<` + escapePattern(s[start:end]) + `\>`, pos{p.line, start}, true
	}
	if start, end, ok := runAt(s, p.idx, func(c rune) bool { return !text.IsBlank(c) }); ok {
		return escapePattern(s[start:end]), pos{p.line, start}, true
	}
	return "", p, false
}

// escapePattern quotes the characters that are special in a magic search
// pattern.
func escapePattern(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\^$.*[~/`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// runAt returns the run of characters matching in that contains i, or the
// first such run after i.
func runAt(s string, i int, in func(rune) bool) (start, end int, ok bool) {
	for i < len(s) && !in(text.RuneAt(s, i)) {
		i = text.Next(s, i)
	}
	if i >= len(s) {
		return 0, 0, false
	}
	start = i
	for start > 0 {
		prev := text.Prev(s, start)
		if !in(text.RuneAt(s, prev)) {
			break
		}
		start = prev
	}
	end = i
	for end < len(s) && in(text.RuneAt(s, end)) {
		end = text.Next(s, end)
	}
	return start, end, true
}
