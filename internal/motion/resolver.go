package motion

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/text"
)

// Direction is a search direction.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return -d
}

// Searcher finds pattern matches in the buffer. Find returns the start of
// the first match strictly after (Forward) or before (Backward) from. The
// bool is false when there is no match. Implementations check ctx between
// scanned lines.
type Searcher interface {
	Find(ctx context.Context, pattern string, from buffer.Position, dir Direction, wrap bool) (buffer.Position, bool, error)
}

// Marks looks up mark positions for the ' and ` motions.
type Marks interface {
	Mark(name rune) (buffer.Position, bool)
}

// Want says how the cursor's desired column follows a motion.
type Want uint8

const (
	// WantSet resets curswant to the new column.
	WantSet Want = iota
	// WantKeep moves vertically and keeps curswant.
	WantKeep
	// WantEOL sticks curswant to the end of line.
	WantEOL
	// WantColumn sets curswant to Result.Curswant.
	WantColumn
)

// Result is a resolved motion.
type Result struct {
	// Region runs from the starting position to Target. It is not
	// normalized: backward motions have End before Start.
	Region buffer.Region
	Target buffer.Position

	Want     Want
	Curswant int
}

// Apply moves c to the result's target under cfg.
func (res Result) Apply(lines cursor.Lines, c cursor.Cursor, cfg cursor.Config) cursor.Cursor {
	switch res.Want {
	case WantKeep:
		return c.MoveVertical(lines, res.Target.Line, cfg)
	case WantEOL:
		return c.ToLineEnd(lines, res.Target.Line, cfg)
	case WantColumn:
		return c.MoveTo(lines, res.Target, cfg).WithCurswant(res.Curswant)
	default:
		return c.MoveTo(lines, res.Target, cfg)
	}
}

// Search is a remembered search.
type Search struct {
	Pattern string
	Dir     Direction
}

// Find is a remembered f, F, t or T.
type Find struct {
	Kind Kind
	Char rune
}

// Resolver resolves motions against one buffer. It remembers the last
// search and the last character find for n, N, ; and ,.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	lines    cursor.Lines
	opts     config.Provider
	searcher Searcher
	marks    Marks

	lastSearch *Search
	lastFind   *Find
}

// NewResolver creates a resolver. searcher may be nil, in which case every
// search motion fails with ErrNoMatch.
func NewResolver(lines cursor.Lines, opts config.Provider, searcher Searcher) *Resolver {
	if opts == nil {
		opts = config.Static(config.Defaults())
	}
	return &Resolver{lines: lines, opts: opts, searcher: searcher}
}

// SetMarks wires the mark motions to m. Without it they fail with
// ErrNoMark.
func (r *Resolver) SetMarks(m Marks) {
	r.marks = m
}

// LastSearch returns the last search, or false if there was none.
func (r *Resolver) LastSearch() (Search, bool) {
	if r.lastSearch == nil {
		return Search{}, false
	}
	return *r.lastSearch, true
}

// SetLastSearch replaces the remembered search, as when state is restored.
func (r *Resolver) SetLastSearch(s Search) {
	r.lastSearch = &s
}

// LastFind returns the last f/F/t/T, or false if there was none.
func (r *Resolver) LastFind() (Find, bool) {
	if r.lastFind == nil {
		return Find{}, false
	}
	return *r.lastFind, true
}

// Resolve resolves m for cursor movement. count is the typed count, 0 when
// none was given.
func (r *Resolver) Resolve(ctx context.Context, m Motion, count int, from cursor.Cursor) (Result, error) {
	return r.resolve(ctx, m, count, from, opNone)
}

// Operand resolves m as the target of an operator. Under an operator w
// stops at the end of a line, l may reach past the last character, and
// for a change cw behaves like ce.
func (r *Resolver) Operand(ctx context.Context, m Motion, count int, from cursor.Cursor, change bool) (Result, error) {
	op := opOther
	if change {
		op = opChange
	}
	return r.resolve(ctx, m, count, from, op)
}

type opKind uint8

const (
	opNone opKind = iota
	opOther
	opChange
)

func (r *Resolver) resolve(ctx context.Context, m Motion, count int, from cursor.Cursor, op opKind) (Result, error) {
	n := max(count, 1)
	start := pos{from.Pos.Line, from.Pos.Index()}
	s := r.line(start.line)
	if start.idx > len(s) {
		start.idx = len(s)
	}

	res := Result{Want: WantSet}
	inclusive := m.Kind.Inclusive()
	target := start

	switch m.Kind {
	case Left:
		for i := 0; i < n && target.idx > 0; i++ {
			target.idx = text.Prev(s, target.idx)
		}
	case Right:
		for i := 0; i < n; i++ {
			next := text.Next(s, target.idx)
			if next >= len(s) {
				if op != opNone {
					target.idx = len(s)
				}
				break
			}
			target.idx = next
		}
	case LineStart:
		target.idx = 0
	case FirstNonBlank:
		target.idx = text.FirstNonBlank(s)
	case Column:
		want := n - 1
		idx, _ := text.IndexAtVirtCol(s, want, r.opts.TabStop())
		if idx >= len(s) {
			idx = text.Last(s)
		}
		target.idx = idx
		res.Want = WantColumn
		res.Curswant = want
	case LineEnd:
		target.line = r.clampLine(start.line + n - 1)
		target.idx = r.lastIdx(target.line)
		res.Want = WantEOL
	case LastNonBlank:
		target.line = r.clampLine(start.line + n - 1)
		target.idx = lastNonBlank(r.line(target.line))

	case WordForward, BigWordForward:
		big := m.Kind == BigWordForward
		if op == opChange && start.idx < len(s) && r.class(start, big) != text.Blank {
			target, _ = r.endWord(start, n, big, true, false)
			inclusive = true
			break
		}
		target = r.fwdWord(start, n, big, op != opNone)
	case WordBackward, BigWordBackward:
		target = r.bckWord(start, n, m.Kind == BigWordBackward)
	case WordEnd, BigWordEnd:
		target, _ = r.endWord(start, n, m.Kind == BigWordEnd, false, false)
	case WordEndBackward, BigWordEndBackward:
		target = r.bckendWord(start, n, m.Kind == BigWordEndBackward)

	case FindForward, FindBackward, TillForward, TillBackward:
		idx, err := r.find(start, m.Kind, m.Char, n, false)
		if err != nil {
			return Result{}, err
		}
		r.lastFind = &Find{Kind: m.Kind, Char: m.Char}
		target.idx = idx
	case RepeatFind, RepeatFindReverse:
		if r.lastFind == nil {
			return Result{}, fmt.Errorf("%s with no previous find: %w", m.Kind, ErrNoMatch)
		}
		k := r.lastFind.Kind
		if m.Kind == RepeatFindReverse {
			k = reverseFind(k)
		}
		idx, err := r.find(start, k, r.lastFind.Char, n, true)
		if err != nil {
			return Result{}, err
		}
		target.idx = idx
		inclusive = k.Inclusive()

	case Down:
		target.line = r.clampLine(start.line + n)
		res.Want = WantKeep
	case Up:
		target.line = r.clampLine(start.line - n)
		res.Want = WantKeep
	case NextLine:
		target = r.firstNonBlank(start.line + n)
	case PrevLine:
		target = r.firstNonBlank(start.line - n)
	case CurrentLine:
		target = r.firstNonBlank(start.line + n - 1)
	case GotoLine:
		if count > 0 {
			target = r.firstNonBlank(count)
		} else {
			target = r.firstNonBlank(r.lines.LineCount())
		}
	case GotoFirstLine:
		target = r.firstNonBlank(n)

	case MatchPair:
		if count > 0 {
			if count > 100 {
				return Result{}, fmt.Errorf("%d%%: %w", count, ErrNoMatch)
			}
			target = r.firstNonBlank((count*r.lines.LineCount() + 99) / 100)
			res.Target = target.position()
			res.Region = buffer.Region{Start: start.position(), End: res.Target, Wise: buffer.Linewise, Inclusive: true}
			return res, nil
		}
		p, ok := r.matchPair(start)
		if !ok {
			return Result{}, fmt.Errorf("%%: %w", ErrNoMatch)
		}
		target = p

	case SentenceForward:
		target = r.sentenceForward(start, n)
	case SentenceBackward:
		target = r.sentenceBackward(start, n)
	case ParagraphForward:
		target, inclusive = r.paragraph(start, n, Forward)
	case ParagraphBackward:
		target, inclusive = r.paragraph(start, n, Backward)

	case SearchForward, SearchBackward, SearchNext, SearchPrev, StarForward, StarBackward:
		p, err := r.searchMotion(ctx, m, start, n)
		if err != nil {
			return Result{}, err
		}
		target = p

	case MarkLine, MarkExact:
		p, err := r.mark(m)
		if err != nil {
			return Result{}, err
		}
		target = p

	default:
		return Result{}, fmt.Errorf("motion %v: %w", m.Kind, ErrNoMatch)
	}

	res.Target = target.position()
	wise := m.Kind.Wise()
	if wise == buffer.Linewise {
		res.Region = buffer.Region{Start: start.position(), End: res.Target, Wise: buffer.Linewise, Inclusive: true}
	} else {
		res.Region = buffer.CharRegion(start.position(), res.Target, inclusive)
	}
	if m.Kind.IsVertical() {
		// curswant picks the column
		res.Target = from.MoveVertical(r.lines, target.line, cursor.Config{TabStop: r.opts.TabStop()}).Pos
		res.Region.End = res.Target
	}
	return res, nil
}

// searchErr maps cancellation to ErrNoMatch and keeps other failures.
func searchErr(pattern string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("search %q: %w", pattern, ErrNoMatch)
	}
	return fmt.Errorf("search %q: %w", pattern, err)
}

func reverseFind(k Kind) Kind {
	switch k {
	case FindForward:
		return FindBackward
	case FindBackward:
		return FindForward
	case TillForward:
		return TillBackward
	default:
		return TillForward
	}
}

func lastNonBlank(s string) int {
	for i := len(s); i > 0; {
		i = text.Prev(s, i)
		if !text.IsBlank(text.RuneAt(s, i)) {
			return i
		}
	}
	return 0
}

// mark returns the target of ' (the first non-blank of the mark's line) or
// ` (the mark itself, clamped to the buffer).
func (r *Resolver) mark(m Motion) (pos, error) {
	var p buffer.Position
	ok := false
	if r.marks != nil {
		p, ok = r.marks.Mark(m.Char)
	}
	if !ok {
		return pos{}, fmt.Errorf("%s%c: %w", m.Kind, m.Char, ErrNoMark)
	}
	if m.Kind == MarkLine {
		return r.firstNonBlank(p.Line), nil
	}
	line := r.clampLine(p.Line)
	return pos{line, min(p.Index(), len(r.line(line)))}, nil
}

func (r *Resolver) firstNonBlank(line int) pos {
	line = r.clampLine(line)
	return pos{line, text.FirstNonBlank(r.line(line))}
}

func (r *Resolver) lastIdx(line int) int {
	return text.Last(r.line(line))
}
