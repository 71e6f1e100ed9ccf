package motion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/search"
)

var normal = cursor.Config{TabStop: 8}

func newResolver(lines ...string) (*motion.Resolver, *buffer.Buffer) {
	b := buffer.NewBufferFromLines(lines)
	opts := config.Static(config.Defaults())
	return motion.NewResolver(b, opts, search.New(b, opts)), b
}

func at(line, col int) cursor.Cursor {
	return cursor.New(buffer.Pos(line, col))
}

func TestCursorMotions(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		from   buffer.Position
		motion motion.Motion
		count  int
		want   buffer.Position
	}{
		{"w", []string{"foo bar"}, buffer.Pos(1, 1), motion.Of(motion.WordForward), 0, buffer.Pos(1, 5)},
		{"3w", []string{"a b c d"}, buffer.Pos(1, 1), motion.Of(motion.WordForward), 3, buffer.Pos(1, 7)},
		{"w to next line", []string{"foo", "bar"}, buffer.Pos(1, 1), motion.Of(motion.WordForward), 0, buffer.Pos(2, 1)},
		{"w stops on empty line", []string{"foo", "", "bar"}, buffer.Pos(1, 1), motion.Of(motion.WordForward), 0, buffer.Pos(2, 1)},
		{"w punctuation", []string{"a.b c"}, buffer.Pos(1, 1), motion.Of(motion.WordForward), 0, buffer.Pos(1, 2)},
		{"W", []string{"a.b c"}, buffer.Pos(1, 1), motion.Of(motion.BigWordForward), 0, buffer.Pos(1, 5)},
		{"e", []string{"foo bar"}, buffer.Pos(1, 1), motion.Of(motion.WordEnd), 0, buffer.Pos(1, 3)},
		{"e from end of word", []string{"foo bar"}, buffer.Pos(1, 3), motion.Of(motion.WordEnd), 0, buffer.Pos(1, 7)},
		{"b", []string{"foo bar"}, buffer.Pos(1, 5), motion.Of(motion.WordBackward), 0, buffer.Pos(1, 1)},
		{"b across lines", []string{"foo", "bar"}, buffer.Pos(2, 1), motion.Of(motion.WordBackward), 0, buffer.Pos(1, 1)},
		{"ge", []string{"foo bar"}, buffer.Pos(1, 5), motion.Of(motion.WordEndBackward), 0, buffer.Pos(1, 3)},
		{"0", []string{"  foo"}, buffer.Pos(1, 4), motion.Of(motion.LineStart), 0, buffer.Pos(1, 1)},
		{"^", []string{"  foo"}, buffer.Pos(1, 5), motion.Of(motion.FirstNonBlank), 0, buffer.Pos(1, 3)},
		{"$", []string{"foo"}, buffer.Pos(1, 1), motion.Of(motion.LineEnd), 0, buffer.Pos(1, 3)},
		{"2$", []string{"ab", "cde"}, buffer.Pos(1, 1), motion.Of(motion.LineEnd), 2, buffer.Pos(2, 3)},
		{"g_", []string{"foo  "}, buffer.Pos(1, 1), motion.Of(motion.LastNonBlank), 0, buffer.Pos(1, 3)},
		{"3|", []string{"abcdef"}, buffer.Pos(1, 6), motion.Of(motion.Column), 3, buffer.Pos(1, 3)},
		{"h at start", []string{"abc"}, buffer.Pos(1, 1), motion.Of(motion.Left), 0, buffer.Pos(1, 1)},
		{"5l clamps", []string{"abc"}, buffer.Pos(1, 1), motion.Of(motion.Right), 5, buffer.Pos(1, 3)},
		{"2f,", []string{"a,b,c"}, buffer.Pos(1, 1), motion.Motion{Kind: motion.FindForward, Char: ','}, 2, buffer.Pos(1, 4)},
		{"t,", []string{"a,b,c"}, buffer.Pos(1, 3), motion.Motion{Kind: motion.TillForward, Char: ','}, 0, buffer.Pos(1, 3)},
		{"F", []string{"a,b,c"}, buffer.Pos(1, 5), motion.Motion{Kind: motion.FindBackward, Char: 'a'}, 0, buffer.Pos(1, 1)},
		{"5j clamps", []string{"a", "b", "c"}, buffer.Pos(1, 1), motion.Of(motion.Down), 5, buffer.Pos(3, 1)},
		{"k at top", []string{"a", "b"}, buffer.Pos(1, 1), motion.Of(motion.Up), 0, buffer.Pos(1, 1)},
		{"+", []string{"a", "  b"}, buffer.Pos(1, 1), motion.Of(motion.NextLine), 0, buffer.Pos(2, 3)},
		{"G", []string{"a", "b", "  c"}, buffer.Pos(1, 1), motion.Of(motion.GotoLine), 0, buffer.Pos(3, 3)},
		{"2G", []string{"a", "b", "c"}, buffer.Pos(3, 1), motion.Of(motion.GotoLine), 2, buffer.Pos(2, 1)},
		{"gg", []string{"  a", "b"}, buffer.Pos(2, 1), motion.Of(motion.GotoFirstLine), 0, buffer.Pos(1, 3)},
		{"%", []string{"if (a[1]) {"}, buffer.Pos(1, 1), motion.Of(motion.MatchPair), 0, buffer.Pos(1, 9)},
		{"% back", []string{"if (a[1]) {"}, buffer.Pos(1, 8), motion.Of(motion.MatchPair), 0, buffer.Pos(1, 6)},
		{"% across lines", []string{"{", "x", "}"}, buffer.Pos(1, 1), motion.Of(motion.MatchPair), 0, buffer.Pos(3, 1)},
		{"50%", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, buffer.Pos(1, 1), motion.Of(motion.MatchPair), 50, buffer.Pos(5, 1)},
		{"}", []string{"a", "b", "", "c"}, buffer.Pos(1, 1), motion.Of(motion.ParagraphForward), 0, buffer.Pos(3, 1)},
		{"} at last paragraph", []string{"a", "", "c"}, buffer.Pos(2, 1), motion.Of(motion.ParagraphForward), 0, buffer.Pos(3, 1)},
		{"{", []string{"a", "", "b", "c"}, buffer.Pos(4, 1), motion.Of(motion.ParagraphBackward), 0, buffer.Pos(2, 1)},
		{")", []string{"Hello there. How are you?  Fine."}, buffer.Pos(1, 1), motion.Of(motion.SentenceForward), 0, buffer.Pos(1, 14)},
		{"2)", []string{"Hello there. How are you?  Fine."}, buffer.Pos(1, 1), motion.Of(motion.SentenceForward), 2, buffer.Pos(1, 28)},
		{"(", []string{"Hello there. How are you?  Fine."}, buffer.Pos(1, 30), motion.Of(motion.SentenceBackward), 0, buffer.Pos(1, 28)},
		{") to empty line", []string{"One.", "", "Two."}, buffer.Pos(1, 1), motion.Of(motion.SentenceForward), 0, buffer.Pos(2, 1)},
		{"/", []string{"foo bar", "bar"}, buffer.Pos(1, 1), motion.Motion{Kind: motion.SearchForward, Pattern: "bar"}, 0, buffer.Pos(1, 5)},
		{"2/", []string{"foo bar", "bar"}, buffer.Pos(1, 1), motion.Motion{Kind: motion.SearchForward, Pattern: "bar"}, 2, buffer.Pos(2, 1)},
		{"?", []string{"foo bar", "bar"}, buffer.Pos(2, 1), motion.Motion{Kind: motion.SearchBackward, Pattern: "foo"}, 0, buffer.Pos(1, 1)},
		{"*", []string{"foo foobar foo"}, buffer.Pos(1, 1), motion.Of(motion.StarForward), 0, buffer.Pos(1, 12)},
		{"#", []string{"foo foobar foo"}, buffer.Pos(1, 12), motion.Of(motion.StarBackward), 0, buffer.Pos(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newResolver(tt.lines...)
			res, err := r.Resolve(context.Background(), tt.motion, tt.count, cursor.New(tt.from))
			require.NoError(t, err)
			got := res.Apply(b, cursor.New(tt.from), normal)
			assert.Equal(t, tt.want, got.Pos)
		})
	}
}

func TestMotionShape(t *testing.T) {
	r, _ := newResolver("foo bar", "baz")
	ctx := context.Background()

	res, err := r.Resolve(ctx, motion.Of(motion.WordForward), 0, at(1, 1))
	require.NoError(t, err)
	assert.Equal(t, buffer.Charwise, res.Region.Wise)
	assert.False(t, res.Region.Inclusive)

	res, err = r.Resolve(ctx, motion.Of(motion.WordEnd), 0, at(1, 1))
	require.NoError(t, err)
	assert.True(t, res.Region.Inclusive)

	res, err = r.Resolve(ctx, motion.Of(motion.Down), 0, at(1, 1))
	require.NoError(t, err)
	assert.Equal(t, buffer.Linewise, res.Region.Wise)

	res, err = r.Resolve(ctx, motion.Of(motion.WordBackward), 0, at(2, 1))
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(2, 1), res.Region.Start)
	assert.Equal(t, buffer.Pos(1, 5), res.Region.End)
}

func TestOperandWord(t *testing.T) {
	r, _ := newResolver("foo bar", "baz")
	ctx := context.Background()

	res, err := r.Operand(ctx, motion.Of(motion.WordForward), 0, at(1, 5), false)
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 8), res.Target, "dw on the last word stops at the end of the line")
	assert.False(t, res.Region.Inclusive)

	res, err = r.Operand(ctx, motion.Of(motion.WordForward), 0, at(1, 1), true)
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 3), res.Target, "cw acts like ce")
	assert.True(t, res.Region.Inclusive)

	r, _ = newResolver("a b")
	res, err = r.Operand(ctx, motion.Of(motion.WordForward), 0, at(1, 1), true)
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 1), res.Target, "cw on a one-letter word changes just that letter")

	r, _ = newResolver("a  b")
	res, err = r.Operand(ctx, motion.Of(motion.WordForward), 0, at(1, 2), true)
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 4), res.Target, "cw on blanks acts like dw")

	res, err = r.Operand(ctx, motion.Of(motion.Right), 9, at(1, 1), false)
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 5), res.Target, "l under an operator may pass the last character")
}

func TestRepeatFind(t *testing.T) {
	r, b := newResolver("a,b,c,d")
	ctx := context.Background()

	_, err := r.Resolve(ctx, motion.Of(motion.RepeatFind), 0, at(1, 1))
	require.ErrorIs(t, err, motion.ErrNoMatch)

	res, err := r.Resolve(ctx, motion.Motion{Kind: motion.TillForward, Char: ','}, 0, at(1, 1))
	require.NoError(t, err)
	c := res.Apply(b, at(1, 1), normal)
	assert.Equal(t, buffer.Pos(1, 1), c.Pos)

	res, err = r.Resolve(ctx, motion.Of(motion.RepeatFind), 0, c)
	require.NoError(t, err)
	c = res.Apply(b, c, normal)
	assert.Equal(t, buffer.Pos(1, 3), c.Pos, "; after t skips the adjacent match")

	_, err = r.Resolve(ctx, motion.Of(motion.RepeatFindReverse), 0, c)
	require.ErrorIs(t, err, motion.ErrNoMatch, ", skips the adjacent comma and finds no other")

	res, err = r.Resolve(ctx, motion.Of(motion.RepeatFindReverse), 0, at(1, 5))
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 3), res.Target)
	assert.False(t, res.Region.Inclusive, ", after t is T and exclusive")

	f, ok := r.LastFind()
	require.True(t, ok)
	assert.Equal(t, motion.TillForward, f.Kind)
}

func TestNoMatch(t *testing.T) {
	r, _ := newResolver("abc", "def")
	ctx := context.Background()

	for _, m := range []motion.Motion{
		{Kind: motion.FindForward, Char: 'z'},
		{Kind: motion.FindBackward, Char: 'a'},
		{Kind: motion.SearchForward, Pattern: "zzz"},
		motion.Of(motion.MatchPair),
		motion.Of(motion.SearchNext),
	} {
		_, err := r.Resolve(ctx, m, 0, at(1, 1))
		assert.ErrorIs(t, err, motion.ErrNoMatch, m.String())
	}
}

func TestMarkMotions(t *testing.T) {
	r, _ := newResolver("one", "  two three", "x")
	ctx := context.Background()

	_, err := r.Resolve(ctx, motion.Motion{Kind: motion.MarkLine, Char: 'a'}, 0, at(1, 1))
	assert.ErrorIs(t, err, motion.ErrNoMark, "no table wired")

	marks := mark.NewTable()
	r.SetMarks(marks)
	_, err = r.Resolve(ctx, motion.Motion{Kind: motion.MarkExact, Char: 'a'}, 0, at(1, 1))
	assert.ErrorIs(t, err, motion.ErrNoMark)

	require.NoError(t, marks.Set('a', buffer.Pos(2, 7)))

	res, err := r.Resolve(ctx, motion.Motion{Kind: motion.MarkLine, Char: 'a'}, 0, at(1, 2))
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(2, 3), res.Target, "' goes to the first non-blank")
	assert.Equal(t, buffer.Linewise, res.Region.Wise)

	res, err = r.Resolve(ctx, motion.Motion{Kind: motion.MarkExact, Char: 'a'}, 0, at(1, 2))
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(2, 7), res.Target)
	assert.Equal(t, buffer.Charwise, res.Region.Wise)
	assert.False(t, res.Region.Inclusive)

	require.NoError(t, marks.Set('b', buffer.Pos(9, 9)))
	res, err = r.Resolve(ctx, motion.Motion{Kind: motion.MarkExact, Char: 'b'}, 0, at(1, 1))
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(3, 2), res.Target, "a stale mark is clamped")

	assert.True(t, motion.MarkLine.NeedsChar())
	assert.True(t, motion.MarkExact.Jumps())
	assert.False(t, motion.WordForward.Jumps())
}

func TestSearchRepeat(t *testing.T) {
	r, b := newResolver("foo bar", "bar", "baz")
	ctx := context.Background()

	res, err := r.Resolve(ctx, motion.Motion{Kind: motion.SearchForward, Pattern: "bar"}, 0, at(1, 1))
	require.NoError(t, err)
	c := res.Apply(b, at(1, 1), normal)

	res, err = r.Resolve(ctx, motion.Of(motion.SearchNext), 0, c)
	require.NoError(t, err)
	c = res.Apply(b, c, normal)
	assert.Equal(t, buffer.Pos(2, 1), c.Pos)

	res, err = r.Resolve(ctx, motion.Of(motion.SearchPrev), 0, c)
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 5), res.Target)

	res, err = r.Resolve(ctx, motion.Motion{Kind: motion.SearchForward}, 0, at(1, 1))
	require.NoError(t, err, "an empty pattern reuses the last one")
	assert.Equal(t, buffer.Pos(1, 5), res.Target)

	s, ok := r.LastSearch()
	require.True(t, ok)
	assert.Equal(t, motion.Search{Pattern: "bar", Dir: motion.Forward}, s)
}

func TestStarQuotesSpecialCharacters(t *testing.T) {
	r, _ := newResolver("**( *( **(")

	res, err := r.Resolve(context.Background(), motion.Of(motion.StarForward), 0, at(1, 1))
	require.NoError(t, err)
	assert.Equal(t, buffer.Pos(1, 8), res.Target)

	s, ok := r.LastSearch()
	require.True(t, ok)
	assert.Equal(t, `\*\*(`, s.Pattern)
}

func TestSearchCancelled(t *testing.T) {
	r, _ := newResolver("foo", "bar")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, motion.Motion{Kind: motion.SearchForward, Pattern: "bar"}, 0, at(1, 1))
	assert.ErrorIs(t, err, motion.ErrNoMatch)
}

func TestVerticalKeepsCurswant(t *testing.T) {
	r, b := newResolver("abcdef", "ab", "abcdef")
	ctx := context.Background()

	c := at(1, 5).MoveTo(b, buffer.Pos(1, 5), normal)
	res, err := r.Resolve(ctx, motion.Of(motion.Down), 0, c)
	require.NoError(t, err)
	c = res.Apply(b, c, normal)
	assert.Equal(t, buffer.Pos(2, 2), c.Pos)

	res, err = r.Resolve(ctx, motion.Of(motion.Down), 0, c)
	require.NoError(t, err)
	c = res.Apply(b, c, normal)
	assert.Equal(t, buffer.Pos(3, 5), c.Pos)

	res, err = r.Resolve(ctx, motion.Of(motion.LineEnd), 0, at(1, 1))
	require.NoError(t, err)
	c = res.Apply(b, at(1, 1), normal)
	assert.Equal(t, cursor.MaxCol, c.Curswant)
}

func TestEnclosingPair(t *testing.T) {
	r, _ := newResolver("f(a, (b), c)")
	start, end, ok := r.EnclosingPair(buffer.Pos(1, 7), '(', ')', 1)
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(1, 6), start)
	assert.Equal(t, buffer.Pos(1, 8), end)

	start, end, ok = r.EnclosingPair(buffer.Pos(1, 7), '(', ')', 2)
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(1, 2), start)
	assert.Equal(t, buffer.Pos(1, 12), end)

	_, _, ok = r.EnclosingPair(buffer.Pos(1, 1), '[', ']', 1)
	assert.False(t, ok)
}

// Moving count*k in one motion lands where k repeated moves of count do.
func TestCountMultipliesProperty(t *testing.T) {
	kinds := []motion.Kind{
		motion.Left, motion.Right, motion.Up, motion.Down,
		motion.WordForward, motion.BigWordForward, motion.WordBackward, motion.BigWordBackward,
		motion.WordEnd, motion.WordEndBackward, motion.ParagraphForward, motion.ParagraphBackward,
	}
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringOfN(rapid.SampledFrom([]rune("ab .(\t")), 0, 8, -1), 1, 6).Draw(t, "lines")
		kind := rapid.SampledFrom(kinds).Draw(t, "kind")
		a := rapid.IntRange(1, 3).Draw(t, "a")
		k := rapid.IntRange(1, 3).Draw(t, "k")
		line := rapid.IntRange(1, len(lines)).Draw(t, "line")
		col := rapid.IntRange(1, 9).Draw(t, "col")

		r, b := newResolver(lines...)
		ctx := context.Background()
		start := at(1, 1).MoveTo(b, buffer.Pos(line, col), normal)

		once, err := r.Resolve(ctx, motion.Of(kind), a*k, start)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := once.Apply(b, start, normal)

		c := start
		for i := 0; i < k; i++ {
			res, err := r.Resolve(ctx, motion.Of(kind), a, c)
			if err != nil {
				t.Fatalf("resolve step %d: %v", i, err)
			}
			c = res.Apply(b, c, normal)
		}
		if c.Pos != want.Pos {
			t.Fatalf("%d%v from %v: once %v, stepped %v", a*k, kind, start.Pos, want.Pos, c.Pos)
		}
	})
}
