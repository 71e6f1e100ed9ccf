package editor

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/event"
	"github.com/dshills/vicore/internal/expr"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
)

func newSession(t *testing.T, lines []string, opts ...Option) *Session {
	t.Helper()
	s := New(lines, opts...)
	t.Cleanup(s.Close)
	return s
}

func feed(t *testing.T, s *Session, keys string) {
	t.Helper()
	require.NoError(t, s.FeedKeys(context.Background(), keys))
}

func TestDeleteWord(t *testing.T) {
	s := newSession(t, []string{"foo bar", "baz"})

	feed(t, s, "dw")

	assert.Equal(t, []string{"bar", "baz"}, s.Lines())
	assert.Equal(t, buffer.Pos(1, 1), s.Cursor())
	assert.Equal(t, "n", s.ModeCode())
	assert.True(t, s.Modified())
	assert.Equal(t, "foo ", s.Register('"').String())
	assert.Equal(t, "foo ", s.Register('-').String())
}

func TestUndoRedo(t *testing.T) {
	s := newSession(t, []string{"foo bar", "baz"})

	feed(t, s, "dw")
	feed(t, s, "u")
	assert.Equal(t, []string{"foo bar", "baz"}, s.Lines())
	assert.False(t, s.Modified())

	feed(t, s, "<C-r>")
	assert.Equal(t, []string{"bar", "baz"}, s.Lines())
}

func TestCountsMultiply(t *testing.T) {
	a := newSession(t, []string{"a b c d e f g h"})
	b := newSession(t, []string{"a b c d e f g h"})

	feed(t, a, "2d3w")
	feed(t, b, "6dw")

	assert.Equal(t, b.Lines(), a.Lines())
	assert.Equal(t, []string{"g h"}, a.Lines())
}

func TestDotRepeatAtNewPosition(t *testing.T) {
	s := newSession(t, []string{"one two", "three four"})

	feed(t, s, "dw")
	feed(t, s, "j0.")

	assert.Equal(t, []string{"two", "four"}, s.Lines())
}

func TestDotRepeatInsert(t *testing.T) {
	s := newSession(t, []string{""})

	feed(t, s, "ihi<Esc>.")

	assert.Equal(t, []string{"hhii"}, s.Lines())
	assert.Equal(t, "hi", s.Register('.').String())
}

func TestBranchingHistory(t *testing.T) {
	s := newSession(t, []string{"a"})

	feed(t, s, "Ab<Esc>")
	assert.Equal(t, []string{"ab"}, s.Lines())
	feed(t, s, "u")
	assert.Equal(t, []string{"a"}, s.Lines())
	feed(t, s, "Ac<Esc>")
	assert.Equal(t, []string{"ac"}, s.Lines())
	assert.Equal(t, 3, s.UndoLen())

	require.NoError(t, s.GotoChange(1))
	assert.Equal(t, []string{"ab"}, s.Lines())
	require.NoError(t, s.GotoChange(2))
	assert.Equal(t, []string{"ac"}, s.Lines())
	require.NoError(t, s.GotoChange(0))
	assert.Equal(t, []string{"a"}, s.Lines())

	require.NoError(t, s.GotoChange(2))
	feed(t, s, "g-")
	assert.Equal(t, []string{"ab"}, s.Lines())
	feed(t, s, "g+")
	assert.Equal(t, []string{"ac"}, s.Lines())
}

func TestYankPutLines(t *testing.T) {
	s := newSession(t, []string{"one", "two"})

	feed(t, s, "yyp")

	assert.Equal(t, []string{"one", "one", "two"}, s.Lines())
	assert.Equal(t, 2, s.Cursor().Line)
	assert.Equal(t, "one\n", s.Register('"').String())
	assert.Equal(t, "one\n", s.Register('0').String())
}

func TestVisualBlockDeleteFirstColumn(t *testing.T) {
	s := newSession(t, []string{"abc", "def", "ghi"})

	feed(t, s, "<C-v>jjd")

	assert.Equal(t, []string{"bc", "ef", "hi"}, s.Lines())
	assert.Equal(t, "n", s.ModeCode())
	reg := s.Register('"')
	assert.Equal(t, buffer.Blockwise, reg.Wise)
	assert.Equal(t, []string{"a", "d", "g"}, reg.Lines)
}

func TestVisualDollarTakesLineBreak(t *testing.T) {
	s := newSession(t, []string{"ab", "cd"})
	feed(t, s, "v$d")
	assert.Equal(t, []string{"cd"}, s.Lines())
	assert.Equal(t, "ab\n", s.Register('"').String())

	s = newSession(t, []string{"ab", "cd"})
	feed(t, s, "v$y")
	assert.Equal(t, []string{"ab", "cd"}, s.Lines())
	assert.Equal(t, []string{"ab", ""}, s.Register('"').Lines)

	s = newSession(t, []string{"ab", "cd"})
	feed(t, s, "lvhd")
	assert.Equal(t, []string{"", "cd"}, s.Lines(), "without $ the line break stays")

	s = newSession(t, []string{"ab", "cd"})
	feed(t, s, "jv$d")
	assert.Equal(t, []string{"ab", ""}, s.Lines(), "the last line has no break to take")
}

func TestVisualLinewiseDelete(t *testing.T) {
	s := newSession(t, []string{"a", "b", "c"})

	feed(t, s, "Vjd")

	assert.Equal(t, []string{"c"}, s.Lines())
	assert.Equal(t, "a\nb\n", s.Register('"').String())
}

func TestVisualObjectAndReselect(t *testing.T) {
	s := newSession(t, []string{"one two three"})

	feed(t, s, "wviw")
	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(1, 5), sel.Start())
	assert.Equal(t, buffer.Pos(1, 7), sel.End())

	feed(t, s, "d")
	assert.Equal(t, []string{"one  three"}, s.Lines())

	feed(t, s, "gv")
	assert.Equal(t, "v", s.ModeCode())
	feed(t, s, "<Esc>")
	assert.Equal(t, "n", s.ModeCode())
}

func TestReselectWithoutSelection(t *testing.T) {
	s := newSession(t, []string{"x"})
	err := s.FeedKeys(context.Background(), "gv")
	assert.ErrorIs(t, err, ErrNoPreviousSelection)
}

func TestVisualBlockInsert(t *testing.T) {
	s := newSession(t, []string{"abc", "def"})

	feed(t, s, "<C-v>jIX<Esc>")

	assert.Equal(t, []string{"Xabc", "Xdef"}, s.Lines())
}

func TestInsertEditing(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		keys  string
		want  []string
	}{
		{"type", []string{""}, "ihello<Esc>", []string{"hello"}},
		{"backspace", []string{""}, "iabc<BS><BS>d<Esc>", []string{"ad"}},
		{"enter splits", []string{"ab"}, "a<CR><Esc>", []string{"a", "b"}},
		{"backspace joins", []string{"ab", "cd"}, "ji<BS><Esc>", []string{"abcd"}},
		{"ctrl-w", []string{""}, "ifoo bar<C-w><Esc>", []string{"foo "}},
		{"ctrl-u", []string{""}, "ifoo<C-u>x<Esc>", []string{"x"}},
		{"delete joins", []string{"ab", "cd"}, "A<Del><Esc>", []string{"abcd"}},
		{"open below", []string{"a"}, "ob<Esc>", []string{"a", "b"}},
		{"count", []string{""}, "3ix<Esc>", []string{"xxx"}},
		{"register", []string{"ab"}, "yiwA <C-r>\"<Esc>", []string{"ab ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, tt.lines)
			feed(t, s, tt.keys)
			assert.Equal(t, tt.want, s.Lines())
			assert.Equal(t, "n", s.ModeCode())
		})
	}
}

func TestInsertCursorSteppedBack(t *testing.T) {
	s := newSession(t, []string{""})

	feed(t, s, "ihello")
	assert.Equal(t, "i", s.ModeCode())
	assert.Equal(t, buffer.Pos(1, 6), s.Cursor())

	feed(t, s, "<Esc>")
	assert.Equal(t, buffer.Pos(1, 5), s.Cursor())
}

func TestReplaceModeBackspaceRestores(t *testing.T) {
	s := newSession(t, []string{"abcd"})

	feed(t, s, "Rxy")
	assert.Equal(t, "R", s.ModeCode())
	assert.Equal(t, []string{"xycd"}, s.Lines())

	feed(t, s, "<BS><Esc>")
	assert.Equal(t, []string{"xbcd"}, s.Lines())
}

func TestCtrlO(t *testing.T) {
	s := newSession(t, []string{"abc"})

	feed(t, s, "A<C-o>")
	assert.Equal(t, "niI", s.ModeCode())

	feed(t, s, "0")
	assert.Equal(t, "i", s.ModeCode())

	feed(t, s, "x<Esc>")
	assert.Equal(t, []string{"xabc"}, s.Lines())
}

func TestCtrlOResumesAtLineEnd(t *testing.T) {
	s := newSession(t, []string{"abc"})

	feed(t, s, "A<C-o><Esc>d<Esc>")

	assert.Equal(t, []string{"abcd"}, s.Lines())
}

func TestSelectModeTypingReplaces(t *testing.T) {
	s := newSession(t, []string{"hello world"})

	feed(t, s, "gh")
	assert.Equal(t, "s", s.ModeCode())

	feed(t, s, "<Right><Right>X")
	assert.Equal(t, "i", s.ModeCode())
	feed(t, s, "<Esc>")

	assert.Equal(t, []string{"Xlo world"}, s.Lines())
}

func TestOperatorPending(t *testing.T) {
	s := newSession(t, []string{"abc"})

	feed(t, s, "d")
	assert.Equal(t, "no", s.ModeCode())
	assert.Equal(t, "d", s.Pending())

	feed(t, s, "<Esc>")
	assert.Equal(t, "n", s.ModeCode())
	assert.Equal(t, []string{"abc"}, s.Lines())

	err := s.FeedKeys(context.Background(), "dz")
	assert.ErrorIs(t, err, mode.ErrNoPendingOperator)
	assert.Equal(t, "n", s.ModeCode())
}

func TestMarkLinewiseOperator(t *testing.T) {
	s := newSession(t, []string{"a1", "b2", "c3", "d4"})

	feed(t, s, "jma")
	p, ok := s.Mark('a')
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(2, 1), p)

	feed(t, s, "jjd'a")
	assert.Equal(t, []string{"a1"}, s.Lines())
	assert.Equal(t, "b2\nc3\nd4\n", s.Register('"').String())
	assert.Equal(t, buffer.Linewise, s.Register('1').Wise)

	_, ok = s.Mark('a')
	assert.False(t, ok, "the mark goes with its line")
	err := s.FeedKeys(context.Background(), "'a")
	assert.ErrorIs(t, err, motion.ErrNoMark)
}

func TestMarkExclusiveOperator(t *testing.T) {
	s := newSession(t, []string{"hello world"})

	feed(t, s, "wma0y`a")
	assert.Equal(t, "hello ", s.Register('"').String())
	assert.Equal(t, buffer.Pos(1, 1), s.Cursor())
	p, _ := s.Mark('[')
	assert.Equal(t, buffer.Pos(1, 1), p)

	feed(t, s, "d`a")
	assert.Equal(t, []string{"world"}, s.Lines())
}

func TestContextMark(t *testing.T) {
	s := newSession(t, []string{"hello world"})

	feed(t, s, "wma0`a")
	assert.Equal(t, buffer.Pos(1, 7), s.Cursor())

	feed(t, s, "``")
	assert.Equal(t, buffer.Pos(1, 1), s.Cursor())
	feed(t, s, "``")
	assert.Equal(t, buffer.Pos(1, 7), s.Cursor())

	feed(t, s, "m'0''")
	assert.Equal(t, buffer.Pos(1, 1), s.Cursor(), "'' goes to the first non-blank")
}

func TestMarksFollowLineChanges(t *testing.T) {
	s := newSession(t, []string{"a", "b", "c"})

	feed(t, s, "jjmcggO<Esc>")
	assert.Equal(t, []string{"", "a", "b", "c"}, s.Lines())
	feed(t, s, "'c")
	assert.Equal(t, buffer.Pos(4, 1), s.Cursor())

	feed(t, s, "ggdd'c")
	assert.Equal(t, buffer.Pos(3, 1), s.Cursor())
	assert.Equal(t, "c", s.Lines()[2])

	feed(t, s, "kx")
	feed(t, s, "gg'.")
	assert.Equal(t, buffer.Pos(2, 1), s.Cursor())
	assert.Equal(t, []string{"a", "", "c"}, s.Lines())
}

func TestChangeAndVisualMarks(t *testing.T) {
	s := newSession(t, []string{"a", "b"})

	feed(t, s, "yjGp")
	assert.Equal(t, []string{"a", "b", "a", "b"}, s.Lines())
	feed(t, s, "gg'[")
	assert.Equal(t, buffer.Pos(3, 1), s.Cursor())
	feed(t, s, "']")
	assert.Equal(t, buffer.Pos(4, 1), s.Cursor())

	s = newSession(t, []string{"one", "two", "three"})
	feed(t, s, "jvjl<Esc>")
	p, _ := s.Mark('<')
	assert.Equal(t, buffer.Pos(2, 1), p)
	p, _ = s.Mark('>')
	assert.Equal(t, buffer.Pos(3, 2), p)

	feed(t, s, "gg'>")
	assert.Equal(t, buffer.Pos(3, 1), s.Cursor())
	feed(t, s, "`<")
	assert.Equal(t, buffer.Pos(2, 1), s.Cursor())

	feed(t, s, "Ayz<Esc>")
	p, _ = s.Mark('^')
	assert.Equal(t, buffer.Pos(2, 6), p)
}

func TestMacroRecordAndPlay(t *testing.T) {
	s := newSession(t, []string{"a", "b", "c"})

	feed(t, s, "qa")
	assert.Equal(t, 'a', s.Recording())
	feed(t, s, "A!<Esc>jq")
	assert.Zero(t, s.Recording())
	assert.Equal(t, "A!<Esc>j", s.Register('a').String())

	_ = s.FeedKeys(context.Background(), "@a@@")
	assert.Equal(t, []string{"a!", "b!", "c!"}, s.Lines())
}

func TestSearch(t *testing.T) {
	s := newSession(t, []string{"foo", "bar", "baz bar"})

	feed(t, s, "/ba")
	assert.Equal(t, "c", s.ModeCode())
	assert.Equal(t, "/ba", s.Pending())

	feed(t, s, "r<CR>")
	assert.Equal(t, "n", s.ModeCode())
	assert.Equal(t, buffer.Pos(2, 1), s.Cursor())
	assert.Equal(t, "bar", s.Register('/').String())

	feed(t, s, "n")
	assert.Equal(t, buffer.Pos(3, 5), s.Cursor())
}

func TestSearchAsOperatorTarget(t *testing.T) {
	s := newSession(t, []string{"foo", "bar", "baz bar"})

	feed(t, s, "d/baz<CR>")

	assert.Equal(t, []string{"baz bar"}, s.Lines())
	assert.Equal(t, "n", s.ModeCode())
}

func TestSearchCancel(t *testing.T) {
	s := newSession(t, []string{"foo", "bar"})

	feed(t, s, "/bar<Esc>")

	assert.Equal(t, "n", s.ModeCode())
	assert.Equal(t, buffer.Pos(1, 1), s.Cursor())
}

func TestExpressionRegisterPut(t *testing.T) {
	ev := expr.New()
	t.Cleanup(ev.Close)
	s := newSession(t, []string{"x"}, WithEvaluator(ev))

	feed(t, s, "\"=p2*21<CR>")

	assert.Equal(t, []string{"x42"}, s.Lines())
	assert.Equal(t, "2*21", s.Register('=').String())

	data, err := s.ExportState()
	require.NoError(t, err)
	dst := newSession(t, []string{""}, WithEvaluator(ev))
	require.NoError(t, dst.ImportState(data))
	assert.Equal(t, "2*21", dst.Register('=').String(), "the expression survives export, not its value")

	feed(t, dst, "\"=p<CR>")
	assert.Equal(t, []string{"42"}, dst.Lines())
}

func TestExHandler(t *testing.T) {
	var got string
	h := func(ctx context.Context, ed Editor, line string) error {
		got = line
		return ed.ApplyRange(ctx, operator.Delete, buffer.LineRegion(1, 1))
	}
	s := newSession(t, []string{"a", "b"}, WithExHandler(h))

	feed(t, s, ":d<CR>")

	assert.Equal(t, "d", got)
	assert.Equal(t, []string{"b"}, s.Lines())
	assert.Equal(t, "d", s.Register(':').String())
	assert.Equal(t, "n", s.ModeCode())
}

func TestExFromVisualNamesSelection(t *testing.T) {
	var got string
	var reg buffer.Region
	h := func(ctx context.Context, ed Editor, line string) error {
		got = line
		var ok bool
		reg, ok = ed.LastSelection()
		require.True(t, ok)
		return nil
	}
	s := newSession(t, []string{"a", "b", "c"}, WithExHandler(h))

	feed(t, s, "Vj:<CR>")

	assert.Equal(t, "'<,'>", got)
	assert.Equal(t, 1, reg.FirstLine())
	assert.Equal(t, 2, reg.LastLine())
}

func TestExWithoutHandler(t *testing.T) {
	s := newSession(t, []string{"a"})

	err := s.FeedKeys(context.Background(), ":foo<CR>")

	assert.ErrorIs(t, err, ErrNoExHandler)
	assert.Equal(t, "n", s.ModeCode())
	assert.ErrorIs(t, s.LastError(), ErrNoExHandler)
}

func TestApplyRange(t *testing.T) {
	s := newSession(t, []string{"a", "b", "c"})
	ctx := context.Background()

	require.NoError(t, s.ApplyRange(ctx, operator.ShiftRight, buffer.LineRegion(1, 2)))
	assert.Equal(t, []string{"\ta", "\tb", "c"}, s.Lines())

	err := s.ApplyRange(ctx, operator.Change, buffer.LineRegion(1, 1))
	assert.ErrorIs(t, err, operator.ErrInvalidMotionForOperator)

	feed(t, s, "u")
	assert.Equal(t, []string{"a", "b", "c"}, s.Lines())

	feed(t, s, "i")
	assert.ErrorIs(t, s.ApplyRange(ctx, operator.Delete, buffer.LineRegion(1, 1)), ErrBusy)
	assert.ErrorIs(t, s.ReplaceLines(1, 1, []string{"z"}), ErrBusy)
}

func TestReplaceLines(t *testing.T) {
	s := newSession(t, []string{"a", "b", "c"})

	require.NoError(t, s.ReplaceLines(2, 3, []string{"x"}))
	assert.Equal(t, []string{"a", "x"}, s.Lines())

	feed(t, s, "u")
	assert.Equal(t, []string{"a", "b", "c"}, s.Lines())
}

func TestErrorsAreReported(t *testing.T) {
	var mu sync.Mutex
	var notices []error
	sink := event.SinkFunc(func(e event.Event) {
		if e.Kind == event.Notice {
			mu.Lock()
			notices = append(notices, e.Notice.Err)
			mu.Unlock()
		}
	})
	s := newSession(t, []string{"abc"}, WithSink(sink))

	err := s.FeedKeys(context.Background(), ".")
	assert.ErrorIs(t, err, operator.ErrNoPreviousChange)
	assert.ErrorIs(t, s.LastError(), operator.ErrNoPreviousChange)
	assert.Equal(t, []string{"abc"}, s.Lines())

	mu.Lock()
	require.Len(t, notices, 1)
	assert.ErrorIs(t, notices[0], operator.ErrNoPreviousChange)
	mu.Unlock()

	s.ClearError()
	assert.NoError(t, s.LastError())
}

func TestEventsReachSink(t *testing.T) {
	var mu sync.Mutex
	var modes []string
	kinds := map[event.Kind]int{}
	sink := event.SinkFunc(func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds[e.Kind]++
		if e.Kind == event.ModeChanged {
			modes = append(modes, e.Mode.From+">"+e.Mode.To)
		}
	})
	s := newSession(t, []string{""}, WithSink(sink))

	feed(t, s, "ihi<Esc>")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"n>i", "i>n"}, modes)
	assert.Positive(t, kinds[event.BufferChanged])
	assert.Positive(t, kinds[event.CursorMoved])
}

func TestNotModifiable(t *testing.T) {
	s := newSession(t, []string{"abc"})
	s.SetModifiable(false)

	err := s.FeedKeys(context.Background(), "x")
	assert.ErrorIs(t, err, buffer.ErrNotModifiable)
	assert.Equal(t, []string{"abc"}, s.Lines())
}

func TestExportImportState(t *testing.T) {
	src := newSession(t, []string{"foo bar", "baz"})
	feed(t, src, "dwu/baz<CR>")

	data, err := src.ExportState()
	require.NoError(t, err)

	dst := newSession(t, nil)
	require.NoError(t, dst.ImportState(data))

	assert.Equal(t, src.Lines(), dst.Lines())
	assert.Equal(t, src.Cursor(), dst.Cursor())
	assert.Equal(t, src.UndoLen(), dst.UndoLen())
	assert.Equal(t, "foo ", dst.Register('-').String())

	feed(t, dst, "<C-r>")
	assert.Equal(t, []string{"bar", "baz"}, dst.Lines())

	feed(t, dst, "gg")
	feed(t, dst, "n")
	assert.Equal(t, buffer.Pos(2, 1), dst.Cursor())
}

func TestImportRejectsBadState(t *testing.T) {
	s := newSession(t, []string{"keep"})

	assert.ErrorIs(t, s.ImportState([]byte("version: 99\n")), ErrBadState)
	assert.ErrorIs(t, s.ImportState([]byte("{not yaml")), ErrBadState)
	assert.ErrorIs(t, s.ImportState([]byte("version: 1\nhistory:\n  nodes: []\n")), ErrBadState)
	assert.Equal(t, []string{"keep"}, s.Lines())
}

func TestExportImportMarks(t *testing.T) {
	src := newSession(t, []string{"a", "b"})
	feed(t, src, "jmbvk<Esc>")
	data, err := src.ExportState()
	require.NoError(t, err)

	dst := newSession(t, []string{"x"})
	feed(t, dst, "mz")
	require.NoError(t, dst.ImportState(data))

	p, ok := dst.Mark('b')
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(2, 1), p)
	_, ok = dst.Mark('z')
	assert.False(t, ok, "import replaces the marks")
	_, ok = dst.Mark('<')
	assert.False(t, ok, "only user marks are kept")

	var st State
	require.NoError(t, yaml.Unmarshal(data, &st))
	st.Marks["1"] = StatePos{Line: 1, Col: 1}
	data, err = yaml.Marshal(st)
	require.NoError(t, err)
	assert.ErrorIs(t, dst.ImportState(data), ErrBadState)
	_, ok = dst.Mark('b')
	assert.True(t, ok)
}

func TestImportRejectsBrokenUndoTree(t *testing.T) {
	src := newSession(t, []string{"abc"})
	feed(t, src, "x")
	data, err := src.ExportState()
	require.NoError(t, err)

	var st State
	require.NoError(t, yaml.Unmarshal(data, &st))
	require.Equal(t, []int{1}, st.History.Nodes[0].Children)
	st.History.Nodes[0].Children = []int{7}
	data, err = yaml.Marshal(st)
	require.NoError(t, err)

	s := newSession(t, []string{"keep"})
	assert.ErrorIs(t, s.ImportState(data), ErrBadState)
	assert.Equal(t, []string{"keep"}, s.Lines())
	assert.Equal(t, 1, s.UndoLen())

	feed(t, s, "x")
	assert.NoError(t, s.FeedKeys(context.Background(), "u<C-r>"))
	assert.Equal(t, []string{"eep"}, s.Lines())
}

func TestClosed(t *testing.T) {
	s := New([]string{"a"})
	s.Close()
	s.Close()

	assert.ErrorIs(t, s.Feed(context.Background(), key.Char('x')), ErrClosed)
	assert.ErrorIs(t, s.ReplaceLines(1, 1, nil), ErrClosed)
}
