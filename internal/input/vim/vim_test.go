package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/textobject"
)

// feed parses a key sequence in Vim notation and returns the last result.
func feed(t *testing.T, p *Parser, keys string, visual bool) Result {
	t.Helper()
	var res Result
	for _, ev := range key.MustParseSequence(keys) {
		res = p.Feed(ev, visual)
	}
	return res
}

func parse(t *testing.T, keys string) *Command {
	t.Helper()
	res := feed(t, NewParser(), keys, false)
	require.Equal(t, StatusComplete, res.Status, "keys %q", keys)
	require.NotNil(t, res.Command)
	return res.Command
}

func TestParserMotions(t *testing.T) {
	tests := []struct {
		keys  string
		kind  motion.Kind
		count int
	}{
		{"h", motion.Left, 0},
		{"j", motion.Down, 0},
		{"w", motion.WordForward, 0},
		{"0", motion.LineStart, 0},
		{"$", motion.LineEnd, 0},
		{"G", motion.GotoLine, 0},
		{"gg", motion.GotoFirstLine, 0},
		{"ge", motion.WordEndBackward, 0},
		{"g_", motion.LastNonBlank, 0},
		{"5j", motion.Down, 5},
		{"10w", motion.WordForward, 10},
		{"25G", motion.GotoLine, 25},
		{"50%", motion.MatchPair, 50},
		{"<Left>", motion.Left, 0},
		{"3<Down>", motion.Down, 3},
		{"<CR>", motion.NextLine, 0},
		{"<Space>", motion.Right, 0},
		{"<C-h>", motion.Left, 0},
		{"n", motion.SearchNext, 0},
		{"*", motion.StarForward, 0},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			cmd := parse(t, tt.keys)
			assert.Equal(t, ActMotion, cmd.Action)
			require.NotNil(t, cmd.Motion)
			assert.Equal(t, tt.kind, cmd.Motion.Kind)
			assert.Equal(t, tt.count, cmd.Count)
		})
	}
}

func TestParserOperatorMotion(t *testing.T) {
	tests := []struct {
		keys  string
		op    operator.Op
		kind  motion.Kind
		count int
	}{
		{"dw", operator.Delete, motion.WordForward, 0},
		{"cw", operator.Change, motion.WordForward, 0},
		{"y$", operator.Yank, motion.LineEnd, 0},
		{"d3w", operator.Delete, motion.WordForward, 3},
		{"3dw", operator.Delete, motion.WordForward, 3},
		{"2d3w", operator.Delete, motion.WordForward, 6},
		{"dgg", operator.Delete, motion.GotoFirstLine, 0},
		{"gUw", operator.Upper, motion.WordForward, 0},
		{"g~e", operator.ToggleCase, motion.WordEnd, 0},
		{"gqj", operator.Format, motion.Down, 0},
		{">}", operator.ShiftRight, motion.ParagraphForward, 0},
		{"d<Right>", operator.Delete, motion.Right, 0},
		{"d10j", operator.Delete, motion.Down, 10},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			cmd := parse(t, tt.keys)
			assert.Equal(t, ActOperator, cmd.Action)
			assert.Equal(t, tt.op, cmd.Op)
			require.NotNil(t, cmd.Motion)
			assert.Equal(t, tt.kind, cmd.Motion.Kind)
			assert.Equal(t, tt.count, cmd.Count)
			assert.False(t, cmd.Linewise)
		})
	}
}

func TestParserDoubledOperators(t *testing.T) {
	tests := []struct {
		keys  string
		op    operator.Op
		count int
	}{
		{"dd", operator.Delete, 0},
		{"yy", operator.Yank, 0},
		{"cc", operator.Change, 0},
		{">>", operator.ShiftRight, 0},
		{"<<", operator.ShiftLeft, 0},
		{"==", operator.Reindent, 0},
		{"5dd", operator.Delete, 5},
		{"2d3d", operator.Delete, 6},
		{"g~~", operator.ToggleCase, 0},
		{"g~g~", operator.ToggleCase, 0},
		{"guu", operator.Lower, 0},
		{"gugu", operator.Lower, 0},
		{"gUU", operator.Upper, 0},
		{"g??", operator.Rot13, 0},
		{"gqq", operator.Format, 0},
		{"3gUU", operator.Upper, 3},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			cmd := parse(t, tt.keys)
			assert.Equal(t, ActOperator, cmd.Action)
			assert.Equal(t, tt.op, cmd.Op)
			assert.True(t, cmd.Linewise)
			assert.Nil(t, cmd.Motion)
			assert.Equal(t, tt.count, cmd.Count)
		})
	}
}

func TestParserTextObjects(t *testing.T) {
	tests := []struct {
		keys  string
		op    operator.Op
		kind  textobject.Kind
		inner bool
	}{
		{"diw", operator.Delete, textobject.Word, true},
		{"daw", operator.Delete, textobject.Word, false},
		{"ci\"", operator.Change, textobject.DoubleQuote, true},
		{"ya(", operator.Yank, textobject.Paren, false},
		{"dib", operator.Delete, textobject.Paren, true},
		{"ciB", operator.Change, textobject.Brace, true},
		{"dit", operator.Delete, textobject.Tag, true},
		{"gUip", operator.Upper, textobject.Paragraph, true},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			cmd := parse(t, tt.keys)
			assert.Equal(t, ActOperator, cmd.Action)
			assert.Equal(t, tt.op, cmd.Op)
			require.NotNil(t, cmd.Object)
			assert.Equal(t, tt.kind, cmd.Object.Kind)
			assert.Equal(t, tt.inner, cmd.Object.Inner)
		})
	}
}

func TestParserCharArgument(t *testing.T) {
	cmd := parse(t, "dt)")
	assert.Equal(t, operator.Delete, cmd.Op)
	assert.Equal(t, motion.Motion{Kind: motion.TillForward, Char: ')'}, *cmd.Motion)

	cmd = parse(t, "3fx")
	assert.Equal(t, ActMotion, cmd.Action)
	assert.Equal(t, motion.Motion{Kind: motion.FindForward, Char: 'x'}, *cmd.Motion)
	assert.Equal(t, 3, cmd.Count)

	cmd = parse(t, "2rx")
	assert.Equal(t, ActReplaceChar, cmd.Action)
	assert.Equal(t, 'x', cmd.Char)
	assert.Equal(t, 2, cmd.Count)

	cmd = parse(t, "r<CR>")
	assert.Equal(t, '\r', cmd.Char)
}

func TestParserMarks(t *testing.T) {
	cmd := parse(t, "ma")
	assert.Equal(t, ActSetMark, cmd.Action)
	assert.Equal(t, 'a', cmd.Char)
	assert.False(t, cmd.IsChange())

	cmd = parse(t, "'a")
	assert.Equal(t, ActMotion, cmd.Action)
	assert.Equal(t, motion.Motion{Kind: motion.MarkLine, Char: 'a'}, *cmd.Motion)

	cmd = parse(t, "``")
	assert.Equal(t, motion.Motion{Kind: motion.MarkExact, Char: '`'}, *cmd.Motion)

	cmd = parse(t, "d'b")
	assert.Equal(t, ActOperator, cmd.Action)
	assert.Equal(t, operator.Delete, cmd.Op)
	assert.Equal(t, motion.Motion{Kind: motion.MarkLine, Char: 'b'}, *cmd.Motion)

	cmd = parse(t, "y`[")
	assert.Equal(t, operator.Yank, cmd.Op)
	assert.Equal(t, motion.Motion{Kind: motion.MarkExact, Char: '['}, *cmd.Motion)

	cmd = parse(t, "'.")
	assert.Equal(t, '.', cmd.Motion.Char)

	for _, keys := range []string{"m.", "m1", "'!", "d`0"} {
		res := feed(t, NewParser(), keys, false)
		assert.Equal(t, StatusInvalid, res.Status, keys)
	}
}

func TestParserRegisters(t *testing.T) {
	cmd := parse(t, `"add`)
	assert.Equal(t, 'a', cmd.Register)
	assert.True(t, cmd.Linewise)

	cmd = parse(t, `2"a3yy`)
	assert.Equal(t, 'a', cmd.Register)
	assert.Equal(t, 6, cmd.Count)

	cmd = parse(t, `"+p`)
	assert.Equal(t, ActPut, cmd.Action)
	assert.Equal(t, '+', cmd.Register)

	res := feed(t, NewParser(), `"!`, false)
	assert.Equal(t, StatusInvalid, res.Status)
	assert.ErrorIs(t, res.Err, ErrUnknownCommand)
}

func TestParserShortcuts(t *testing.T) {
	tests := []struct {
		keys     string
		op       operator.Op
		kind     motion.Kind
		linewise bool
	}{
		{"x", operator.Delete, motion.Right, false},
		{"X", operator.Delete, motion.Left, false},
		{"D", operator.Delete, motion.LineEnd, false},
		{"C", operator.Change, motion.LineEnd, false},
		{"s", operator.Change, motion.Right, false},
		{"S", operator.Change, motion.None, true},
		{"Y", operator.Yank, motion.None, true},
		{"J", operator.Join, motion.None, true},
		{"gJ", operator.JoinRaw, motion.None, true},
		{"<Del>", operator.Delete, motion.Right, false},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			cmd := parse(t, tt.keys)
			assert.Equal(t, ActOperator, cmd.Action)
			assert.Equal(t, tt.op, cmd.Op)
			assert.Equal(t, tt.linewise, cmd.Linewise)
			if tt.kind == motion.None {
				assert.Nil(t, cmd.Motion)
			} else {
				require.NotNil(t, cmd.Motion)
				assert.Equal(t, tt.kind, cmd.Motion.Kind)
			}
		})
	}
}

func TestParserCommands(t *testing.T) {
	tests := []struct {
		keys   string
		action Action
	}{
		{"u", ActUndo},
		{"<C-r>", ActRedo},
		{".", ActRepeat},
		{"~", ActToggleChar},
		{"p", ActPut},
		{"gv", ActReselect},
		{"g-", ActStepBack},
		{"g+", ActStepForward},
		{":", ActCmdline},
		{"qa", ActRecord},
		{"@a", ActPlay},
		{"@@", ActPlay},
		{"v", ActVisual},
		{"<C-v>", ActVisual},
		{"gh", ActSelect},
		{"<Esc>", ActEscape},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			assert.Equal(t, tt.action, parse(t, tt.keys).Action)
		})
	}
}

func TestParserInserts(t *testing.T) {
	tests := []struct {
		keys string
		kind operator.InsertKind
	}{
		{"i", operator.InsertBefore},
		{"a", operator.InsertAfter},
		{"I", operator.InsertLineStart},
		{"A", operator.InsertLineEnd},
		{"gI", operator.InsertColumnOne},
		{"o", operator.OpenBelow},
		{"O", operator.OpenAbove},
		{"R", operator.ReplaceMode},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			cmd := parse(t, "3"+tt.keys)
			assert.Equal(t, ActInsert, cmd.Action)
			assert.Equal(t, tt.kind, cmd.Insert)
			assert.Equal(t, 3, cmd.Count)
		})
	}
}

func TestParserPut(t *testing.T) {
	cmd := parse(t, "gP")
	assert.True(t, cmd.Before)
	assert.True(t, cmd.CursorAfter)

	cmd = parse(t, "3p")
	assert.False(t, cmd.Before)
	assert.Equal(t, 3, cmd.Count)
}

func TestParserVisual(t *testing.T) {
	tests := []struct {
		keys     string
		action   Action
		op       operator.Op
		linewise bool
	}{
		{"d", ActOperator, operator.Delete, false},
		{"x", ActOperator, operator.Delete, false},
		{"X", ActOperator, operator.Delete, true},
		{"c", ActOperator, operator.Change, false},
		{"S", ActOperator, operator.Change, true},
		{"y", ActOperator, operator.Yank, false},
		{"Y", ActOperator, operator.Yank, true},
		{">", ActOperator, operator.ShiftRight, false},
		{"u", ActOperator, operator.Lower, false},
		{"U", ActOperator, operator.Upper, false},
		{"~", ActOperator, operator.ToggleCase, false},
		{"gU", ActOperator, operator.Upper, false},
		{"g?", ActOperator, operator.Rot13, false},
		{"J", ActOperator, operator.Join, false},
		{"o", ActSwapAnchor, operator.None, false},
		{"<C-g>", ActToggleSelect, operator.None, false},
		{"V", ActVisual, operator.None, false},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			res := feed(t, NewParser(), tt.keys, true)
			require.Equal(t, StatusComplete, res.Status)
			assert.Equal(t, tt.action, res.Command.Action)
			assert.Equal(t, tt.op, res.Command.Op)
			assert.Equal(t, tt.linewise, res.Command.Linewise)
		})
	}

	res := feed(t, NewParser(), "iw", true)
	require.Equal(t, StatusComplete, res.Status)
	assert.Equal(t, ActObject, res.Command.Action)
	assert.Equal(t, textobject.Object{Kind: textobject.Word, Inner: true}, *res.Command.Object)

	res = feed(t, NewParser(), "3>", true)
	assert.Equal(t, 3, res.Command.Count)
}

func TestParserVisualKinds(t *testing.T) {
	assert.Equal(t, buffer.Charwise, parse(t, "v").Wise)
	assert.Equal(t, buffer.Linewise, parse(t, "V").Wise)
	assert.Equal(t, buffer.Blockwise, parse(t, "<C-v>").Wise)
	assert.Equal(t, buffer.Linewise, parse(t, "gH").Wise)
}

func TestParserPending(t *testing.T) {
	p := NewParser()

	res := feed(t, p, "2", false)
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, StateCount, p.State())

	res = feed(t, p, "d", false)
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, "2d", res.Pending)
	op, count, ok := p.PendingOperator()
	require.True(t, ok)
	assert.Equal(t, operator.Delete, op)
	assert.Equal(t, 2, count)

	res = feed(t, p, "i", false)
	assert.Equal(t, StateObject, p.State())

	res = feed(t, p, "w", false)
	require.Equal(t, StatusComplete, res.Status)
	assert.Equal(t, "2diw", res.Command.Keys)
	_, _, ok = p.PendingOperator()
	assert.False(t, ok)
	assert.Equal(t, StateStart, p.State())
}

func TestParserAbortsPendingOperator(t *testing.T) {
	p := NewParser()

	res := feed(t, p, "dQ", false)
	assert.Equal(t, StatusInvalid, res.Status)
	assert.ErrorIs(t, res.Err, mode.ErrNoPendingOperator)
	assert.Equal(t, StateStart, p.State())

	res = feed(t, p, "dix", false)
	assert.ErrorIs(t, res.Err, mode.ErrNoPendingOperator)

	res = feed(t, p, "Q", false)
	assert.ErrorIs(t, res.Err, ErrUnknownCommand)

	res = feed(t, p, "d<Esc>", false)
	require.Equal(t, StatusComplete, res.Status)
	assert.Equal(t, ActEscape, res.Command.Action)
	_, _, ok := p.PendingOperator()
	assert.False(t, ok)
}

func TestParserSearchNeedsPattern(t *testing.T) {
	cmd := parse(t, "d/")
	assert.Equal(t, ActOperator, cmd.Action)
	assert.True(t, cmd.NeedsPattern())

	cmd = parse(t, "?")
	assert.Equal(t, ActMotion, cmd.Action)
	assert.True(t, cmd.NeedsPattern())

	assert.False(t, parse(t, "n").NeedsPattern())
}

func TestParserRecording(t *testing.T) {
	p := NewParser()

	res := feed(t, p, "qa", false)
	assert.Equal(t, 'a', res.Command.Char)

	p.SetRecording(true)
	res = feed(t, p, "q", false)
	require.Equal(t, StatusComplete, res.Status)
	assert.Equal(t, ActRecord, res.Command.Action)
	assert.Zero(t, res.Command.Char)

	res = feed(t, NewParser(), "q!", false)
	assert.Equal(t, StatusInvalid, res.Status)
}

func TestZeroIsMotionUnlessCounting(t *testing.T) {
	cmd := parse(t, "0")
	assert.Equal(t, motion.LineStart, cmd.Motion.Kind)

	cmd = parse(t, "10j")
	assert.Equal(t, 10, cmd.Count)

	cmd = parse(t, "d0")
	assert.Equal(t, motion.LineStart, cmd.Motion.Kind)
	assert.Zero(t, cmd.Count)
}

func TestCombineCounts(t *testing.T) {
	assert.Equal(t, 1, CombineCounts(0, 0))
	assert.Equal(t, 6, CombineCounts(2, 3))
	assert.Equal(t, 4, CombineCounts(0, 4))
	assert.Equal(t, maxCount, CombineCounts(maxCount, 5))
}

func TestCountOverflow(t *testing.T) {
	var c CountState
	for range 20 {
		c.AccumulateDigit('9')
	}
	assert.Equal(t, maxCount, c.Value)
	assert.False(t, (&CountState{}).AccumulateDigit('0'))
}
