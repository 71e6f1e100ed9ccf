package editor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var changeCommands = []string{"dw", "x", "dd", "J", "p", "~", "rX", "yyp", ">>", "D", "cwab<Esc>", "Onew<Esc>"}

func genLines() *rapid.Generator[[]string] {
	return rapid.SliceOfN(rapid.StringMatching(`[a-c ]{0,6}`), 1, 5)
}

// Undoing a change restores the buffer, and redoing it restores the
// change.
func TestUndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := genLines().Draw(t, "lines")
		moves := rapid.StringMatching(`[jl]{0,4}`).Draw(t, "moves")
		cmd := rapid.SampledFrom(changeCommands).Draw(t, "cmd")

		s := New(lines)
		defer s.Close()
		ctx := context.Background()

		_ = s.FeedKeys(ctx, moves)
		before := s.Lines()
		_ = s.FeedKeys(ctx, cmd)
		after := s.Lines()

		_ = s.FeedKeys(ctx, "u")
		require.Equal(t, before, s.Lines())
		_ = s.FeedKeys(ctx, "<C-r>")
		require.Equal(t, after, s.Lines())
	})
}

// An operator count and a motion count multiply.
func TestOperatorCountsMultiply(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,4}`), 1, 12).Draw(t, "words")
		n := rapid.IntRange(1, 3).Draw(t, "n")
		m := rapid.IntRange(1, 3).Draw(t, "m")
		lines := []string{strings.Join(words, " ")}
		ctx := context.Background()

		a := New(lines)
		defer a.Close()
		b := New(lines)
		defer b.Close()

		errA := a.FeedKeys(ctx, fmt.Sprintf("%dd%dw", n, m))
		errB := b.FeedKeys(ctx, fmt.Sprintf("%ddw", n*m))

		require.Equal(t, errB == nil, errA == nil)
		require.Equal(t, b.Lines(), a.Lines())
		require.Equal(t, b.Cursor(), a.Cursor())
		require.Equal(t, b.Register('"'), a.Register('"'))
	})
}

// Whatever keys arrive, the session ends in a valid state: the cursor is
// inside the buffer and Escape brings it back to Normal mode.
func TestAnyKeysLeaveValidState(t *testing.T) {
	keys := []string{"h", "j", "k", "l", "w", "b", "e", "x", "d", "c", "y", "p", "P", "u", "<C-r>",
		"i", "a", "o", "v", "V", "<C-v>", "<Esc>", "2", "z", ".", "q", "@", "g", "r", "/", "<CR>", "<BS>", "f"}
	rapid.Check(t, func(t *rapid.T) {
		lines := genLines().Draw(t, "lines")
		seq := rapid.SliceOfN(rapid.SampledFrom(keys), 0, 30).Draw(t, "keys")

		s := New(lines)
		defer s.Close()
		ctx := context.Background()

		for _, k := range seq {
			_ = s.FeedKeys(ctx, k)
		}
		_ = s.FeedKeys(ctx, "<Esc><Esc><Esc>")
		if s.Recording() != 0 {
			_ = s.FeedKeys(ctx, "q")
		}

		require.Equal(t, "n", s.ModeCode())
		got := s.Lines()
		require.NotEmpty(t, got)
		c := s.Cursor()
		require.GreaterOrEqual(t, c.Line, 1)
		require.LessOrEqual(t, c.Line, len(got))
		require.GreaterOrEqual(t, c.Col, 1)
		require.LessOrEqual(t, c.Col, max(len(got[c.Line-1]), 1))
	})
}
