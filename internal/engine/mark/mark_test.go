package mark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vicore/internal/engine/buffer"
)

func TestNames(t *testing.T) {
	for _, r := range "azAZ'`[]<>" {
		assert.True(t, Settable(r), "m%c", r)
	}
	for _, r := range ".^" {
		assert.True(t, Valid(r), "'%c", r)
		assert.False(t, Settable(r), "m%c", r)
	}
	for _, r := range "0\"!_ " {
		assert.False(t, Valid(r), "'%c", r)
	}
	assert.Equal(t, Context, Normalize('`'))
}

func TestSetAndMark(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Mark('a')
	assert.False(t, ok)

	require.NoError(t, tbl.Set('a', buffer.Pos(3, 2)))
	require.NoError(t, tbl.Set('`', buffer.Pos(1, 1)))
	assert.ErrorIs(t, tbl.Set('!', buffer.Pos(1, 1)), ErrInvalidMark)

	p, ok := tbl.Mark('a')
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(3, 2), p)

	p, ok = tbl.Mark('\'')
	require.True(t, ok, "` and ' are one mark")
	assert.Equal(t, buffer.Pos(1, 1), p)

	assert.Equal(t, map[rune]buffer.Position{'a': buffer.Pos(3, 2)}, tbl.User())

	tbl.Delete('a')
	_, ok = tbl.Mark('a')
	assert.False(t, ok)
	tbl.Clear()
	_, ok = tbl.Mark('\'')
	assert.False(t, ok)
}

func change(start int, old, added []string) buffer.Change {
	return buffer.Change{Start: start, End: start + len(old) - 1, OldLines: old, NewLines: added}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name   string
		change buffer.Change
		line   int
		want   int
		kept   bool
	}{
		{"edit below", change(5, []string{"x"}, []string{"y", "z"}), 3, 3, true},
		{"insert above", change(2, nil, []string{"n1", "n2"}), 3, 5, true},
		{"insert at mark", change(3, nil, []string{"n"}), 3, 4, true},
		{"delete above", change(1, []string{"a", "b"}, nil), 3, 1, true},
		{"delete mark line", change(3, []string{"c"}, nil), 3, 0, false},
		{"replace mark line", change(3, []string{"c"}, []string{"C"}), 3, 3, true},
		{"join onto previous", change(2, []string{"b", "c"}, []string{"b c"}), 3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable()
			require.NoError(t, tbl.Set('a', buffer.Pos(tt.line, 2)))
			require.NoError(t, tbl.Set(Context, buffer.Pos(tt.line, 2)))

			tbl.Adjust(tt.change)

			p, ok := tbl.Mark('a')
			assert.Equal(t, tt.kept, ok)
			if tt.kept {
				assert.Equal(t, buffer.Pos(tt.want, 2), p, "the column is kept")
			}
			_, ok = tbl.Mark(Context)
			assert.True(t, ok, "editor marks survive")
		})
	}
}

func TestAdjustRecordsChangedLines(t *testing.T) {
	tbl := NewTable()
	tbl.Adjust(change(2, []string{"b"}, []string{"x", "y", "z"}))

	p, _ := tbl.Mark(ChangeStart)
	assert.Equal(t, buffer.Pos(2, 1), p)
	p, _ = tbl.Mark(ChangeEnd)
	assert.Equal(t, buffer.Pos(4, 1), p)

	tbl.Adjust(change(3, []string{"y"}, nil))
	p, _ = tbl.Mark(ChangeEnd)
	assert.Equal(t, buffer.Pos(3, 1), p, "a pure delete marks the line after it")
}

// A mark that survives an edit still names the same line of text.
func TestAdjustFollowsText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "lines")
		lines := make([]string, n)
		for i := range lines {
			lines[i] = string(rune('a' + i))
		}
		buf := buffer.NewBufferFromLines(lines)
		tbl := NewTable()
		unsub := buf.Subscribe(tbl.Adjust)
		defer unsub()

		line := rapid.IntRange(1, n).Draw(t, "mark")
		if err := tbl.Set('m', buffer.Pos(line, 1)); err != nil {
			t.Fatal(err)
		}
		text := buf.Line(line)

		start := rapid.IntRange(1, n+1).Draw(t, "start")
		end := rapid.IntRange(start-1, n).Draw(t, "end")
		repl := rapid.SliceOfN(rapid.StringMatching(`[0-9]`), 0, 3).Draw(t, "new")
		if _, err := buf.SetLines(start, end, repl); err != nil {
			t.Fatalf("SetLines: %v", err)
		}

		p, ok := tbl.Mark('m')
		if !ok {
			if line < start || line > end {
				t.Fatalf("mark on untouched line %d dropped", line)
			}
			return
		}
		if (line < start || line > end) && buf.Line(p.Line) != text {
			t.Fatalf("mark moved to %q, want %q", buf.Line(p.Line), text)
		}
	})
}
