package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphemeStepping(t *testing.T) {
	s := "ae\u0301x" // a, e + combining acute, x
	assert.Equal(t, 1, Next(s, 0))
	assert.Equal(t, 4, Next(s, 1), "combining mark belongs to the previous cluster")
	assert.Equal(t, 1, Prev(s, 4))
	assert.Equal(t, 1, Snap(s, 2))
	assert.Equal(t, 1, Snap(s, 3))
	assert.Equal(t, 4, Last(s))
	assert.Equal(t, 3, Count(s))
	assert.Equal(t, 0, Last(""))
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		r       rune
		bigWord bool
		want    Class
	}{
		{' ', false, Blank},
		{'\t', true, Blank},
		{'a', false, Word},
		{'_', false, Word},
		{'9', false, Word},
		{'.', false, Punct},
		{'(', false, Punct},
		{'.', true, Word},
		{'-', true, Word},
		{'é', false, Word},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassOf(tt.r, tt.bigWord), "rune %q bigWord=%v", tt.r, tt.bigWord)
	}
}

func TestVirtualColumns(t *testing.T) {
	s := "\tab"
	assert.Equal(t, 0, VirtCol(s, 0, 8))
	assert.Equal(t, 8, VirtCol(s, 1, 8))
	assert.Equal(t, 7, VirtEnd(s, 0, 8))
	assert.Equal(t, 10, Width(s, 8))

	idx, past := IndexAtVirtCol(s, 5, 8)
	assert.Equal(t, 0, idx, "column inside the tab maps to the tab")
	assert.Equal(t, 0, past)

	idx, past = IndexAtVirtCol(s, 12, 8)
	assert.Equal(t, len(s), idx)
	assert.Equal(t, 2, past)

	wide := "日本"
	assert.Equal(t, 2, VirtCol(wide, 3, 8))
	idx, _ = IndexAtVirtCol(wide, 3, 8)
	assert.Equal(t, 3, idx)
}

func TestFirstNonBlank(t *testing.T) {
	assert.Equal(t, 2, FirstNonBlank("  foo"))
	assert.Equal(t, 2, FirstNonBlank("   "))
	assert.Equal(t, 0, FirstNonBlank(""))
	assert.Equal(t, "\t ", Indent("\t x"))
}
