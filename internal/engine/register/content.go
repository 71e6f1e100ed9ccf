package register

import (
	"strings"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// Content is the value held by a register.
type Content struct {
	Lines []string
	Wise  buffer.Wise

	// Width is the display width of a blockwise value.
	Width int
}

// Chars returns characterwise content. Embedded newlines split lines.
func Chars(s string) Content {
	return Content{Lines: strings.Split(s, "\n"), Wise: buffer.Charwise}
}

// LinesOf returns linewise content.
func LinesOf(lines ...string) Content {
	return Content{Lines: append([]string(nil), lines...), Wise: buffer.Linewise}
}

// Block returns blockwise content of the given width.
func Block(lines []string, width int) Content {
	return Content{Lines: append([]string(nil), lines...), Wise: buffer.Blockwise, Width: width}
}

// FromText interprets clipboard-style text: a trailing newline makes the
// value linewise.
func FromText(s string) Content {
	if s == "" {
		return Content{}
	}
	if strings.HasSuffix(s, "\n") {
		return LinesOf(strings.Split(strings.TrimSuffix(s, "\n"), "\n")...)
	}
	return Chars(s)
}

// IsEmpty reports whether the content holds no text.
func (c Content) IsEmpty() bool {
	return len(c.Lines) == 0 || (len(c.Lines) == 1 && c.Lines[0] == "" && c.Wise != buffer.Linewise)
}

// String joins the lines. Linewise content ends with a newline.
func (c Content) String() string {
	s := strings.Join(c.Lines, "\n")
	if c.Wise == buffer.Linewise {
		s += "\n"
	}
	return s
}

// Clone returns a deep copy.
func (c Content) Clone() Content {
	c.Lines = append([]string(nil), c.Lines...)
	return c
}

// Append returns c followed by other. Two characterwise values join on
// the same line; otherwise other starts on a new line and the result is
// linewise if either side is.
func (c Content) Append(other Content) Content {
	if c.IsEmpty() {
		return other.Clone()
	}
	out := c.Clone()
	if c.Wise == buffer.Charwise && other.Wise == buffer.Charwise {
		last := len(out.Lines) - 1
		out.Lines[last] += other.Lines[0]
		out.Lines = append(out.Lines, other.Lines[1:]...)
		return out
	}
	out.Lines = append(out.Lines, other.Lines...)
	switch {
	case c.Wise == buffer.Linewise || other.Wise == buffer.Linewise:
		out.Wise = buffer.Linewise
	case other.Wise == buffer.Blockwise:
		out.Width = max(out.Width, other.Width)
	}
	return out
}
