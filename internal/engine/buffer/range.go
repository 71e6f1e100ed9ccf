package buffer

import "fmt"

// Wise is the shape of a region or register value.
type Wise uint8

const (
	Charwise Wise = iota
	Linewise
	Blockwise
)

// String returns the Vim name of the wise-ness.
func (w Wise) String() string {
	switch w {
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "characterwise"
	}
}

// Region is the span an operator acts on.
//
// For blockwise regions StartVCol and EndVCol hold the 0-based display
// columns of the rectangle. EndVCol == MaxCol extends every line to its end.
type Region struct {
	Start     Position
	End       Position
	Wise      Wise
	Inclusive bool

	StartVCol int
	EndVCol   int
}

// MaxCol marks a column that extends to the end of the line.
const MaxCol = int(^uint(0) >> 1)

// CharRegion returns a characterwise region.
func CharRegion(start, end Position, inclusive bool) Region {
	return Region{Start: start, End: end, Wise: Charwise, Inclusive: inclusive}
}

// LineRegion returns a linewise region covering lines first..last.
func LineRegion(first, last int) Region {
	return Region{Start: Pos(first, 1), End: Pos(last, 1), Wise: Linewise, Inclusive: true}
}

// BlockRegion returns a blockwise region between two corners given as
// positions plus display columns.
func BlockRegion(start, end Position, startVCol, endVCol int) Region {
	return Region{Start: start, End: end, Wise: Blockwise, Inclusive: true, StartVCol: startVCol, EndVCol: endVCol}
}

// String returns a human-readable representation of the region.
func (r Region) String() string {
	incl := "exclusive"
	if r.Inclusive {
		incl = "inclusive"
	}
	return fmt.Sprintf("%s..%s %s %s", r.Start, r.End, r.Wise, incl)
}

// Normalize returns the region in forward order. Block columns are
// ordered independently of the line order.
func (r Region) Normalize() Region {
	if r.End.Before(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	if r.Wise == Blockwise && r.EndVCol < r.StartVCol {
		r.StartVCol, r.EndVCol = r.EndVCol, r.StartVCol
	}
	return r
}

// FirstLine returns the smaller line of the region.
func (r Region) FirstLine() int {
	return min(r.Start.Line, r.End.Line)
}

// LastLine returns the larger line of the region.
func (r Region) LastLine() int {
	return max(r.Start.Line, r.End.Line)
}

// LineCount returns the number of lines the region touches.
func (r Region) LineCount() int {
	return r.LastLine() - r.FirstLine() + 1
}

// IsEmpty reports whether a characterwise exclusive region covers nothing.
func (r Region) IsEmpty() bool {
	return r.Wise == Charwise && !r.Inclusive && r.Start == r.End
}
