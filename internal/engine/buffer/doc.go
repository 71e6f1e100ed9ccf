// Package buffer provides the line-oriented text store used by the editing
// core.
//
// A Buffer is an ordered sequence of lines. It always holds at least one
// line: an empty buffer is a single empty line. Lines are addressed with
// 1-indexed line numbers and byte columns are 1-indexed as well, matching
// the coordinates a user sees in the status line.
//
// Every successful mutation increments the buffer's tick (modification
// counter) and is reported to subscribers as a Change:
//
//	buf := buffer.NewBufferFromString("foo bar\nbaz")
//	unsub := buf.Subscribe(func(c buffer.Change) {
//	    fmt.Println("changed", c.Start, c.End, c.NewLines)
//	})
//	defer unsub()
//
//	delta, err := buf.SetLines(1, 1, []string{"bar"})
//
// Region describes the span an operator acts on. It carries its wise-ness
// (characterwise, linewise or blockwise) and, for characterwise regions,
// whether the end position is included.
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Subscribers are invoked
// after the write lock is released, in the goroutine that made the change.
package buffer
