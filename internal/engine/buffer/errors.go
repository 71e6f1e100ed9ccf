package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange indicates a line or column outside the buffer.
	ErrOutOfRange = errors.New("out of range")

	// ErrNotModifiable indicates the buffer is locked against edits.
	ErrNotModifiable = errors.New("buffer is not modifiable")
)

// RangeError describes which line request fell outside the buffer.
type RangeError struct {
	Start, End int
	Lines      int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("lines %d..%d: %v (buffer has %d lines)", e.Start, e.End, ErrOutOfRange, e.Lines)
}

// Unwrap returns ErrOutOfRange so callers can use errors.Is.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
