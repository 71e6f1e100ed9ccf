package expr

import "errors"

var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("evaluator closed")

	// ErrTimeout is returned when an expression runs past its time limit.
	ErrTimeout = errors.New("expression timed out")

	// ErrUnsupportedValue is returned for results that have no text form,
	// such as functions.
	ErrUnsupportedValue = errors.New("expression value has no text form")
)
