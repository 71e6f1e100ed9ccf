package mode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition indicates a transition the table forbids.
	ErrInvalidTransition = errors.New("invalid mode transition")

	// ErrNoPendingOperator indicates a key that cannot complete or
	// continue the pending operator. The operator is aborted.
	ErrNoPendingOperator = errors.New("no pending operator")
)

// TransitionError reports a rejected transition.
type TransitionError struct {
	From, To Mode
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Unwrap returns ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
