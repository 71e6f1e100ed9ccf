package register

import "errors"

// Errors returned by register operations.
var (
	// ErrReadOnlyRegister indicates a write to . % # : or /.
	ErrReadOnlyRegister = errors.New("register is read-only")

	// ErrInvalidRegister indicates a name that is not a register.
	ErrInvalidRegister = errors.New("invalid register")

	// ErrNoEvaluator indicates the expression register has no evaluator.
	ErrNoEvaluator = errors.New("no expression evaluator")
)
