package operator

import "errors"

// Errors returned by the operator engine.
var (
	// ErrInvalidMotionForOperator indicates a target the operator cannot
	// act on, such as a block region for J or a search with no pattern.
	ErrInvalidMotionForOperator = errors.New("invalid motion for operator")

	// ErrNoPreviousChange indicates dot-repeat with nothing to repeat.
	ErrNoPreviousChange = errors.New("no previous change")

	// ErrEmptyRegister indicates a put from a register holding nothing.
	ErrEmptyRegister = errors.New("nothing in register")

	// ErrNotInserting indicates EndInsert without a matching BeginInsert.
	ErrNotInserting = errors.New("no insert in progress")

	// ErrInsertActive indicates a second BeginInsert before EndInsert.
	ErrInsertActive = errors.New("insert already in progress")
)
