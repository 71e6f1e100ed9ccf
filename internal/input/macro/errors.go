package macro

import "errors"

var (
	// ErrInvalidRegister is returned for a register that cannot hold or
	// supply a macro.
	ErrInvalidRegister = errors.New("invalid macro register")

	// ErrAlreadyRecording is returned when recording starts twice.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrNotRecording is returned by StopRecording outside a recording.
	ErrNotRecording = errors.New("not recording")

	// ErrEmptyRegister is returned when the register holds no keys.
	ErrEmptyRegister = errors.New("empty macro register")

	// ErrNoLastMacro is returned by @@ before any macro was played.
	ErrNoLastMacro = errors.New("no previously used register")

	// ErrRecursionLimit is returned when macros nest deeper than MaxDepth.
	ErrRecursionLimit = errors.New("macro recursion too deep")
)
