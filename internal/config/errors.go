package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption indicates an option value outside its domain.
	ErrInvalidOption = errors.New("invalid option")

	// ErrWatcherClosed indicates Watch was called on a closed watcher.
	ErrWatcherClosed = errors.New("watcher closed")
)

// ParseError reports a malformed options file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
