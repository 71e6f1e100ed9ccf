package editor

import "errors"

var (
	// ErrNoPreviousSelection is returned by gv before any Visual selection.
	ErrNoPreviousSelection = errors.New("no previous visual selection")

	// ErrNoExHandler is returned for a : command when no Ex handler is
	// installed.
	ErrNoExHandler = errors.New("no ex command handler")

	// ErrBusy is returned by entry points that need Normal mode when the
	// session is in another mode.
	ErrBusy = errors.New("session is not in normal mode")

	// ErrBadState is returned by ImportState for malformed state.
	ErrBadState = errors.New("invalid session state")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session closed")
)
