package vim

import "errors"

// ErrUnknownCommand is returned for a key sequence that names no command.
var ErrUnknownCommand = errors.New("unknown command")
