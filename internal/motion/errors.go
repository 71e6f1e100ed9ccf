package motion

import "errors"

// ErrNoMatch indicates a motion with no valid target, such as f with no
// occurrence, a failed search, or % with no bracket on the line. The
// cursor does not move.
var ErrNoMatch = errors.New("no match")

// ErrNoMark indicates a jump to a mark that is not set.
var ErrNoMark = errors.New("mark not set")
