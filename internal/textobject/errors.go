package textobject

import "errors"

// ErrNoObjectAtCursor indicates there is no instance of the object around
// the cursor.
var ErrNoObjectAtCursor = errors.New("no object at cursor")
