package operator

import "fmt"

// Op identifies an operator.
type Op uint8

const (
	None Op = iota
	Delete
	Change
	Yank
	ShiftRight
	ShiftLeft
	Reindent
	Format
	ToggleCase
	Lower
	Upper
	Rot13
	Join
	JoinRaw
)

var opKeys = [...]string{
	None:       "",
	Delete:     "d",
	Change:     "c",
	Yank:       "y",
	ShiftRight: ">",
	ShiftLeft:  "<",
	Reindent:   "=",
	Format:     "gq",
	ToggleCase: "g~",
	Lower:      "gu",
	Upper:      "gU",
	Rot13:      "g?",
	Join:       "J",
	JoinRaw:    "gJ",
}

// String returns the keys that invoke the operator.
func (o Op) String() string {
	if int(o) < len(opKeys) {
		return opKeys[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// FromKeys returns the operator typed as keys, such as "d" or "gU".
// J and gJ are commands rather than pending operators and are not
// returned.
func FromKeys(keys string) (Op, bool) {
	for o := Delete; o <= Rot13; o++ {
		if opKeys[o] == keys {
			return o, true
		}
	}
	return None, false
}

// IsChange reports whether the operator modifies the buffer.
func (o Op) IsChange() bool {
	return o != None && o != Yank
}

// OnLines reports whether the operator always acts on whole lines, even
// over a characterwise region.
func (o Op) OnLines() bool {
	switch o {
	case ShiftRight, ShiftLeft, Reindent, Format, Join, JoinRaw:
		return true
	}
	return false
}
