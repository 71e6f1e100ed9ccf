package register

// Kind categorizes registers by their behavior.
type Kind uint8

const (
	// KindInvalid is returned for runes that name no register.
	KindInvalid Kind = iota

	// KindUnnamed is the default register (").
	KindUnnamed

	// KindNamed is a named register (a-z).
	KindNamed

	// KindAppend is an uppercase named register (A-Z) that appends.
	KindAppend

	// KindYank is the yank register (0).
	KindYank

	// KindNumbered is a delete history register (1-9).
	KindNumbered

	// KindSmallDelete is the small delete register (-).
	KindSmallDelete

	// KindBlackHole is the black hole register (_).
	KindBlackHole

	// KindReadOnly covers . % # : and /.
	KindReadOnly

	// KindExpression is the expression register (=).
	KindExpression

	// KindClipboard covers the system clipboard (+) and selection (*).
	KindClipboard
)

// Unnamed is the name of the unnamed register.
const Unnamed = '"'

// KindOf returns the kind of register for a given name.
func KindOf(name rune) Kind {
	switch {
	case name == '"':
		return KindUnnamed
	case name >= 'a' && name <= 'z':
		return KindNamed
	case name >= 'A' && name <= 'Z':
		return KindAppend
	case name == '0':
		return KindYank
	case name >= '1' && name <= '9':
		return KindNumbered
	case name == '-':
		return KindSmallDelete
	case name == '_':
		return KindBlackHole
	case name == '.', name == '%', name == '#', name == ':', name == '/':
		return KindReadOnly
	case name == '=':
		return KindExpression
	case name == '+', name == '*':
		return KindClipboard
	default:
		return KindInvalid
	}
}

// Valid returns true if the register name is valid.
func Valid(name rune) bool {
	return KindOf(name) != KindInvalid
}

// IsReadOnly reports whether user writes to name are rejected.
func IsReadOnly(name rune) bool {
	return KindOf(name) == KindReadOnly
}

// lower maps A-Z onto a-z and leaves every other name alone.
func lower(name rune) rune {
	if name >= 'A' && name <= 'Z' {
		return name + ('a' - 'A')
	}
	return name
}
