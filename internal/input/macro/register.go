package macro

// CanRecord reports whether q can record into r: a letter, where uppercase
// appends, a digit, or the unnamed register.
func CanRecord(r rune) bool {
	return IsLetterRegister(r) || IsAppendRegister(r) || IsDigitRegister(r) || r == '"'
}

// CanPlay reports whether @ can play r. Besides the recordable registers
// this includes the read-only registers, the clipboard and @ for the last
// played macro.
func CanPlay(r rune) bool {
	switch r {
	case '@', ':', '.', '-', '*', '+', '/':
		return true
	}
	return CanRecord(r)
}

// IsLetterRegister returns true if r is a letter register (a-z).
func IsLetterRegister(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// IsDigitRegister returns true if r is a digit register (0-9).
func IsDigitRegister(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsAppendRegister returns true if r is an uppercase letter (A-Z).
// In Vim, uppercase letters append to the corresponding lowercase register.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Normalize converts a register to the name its macro is stored under.
func Normalize(r rune) rune {
	if IsAppendRegister(r) {
		return r + ('a' - 'A')
	}
	return r
}
