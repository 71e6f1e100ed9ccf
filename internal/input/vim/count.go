package vim

import "math"

// maxCount caps counts so multiplying them cannot overflow.
const maxCount = math.MaxInt32

// CountState accumulates the digits of one count.
type CountState struct {
	Value  int
	Active bool
}

// Reset clears the count.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit and reports whether r was taken. A leading
// 0 is not a digit; it is the line start motion.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true
	if c.Value > (maxCount-digit)/10 {
		c.Value = maxCount
		return true
	}
	c.Value = c.Value*10 + digit
	return true
}

// IsCountStart reports whether r can start a count.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// CombineCounts multiplies two counts, treating 0 as 1, with the product
// capped.
func CombineCounts(a, b int) int {
	a, b = max(a, 1), max(b, 1)
	if a > maxCount/b {
		return maxCount
	}
	return a * b
}
