package value

import (
	"strconv"
	"strings"
)

// Increase steps an expression text up by one. A number is incremented,
// the last "+" term is increased, and any other atom gets a " + 1" term.
func Increase(text string) string {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	switch {
	case isDigits(trimmed):
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return text
		}
		return strconv.Itoa(n + 1)
	case strings.Contains(trimmed, "+"):
		lhs, rhs := splitSum(trimmed)
		return lhs + " + " + Increase(rhs)
	default:
		return strings.TrimSpace(text) + " + 1"
	}
}

// Decrease steps an expression text down by one. Numbers floor at 1, or at
// 0 when belowOne is set. A "+ 1" term is removed entirely. Text of any other
// shape is returned unchanged.
func Decrease(text string, belowOne bool) string {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	switch {
	case isDigits(trimmed):
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return text
		}
		if n < 2 {
			if belowOne {
				return "0"
			}
			return "1"
		}
		return strconv.Itoa(n - 1)
	case strings.Contains(trimmed, "+"):
		lhs, rhs := splitSum(trimmed)
		if rhs == "1" {
			return lhs
		}
		return lhs + " + " + Decrease(rhs, false)
	default:
		return text
	}
}

// splitSum splits at the first "+" so the right side keeps any further terms.
// Stepping "d6 + 1 + 1" up gives "d6 + 1 + 2".
func splitSum(s string) (string, string) {
	lhs, rhs, _ := strings.Cut(s, "+")
	return strings.TrimSpace(lhs), strings.TrimSpace(rhs)
}
