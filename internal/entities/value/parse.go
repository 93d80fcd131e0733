package value

import (
	"strconv"
	"strings"

	"github.com/arychagov/w40k/internal/errors"
)

// Limits on parsed text. They keep a single evaluation cheap and bounded.
const (
	MaxConstant = 1_000_000
	MaxDice     = 100
	MaxSides    = 1000
	MaxTerms    = 100
)

// Parse reads the textual grammar:
//
//	digits        constant
//	NdM, dM       M-sided die, N copies (N defaults to one)
//	<a> + <b>     sum, each side parsed recursively
//
// Input is trimmed and case-insensitive. Constants above MaxConstant, more
// than MaxDice dice, dice above MaxSides and sums of more than MaxTerms terms
// are rejected.
func Parse(text string) (Value, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	if isDigits(trimmed) {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidExpression,
				"cannot parse value "+strconv.Quote(text))
		}
		if n > MaxConstant {
			return nil, errors.InvalidExpressionf("cannot parse value %q: above %d", text, MaxConstant)
		}
		return Constant(n), nil
	}

	if strings.Contains(trimmed, "+") {
		parts := strings.Split(trimmed, "+")
		if len(parts) > MaxTerms {
			return nil, errors.InvalidExpressionf("cannot parse value %q: more than %d terms", text, MaxTerms)
		}
		sum := make(Sum, 0, len(parts))
		for _, part := range parts {
			term, err := Parse(part)
			if err != nil {
				return nil, err
			}
			sum = append(sum, term)
		}
		return sum, nil
	}

	if strings.Contains(trimmed, "d") {
		return parseDice(text, trimmed)
	}

	return nil, errors.InvalidExpressionf("cannot parse value %q", text)
}

// MustParse is like Parse but panics on error. For literals in code and tests.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parseDice(text, trimmed string) (Value, error) {
	parts := strings.Split(trimmed, "d")
	if len(parts) != 2 || !isDigits(parts[1]) {
		return nil, errors.InvalidExpressionf("cannot parse value %q", text)
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil || sides < 1 || sides > MaxSides {
		return nil, errors.InvalidExpressionf("cannot parse value %q: die size must be 1 to %d", text, MaxSides)
	}

	if parts[0] == "" {
		return Die(sides), nil
	}
	if !isDigits(parts[0]) {
		return nil, errors.InvalidExpressionf("cannot parse value %q", text)
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil || count > MaxDice {
		return nil, errors.InvalidExpressionf("cannot parse value %q: at most %d dice", text, MaxDice)
	}

	sum := make(Sum, count)
	for i := range sum {
		sum[i] = Die(sides)
	}
	return sum, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
