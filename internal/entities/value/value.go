// Package value models the numeric characteristics of a profile: fixed
// numbers, dice and sums of both. Values are sampled on every evaluation.
package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Value is an expression that evaluates to an integer.
// Random parts are resampled on every call to Eval.
type Value interface {
	Eval(roller dice.Roller) int
	String() string
}

// None is the absence marker. It evaluates to zero but is distinguishable
// from an explicit Constant(0).
var None Value = none{}

// D6 is a single six-sided die
var D6 Value = UniformDie{Low: 1, High: 6}

type none struct{}

func (none) Eval(dice.Roller) int { return 0 }

func (none) String() string { return "none" }

// IsNone reports whether v is the absence marker
func IsNone(v Value) bool {
	_, ok := v.(none)
	return ok
}

// Constant is a fixed number
type Constant int

// Eval returns the constant
func (c Constant) Eval(dice.Roller) int { return int(c) }

func (c Constant) String() string { return fmt.Sprintf("%d", int(c)) }

// UniformDie samples uniformly from the inclusive range [Low, High]
type UniformDie struct {
	Low  int
	High int
}

// Die returns a UniformDie from 1 to sides
func Die(sides int) UniformDie {
	return UniformDie{Low: 1, High: sides}
}

// Eval rolls the die once. A die with Low > High or a failing roller is a
// programming error and panics.
func (d UniformDie) Eval(roller dice.Roller) int {
	if d.Low > d.High {
		panic(fmt.Sprintf("value: invalid die range [%d, %d]", d.Low, d.High))
	}

	n, err := roller.Roll(d.High - d.Low + 1)
	if err != nil {
		panic(fmt.Sprintf("value: roll %s: %v", d, err))
	}

	return d.Low - 1 + n
}

func (d UniformDie) String() string {
	if d.Low == 1 {
		return fmt.Sprintf("d%d", d.High)
	}
	return fmt.Sprintf("d[%d..%d]", d.Low, d.High)
}

// Sum adds every term, each term evaluated independently
type Sum []Value

// Eval evaluates and adds all terms
func (s Sum) Eval(roller dice.Roller) int {
	total := 0
	for _, term := range s {
		total += term.Eval(roller)
	}
	return total
}

func (s Sum) String() string {
	parts := make([]string, len(s))
	for i, term := range s {
		parts[i] = term.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// Max returns the largest result v can evaluate to. Unknown implementations
// report math.MaxInt.
func Max(v Value) int {
	switch v := v.(type) {
	case none:
		return 0
	case Constant:
		return int(v)
	case UniformDie:
		return v.High
	case Sum:
		total := 0
		for _, term := range v {
			m := Max(term)
			if m > math.MaxInt-total {
				return math.MaxInt
			}
			total += m
		}
		return total
	default:
		return math.MaxInt
	}
}

// Add returns the sum of a and b
func Add(a, b Value) Value {
	return Sum{a, b}
}
