// Package rules holds the modifier rules a profile can carry into the hit
// and wound phases. Every rule is an immutable value; the only per-trial
// state lives in RerollTracker.
package rules

import (
	"github.com/arychagov/w40k/internal/entities/value"
)

// DefaultThreshold is the roll a freshly enabled rule triggers on
const DefaultThreshold = 6

// AutoHit turns every attack into a hit without rolling
type AutoHit struct {
	Always bool
}

// AdditionalHits grants Bonus extra hits on a roll of Threshold or more
type AdditionalHits struct {
	Active    bool
	Threshold int
	Bonus     value.Value
}

// Extra returns the bonus hits for roll, or value.None
func (r AdditionalHits) Extra(roll int) value.Value {
	if r.Active && roll >= r.Threshold {
		return r.Bonus
	}
	return value.None
}

// AutoWound sends a hit straight to the save phase on a roll of Threshold or more
type AutoWound struct {
	Active    bool
	Threshold int
}

// Triggered reports whether roll skips the wound roll
func (r AutoWound) Triggered(roll int) bool {
	return r.Active && roll >= r.Threshold
}

// MortalWounds produces Amount damage that bypasses saves on a roll of
// Threshold or more
type MortalWounds struct {
	Active    bool
	Threshold int
	Amount    value.Value
}

// On returns the mortal wounds produced by roll, or value.None
func (r MortalWounds) On(roll int) value.Value {
	if r.Active && roll >= r.Threshold {
		return r.Amount
	}
	return value.None
}

// Filter drops value.None entries. An explicit zero is kept.
func Filter(mortalWounds []value.Value) []value.Value {
	out := make([]value.Value, 0, len(mortalWounds))
	for _, v := range mortalWounds {
		if !value.IsNone(v) {
			out = append(out, v)
		}
	}
	return out
}
