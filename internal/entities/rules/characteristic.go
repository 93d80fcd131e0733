package rules

import (
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
)

// Ordering selects how characteristic changes compare roll and threshold.
// Profiles built from fields apply it to strength and damage changes only.
type Ordering int

const (
	// OrderingLegacy triggers when threshold >= roll. It is the default for
	// strength and damage changes.
	OrderingLegacy Ordering = iota
	// OrderingAtLeast triggers when roll >= threshold, like every other rule
	OrderingAtLeast
)

// ParseOrdering reads legacy or at_least
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "legacy":
		return OrderingLegacy, nil
	case "at_least":
		return OrderingAtLeast, nil
	default:
		return OrderingLegacy, errors.InvalidConfigurationf("unknown modifier threshold ordering %q", s)
	}
}

func (o Ordering) String() string {
	if o == OrderingAtLeast {
		return "at_least"
	}
	return "legacy"
}

// Modification selects how a characteristic change alters its base value
type Modification int

const (
	ModificationNone Modification = iota
	ModificationAdd
	ModificationReplace
)

// ParseModification reads one of no, add, replace
func ParseModification(s string) (Modification, error) {
	switch s {
	case "no":
		return ModificationNone, nil
	case "add":
		return ModificationAdd, nil
	case "replace":
		return ModificationReplace, nil
	default:
		return ModificationNone, errors.InvalidConfigurationf("unknown modification %q", s)
	}
}

func (m Modification) String() string {
	switch m {
	case ModificationAdd:
		return "add"
	case ModificationReplace:
		return "replace"
	default:
		return "no"
	}
}

// CharacteristicChange adds to or replaces strength, penetration or damage
// when the roll meets Threshold.
type CharacteristicChange struct {
	Mode      Modification
	Threshold int
	Amount    value.Value
	Ordering  Ordering
}

func (c CharacteristicChange) triggered(roll int) bool {
	if c.Ordering == OrderingAtLeast {
		return roll >= c.Threshold
	}
	return c.Threshold >= roll
}

// Apply returns the characteristic after the change for roll
func (c CharacteristicChange) Apply(roll int, base value.Value) value.Value {
	if c.Mode == ModificationNone || !c.triggered(roll) {
		return base
	}
	if c.Mode == ModificationAdd {
		return value.Add(base, c.Amount)
	}
	return c.Amount
}
