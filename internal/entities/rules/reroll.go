package rules

import (
	"github.com/arychagov/w40k/internal/errors"
)

// Reroll selects which failed rolls may be rolled again
type Reroll int

const (
	RerollNone Reroll = iota
	RerollOnes
	RerollSingle
	RerollAll
)

var rerollNames = map[Reroll]string{
	RerollNone:   "no",
	RerollOnes:   "ones",
	RerollSingle: "single",
	RerollAll:    "all",
}

func (r Reroll) String() string {
	if name, ok := rerollNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseReroll reads one of no, ones, single, all
func ParseReroll(s string) (Reroll, error) {
	for r, name := range rerollNames {
		if name == s {
			return r, nil
		}
	}
	return RerollNone, errors.InvalidConfigurationf("unknown reroll %q", s)
}

// NewTracker returns fresh reroll state for one phase of one trial
func (r Reroll) NewTracker() *RerollTracker {
	return &RerollTracker{rule: r}
}

// RerollTracker answers reroll requests for a single phase. A single-use
// reroll is granted at most once per tracker.
type RerollTracker struct {
	rule Reroll
	used bool
}

// CanReroll decides whether the failed roll may be rolled again
func (t *RerollTracker) CanReroll(roll int) bool {
	switch t.rule {
	case RerollAll:
		return true
	case RerollOnes:
		return roll == 1
	case RerollSingle:
		if t.used {
			return false
		}
		t.used = true
		return true
	default:
		return false
	}
}
