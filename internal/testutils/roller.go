package testutils

import (
	"sync"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

var _ dice.Roller = (*ScriptedRoller)(nil)

// ScriptedRoller returns a fixed sequence of rolls, ignoring the die size.
// Running out of rolls fails the test.
type ScriptedRoller struct {
	t     testing.TB
	mu    sync.Mutex
	rolls []int
	next  int
}

// NewScriptedRoller creates a roller that yields rolls in order
func NewScriptedRoller(t testing.TB, rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{t: t, rolls: rolls}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.rolls) {
		r.t.Fatalf("scripted roller exhausted after %d rolls (size %d)", len(r.rolls), size)
		return 0, nil
	}

	v := r.rolls[r.next]
	r.next++

	return v, nil
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	results := make([]int, count)
	for i := range results {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}

	return results, nil
}

// Remaining reports how many scripted rolls have not been consumed
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rolls) - r.next
}
