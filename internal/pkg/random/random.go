// Package random provides seeded dice rollers for reproducible simulations.
package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/arychagov/w40k/internal/errors"
)

var _ dice.Roller = (*Roller)(nil)

// Roller is a dice.Roller backed by a PCG stream. The same seed always
// produces the same sequence of rolls.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller creates a roller for the given seed
func NewRoller(seed uint64) *Roller {
	return &Roller{rng: rand.New(rand.NewPCG(seed, 0))}
}

// Roll returns a value in [1, size]
func (r *Roller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *Roller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	if size <= 0 {
		return nil, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]int, count)
	for i := range results {
		results[i] = r.rng.IntN(size) + 1
	}

	return results, nil
}

// NewSeed draws a fresh seed from the system entropy source
func NewSeed() uint64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Uint64()
	}

	return binary.BigEndian.Uint64(buf[:])
}
