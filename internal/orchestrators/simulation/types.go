package simulation

import (
	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/stats"
)

// SimulateInput defines one batch of trials
type SimulateInput struct {
	Attacker combat.Attacker
	Defender combat.Defender
	// Trials defaults to the service's configured batch size when zero
	Trials int
	// Seed makes the batch reproducible; nil draws a fresh seed
	Seed *uint64
}

// SimulateOutput defines the result of a completed batch
type SimulateOutput struct {
	Summary stats.Summary
	Seed    uint64
}
