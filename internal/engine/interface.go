// Package engine resolves one attack sequence: hit, wound and save.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/arychagov/w40k/internal/engine Engine

import (
	"github.com/arychagov/w40k/internal/entities/combat"
)

// Engine runs the three resolution phases. Implementations are not safe for
// concurrent use because they share one dice roller.
type Engine interface {
	// DoHit rolls to hit for every attack
	DoHit(attacker *combat.Attacker, defender *combat.Defender) *combat.AttackResult
	// DoWound rolls to wound for every normal hit
	DoWound(attacker *combat.Attacker, hits *combat.AttackResult, defender *combat.Defender) *combat.WoundResult
	// DoSave rolls saves and feel-no-pain, returning the damage dealt
	DoSave(defender *combat.Defender, wounds *combat.WoundResult) int

	// Sequence runs one full trial
	Sequence(attacker *combat.Attacker, defender *combat.Defender) int
}
