package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/pkg/random"
)

type engine struct {
	roller dice.Roller
}

// Config holds the dependencies for the engine
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// New creates an engine rolling with cfg.Roller
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{roller: cfg.Roller}, nil
}

// NewSeeded creates an engine with a reproducible roller
func NewSeeded(seed uint64) (Engine, error) {
	return New(&Config{Roller: random.NewRoller(seed)})
}

// PassValue is the wound roll needed for strength against toughness
func PassValue(toughness, strength int) int {
	switch {
	case toughness*2 <= strength:
		return 2
	case toughness < strength:
		return 3
	case toughness == strength:
		return 4
	case toughness >= strength*2:
		return 6
	default:
		return 5
	}
}

func (e *engine) d6() int {
	n, err := e.roller.Roll(6)
	if err != nil {
		panic(fmt.Sprintf("engine: roll d6: %v", err))
	}
	return n
}

func (e *engine) eval(v value.Value) int {
	return v.Eval(e.roller)
}

func transhumanFails(enabled bool, roll int) bool {
	return enabled && roll <= combat.TranshumanFloor
}

func bonus(enabled bool) int {
	if enabled {
		return 1
	}
	return 0
}

// DoHit rolls every attack. Failed rolls are offered to the reroll rule
// once, after the initial attacks are resolved; granted rerolls become new
// attempts whose results are final.
func (e *engine) DoHit(attacker *combat.Attacker, defender *combat.Defender) *combat.AttackResult {
	result := &combat.AttackResult{}
	var mortalWounds []value.Value
	var failed []int
	tracker := attacker.HitReroll.NewTracker()

	attempts := e.eval(attacker.Attacks)
	firstRoll := true
	for attempts > 0 {
		for i := 0; i < attempts; i++ {
			if attacker.AutoHit.Always {
				result.Hits = append(result.Hits, combat.Hit{
					Strength:    attacker.Strength,
					Penetration: attacker.Penetration,
					Damage:      attacker.Damage,
				})
				continue
			}

			roll := e.d6()
			if transhumanFails(defender.HitTranshuman, roll) ||
				roll == 1 || (roll != 6 && roll+bonus(attacker.PlusOneToHit) < attacker.Skill) {
				failed = append(failed, roll)
				continue
			}

			hit := combat.Hit{
				Strength:    attacker.HitStrength.Apply(roll, attacker.Strength),
				Penetration: attacker.HitPenetration.Apply(roll, attacker.Penetration),
				Damage:      attacker.HitDamage.Apply(roll, attacker.Damage),
			}
			mortalWounds = append(mortalWounds, attacker.HitMortalWounds.On(roll))

			if attacker.AutoWound.Triggered(roll) {
				result.AutoWoundHits = append(result.AutoWoundHits, hit)
				continue
			}

			copies := e.eval(attacker.AdditionalHits.Extra(roll)) + 1
			for j := 0; j < copies; j++ {
				result.Hits = append(result.Hits, hit)
			}
		}

		attempts = 0
		if firstRoll {
			for _, roll := range failed {
				if tracker.CanReroll(roll) {
					attempts++
				}
			}
			firstRoll = false
		}
	}

	result.MortalWounds = rules.Filter(mortalWounds)
	return result
}

// DoWound rolls to wound for each normal hit. Auto-wounding hits and mortal
// wounds pass through. A failed wound roll may be rerolled once; the reroll
// only needs to meet the pass value. The wound transhuman floor fails both
// the first roll and the reroll.
func (e *engine) DoWound(
	attacker *combat.Attacker,
	hits *combat.AttackResult,
	defender *combat.Defender,
) *combat.WoundResult {
	mortalWounds := append([]value.Value{}, hits.MortalWounds...)
	wounded := append([]combat.Hit{}, hits.AutoWoundHits...)
	tracker := attacker.WoundReroll.NewTracker()

	toughness := e.eval(defender.Toughness)
	for _, hit := range hits.Hits {
		roll := e.d6()
		pass := PassValue(toughness, e.eval(hit.Strength))

		success := !transhumanFails(defender.WoundTranshuman, roll) &&
			roll != 1 && (roll == 6 || roll+bonus(attacker.PlusOneToWound) >= pass)

		if !success {
			if !tracker.CanReroll(roll) {
				continue
			}
			roll = e.d6()
			if transhumanFails(defender.WoundTranshuman, roll) || roll < pass {
				continue
			}
		}

		wounded = append(wounded, combat.Hit{
			Strength:    hit.Strength,
			Penetration: attacker.WoundPenetration.Apply(roll, hit.Penetration),
			Damage:      attacker.WoundDamage.Apply(roll, hit.Damage),
		})
		mortalWounds = append(mortalWounds, attacker.WoundMortalWounds.On(roll))
	}

	return &combat.WoundResult{
		MortalWounds: rules.Filter(mortalWounds),
		Hits:         wounded,
	}
}

// DoSave rolls a save for each wound and returns the damage that gets
// through, after damage reduction and feel-no-pain.
func (e *engine) DoSave(defender *combat.Defender, wounds *combat.WoundResult) int {
	taken := append([]value.Value{}, wounds.MortalWounds...)

	save := e.eval(defender.Save)
	for _, hit := range wounds.Hits {
		target := min(save+e.eval(hit.Penetration), e.eval(defender.InvulnerableSave))
		roll := e.d6()
		if roll == 1 || roll < target {
			taken = append(taken, hit.Damage)
		}
	}

	total := 0
	for _, damage := range taken {
		total += max(1, e.eval(damage)-e.eval(defender.DamageDecrease))
	}

	if !defender.FeelsNoPain() {
		return total
	}

	// each point survives unless its roll reaches the feel-no-pain threshold
	survived := 0
	for i := 0; i < total; i++ {
		if e.d6() < defender.FeelNoPain {
			survived++
		}
	}
	return survived
}

// Sequence runs hit, wound and save for one trial
func (e *engine) Sequence(attacker *combat.Attacker, defender *combat.Defender) int {
	hits := e.DoHit(attacker, defender)
	wounds := e.DoWound(attacker, hits, defender)
	return e.DoSave(defender, wounds)
}
