// Package combat contains the attacker and defender profiles and the
// intermediate results passed between resolution phases.
package combat

import (
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
)

const (
	// NoInvulnerableSave never applies since dice top out at 6
	NoInvulnerableSave = 7
	// NoFeelNoPain disables the feel-no-pain roll
	NoFeelNoPain = 7
	// TranshumanFloor is the highest roll a transhuman defender always ignores
	TranshumanFloor = 4
)

// Upper bounds on the values that drive per-trial work: every attack is
// rolled, every hit copied and every point of damage may get a feel-no-pain
// roll.
const (
	MaxAttacks        = 100
	MaxAdditionalHits = 10
	MaxDamage         = 20
)

// Hit carries the characteristics of one successful swing
type Hit struct {
	Strength    value.Value
	Penetration value.Value
	Damage      value.Value
}

// AttackResult is produced by the hit phase
type AttackResult struct {
	MortalWounds  []value.Value
	Hits          []Hit
	AutoWoundHits []Hit
}

// WoundResult is produced by the wound phase
type WoundResult struct {
	MortalWounds []value.Value
	Hits         []Hit
}

// Attacker is an immutable attacking profile. Rebuild it to change it.
type Attacker struct {
	Attacks     value.Value
	Skill       int
	Strength    value.Value
	Penetration value.Value
	Damage      value.Value

	// hit phase
	HitReroll       rules.Reroll
	AutoHit         rules.AutoHit
	AdditionalHits  rules.AdditionalHits
	AutoWound       rules.AutoWound
	HitMortalWounds rules.MortalWounds
	HitPenetration  rules.CharacteristicChange
	HitStrength     rules.CharacteristicChange
	HitDamage       rules.CharacteristicChange
	PlusOneToHit    bool

	// wound phase
	WoundReroll       rules.Reroll
	WoundMortalWounds rules.MortalWounds
	WoundPenetration  rules.CharacteristicChange
	WoundDamage       rules.CharacteristicChange
	PlusOneToWound    bool
}

// Validate checks the profile is structurally complete
func (a *Attacker) Validate() error {
	vb := errors.NewValidationBuilder()

	requireValue(vb, "attacks", a.Attacks)
	requireValue(vb, "strength", a.Strength)
	requireValue(vb, "penetration", a.Penetration)
	requireValue(vb, "damage", a.Damage)
	errors.ValidateRange("skill", a.Skill, 2, 6, vb)
	limitValue(vb, "attacks", a.Attacks, MaxAttacks)
	limitValue(vb, "damage", a.Damage, MaxDamage)

	if a.AdditionalHits.Active {
		requireValue(vb, "additional_hits.value", a.AdditionalHits.Bonus)
		limitValue(vb, "additional_hits.value", a.AdditionalHits.Bonus, MaxAdditionalHits)
	}
	if a.HitMortalWounds.Active {
		requireValue(vb, "hit_mortal_wounds.value", a.HitMortalWounds.Amount)
		limitValue(vb, "hit_mortal_wounds.value", a.HitMortalWounds.Amount, MaxDamage)
	}
	if a.WoundMortalWounds.Active {
		requireValue(vb, "wound_mortal_wounds.value", a.WoundMortalWounds.Amount)
		limitValue(vb, "wound_mortal_wounds.value", a.WoundMortalWounds.Amount, MaxDamage)
	}
	for field, change := range map[string]rules.CharacteristicChange{
		"hit_damage.value":   a.HitDamage,
		"wound_damage.value": a.WoundDamage,
	} {
		if change.Mode != rules.ModificationNone {
			limitValue(vb, field, change.Amount, MaxDamage)
		}
	}
	for field, change := range map[string]rules.CharacteristicChange{
		"hit_penetration.value":   a.HitPenetration,
		"hit_strength.value":      a.HitStrength,
		"hit_damage.value":        a.HitDamage,
		"wound_penetration.value": a.WoundPenetration,
		"wound_damage.value":      a.WoundDamage,
	} {
		if change.Mode != rules.ModificationNone {
			requireValue(vb, field, change.Amount)
		}
	}

	return vb.Build()
}

// Defender is an immutable defending profile
type Defender struct {
	Toughness        value.Value
	Save             value.Value
	InvulnerableSave value.Value
	FeelNoPain       int
	DamageDecrease   value.Value
	HitTranshuman    bool
	WoundTranshuman  bool
}

// FeelsNoPain reports whether the feel-no-pain roll applies
func (d *Defender) FeelsNoPain() bool {
	return d.FeelNoPain <= 6
}

// Validate checks the profile is structurally complete
func (d *Defender) Validate() error {
	vb := errors.NewValidationBuilder()

	requireValue(vb, "toughness", d.Toughness)
	requireValue(vb, "save", d.Save)
	requireValue(vb, "invulnerable_save", d.InvulnerableSave)
	requireValue(vb, "damage_decrease", d.DamageDecrease)

	return vb.Build()
}

func requireValue(vb *errors.ValidationBuilder, field string, v value.Value) {
	if v == nil {
		vb.RequiredField(field)
	}
}

// limitValue fails v when it can evaluate above limit. Missing values are
// reported by requireValue.
func limitValue(vb *errors.ValidationBuilder, field string, v value.Value, limit int) {
	if v != nil && value.Max(v) > limit {
		vb.Fieldf(field, "must not exceed %d, got %s", limit, v)
	}
}
