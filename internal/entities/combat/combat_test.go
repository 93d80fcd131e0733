package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
)

func validAttacker() combat.Attacker {
	return combat.Attacker{
		Attacks:     value.Constant(1),
		Skill:       3,
		Strength:    value.Constant(4),
		Penetration: value.Constant(0),
		Damage:      value.Constant(1),
	}
}

func TestAttacker_Validate(t *testing.T) {
	a := validAttacker()
	require.NoError(t, a.Validate())
}

func TestAttacker_ValidateMissingFields(t *testing.T) {
	a := validAttacker()
	a.Damage = nil
	a.Skill = 7
	a.HitDamage = rules.CharacteristicChange{Mode: rules.ModificationAdd, Threshold: 6}

	err := a.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfiguration(err))

	fields, ok := errors.GetMeta(err)[errors.MetaValidationErrors].(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, fields, "damage")
	assert.Contains(t, fields, "skill")
	assert.Contains(t, fields, "hit_damage.value")
}

func TestAttacker_ValidateLimitsPerTrialWork(t *testing.T) {
	a := validAttacker()
	a.Attacks = value.MustParse("100d6")
	a.Damage = value.MustParse("d6 + 20")
	a.AdditionalHits = rules.AdditionalHits{Active: true, Threshold: 6, Bonus: value.Constant(11)}
	a.HitMortalWounds = rules.MortalWounds{Active: true, Threshold: 6, Amount: value.Constant(21)}
	a.WoundDamage = rules.CharacteristicChange{Mode: rules.ModificationReplace, Threshold: 6, Amount: value.Constant(1000)}

	err := a.Validate()
	require.Error(t, err)

	fields, ok := errors.GetMeta(err)[errors.MetaValidationErrors].(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, fields, "attacks")
	assert.Contains(t, fields, "damage")
	assert.Contains(t, fields, "additional_hits.value")
	assert.Contains(t, fields, "hit_mortal_wounds.value")
	assert.Contains(t, fields, "wound_damage.value")
}

func TestAttacker_ValidateAcceptsLimits(t *testing.T) {
	a := validAttacker()
	a.Attacks = value.MustParse("50d2")
	a.Damage = value.MustParse("2d6 + 8")
	a.AdditionalHits = rules.AdditionalHits{Active: true, Threshold: 6, Bonus: value.Constant(combat.MaxAdditionalHits)}
	a.WoundMortalWounds = rules.MortalWounds{Active: true, Threshold: 6, Amount: value.MustParse("d20")}

	require.NoError(t, a.Validate())
}

func TestDefender_Validate(t *testing.T) {
	d := combat.Defender{
		Toughness:        value.Constant(4),
		Save:             value.Constant(4),
		InvulnerableSave: value.Constant(combat.NoInvulnerableSave),
		FeelNoPain:       combat.NoFeelNoPain,
		DamageDecrease:   value.None,
	}
	require.NoError(t, d.Validate())
	assert.False(t, d.FeelsNoPain())

	d.FeelNoPain = 5
	assert.True(t, d.FeelsNoPain())

	d.Save = nil
	assert.Error(t, d.Validate())
}
