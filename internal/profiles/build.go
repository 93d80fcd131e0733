package profiles

import (
	"strconv"
	"strings"

	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
)

// Option adjusts how profiles are built
type Option func(*options)

type options struct {
	ordering rules.Ordering
}

// WithOrdering sets how strength and damage changes compare roll and
// threshold. Penetration changes always trigger on roll >= threshold.
func WithOrdering(o rules.Ordering) Option {
	return func(opts *options) {
		opts.ordering = o
	}
}

// fieldReader parses fields and keeps the first failure
type fieldReader struct {
	prefix string
	err    error
}

func (r *fieldReader) fail(field string, err error) {
	if r.err != nil {
		return
	}
	path := r.prefix + "." + field
	r.err = errors.New(errors.GetCode(err), path+": "+errors.GetMessage(err)).WithMeta("field", path)
}

func (r *fieldReader) value(field, text string) value.Value {
	v, err := value.Parse(text)
	if err != nil {
		r.fail(field, err)
		return nil
	}
	return v
}

func (r *fieldReader) number(field, text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		r.fail(field, errors.InvalidConfigurationf("%q is not a number", text))
		return 0
	}
	return n
}

func (r *fieldReader) reroll(field, text string) rules.Reroll {
	if strings.TrimSpace(text) == "" {
		return rules.RerollNone
	}
	rr, err := rules.ParseReroll(strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		r.fail(field, err)
	}
	return rr
}

func (r *fieldReader) toggleValue(field string, t Toggle) (int, value.Value) {
	if !t.Enabled {
		return 0, value.None
	}
	return r.number(field+".on", t.On), r.value(field+".value", t.Value)
}

func (r *fieldReader) modifier(field string, m Modifier, ordering rules.Ordering) rules.CharacteristicChange {
	mode := strings.ToLower(strings.TrimSpace(m.Mode))
	if mode == "" {
		mode = "no"
	}
	mod, err := rules.ParseModification(mode)
	if err != nil {
		r.fail(field+".mode", err)
		return rules.CharacteristicChange{}
	}
	if mod == rules.ModificationNone {
		return rules.CharacteristicChange{}
	}
	return rules.CharacteristicChange{
		Mode:      mod,
		Threshold: r.number(field+".on", m.On),
		Amount:    r.value(field+".value", m.Value),
		Ordering:  ordering,
	}
}

// BuildAttacker parses every attacker field. The first invalid field is
// reported with its path in the error message and the "field" meta key.
func BuildAttacker(fields AttackerFields, opts ...Option) (combat.Attacker, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	r := &fieldReader{prefix: "attacker"}

	attacker := combat.Attacker{
		Attacks:     r.value("attacks", fields.Attacks),
		Skill:       r.number("skill", fields.Skill),
		Strength:    r.value("strength", fields.Strength),
		Penetration: r.value("penetration", fields.Penetration),
		Damage:      r.value("damage", fields.Damage),

		HitReroll:      r.reroll("hit_reroll", fields.HitReroll),
		AutoHit:        rules.AutoHit{Always: fields.AutoHit},
		HitPenetration: r.modifier("hit_penetration", fields.HitPenetration, rules.OrderingAtLeast),
		HitStrength:    r.modifier("hit_strength", fields.HitStrength, o.ordering),
		HitDamage:      r.modifier("hit_damage", fields.HitDamage, o.ordering),
		PlusOneToHit:   fields.PlusOneToHit,

		WoundReroll:      r.reroll("wound_reroll", fields.WoundReroll),
		WoundPenetration: r.modifier("wound_penetration", fields.WoundPenetration, rules.OrderingAtLeast),
		WoundDamage:      r.modifier("wound_damage", fields.WoundDamage, o.ordering),
		PlusOneToWound:   fields.PlusOneToWound,
	}

	if fields.AdditionalHits.Enabled {
		on, bonus := r.toggleValue("additional_hits", fields.AdditionalHits)
		attacker.AdditionalHits = rules.AdditionalHits{Active: true, Threshold: on, Bonus: bonus}
	}
	if fields.AutoWound.Enabled {
		attacker.AutoWound = rules.AutoWound{Active: true, Threshold: r.number("auto_wound.on", fields.AutoWound.On)}
	}
	if fields.HitMortalWounds.Enabled {
		on, amount := r.toggleValue("hit_mortal_wounds", fields.HitMortalWounds)
		attacker.HitMortalWounds = rules.MortalWounds{Active: true, Threshold: on, Amount: amount}
	}
	if fields.WoundMortalWounds.Enabled {
		on, amount := r.toggleValue("wound_mortal_wounds", fields.WoundMortalWounds)
		attacker.WoundMortalWounds = rules.MortalWounds{Active: true, Threshold: on, Amount: amount}
	}

	if r.err != nil {
		return combat.Attacker{}, r.err
	}
	if err := attacker.Validate(); err != nil {
		return combat.Attacker{}, err
	}
	return attacker, nil
}

// BuildDefender parses every defender field. Disabled optional fields take
// the values that never apply.
func BuildDefender(fields DefenderFields) (combat.Defender, error) {
	r := &fieldReader{prefix: "defender"}

	defender := combat.Defender{
		Toughness:        r.value("toughness", fields.Toughness),
		Save:             r.value("save", fields.Save),
		InvulnerableSave: value.Constant(combat.NoInvulnerableSave),
		FeelNoPain:       combat.NoFeelNoPain,
		DamageDecrease:   value.None,
		HitTranshuman:    fields.HitTranshuman,
		WoundTranshuman:  fields.WoundTranshuman,
	}

	if fields.InvulnerableSave.Enabled {
		defender.InvulnerableSave = r.value("invulnerable_save.value", fields.InvulnerableSave.Value)
	}
	if fields.FeelNoPain.Enabled {
		defender.FeelNoPain = r.number("feel_no_pain.value", fields.FeelNoPain.Value)
	}
	if fields.DamageDecrease.Enabled {
		defender.DamageDecrease = r.value("damage_decrease.value", fields.DamageDecrease.Value)
	}

	if r.err != nil {
		return combat.Defender{}, r.err
	}
	if err := defender.Validate(); err != nil {
		return combat.Defender{}, err
	}
	return defender, nil
}
