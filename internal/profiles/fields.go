// Package profiles turns the raw text a user edits into validated attacker
// and defender profiles.
package profiles

// Toggle is an on/off rule that triggers on a roll and may carry a value
type Toggle struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	On      string `json:"on" yaml:"on"`
	Value   string `json:"value" yaml:"value"`
}

// Modifier changes a characteristic: mode is no, add or replace
type Modifier struct {
	Mode  string `json:"mode" yaml:"mode"`
	On    string `json:"on" yaml:"on"`
	Value string `json:"value" yaml:"value"`
}

// Optional is a defender characteristic that only applies when enabled
type Optional struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Value   string `json:"value" yaml:"value"`
}

// AttackerFields is the raw text state of an attacker
type AttackerFields struct {
	Attacks     string `json:"attacks" yaml:"attacks"`
	Skill       string `json:"skill" yaml:"skill"`
	Strength    string `json:"strength" yaml:"strength"`
	Penetration string `json:"penetration" yaml:"penetration"`
	Damage      string `json:"damage" yaml:"damage"`

	HitReroll       string   `json:"hit_reroll" yaml:"hit_reroll"`
	AutoHit         bool     `json:"auto_hit" yaml:"auto_hit"`
	AdditionalHits  Toggle   `json:"additional_hits" yaml:"additional_hits"`
	AutoWound       Toggle   `json:"auto_wound" yaml:"auto_wound"`
	HitMortalWounds Toggle   `json:"hit_mortal_wounds" yaml:"hit_mortal_wounds"`
	HitPenetration  Modifier `json:"hit_penetration" yaml:"hit_penetration"`
	HitStrength     Modifier `json:"hit_strength" yaml:"hit_strength"`
	HitDamage       Modifier `json:"hit_damage" yaml:"hit_damage"`
	PlusOneToHit    bool     `json:"plus_one_to_hit" yaml:"plus_one_to_hit"`

	WoundReroll       string   `json:"wound_reroll" yaml:"wound_reroll"`
	WoundMortalWounds Toggle   `json:"wound_mortal_wounds" yaml:"wound_mortal_wounds"`
	WoundPenetration  Modifier `json:"wound_penetration" yaml:"wound_penetration"`
	WoundDamage       Modifier `json:"wound_damage" yaml:"wound_damage"`
	PlusOneToWound    bool     `json:"plus_one_to_wound" yaml:"plus_one_to_wound"`
}

// DefenderFields is the raw text state of a defender
type DefenderFields struct {
	Toughness        string   `json:"toughness" yaml:"toughness"`
	Save             string   `json:"save" yaml:"save"`
	InvulnerableSave Optional `json:"invulnerable_save" yaml:"invulnerable_save"`
	FeelNoPain       Optional `json:"feel_no_pain" yaml:"feel_no_pain"`
	DamageDecrease   Optional `json:"damage_decrease" yaml:"damage_decrease"`
	HitTranshuman    bool     `json:"hit_transhuman" yaml:"hit_transhuman"`
	WoundTranshuman  bool     `json:"wound_transhuman" yaml:"wound_transhuman"`
}

func defaultToggle() Toggle {
	return Toggle{On: "6", Value: "1"}
}

func defaultModifier() Modifier {
	return Modifier{Mode: "no", On: "6", Value: "1"}
}

// DefaultAttackerFields returns the starting state of a new attacker
func DefaultAttackerFields() AttackerFields {
	return AttackerFields{
		Attacks:     "1",
		Skill:       "3",
		Strength:    "4",
		Penetration: "0",
		Damage:      "1",

		HitReroll:       "no",
		AdditionalHits:  defaultToggle(),
		AutoWound:       defaultToggle(),
		HitMortalWounds: defaultToggle(),
		HitPenetration:  defaultModifier(),
		HitStrength:     defaultModifier(),
		HitDamage:       defaultModifier(),

		WoundReroll:       "no",
		WoundMortalWounds: defaultToggle(),
		WoundPenetration:  defaultModifier(),
		WoundDamage:       defaultModifier(),
	}
}

// DefaultDefenderFields returns the starting state of a new defender
func DefaultDefenderFields() DefenderFields {
	return DefenderFields{
		Toughness:        "4",
		Save:             "4",
		InvulnerableSave: Optional{Value: "6"},
		FeelNoPain:       Optional{Value: "6"},
		DamageDecrease:   Optional{Value: "1"},
	}
}
