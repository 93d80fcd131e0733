package profiles

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
)

// Side tells which profile a form field belongs to
type Side int

const (
	SideAttacker Side = iota
	SideDefender
)

func (s Side) String() string {
	if s == SideDefender {
		return "defender"
	}
	return "attacker"
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindFlag
	kindReroll
	kindMode
)

type formField struct {
	side     Side
	kind     fieldKind
	belowOne bool
	text     func(*Form) *string
	flag     func(*Form) *bool
}

// Form is the editable raw state behind an attacker and a defender.
// Fields are addressed by dotted paths such as "attacker.damage" or
// "defender.feel_no_pain.enabled". A Form is not safe for concurrent use.
type Form struct {
	attacker AttackerFields
	defender DefenderFields
}

// NewForm returns a form holding the default fields
func NewForm() *Form {
	return &Form{
		attacker: DefaultAttackerFields(),
		defender: DefaultDefenderFields(),
	}
}

// NewFormFrom returns a form holding the given fields
func NewFormFrom(attacker AttackerFields, defender DefenderFields) *Form {
	return &Form{attacker: attacker, defender: defender}
}

// Attacker returns a copy of the attacker fields
func (f *Form) Attacker() AttackerFields { return f.attacker }

// Defender returns a copy of the defender fields
func (f *Form) Defender() DefenderFields { return f.defender }

// Get returns the current raw value of a field
func (f *Form) Get(path string) (string, error) {
	field, err := lookup(path)
	if err != nil {
		return "", err
	}
	if field.kind == kindFlag {
		return strconv.FormatBool(*field.flag(f)), nil
	}
	return *field.text(f), nil
}

// Set stores raw into a field. Text fields are stored as typed and only
// validated when the profile is built; flags and selectors are checked here.
func (f *Form) Set(path, raw string) (Side, error) {
	field, err := lookup(path)
	if err != nil {
		return SideAttacker, err
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch field.kind {
	case kindFlag:
		b, err := strconv.ParseBool(normalized)
		if err != nil {
			return field.side, errors.InvalidArgumentf("%s: %q is not a boolean", path, raw)
		}
		*field.flag(f) = b
	case kindReroll:
		if _, err := rules.ParseReroll(normalized); err != nil {
			return field.side, errors.InvalidArgumentf("%s: %s", path, errors.GetMessage(err))
		}
		*field.text(f) = normalized
	case kindMode:
		if _, err := rules.ParseModification(normalized); err != nil {
			return field.side, errors.InvalidArgumentf("%s: %s", path, errors.GetMessage(err))
		}
		*field.text(f) = normalized
	default:
		*field.text(f) = raw
	}

	return field.side, nil
}

// Step increases or decreases a text field by one
func (f *Form) Step(path string, up bool) (Side, error) {
	field, err := lookup(path)
	if err != nil {
		return SideAttacker, err
	}
	if field.kind != kindText {
		return field.side, errors.InvalidArgumentf("%s cannot be stepped", path)
	}

	text := field.text(f)
	if up {
		*text = value.Increase(*text)
	} else {
		*text = value.Decrease(*text, field.belowOne)
	}

	return field.side, nil
}

// Paths lists every addressable field
func Paths() []string {
	paths := make([]string, 0, len(formFields))
	for path := range formFields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func lookup(path string) (formField, error) {
	field, ok := formFields[path]
	if !ok {
		return formField{}, errors.InvalidArgumentf("unknown field %q", path)
	}
	return field, nil
}

var formFields = buildFormFields()

func buildFormFields() map[string]formField {
	fields := map[string]formField{}

	atk := func(name string, kind fieldKind, get func(*AttackerFields) *string) {
		fields["attacker."+name] = formField{
			side: SideAttacker, kind: kind,
			text: func(f *Form) *string { return get(&f.attacker) },
		}
	}
	atkFlag := func(name string, get func(*AttackerFields) *bool) {
		fields["attacker."+name] = formField{
			side: SideAttacker, kind: kindFlag,
			flag: func(f *Form) *bool { return get(&f.attacker) },
		}
	}
	def := func(name string, get func(*DefenderFields) *string) {
		fields["defender."+name] = formField{
			side: SideDefender, kind: kindText,
			text: func(f *Form) *string { return get(&f.defender) },
		}
	}
	defFlag := func(name string, get func(*DefenderFields) *bool) {
		fields["defender."+name] = formField{
			side: SideDefender, kind: kindFlag,
			flag: func(f *Form) *bool { return get(&f.defender) },
		}
	}
	toggle := func(name string, get func(*AttackerFields) *Toggle) {
		atkFlag(name+".enabled", func(a *AttackerFields) *bool { return &get(a).Enabled })
		atk(name+".on", kindText, func(a *AttackerFields) *string { return &get(a).On })
		atk(name+".value", kindText, func(a *AttackerFields) *string { return &get(a).Value })
	}
	modifier := func(name string, get func(*AttackerFields) *Modifier) {
		atk(name+".mode", kindMode, func(a *AttackerFields) *string { return &get(a).Mode })
		atk(name+".on", kindText, func(a *AttackerFields) *string { return &get(a).On })
		atk(name+".value", kindText, func(a *AttackerFields) *string { return &get(a).Value })
	}
	optional := func(name string, get func(*DefenderFields) *Optional) {
		defFlag(name+".enabled", func(d *DefenderFields) *bool { return &get(d).Enabled })
		def(name+".value", func(d *DefenderFields) *string { return &get(d).Value })
	}

	atk("attacks", kindText, func(a *AttackerFields) *string { return &a.Attacks })
	atk("skill", kindText, func(a *AttackerFields) *string { return &a.Skill })
	atk("strength", kindText, func(a *AttackerFields) *string { return &a.Strength })
	atk("penetration", kindText, func(a *AttackerFields) *string { return &a.Penetration })
	atk("damage", kindText, func(a *AttackerFields) *string { return &a.Damage })

	// penetration may be stepped down to zero
	pen := fields["attacker.penetration"]
	pen.belowOne = true
	fields["attacker.penetration"] = pen

	atk("hit_reroll", kindReroll, func(a *AttackerFields) *string { return &a.HitReroll })
	atkFlag("auto_hit", func(a *AttackerFields) *bool { return &a.AutoHit })
	toggle("additional_hits", func(a *AttackerFields) *Toggle { return &a.AdditionalHits })
	toggle("auto_wound", func(a *AttackerFields) *Toggle { return &a.AutoWound })
	toggle("hit_mortal_wounds", func(a *AttackerFields) *Toggle { return &a.HitMortalWounds })
	modifier("hit_penetration", func(a *AttackerFields) *Modifier { return &a.HitPenetration })
	modifier("hit_strength", func(a *AttackerFields) *Modifier { return &a.HitStrength })
	modifier("hit_damage", func(a *AttackerFields) *Modifier { return &a.HitDamage })
	atkFlag("plus_one_to_hit", func(a *AttackerFields) *bool { return &a.PlusOneToHit })

	atk("wound_reroll", kindReroll, func(a *AttackerFields) *string { return &a.WoundReroll })
	toggle("wound_mortal_wounds", func(a *AttackerFields) *Toggle { return &a.WoundMortalWounds })
	modifier("wound_penetration", func(a *AttackerFields) *Modifier { return &a.WoundPenetration })
	modifier("wound_damage", func(a *AttackerFields) *Modifier { return &a.WoundDamage })
	atkFlag("plus_one_to_wound", func(a *AttackerFields) *bool { return &a.PlusOneToWound })

	def("toughness", func(d *DefenderFields) *string { return &d.Toughness })
	def("save", func(d *DefenderFields) *string { return &d.Save })
	optional("invulnerable_save", func(d *DefenderFields) *Optional { return &d.InvulnerableSave })
	optional("feel_no_pain", func(d *DefenderFields) *Optional { return &d.FeelNoPain })
	optional("damage_decrease", func(d *DefenderFields) *Optional { return &d.DamageDecrease })
	defFlag("hit_transhuman", func(d *DefenderFields) *bool { return &d.HitTranshuman })
	defFlag("wound_transhuman", func(d *DefenderFields) *bool { return &d.WoundTranshuman })

	return fields
}
