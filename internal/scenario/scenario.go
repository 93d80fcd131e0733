// Package scenario reads attacker and defender setups from YAML files
package scenario

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/profiles"
)

// Scenario is one matchup. Fields missing from the file keep the defaults
// of a fresh form.
type Scenario struct {
	Name               string                  `yaml:"name"`
	Trials             int                     `yaml:"trials,omitempty"`
	Seed               *uint64                 `yaml:"seed,omitempty"`
	ModifierThresholds string                  `yaml:"modifier_thresholds,omitempty"`
	Attacker           profiles.AttackerFields `yaml:"attacker"`
	Defender           profiles.DefenderFields `yaml:"defender"`
}

// Load reads a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}
	return Parse(data)
}

// Parse decodes a scenario document
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{
		Attacker: profiles.DefaultAttackerFields(),
		Defender: profiles.DefaultDefenderFields(),
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfiguration, "decode scenario")
	}

	vb := errors.NewValidationBuilder()
	if s.Trials < 0 {
		vb.Field("trials", "must not be negative")
	}
	if _, err := rules.ParseOrdering(s.ModifierThresholds); err != nil {
		vb.InvalidField("modifier_thresholds", errors.GetMessage(err))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return s, nil
}

// Build validates the fields and returns both profiles
func (s *Scenario) Build() (combat.Attacker, combat.Defender, error) {
	ordering, err := rules.ParseOrdering(s.ModifierThresholds)
	if err != nil {
		return combat.Attacker{}, combat.Defender{}, err
	}

	attacker, err := profiles.BuildAttacker(s.Attacker, profiles.WithOrdering(ordering))
	if err != nil {
		return combat.Attacker{}, combat.Defender{}, err
	}
	defender, err := profiles.BuildDefender(s.Defender)
	if err != nil {
		return combat.Attacker{}, combat.Defender{}, err
	}
	return attacker, defender, nil
}
