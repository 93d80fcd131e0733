package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arychagov/w40k/internal/engine"
	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/profiles"
	"github.com/arychagov/w40k/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
	attacker combat.Attacker
	defender combat.Defender
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.attacker = combat.Attacker{
		Attacks:     value.Constant(1),
		Skill:       4,
		Strength:    value.Constant(4),
		Penetration: value.Constant(0),
		Damage:      value.Constant(1),
	}
	s.defender = combat.Defender{
		Toughness:        value.Constant(4),
		Save:             value.Constant(4),
		InvulnerableSave: value.Constant(combat.NoInvulnerableSave),
		FeelNoPain:       combat.NoFeelNoPain,
		DamageDecrease:   value.None,
	}
}

// scripted builds an engine fed by rolls and returns the roller so tests can
// check every roll was consumed
func (s *EngineTestSuite) scripted(rolls ...int) (engine.Engine, *testutils.ScriptedRoller) {
	roller := testutils.NewScriptedRoller(s.T(), rolls...)
	eng, err := engine.New(&engine.Config{Roller: roller})
	s.Require().NoError(err)
	return eng, roller
}

func (s *EngineTestSuite) TestNewRequiresRoller() {
	_, err := engine.New(&engine.Config{})
	s.Require().Error(err)

	_, err = engine.New(nil)
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestPassValue() {
	testCases := []struct {
		toughness, strength, expected int
	}{
		{4, 8, 2},
		{3, 6, 2},
		{4, 5, 3},
		{4, 4, 4},
		{5, 4, 5},
		{7, 4, 5},
		{8, 4, 6},
		{4, 2, 6},
	}

	for _, tc := range testCases {
		s.Assert().Equal(tc.expected, engine.PassValue(tc.toughness, tc.strength),
			"T%d vs S%d", tc.toughness, tc.strength)
	}
}

func (s *EngineTestSuite) TestDoHitSkill() {
	s.attacker.Attacks = value.Constant(3)
	eng, roller := s.scripted(1, 4, 6)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 2)
	s.Assert().Empty(result.AutoWoundHits)
	s.Assert().Empty(result.MortalWounds)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitNaturalSixAlwaysHits() {
	s.attacker.Attacks = value.Constant(2)
	s.attacker.Skill = 6
	s.attacker.PlusOneToHit = true
	eng, _ := s.scripted(6, 5)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 2)
}

func (s *EngineTestSuite) TestDoHitPlusOne() {
	s.attacker.Attacks = value.Constant(2)
	s.attacker.PlusOneToHit = true
	eng, _ := s.scripted(3, 2)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 1)
}

func (s *EngineTestSuite) TestDoHitNaturalOneFailsWithPlusOne() {
	s.attacker.Skill = 2
	s.attacker.PlusOneToHit = true
	eng, _ := s.scripted(1)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Empty(result.Hits)
}

func (s *EngineTestSuite) TestDoHitTranshuman() {
	s.attacker.Attacks = value.Constant(4)
	s.attacker.Skill = 2
	s.defender.HitTranshuman = true
	eng, _ := s.scripted(3, 4, 5, 6)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 2)
}

func (s *EngineTestSuite) TestDoHitAttacksAreRolled() {
	s.attacker.Attacks = value.D6
	eng, roller := s.scripted(2, 6, 6)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 2)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitRerollOnes() {
	s.attacker.Attacks = value.Constant(3)
	s.attacker.HitReroll = rules.RerollOnes
	// 1 and 2 fail, only the 1 is rerolled into a 6
	eng, roller := s.scripted(1, 2, 5, 6)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 2)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitRerolledResultIsFinal() {
	s.attacker.HitReroll = rules.RerollAll
	eng, roller := s.scripted(1, 1)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Empty(result.Hits)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitRerollAll() {
	s.attacker.Attacks = value.Constant(2)
	s.attacker.HitReroll = rules.RerollAll
	eng, roller := s.scripted(2, 3, 4, 1)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 1)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitSingleRerollRetriesAtMostOnce() {
	s.attacker.Attacks = value.Constant(4)
	s.attacker.HitReroll = rules.RerollSingle
	// four failures, exactly one extra attempt
	eng, roller := s.scripted(1, 1, 1, 1, 5)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 1)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitSingleRerollIsFreshPerCall() {
	s.attacker.HitReroll = rules.RerollSingle
	eng, roller := s.scripted(1, 5, 1, 6)

	first := eng.DoHit(&s.attacker, &s.defender)
	second := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(first.Hits, 1)
	s.Assert().Len(second.Hits, 1)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoHitAutoHit() {
	s.attacker.Attacks = value.Constant(3)
	s.attacker.AutoHit = rules.AutoHit{Always: true}
	s.attacker.HitDamage = rules.CharacteristicChange{
		Mode: rules.ModificationReplace, Threshold: 6, Amount: value.Constant(9),
	}
	eng, _ := s.scripted()

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Require().Len(result.Hits, 3)
	for _, hit := range result.Hits {
		s.Assert().Equal(s.attacker.Damage, hit.Damage)
	}
}

func (s *EngineTestSuite) TestDoHitAdditionalHits() {
	s.attacker.Attacks = value.Constant(2)
	s.attacker.AdditionalHits = rules.AdditionalHits{Active: true, Threshold: 6, Bonus: value.Constant(2)}
	eng, _ := s.scripted(6, 5)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.Hits, 4)
}

func (s *EngineTestSuite) TestDoHitAutoWound() {
	s.attacker.Attacks = value.Constant(2)
	s.attacker.AutoWound = rules.AutoWound{Active: true, Threshold: 6}
	s.attacker.AdditionalHits = rules.AdditionalHits{Active: true, Threshold: 6, Bonus: value.Constant(1)}
	eng, _ := s.scripted(6, 4)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Len(result.AutoWoundHits, 1)
	s.Assert().Len(result.Hits, 1)
}

func (s *EngineTestSuite) TestDoHitMortalWounds() {
	s.attacker.Attacks = value.Constant(3)
	s.attacker.HitMortalWounds = rules.MortalWounds{Active: true, Threshold: 6, Amount: value.Constant(3)}
	eng, _ := s.scripted(6, 6, 5)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Equal([]value.Value{value.Constant(3), value.Constant(3)}, result.MortalWounds)
	s.Assert().Len(result.Hits, 3)
}

func (s *EngineTestSuite) TestDoHitExplicitZeroMortalWoundsKept() {
	s.attacker.HitMortalWounds = rules.MortalWounds{Active: true, Threshold: 6, Amount: value.Constant(0)}
	eng, _ := s.scripted(6)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Assert().Equal([]value.Value{value.Constant(0)}, result.MortalWounds)
}

func (s *EngineTestSuite) TestDoHitCharacteristicChangeLegacyOrdering() {
	s.attacker.Attacks = value.Constant(2)
	s.attacker.HitDamage = rules.CharacteristicChange{
		Mode: rules.ModificationAdd, Threshold: 4, Amount: value.Constant(1),
	}
	eng, _ := s.scripted(4, 5)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Require().Len(result.Hits, 2)
	s.Assert().Equal(value.Add(value.Constant(1), value.Constant(1)), result.Hits[0].Damage)
	s.Assert().Equal(value.Constant(1), result.Hits[1].Damage)
}

func (s *EngineTestSuite) TestDoHitCharacteristicChangeAtLeastOrdering() {
	s.attacker.HitStrength = rules.CharacteristicChange{
		Mode: rules.ModificationReplace, Threshold: 6, Amount: value.Constant(8), Ordering: rules.OrderingAtLeast,
	}
	s.attacker.Attacks = value.Constant(2)
	eng, _ := s.scripted(6, 5)

	result := eng.DoHit(&s.attacker, &s.defender)

	s.Require().Len(result.Hits, 2)
	s.Assert().Equal(value.Constant(8), result.Hits[0].Strength)
	s.Assert().Equal(value.Constant(4), result.Hits[1].Strength)
}

func (s *EngineTestSuite) TestDoHitPenetrationChangeBuiltWithDefaultOrdering() {
	fields := profiles.DefaultAttackerFields()
	fields.Attacks = "2"
	fields.HitPenetration = profiles.Modifier{Mode: "add", On: "6", Value: "1"}
	attacker, err := profiles.BuildAttacker(fields)
	s.Require().NoError(err)

	eng, roller := s.scripted(4, 6)

	result := eng.DoHit(&attacker, &s.defender)

	s.Require().Len(result.Hits, 2)
	s.Assert().Equal(value.Constant(0), result.Hits[0].Penetration)
	s.Assert().Equal(value.Add(value.Constant(0), value.Constant(1)), result.Hits[1].Penetration)
	s.Assert().Zero(roller.Remaining())
}

func (s *EngineTestSuite) hits(n int) *combat.AttackResult {
	result := &combat.AttackResult{}
	for i := 0; i < n; i++ {
		result.Hits = append(result.Hits, combat.Hit{
			Strength:    s.attacker.Strength,
			Penetration: s.attacker.Penetration,
			Damage:      s.attacker.Damage,
		})
	}
	return result
}

func (s *EngineTestSuite) TestDoWound() {
	eng, roller := s.scripted(4, 3, 6)

	result := eng.DoWound(&s.attacker, s.hits(3), &s.defender)

	s.Assert().Len(result.Hits, 2)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoWoundPlusOne() {
	s.attacker.PlusOneToWound = true
	eng, _ := s.scripted(3)

	result := eng.DoWound(&s.attacker, s.hits(1), &s.defender)

	s.Assert().Len(result.Hits, 1)
}

func (s *EngineTestSuite) TestDoWoundNaturalOneFails() {
	s.attacker.Strength = value.Constant(8)
	eng, _ := s.scripted(1, 2)

	result := eng.DoWound(&s.attacker, s.hits(2), &s.defender)

	s.Assert().Len(result.Hits, 1)
}

func (s *EngineTestSuite) TestDoWoundPassThrough() {
	in := &combat.AttackResult{
		MortalWounds:  []value.Value{value.Constant(2)},
		AutoWoundHits: []combat.Hit{{Strength: value.Constant(4), Penetration: value.Constant(1), Damage: value.Constant(2)}},
	}
	eng, roller := s.scripted()

	result := eng.DoWound(&s.attacker, in, &s.defender)

	s.Assert().Equal(in.MortalWounds, result.MortalWounds)
	s.Assert().Equal(in.AutoWoundHits, result.Hits)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoWoundRerollOnes() {
	s.attacker.WoundReroll = rules.RerollOnes
	eng, roller := s.scripted(1, 4, 2)

	result := eng.DoWound(&s.attacker, s.hits(2), &s.defender)

	s.Assert().Len(result.Hits, 1)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoWoundSingleReroll() {
	s.attacker.WoundReroll = rules.RerollSingle
	eng, roller := s.scripted(2, 5, 2, 2)

	result := eng.DoWound(&s.attacker, s.hits(3), &s.defender)

	s.Assert().Len(result.Hits, 1)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoWoundRerollIgnoresPlusOne() {
	s.attacker.PlusOneToWound = true
	s.attacker.WoundReroll = rules.RerollAll
	eng, _ := s.scripted(2, 3)

	result := eng.DoWound(&s.attacker, s.hits(1), &s.defender)

	s.Assert().Empty(result.Hits)
}

func (s *EngineTestSuite) TestDoWoundTranshuman() {
	s.attacker.Strength = value.Constant(8)
	s.defender.WoundTranshuman = true
	eng, _ := s.scripted(4, 5)

	result := eng.DoWound(&s.attacker, s.hits(2), &s.defender)

	s.Assert().Len(result.Hits, 1)
}

func (s *EngineTestSuite) TestDoWoundTranshumanFailsReroll() {
	s.attacker.Strength = value.Constant(8)
	s.attacker.WoundReroll = rules.RerollAll
	s.defender.WoundTranshuman = true
	eng, roller := s.scripted(2, 4, 3, 5)

	result := eng.DoWound(&s.attacker, s.hits(2), &s.defender)

	// 2 then 4 both fall under the floor; 3 is rerolled into a 5
	s.Require().Len(result.Hits, 1)
	s.Assert().Zero(roller.Remaining())
}

func (s *EngineTestSuite) TestDoWoundRules() {
	s.attacker.WoundPenetration = rules.CharacteristicChange{
		Mode: rules.ModificationReplace, Threshold: 6, Amount: value.Constant(3), Ordering: rules.OrderingAtLeast,
	}
	s.attacker.WoundMortalWounds = rules.MortalWounds{Active: true, Threshold: 6, Amount: value.Constant(1)}
	eng, _ := s.scripted(6, 5)

	result := eng.DoWound(&s.attacker, s.hits(2), &s.defender)

	s.Require().Len(result.Hits, 2)
	s.Assert().Equal(value.Constant(3), result.Hits[0].Penetration)
	s.Assert().Equal(value.Constant(0), result.Hits[1].Penetration)
	s.Assert().Equal(s.attacker.Strength, result.Hits[0].Strength)
	s.Assert().Equal([]value.Value{value.Constant(1)}, result.MortalWounds)
}

func (s *EngineTestSuite) wounds(n int, penetration, damage value.Value) *combat.WoundResult {
	result := &combat.WoundResult{}
	for i := 0; i < n; i++ {
		result.Hits = append(result.Hits, combat.Hit{
			Strength:    value.Constant(4),
			Penetration: penetration,
			Damage:      damage,
		})
	}
	return result
}

func (s *EngineTestSuite) TestDoSave() {
	eng, roller := s.scripted(1, 3, 4)

	total := eng.DoSave(&s.defender, s.wounds(3, value.Constant(0), value.Constant(1)))

	s.Assert().Equal(2, total)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoSavePenetration() {
	s.defender.Save = value.Constant(3)
	eng, _ := s.scripted(3, 4)

	total := eng.DoSave(&s.defender, s.wounds(2, value.Constant(1), value.Constant(1)))

	s.Assert().Equal(1, total)
}

func (s *EngineTestSuite) TestDoSaveInvulnerable() {
	s.defender.InvulnerableSave = value.Constant(4)
	eng, _ := s.scripted(4, 3)

	total := eng.DoSave(&s.defender, s.wounds(2, value.Constant(3), value.Constant(1)))

	s.Assert().Equal(1, total)
}

func (s *EngineTestSuite) TestDoSaveNaturalOneAlwaysFails() {
	s.defender.Save = value.Constant(0)
	eng, _ := s.scripted(1, 2)

	total := eng.DoSave(&s.defender, s.wounds(2, value.Constant(0), value.Constant(1)))

	s.Assert().Equal(1, total)
}

func (s *EngineTestSuite) TestDoSaveDamageDecrease() {
	s.defender.DamageDecrease = value.Constant(1)
	in := s.wounds(2, value.Constant(0), value.Constant(3))
	in.Hits[1].Damage = value.Constant(1)
	in.MortalWounds = []value.Value{value.Constant(2)}
	eng, _ := s.scripted(1, 1)

	total := eng.DoSave(&s.defender, in)

	// mortal 2-1, first hit 3-1, second hit floors at 1
	s.Assert().Equal(4, total)
}

func (s *EngineTestSuite) TestDoSaveMortalWoundsBypassSave() {
	eng, roller := s.scripted()

	total := eng.DoSave(&s.defender, &combat.WoundResult{
		MortalWounds: []value.Value{value.Constant(3), value.Constant(0)},
	})

	s.Assert().Equal(4, total)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestDoSaveFeelNoPain() {
	s.defender.FeelNoPain = 5
	eng, roller := s.scripted(5, 4, 6)

	total := eng.DoSave(&s.defender, &combat.WoundResult{
		MortalWounds: []value.Value{value.Constant(3)},
	})

	s.Assert().Equal(1, total)
	s.Assert().Equal(0, roller.Remaining())
}

func (s *EngineTestSuite) TestSequence() {
	s.attacker.Attacks = value.Constant(2)
	// hit 4 and 2, wound 5, save 2
	eng, roller := s.scripted(4, 2, 5, 2)

	s.Assert().Equal(1, eng.Sequence(&s.attacker, &s.defender))
	s.Assert().Equal(0, roller.Remaining())
}
