package value_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/pkg/random"
	"github.com/arychagov/w40k/internal/testutils"
)

type ValueTestSuite struct {
	suite.Suite
	roller *random.Roller
}

func TestValueSuite(t *testing.T) {
	suite.Run(t, new(ValueTestSuite))
}

func (s *ValueTestSuite) SetupTest() {
	s.roller = random.NewRoller(20240611)
}

func (s *ValueTestSuite) TestNoneIsDistinctFromZero() {
	s.Assert().Equal(0, value.None.Eval(s.roller))
	s.Assert().True(value.IsNone(value.None))
	s.Assert().False(value.IsNone(value.Constant(0)))
	s.Assert().Equal(0, value.Constant(0).Eval(s.roller))
}

func (s *ValueTestSuite) TestUniformDieMean() {
	die := value.UniformDie{Low: 2, High: 9}
	const samples = 20000

	total := 0
	for i := 0; i < samples; i++ {
		v := die.Eval(s.roller)
		s.Require().GreaterOrEqual(v, 2)
		s.Require().LessOrEqual(v, 9)
		total += v
	}

	// variance of a discrete uniform over 8 faces is 63/12, standard error ~0.016
	s.Assert().InDelta(5.5, float64(total)/samples, 0.08)
}

func (s *ValueTestSuite) TestUniformDieOffsetsRoll() {
	roller := testutils.NewScriptedRoller(s.T(), 1, 4)
	die := value.UniformDie{Low: 3, High: 6}

	s.Assert().Equal(3, die.Eval(roller))
	s.Assert().Equal(6, die.Eval(roller))
}

func (s *ValueTestSuite) TestInvalidDiePanics() {
	s.Assert().Panics(func() {
		value.UniformDie{Low: 6, High: 1}.Eval(s.roller)
	})
}

func (s *ValueTestSuite) TestSumResamplesEveryTerm() {
	roller := testutils.NewScriptedRoller(s.T(), 1, 6, 3, 3)
	sum := value.Sum{value.D6, value.D6, value.Constant(2)}

	s.Assert().Equal(9, sum.Eval(roller))
	s.Assert().Equal(8, sum.Eval(roller))
	s.Assert().Equal(0, roller.Remaining())
}

func (s *ValueTestSuite) TestString() {
	s.Assert().Equal("3", value.Constant(3).String())
	s.Assert().Equal("d6", value.D6.String())
	s.Assert().Equal("(d6 + 1)", value.Add(value.D6, value.Constant(1)).String())
}

func TestConstantAlwaysEvaluatesToItself(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1000, 1000).Draw(rt, "n")
		roller := random.NewRoller(rapid.Uint64().Draw(rt, "seed"))

		for i := 0; i < 5; i++ {
			if got := value.Constant(n).Eval(roller); got != n {
				rt.Fatalf("Constant(%d).Eval() = %d", n, got)
			}
		}
	})
}

func TestUniformDieStaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-20, 20).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+30).Draw(rt, "hi")
		roller := random.NewRoller(rapid.Uint64().Draw(rt, "seed"))
		die := value.UniformDie{Low: lo, High: hi}

		for i := 0; i < 50; i++ {
			v := die.Eval(roller)
			if v < lo || v > hi {
				rt.Fatalf("%s produced %d", die, v)
			}
		}
	})
}
