package value_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/pkg/random"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected value.Value
	}{
		{name: "constant", input: "4", expected: value.Constant(4)},
		{name: "padded constant", input: "  12 ", expected: value.Constant(12)},
		{name: "zero", input: "0", expected: value.Constant(0)},
		{name: "single die", input: "d6", expected: value.Die(6)},
		{name: "upper case die", input: "D3", expected: value.Die(3)},
		{name: "counted dice", input: "2d6", expected: value.Sum{value.Die(6), value.Die(6)}},
		{name: "one counted die", input: "1d3", expected: value.Sum{value.Die(3)}},
		{
			name:     "dice plus constant",
			input:    "2D6 + 2",
			expected: value.Sum{value.Sum{value.Die(6), value.Die(6)}, value.Constant(2)},
		},
		{
			name:     "three terms",
			input:    "d6+d3+1",
			expected: value.Sum{value.Die(6), value.Die(3), value.Constant(1)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := value.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "abc", "2x6", "d", "2d", "d6d6", "-1", "2d6-1", "d6 +", "d0", "1.5",
		"100000000000d6", "101d6", "d1001", "1000001", "99999999999999999999",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := value.Parse(input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.IsInvalidExpression(err), "expected INVALID_EXPRESSION, got %v", err)
		})
	}
}

func TestParse_Limits(t *testing.T) {
	for _, input := range []string{"100d6", "d1000", "1000000"} {
		t.Run(input, func(t *testing.T) {
			_, err := value.Parse(input)
			assert.NoError(t, err)
		})
	}

	terms := strings.TrimSuffix(strings.Repeat("1+", value.MaxTerms), "+")
	_, err := value.Parse(terms)
	require.NoError(t, err)

	_, err = value.Parse(terms + "+1")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidExpression(err))
}

func TestMax(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"4", 4},
		{"d6", 6},
		{"2d6 + 2", 14},
		{"100d6", 600},
		{"d3 + d6 + 1", 10},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, value.Max(value.MustParse(tc.input)))
		})
	}
	assert.Equal(t, 0, value.Max(value.None))
	assert.Equal(t, 5, value.Max(value.UniformDie{Low: 2, High: 5}))
}

func TestParse_TwoD6PlusTwoMean(t *testing.T) {
	v, err := value.Parse("2D6 + 2")
	require.NoError(t, err)

	roller := random.NewRoller(99)
	const samples = 10000
	total := 0
	for i := 0; i < samples; i++ {
		total += v.Eval(roller)
	}

	assert.InDelta(t, 9.0, float64(total)/samples, 0.2)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { value.MustParse("nope") })
	assert.NotPanics(t, func() { value.MustParse("d6 + 1") })
}

func TestParse_ConstantRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1_000_000).Draw(rt, "n")
		v, err := value.Parse(value.Constant(n).String())
		if err != nil {
			rt.Fatalf("parse %d: %v", n, err)
		}
		if v != value.Constant(n) {
			rt.Fatalf("parse %d = %v", n, v)
		}
	})
}
