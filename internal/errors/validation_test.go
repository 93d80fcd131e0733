package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arychagov/w40k/internal/errors"
)

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	fields, ok := errors.GetMeta(err)[errors.MetaValidationErrors].(map[string][]string)
	require.True(t, ok, "missing validation metadata")
	return fields
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	ve := errors.NewValidationError()
	ve.AddFieldError("defender.save", "is invalid")
	ve.AddFieldErrorf("defender.feel_no_pain", "must be at least %d", 2)
	ve.AddFieldError("attacker.skill", "is required")
	ve.AddFieldError("attacker.skill", "must be a number")

	assert.Equal(t,
		"validation failed: attacker.skill: is required, must be a number; "+
			"defender.feel_no_pain: must be at least 2; defender.save: is invalid",
		ve.Error(),
	)
	assert.Equal(t, "validation failed", errors.NewValidationError().Error())
}

func TestValidationErrorToError(t *testing.T) {
	assert.Nil(t, errors.NewValidationError().ToError())

	ve := errors.NewValidationError()
	ve.AddFieldError("attacker.attacks", "is required")
	err := ve.ToError()

	assert.Equal(t, errors.CodeInvalidConfiguration, err.Code)
	assert.Equal(t, []string{"is required"}, fieldErrors(t, err)["attacker.attacks"])
}

func TestValidationBuilder(t *testing.T) {
	vb := errors.NewValidationBuilder()
	vb.Field("attacker.attacks", "is required").
		Fieldf("attacker.skill", "must be between %d and %d", 2, 6).
		RequiredField("defender.toughness").
		InvalidField("attacker.hit_reroll", "unknown mode")

	err := vb.Build()
	assert.True(t, errors.IsInvalidConfiguration(err))

	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"must be between 2 and 6"}, fields["attacker.skill"])
	assert.Equal(t, []string{"is required"}, fields["defender.toughness"])
	assert.Equal(t, []string{"is invalid: unknown mode"}, fields["attacker.hit_reroll"])
}

func TestValidationBuilderPasses(t *testing.T) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("attacker.attacks", "2d6", vb)
	errors.ValidateRange("attacker.skill", 2, 2, 6, vb)
	errors.ValidateRange("attacker.skill", 6, 2, 6, vb)
	errors.ValidateEnum("attacker.hit_reroll", "ones", []string{"no", "ones", "single", "all"}, vb)

	assert.NoError(t, vb.Build())
}

func TestValidateHelpers(t *testing.T) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("attacker.attacks", "   ", vb)
	errors.ValidateRange("attacker.skill", 7, 2, 6, vb)
	errors.ValidateRange("defender.feel_no_pain", 1, 2, 7, vb)
	errors.ValidateEnum("attacker.hit_reroll", "twice", []string{"no", "ones", "single", "all"}, vb)

	fields := fieldErrors(t, vb.Build())
	assert.Len(t, fields, 4)
	assert.Equal(t, []string{"is required"}, fields["attacker.attacks"])
	assert.Equal(t, []string{"must be between 2 and 7"}, fields["defender.feel_no_pain"])
	assert.Equal(t, []string{"must be one of: no, ones, single, all"}, fields["attacker.hit_reroll"])
}
