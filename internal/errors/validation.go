package errors

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// MetaValidationErrors is the metadata key holding a ValidationError's fields
const MetaValidationErrors = "validation_errors"

// ValidationError maps field paths to the problems found with them
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Error lists the fields in sorted order so the message is stable
func (v *ValidationError) Error() string {
	if !v.HasErrors() {
		return "validation failed"
	}

	parts := make([]string, 0, len(v.Fields))
	for _, field := range slices.Sorted(maps.Keys(v.Fields)) {
		parts = append(parts, field+": "+strings.Join(v.Fields[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) AddFieldError(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationError) AddFieldErrorf(field, format string, args ...any) {
	v.AddFieldError(field, fmt.Sprintf(format, args...))
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ToError returns an InvalidConfiguration error carrying the fields as
// metadata, or nil when nothing failed
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}
	return InvalidConfiguration(v.Error()).WithMeta(MetaValidationErrors, v.Fields)
}

// ValidationBuilder collects field problems for a Validate method:
//
//	vb := errors.NewValidationBuilder()
//	if c.Service == nil {
//	    vb.RequiredField("Service")
//	}
//	return vb.Build()
type ValidationBuilder struct {
	v *ValidationError
}

func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{v: NewValidationError()}
}

func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.v.AddFieldError(field, message)
	return vb
}

func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	vb.v.AddFieldErrorf(field, format, args...)
	return vb
}

func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns nil when every field passed
func (vb *ValidationBuilder) Build() error {
	if err := vb.v.ToError(); err != nil {
		return err
	}
	return nil
}

// ValidateRequired fails blank text
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange fails values outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}
