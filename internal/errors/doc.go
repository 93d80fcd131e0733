// Package errors provides structured errors for the combat simulator.
//
// Every error carries a Code, a human readable Message, an optional Cause
// and optional metadata:
//
//	err := errors.InvalidExpressionf("cannot parse value %q", text)
//	err := errors.InvalidConfiguration("skill must be a number").
//	    WithMeta("field", "attacker.skill")
//
// Wrapping keeps the code of the innermost structured error:
//
//	if err := profiles.BuildAttacker(fields); err != nil {
//	    return errors.Wrap(err, "failed to build attacker")
//	}
//
// # Codes
//
//   - InvalidExpression: text that does not follow the value grammar
//   - InvalidConfiguration: a profile field failed validation
//   - InvalidArgument: a malformed request at a transport boundary
//   - Canceled: a simulation batch was cancelled before it completed
//   - Unavailable: a downstream sink (Redis) refused a publish
//   - Internal: anything else
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("attacker.skill", skill, 2, 6, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Transport
//
// Handlers convert with ToGRPCError. InvalidExpression and InvalidConfiguration
// both surface as codes.InvalidArgument.
package errors
