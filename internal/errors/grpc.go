package errors

import (
	"google.golang.org/grpc/status"
)

// ToGRPCError converts err into a status error. Status errors pass through
// untouched and plain errors become codes.Internal.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	e, ok := find(err)
	if !ok {
		return status.Error(CodeInternal.GRPCCode(), err.Error())
	}
	return status.Error(e.Code.GRPCCode(), e.Message)
}

// FromGRPCError turns a status error received by a client back into an Error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return New(codeFromGRPC(st.Code()), st.Message())
}
