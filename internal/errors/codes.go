package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies an Error
type Code string

// Error codes
const (
	CodeOK                   Code = "OK"
	CodeCanceled             Code = "CANCELED"
	CodeInvalidArgument      Code = "INVALID_ARGUMENT"
	CodeInvalidExpression    Code = "INVALID_EXPRESSION"
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	CodeDeadlineExceeded     Code = "DEADLINE_EXCEEDED"
	CodeNotFound             Code = "NOT_FOUND"
	CodeFailedPrecondition   Code = "FAILED_PRECONDITION"
	CodeInternal             Code = "INTERNAL"
	CodeUnavailable          Code = "UNAVAILABLE"
)

type transport struct {
	grpc codes.Code
	http int
}

var transports = map[Code]transport{
	CodeOK:                   {codes.OK, http.StatusOK},
	CodeCanceled:             {codes.Canceled, http.StatusRequestTimeout},
	CodeInvalidArgument:      {codes.InvalidArgument, http.StatusBadRequest},
	CodeInvalidExpression:    {codes.InvalidArgument, http.StatusBadRequest},
	CodeInvalidConfiguration: {codes.InvalidArgument, http.StatusBadRequest},
	CodeDeadlineExceeded:     {codes.DeadlineExceeded, http.StatusGatewayTimeout},
	CodeNotFound:             {codes.NotFound, http.StatusNotFound},
	CodeFailedPrecondition:   {codes.FailedPrecondition, http.StatusPreconditionFailed},
	CodeInternal:             {codes.Internal, http.StatusInternalServerError},
	CodeUnavailable:          {codes.Unavailable, http.StatusServiceUnavailable},
}

// fromGRPC lists the code each gRPC code converts back to. The three
// InvalidArgument codes collapse into CodeInvalidArgument.
var fromGRPC = map[codes.Code]Code{
	codes.OK:                 CodeOK,
	codes.Canceled:           CodeCanceled,
	codes.InvalidArgument:    CodeInvalidArgument,
	codes.DeadlineExceeded:   CodeDeadlineExceeded,
	codes.NotFound:           CodeNotFound,
	codes.FailedPrecondition: CodeFailedPrecondition,
	codes.Unavailable:        CodeUnavailable,
}

func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the status code used on the wire. Unknown codes map to
// codes.Unknown.
func (c Code) GRPCCode() codes.Code {
	if t, ok := transports[c]; ok {
		return t.grpc
	}
	return codes.Unknown
}

// HTTPStatus returns the status written by the HTTP surface
func (c Code) HTTPStatus() int {
	if t, ok := transports[c]; ok {
		return t.http
	}
	return http.StatusInternalServerError
}

func codeFromGRPC(c codes.Code) Code {
	if code, ok := fromGRPC[c]; ok {
		return code
	}
	return CodeInternal
}
