package errors

import (
	"fmt"
	"maps"
	"strings"
)

// Error is the structured error returned across package boundaries
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMeta sets a metadata key and returns e
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and metadata of the innermost *Error
// are kept; plain errors become CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	code := CodeInternal
	if inner, ok := find(err); ok {
		code = inner.Code
	}
	return wrap(err, code, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode adds context to err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

func wrap(err error, code Code, message string) *Error {
	wrapped := &Error{Code: code, Message: message, Cause: err}
	if inner, ok := find(err); ok {
		wrapped.Meta = maps.Clone(inner.Meta)
	}
	return wrapped
}

// InvalidArgument reports a malformed request at a transport boundary
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// InvalidExpressionf reports text that does not follow the value grammar
func InvalidExpressionf(format string, args ...any) *Error {
	return Newf(CodeInvalidExpression, format, args...)
}

// InvalidConfiguration reports a profile that cannot be built
func InvalidConfiguration(message string) *Error {
	return New(CodeInvalidConfiguration, message)
}

func InvalidConfigurationf(format string, args ...any) *Error {
	return Newf(CodeInvalidConfiguration, format, args...)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}

// Canceled reports a batch stopped before it completed
func Canceled(message string) *Error {
	return New(CodeCanceled, message)
}
