package errors

import (
	"errors"
)

// As is errors.As for *Error targets
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// find returns the outermost *Error in the chain
func find(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns CodeOK for nil and CodeInternal for plain errors
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := find(err); ok {
		return e.Code
	}
	return CodeInternal
}

func GetMeta(err error) map[string]any {
	if e, ok := find(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

func hasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

func IsInvalidArgument(err error) bool {
	return hasCode(err, CodeInvalidArgument)
}

func IsInvalidExpression(err error) bool {
	return hasCode(err, CodeInvalidExpression)
}

func IsInvalidConfiguration(err error) bool {
	return hasCode(err, CodeInvalidConfiguration)
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsCanceled(err error) bool {
	return hasCode(err, CodeCanceled)
}

func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}
