// Package apperr holds the coded error type shared by the game layers.
package apperr

import "errors"

// Code classifies a failure for callers that decide between blocking and degrading.
type Code string

const (
	// CodeDataUnavailable means no scenario can be shown. It is the only blocking failure.
	CodeDataUnavailable Code = "DATA_UNAVAILABLE"
	// CodeEvaluationFailure is an outcome evaluation that panicked or returned garbage.
	CodeEvaluationFailure Code = "EVALUATION_FAILURE"
	// CodePersistenceFailure is any progress store or auth failure.
	CodePersistenceFailure Code = "PERSISTENCE_FAILURE"
)

// Error is the domain error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Blocking reports whether err should stop play instead of degrading.
func Blocking(err error) bool {
	return CodeOf(err) == CodeDataUnavailable
}
