// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these; handlers map them to HTTP statuses at the boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for boundary mapping.
type Kind int

const (
	// NotFound: requisition/hostel/user missing.
	NotFound Kind = iota + 1
	// InvalidState: a workflow precondition on the current status was not met.
	InvalidState
	// Forbidden: the actor lacks authority over the target hostel.
	Forbidden
	// Validation: a required field is missing or malformed.
	Validation
	// Conflict: a concurrent writer won the version check.
	Conflict
)

// Error carries a kind, a client-safe message and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error     { return newf(NotFound, format, args...) }
func InvalidStatef(format string, args ...interface{}) *Error { return newf(InvalidState, format, args...) }
func Forbiddenf(format string, args ...interface{}) *Error    { return newf(Forbidden, format, args...) }
func Validationf(format string, args ...interface{}) *Error   { return newf(Validation, format, args...) }
func Conflictf(format string, args ...interface{}) *Error     { return newf(Conflict, format, args...) }

// Wrap attaches a cause while keeping the kind and client-safe message.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool     { return KindOf(err) == NotFound }
func IsInvalidState(err error) bool { return KindOf(err) == InvalidState }
func IsForbidden(err error) bool    { return KindOf(err) == Forbidden }
func IsValidation(err error) bool   { return KindOf(err) == Validation }
func IsConflict(err error) bool     { return KindOf(err) == Conflict }

// HTTPStatus maps an error to the response status used at the handler boundary.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case InvalidState, Conflict:
		return http.StatusConflict
	case Forbidden:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
