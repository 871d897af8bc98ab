// Package apperr defines the error taxonomy shared by the service layer.
// Handlers map kinds onto HTTP statuses; storage causes stay out of the
// user-facing message and are only logged server-side.
package apperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindStorage
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Storage wraps a database failure. msg is what the caller may see; cause is
// for the logs.
func Storage(msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: msg, cause: cause}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// KindOf returns the kind of err if it is an *Error, defaulting to storage.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
