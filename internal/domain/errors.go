package domain

import "errors"

// Kind classifies a domain failure so callers can branch without matching messages.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthenticated"
)

// Error is a domain failure with a stable kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is lets the message-less kind sentinels (ErrValidation, ErrNotFound, ...)
// match any error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
)

var (
	ErrWebinarNotFound   = NewError(KindNotFound, "Webinar not found")
	ErrNotOrganizer      = NewError(KindForbidden, "User is not allowed to update this webinar")
	ErrSeatsReduced      = NewError(KindValidation, "You cannot reduce the number of seats")
	ErrDuplicateWebinar  = NewError(KindConflict, "webinar already exists")
	ErrDuplicateEmail    = NewError(KindConflict, "email already exists")
	ErrInvalidCredential = NewError(KindUnauthenticated, "invalid email or password")
)

// NewError returns a domain error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation returns a validation error carrying message.
func Validation(message string) *Error {
	return NewError(KindValidation, message)
}

// KindOf reports the kind of err, or "" when err is nil or not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
