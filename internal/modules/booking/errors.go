package booking

import (
	"errors"
)

// Kind classifies allocator failures so callers can branch without
// inspecting message text.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindInvalidHour    Kind = "INVALID_HOUR"
	KindSlotConflict   Kind = "SLOT_CONFLICT"
	KindRetryExhausted Kind = "RETRY_EXHAUSTED"
	KindUserResolution Kind = "USER_RESOLUTION_FAILURE"
	KindPersistence    Kind = "PERSISTENCE_FAILURE"
)

const retryExhaustedMessage = "Exceeded maximum retries, please report this issue."

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidHour)
// holds regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation     = &Error{Kind: KindValidation, Message: "validation error"}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "booking not found"}
	ErrInvalidHour    = &Error{Kind: KindInvalidHour, Message: "Invalid hour selected, please choose an available hour."}
	ErrSlotConflict   = &Error{Kind: KindSlotConflict, Message: "slot was taken by a concurrent booking"}
	ErrRetryExhausted = &Error{Kind: KindRetryExhausted, Message: retryExhaustedMessage}
	ErrUserResolution = &Error{Kind: KindUserResolution, Message: "failed to resolve user"}
	ErrPersistence    = &Error{Kind: KindPersistence, Message: "storage failure"}
)

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindPersistence for errors that did not
// originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}
