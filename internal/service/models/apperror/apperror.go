package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a business error for transport mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalid
	KindUnavailable
	KindInsufficientStock
)

// Error is a business error carrying its classification.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}

	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindUnknown
}

func newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports that a referenced entity does not exist.
func NotFound(format string, args ...any) error {
	return newf(KindNotFound, format, args...)
}

// Forbidden reports that the actor is authenticated but not authorized.
func Forbidden(format string, args ...any) error {
	return newf(KindForbidden, format, args...)
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...any) error {
	return newf(KindConflict, format, args...)
}

// Invalid reports malformed or out-of-range input.
func Invalid(format string, args ...any) error {
	return newf(KindInvalid, format, args...)
}

// Unavailable reports a business-rule rejection on an unavailable item.
func Unavailable(format string, args ...any) error {
	return newf(KindUnavailable, format, args...)
}

// InsufficientStock reports that requested quantity exceeds stock.
func InsufficientStock(format string, args ...any) error {
	return newf(KindInsufficientStock, format, args...)
}
