package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the boundary layer can map it to a
// transport response without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks bad input the caller can correct.
	KindValidation
	// KindNotFound marks a referenced camp/registration that does not exist.
	KindNotFound
	// KindConflict marks an expected duplicate (registration, feedback).
	// It is a normal negative result, not a failure.
	KindConflict
	// KindForbidden marks an identity that does not own or administer the
	// resource it is acting on.
	KindForbidden
	// KindGateway marks a payment-gateway failure. Retryable by the caller.
	KindGateway
	// KindStoreUnavailable marks a store timeout or connection failure.
	// Retryable by the caller; never reported as success.
	KindStoreUnavailable
	// KindInconsistent marks counter drift detected by reconciliation.
	// Logged and auto-corrected, never surfaced to end users.
	KindInconsistent
)

// Error is the error type returned by the workflow core.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return e.Msg + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a user-correctable input error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound creates an absent-resource error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict creates a duplicate-resource result.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden creates an ownership/administration denial.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Gateway wraps a payment-gateway failure verbatim.
func Gateway(err error) *Error {
	return &Error{Kind: KindGateway, Msg: "payment gateway failure", Err: err}
}

// Store wraps a store timeout or connection failure.
func Store(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Msg: "store unavailable", Err: err}
}

// Inconsistent creates a reconciliation drift event.
func Inconsistent(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInconsistent, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a KindConflict result.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is a KindValidation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsForbidden reports whether err is a KindForbidden error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsRetryable reports whether the caller may safely retry the operation.
func IsRetryable(err error) bool {
	k := KindOf(err)
	return k == KindGateway || k == KindStoreUnavailable
}
