package litetable

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable means a row range could not be scanned. It aborts the cursor.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrFetchFailed means a column of the current row could not be fetched.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrMalformedRequest means a column request was rejected before any row was read.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrCursorClosed is returned by reads on a closed cursor.
	ErrCursorClosed = errors.New("cursor closed")
)

// Error wraps a sentinel error with additional context and, optionally, the error that caused it.
type Error struct {
	err     error  // The underlying sentinel error
	cause   error  // The error reported by a collaborator, if any
	context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	msg := e.err.Error()
	if e.context != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.context)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.err}
	}
	return []error{e.err, e.cause}
}

// NewError creates a new error with context
func NewError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new error with context that also carries its cause.
func WrapError(err, cause error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		cause:   cause,
		context: fmt.Sprintf(format, args...),
	}
}
