// Package apperr defines the error kinds the core distinguishes, so that
// boundary adapters can map them to the right status code without
// string-matching error messages.
package apperr

import "fmt"

// Kind classifies a failure the way §7 of the design does.
type Kind string

const (
	// InvalidInput marks a malformed DTO. In practice this never reaches
	// the core: the boundary adapter rejects it first.
	InvalidInput Kind = "invalid_input"

	// NotFound marks a lookup that found nothing, e.g. deleting a member
	// who never stored anything.
	NotFound Kind = "not_found"

	// UpstreamUnavailable marks an embedding/LLM/vector-store transport
	// failure. The core does not retry automatically.
	UpstreamUnavailable Kind = "upstream_unavailable"

	// ContractViolation marks LLM output missing required JSON keys. The
	// novelty controller treats this as a failed attempt and retries
	// until its attempt budget is spent.
	ContractViolation Kind = "contract_violation"

	// PersistenceFailure marks a Store call that returned false. There is
	// no compensation; the caller surfaces it.
	PersistenceFailure Kind = "persistence_failure"
)

// Error wraps an underlying cause with a Kind, so callers can branch on
// classification while still being able to unwrap to the original error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error around an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			appErr = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if appErr == nil {
		return "", false
	}
	return appErr.Kind, true
}
