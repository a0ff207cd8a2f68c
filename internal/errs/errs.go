// Package errs defines the error kinds surfaced by xcproj commands.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Kinds are stable and map onto exit codes.
type Kind int

const (
	// KindUnknown is used for errors that did not originate in xcproj.
	KindUnknown Kind = iota
	// KindInvalidArgument covers malformed, missing or forbidden input.
	KindInvalidArgument
	// KindNotFound covers targets, groups and files absent from the manifest.
	KindNotFound
	// KindOperationFailed covers domain logic that could not complete.
	KindOperationFailed
	// KindPersistenceFailed covers write-back failures after a mutation.
	KindPersistenceFailed
)

// String returns the stable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindOperationFailed:
		return "OPERATION_FAILED"
	case KindPersistenceFailed:
		return "PERSISTENCE_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is a classified failure. Value holds the offending input, if any.
type Error struct {
	Kind    Kind
	Message string
	Value   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument reports rejected input.
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// InvalidValue reports rejected input and keeps the offending value.
func InvalidValue(message, value string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf("%s: %s", message, value), Value: value}
}

// NotFound reports a missing manifest entry.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// OperationFailed reports a domain failure.
func OperationFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindOperationFailed, Message: fmt.Sprintf(format, args...)}
}

// PersistenceFailed wraps a storage failure.
func PersistenceFailed(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindPersistenceFailed, Message: fmt.Sprintf(format, args...), Err: err}
}

// Wrap classifies err under kind. A nil err returns nil.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
