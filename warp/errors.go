package warp

import (
	"errors"
	"fmt"

	"github.com/yllada/redwarp/common"
)

// ErrorKind classifies a failed generation run.
type ErrorKind int

const (
	MissingBinary ErrorKind = iota + 1
	ExternalCommandFailed
	MissingTemplate
	IOFailure
	VerificationFailed
)

// String returns the kind name shown to the user.
func (k ErrorKind) String() string {
	switch k {
	case MissingBinary:
		return "MissingBinary"
	case ExternalCommandFailed:
		return "ExternalCommandFailed"
	case MissingTemplate:
		return "MissingTemplate"
	case IOFailure:
		return "IOFailure"
	case VerificationFailed:
		return "VerificationFailed"
	default:
		return "Unknown"
	}
}

// sentinel maps a kind to its common package error.
func (k ErrorKind) sentinel() error {
	switch k {
	case MissingBinary:
		return common.ErrMissingBinary
	case ExternalCommandFailed:
		return common.ErrExternalCommandFailed
	case MissingTemplate:
		return common.ErrMissingTemplate
	case IOFailure:
		return common.ErrIOFailure
	case VerificationFailed:
		return common.ErrVerificationFailed
	default:
		return nil
	}
}

// Error is the terminal failure of a generation run.
type Error struct {
	Kind ErrorKind
	// Subject names the offending path or command.
	Subject string
	// Detail is a short human-readable explanation.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	if e.Subject != "" {
		msg += " (" + e.Subject + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel error of the kind, e.g. common.ErrMissingBinary.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind ErrorKind, subject, detail string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: detail, Err: err}
}
