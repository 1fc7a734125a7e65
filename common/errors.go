// Package common provides shared constants, types, and utilities
// used across the RedWARP application.
package common

import "errors"

// Sentinel errors for profile generation.
// These can be checked with errors.Is() for proper error handling.
var (
	// Generation errors, one per failure kind of a run.
	ErrMissingBinary         = errors.New("generator binary not found")
	ErrExternalCommandFailed = errors.New("generator command failed")
	ErrMissingTemplate       = errors.New("generated template not found")
	ErrIOFailure             = errors.New("file operation failed")
	ErrVerificationFailed    = errors.New("output verification failed")

	// ErrBusy is returned when a run is requested while another is active.
	ErrBusy = errors.New("a generation is already running")

	// Option errors.
	ErrUnknownPreset = errors.New("unknown DNS preset")
	ErrInvalidOption = errors.New("invalid option")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
