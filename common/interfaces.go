// Package common provides shared constants, types, and utilities
// used across the RedWARP application.
package common

import "context"

// CommandRunner runs one external program to completion.
// Implementations must block until the process exits.
type CommandRunner interface {
	// Run executes name with args inside dir and returns its exit code.
	// A non-nil error means the process could not be started or waited on.
	Run(ctx context.Context, dir, name string, args ...string) (int, error)
}

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
	// NotifyWithIcon sends a notification with a custom icon.
	NotifyWithIcon(title, message, icon string) error
}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}
