// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for precondition and processing failures
var (
	ErrNotConnected     = errors.New("device not connected")
	ErrCommandFailed    = errors.New("device command failed")
	ErrInvalidPrefix    = errors.New("invalid prefix")
	ErrAmbiguousPrefix  = errors.New("prefix has no explicit length")
	ErrUnresolvedPrefix = errors.New("prefix could not be resolved")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
)

// CommandError wraps a failed device command with context
type CommandError struct {
	Device  string
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q on %s: %v", e.Command, e.Device, e.Err)
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// NewCommandError creates a command error
func NewCommandError(device, command string, err error) *CommandError {
	return &CommandError{Device: device, Command: command, Err: err}
}

// PrefixError reports why a prefix token could not be processed
type PrefixError struct {
	Token  string
	Reason string
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("prefix %q: %s", e.Token, e.Reason)
}

func (e *PrefixError) Unwrap() error {
	return ErrInvalidPrefix
}

// NewPrefixError creates a prefix error
func NewPrefixError(token, reason string) *PrefixError {
	return &PrefixError{Token: token, Reason: reason}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
