// Package errors provides structured error types for reelkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the builder, CLI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Caller-supplied configuration failures
//   - NOT_FOUND_*: Resource not found
//   - CONFLICT_*: State conflicts detected during validated builds
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDuration, "duration must be positive, got %f", d)
//	if errors.Is(err, errors.ErrCodeInvalidDuration) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save composition %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller configuration errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDuration   Code = "INVALID_DURATION"
	ErrCodeInvalidTiming     Code = "INVALID_TIMING"
	ErrCodeInvalidMedium     Code = "INVALID_MEDIUM"
	ErrCodeInvalidCanvas     Code = "INVALID_CANVAS"
	ErrCodeInvalidSpec       Code = "INVALID_SPEC"
	ErrCodeInvalidDescriptor Code = "INVALID_DESCRIPTOR"

	// Resource not found errors
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeEffectNotFound      Code = "EFFECT_NOT_FOUND"
	ErrCodeTransitionNotFound  Code = "TRANSITION_NOT_FOUND"
	ErrCodeAnimationNotFound   Code = "ANIMATION_NOT_FOUND"
	ErrCodeTrackNotFound       Code = "TRACK_NOT_FOUND"
	ErrCodeCompositionNotFound Code = "COMPOSITION_NOT_FOUND"

	// Build-time conflicts
	ErrCodeConflict        Code = "CONFLICT"
	ErrCodeOverlapConflict Code = "OVERLAP_CONFLICT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeStorage     Code = "STORAGE_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfiguration reports whether err is a caller configuration error
// (any of the INVALID_* codes).
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDuration, ErrCodeInvalidTiming,
		ErrCodeInvalidMedium, ErrCodeInvalidCanvas, ErrCodeInvalidSpec,
		ErrCodeInvalidDescriptor:
		return true
	}
	return false
}

// IsNotFound reports whether err is a not-found error (any NOT_FOUND_* code).
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeEffectNotFound, ErrCodeTransitionNotFound,
		ErrCodeAnimationNotFound, ErrCodeTrackNotFound, ErrCodeCompositionNotFound:
		return true
	}
	return false
}

// IsConflict reports whether err is a build-time conflict error.
func IsConflict(err error) bool {
	switch GetCode(err) {
	case ErrCodeConflict, ErrCodeOverlapConflict:
		return true
	}
	return false
}
