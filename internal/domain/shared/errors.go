// Package shared contains the error kinds used across all gradebook packages.
// This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base error kinds that can be used for error checking with errors.Is().
var (
	// Validation errors
	ErrInvalidGrade = errors.New("grade out of range")
	ErrParseFailure = errors.New("malformed grade")
	ErrInvalidName  = errors.New("invalid ledger name")

	// Storage errors
	ErrCorrupt             = errors.New("corrupt record")
	ErrResourceUnavailable = errors.New("resource unavailable")

	// State errors
	ErrNoData = errors.New("no grades recorded")
)

// DomainError represents a gradebook error with context.
type DomainError struct {
	Domain  string // e.g., "ledger", "grade", "postgres"
	Op      string // Operation that failed, e.g., "AddGrade"
	Kind    error  // Base error kind for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsInvalidGrade checks if the error is an out-of-range grade.
func IsInvalidGrade(err error) bool {
	return errors.Is(err, ErrInvalidGrade)
}

// IsParseFailure checks if the error is a malformed numeral.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParseFailure)
}

// IsCorrupt checks if a stored record could not be read back.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

// IsResourceUnavailable checks if the backing store could not be reached.
func IsResourceUnavailable(err error) bool {
	return errors.Is(err, ErrResourceUnavailable)
}

// IsNoData checks if statistics were requested from an empty ledger.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// IsInvalidName checks if a ledger name was rejected.
func IsInvalidName(err error) bool {
	return errors.Is(err, ErrInvalidName)
}

// IsRecoverable reports whether an interactive session may keep going after err.
func IsRecoverable(err error) bool {
	return IsInvalidGrade(err) || IsParseFailure(err)
}
