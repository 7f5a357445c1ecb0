// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrInvalidInput = errors.New("invalid input provided")
	ErrStorage      = errors.New("storage failure")
	ErrBackup       = errors.New("backup failure")
)

// ValidationError rejects a submission before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// StorageError wraps a persistence failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// BackupError wraps a failed online backup.
type BackupError struct {
	Err error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("online backup failed: %v", e.Err)
}

func (e *BackupError) Unwrap() []error { return []error{ErrBackup, e.Err} }

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
