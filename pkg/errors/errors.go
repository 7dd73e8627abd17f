// Package errors provides custom error types for the usersweep system.
// These errors let callers tell apart failures that end the process
// (an unreachable store at startup) from failures that only end one
// operation (a missing user) or one record (a failed delete).
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Join is an alias for the standard library errors.Join.
var Join = errors.Join

// As is an alias for the standard library errors.As.
var As = errors.As

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// Common sentinel errors for the usersweep system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates that a backing store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDeleteFailed indicates that a single record could not be deleted
	ErrDeleteFailed = errors.New("delete failed")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	Key      string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// StoreUnavailableError reports that a store call failed for reasons other
// than a missing record: network, permissions, quota, cancelled context.
type StoreUnavailableError struct {
	Store     string // "identity" or "documents"
	Operation string // "list", "get", "ping"
	Err       error
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s store unavailable during %s: %v", e.Store, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s store unavailable: %v", e.Store, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewStoreUnavailableError creates a new StoreUnavailableError
func NewStoreUnavailableError(store, operation string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{Store: store, Operation: operation, Err: err}
}

// DeleteError represents the failure to delete one record.
type DeleteError struct {
	Store      string
	Collection string
	ID         string
	Err        error
}

// Error implements the error interface
func (e *DeleteError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("failed to delete %s/%s from %s store: %v", e.Collection, e.ID, e.Store, e.Err)
	}
	return fmt.Sprintf("failed to delete %s from %s store: %v", e.ID, e.Store, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DeleteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DeleteError) Is(target error) bool {
	return target == ErrDeleteFailed
}

// NewDeleteError creates a new DeleteError
func NewDeleteError(store, collection, id string, err error) *DeleteError {
	return &DeleteError{Store: store, Collection: collection, ID: id, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStoreUnavailable checks if an error indicates an unreachable store
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsDeleteError checks if an error is a per-record delete failure
func IsDeleteError(err error) bool {
	return errors.Is(err, ErrDeleteFailed)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapDelete wraps an error as a DeleteError
func WrapDelete(store, collection, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewDeleteError(store, collection, id, err)
}

// WrapUnavailable wraps an error as a StoreUnavailableError
func WrapUnavailable(store, operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreUnavailableError(store, operation, err)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
