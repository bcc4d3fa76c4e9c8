// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchError represents a network or HTTP failure while retrieving a page
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying cause, if any
func (e *FetchError) Unwrap() error {
	return e.Err
}

// InsufficientContentError indicates a page parsed but fell below the
// extraction quality threshold
type InsufficientContentError struct {
	URL    string
	Reason string
}

// Error implements the error interface
func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("insufficient content at %s: %s", e.URL, e.Reason)
}

// StoreUnavailableError represents a downstream persistence or search failure
type StoreUnavailableError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying cause
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// ModelUnavailableError represents a language model call failure. It is
// always non-fatal: callers degrade to a default or fallback value.
type ModelUnavailableError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("language model unavailable during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying cause
func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsInsufficientContent checks if an error is an InsufficientContentError
func IsInsufficientContent(err error) bool {
	var contentErr *InsufficientContentError
	return errors.As(err, &contentErr)
}

// IsStoreUnavailable checks if an error is a StoreUnavailableError
func IsStoreUnavailable(err error) bool {
	var storeErr *StoreUnavailableError
	return errors.As(err, &storeErr)
}

// IsModelUnavailable checks if an error is a ModelUnavailableError
func IsModelUnavailable(err error) bool {
	var modelErr *ModelUnavailableError
	return errors.As(err, &modelErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
