package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	ErrValidation    = errors.New("validation error")
)

// UnavailableReason explains why a skin could not be purchased.
type UnavailableReason string

const (
	// ReasonNotFound: the skin does not exist or has been soft-deleted.
	ReasonNotFound UnavailableReason = "not_found"
	// ReasonNotAvailable: the skin exists but its availability flag is off.
	ReasonNotAvailable UnavailableReason = "not_available"
	// ReasonConflict: the skin row was modified concurrently; the caller
	// may retry.
	ReasonConflict UnavailableReason = "conflict"
)

// SkinUnavailableError is returned when a purchase targets a skin that
// cannot be bought. It is caller-correctable and never fatal.
type SkinUnavailableError struct {
	SkinID uuid.UUID
	Reason UnavailableReason
}

func (e *SkinUnavailableError) Error() string {
	return fmt.Sprintf("skin %s unavailable: %s", e.SkinID, e.Reason)
}

// Retryable reports whether retrying the same request may succeed.
func (e *SkinUnavailableError) Retryable() bool {
	return e.Reason == ReasonConflict
}

// ExternalServiceError is returned when an upstream dependency is down and
// no acceptable fallback exists. It is transient; callers should retry later.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s unavailable: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
