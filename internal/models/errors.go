package models

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Controllers map these onto HTTP status codes,
// services wrap them with context via fmt.Errorf("...: %w", err).
var (
	ErrNotFound          = errors.New("record not found")
	ErrPaymentNotAllowed = errors.New("payment not allowed for this challan")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrPolicyViolation   = errors.New("operation violates policy")
)

// ValidationError reports bad or missing caller input for a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
