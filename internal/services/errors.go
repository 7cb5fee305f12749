package services

import (
	"errors"
	"fmt"

	"shopx/internal/repositories"
)

// ErrNotFound is the services-level alias for a missing record. Handlers map
// it to 404 with no internal detail.
var ErrNotFound = repositories.ErrNotFound

// ErrInvalidCredentials is returned on any login failure. It deliberately
// does not say whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError is a caller-visible, field-scoped validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
