package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrIntegrity    = errors.New("integrity violation")
	ErrValidation   = errors.New("validation failed")
	ErrAuthFailure  = errors.New("could not validate credentials")
	ErrInactiveUser = errors.New("inactive user")
	ErrForbidden    = errors.New("access forbidden")
	ErrDelivery     = errors.New("message delivery failed")
)

// ValidationError names the offending field. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a *ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the entity name and key that missed.
func NotFound(entity string, key any) error {
	return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
}
