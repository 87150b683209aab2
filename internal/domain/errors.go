package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrCollision indicates a write would put two entries on one calendar day.
	ErrCollision = errors.New("an entry already exists for that day")
	// ErrAlreadyLogged indicates today already has an entry; edit it instead.
	ErrAlreadyLogged = errors.New("weight already logged today")
	// ErrNotFound indicates the store does not know the profile or entry.
	ErrNotFound = errors.New("not found")
	// ErrNoSession indicates no profile is bound to the running instance.
	ErrNoSession = errors.New("no profile selected")
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

var (
	// ErrProfileNotFound is the profile flavour of ErrNotFound.
	ErrProfileNotFound = fmt.Errorf("profile %w", ErrNotFound)
	// ErrEntryNotFound is the entry flavour of ErrNotFound.
	ErrEntryNotFound = fmt.Errorf("entry %w", ErrNotFound)
)
