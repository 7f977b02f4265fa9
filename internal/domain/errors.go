package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for ledger operations. Unauthorized, validation and
// not-found errors are terminal caller mistakes; conflict errors are safe to
// retry because the failed operation left no partial effect; store errors
// wrap opaque datastore failures after a guaranteed full rollback.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("concurrent modification conflict")
	ErrStore        = errors.New("store failure")
)

// NewValidationError returns a ValidationError with a human-readable reason
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// NewNotFoundError returns a NotFound error naming the missing entity
func NewNotFoundError(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// NewStoreError wraps an opaque datastore failure
func NewStoreError(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}
