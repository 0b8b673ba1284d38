package review

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField        = errors.New("missing required field")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidName         = errors.New("name contains control characters")
	ErrDuplicateSubmission = errors.New("a review with the same name and text already exists")
	ErrNotFound            = errors.New("review not found")
	ErrStoreUnavailable    = errors.New("review store unavailable")
	ErrInvalidAction       = errors.New("invalid moderation action")
	ErrInvalidStatus       = errors.New("invalid review status")
)

// ValidationError names the submission field that failed and why.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
