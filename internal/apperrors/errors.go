package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both unmatched lead ids and unknown referral codes.
	// Always a client error at the HTTP boundary.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps storage read/write failures. Server error; the
	// underlying message is logged, a generic one returned to the caller.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError is a missing/invalid required field or an invalid enum
// value. Rejected before any write happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Persistencef wraps a storage error so handlers can classify it with
// errors.Is while the chain keeps the driver detail for logging.
func Persistencef(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
