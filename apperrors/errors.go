// Package apperrors defines the error taxonomy shared by every layer:
// validation failures the caller can correct, ownership mismatches on
// another user's resources, storage failures that were rolled back, and
// recommendation-provider failures callers may degrade on.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports a caller-correctable problem: a missing field, a
// full drawer, a duplicate unique value.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// OwnershipError reports an attempt to act on a resource that exists but
// belongs to another user. Distinct from validation so transports can answer
// with a permission status instead of a bad-request one.
type OwnershipError struct {
	Message string
}

func (e *OwnershipError) Error() string { return e.Message }

// Ownership builds an OwnershipError from a format string.
func Ownership(format string, args ...any) error {
	return &OwnershipError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a database failure after its transaction was rolled
// back. Callers see it as a generic infrastructure failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError, passing nil through unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// RecommendationError reports a failed or malformed response from the
// external completion provider.
type RecommendationError struct {
	Message string
	Err     error
}

func (e *RecommendationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recommendation: %s: %v", e.Message, e.Err)
	}
	return "recommendation: " + e.Message
}

func (e *RecommendationError) Unwrap() error { return e.Err }

// Recommendation builds a RecommendationError around an optional cause.
func Recommendation(message string, err error) error {
	return &RecommendationError{Message: message, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsOwnership(err error) bool {
	var o *OwnershipError
	return errors.As(err, &o)
}

func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}

func IsRecommendation(err error) bool {
	var r *RecommendationError
	return errors.As(err, &r)
}
