package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPrecondition indicates a business rule rejected the operation in the current state
// (order not in progress, nothing to distribute, terminal status). Not retryable.
var ErrPrecondition = errors.New("precondition failed")

// ErrConsistency indicates a referenced row that must exist was missing at write time.
var ErrConsistency = errors.New("data consistency error")

// ErrConflict indicates a conditional write lost a race (already claimed, already settled).
var ErrConflict = errors.New("concurrent modification")

// ErrTransient indicates an infrastructure failure the caller may retry (pool exhausted, connection lost).
var ErrTransient = errors.New("temporarily unavailable")

// ErrInternal is returned when the cause must not leak to the caller.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish code and a caller safe message around an underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
