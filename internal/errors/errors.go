package errors

import "fmt"

// Error codes
const (
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeWriteFailed        = "WRITE_FAILED"
	ErrCodeSyncFailed         = "SYNC_FAILED"
	ErrCodeInvalidOutcome     = "INVALID_OUTCOME"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "WRITE_FAILED")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NOT_FOUND AppError.
func IsNotFound(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == ErrCodeNotFound
}

// NewStorageUnavailableError creates a STORAGE_UNAVAILABLE error.
// This is fatal for the session: the persistence layer could not be opened.
func NewStorageUnavailableError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeStorageUnavailable,
		Message: "local storage could not be opened",
		Status:  503,
		Err:     err,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewWriteFailedError creates a WRITE_FAILED error for a persistence write
// that did not apply.
func NewWriteFailedError(action string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeWriteFailed,
		Message: fmt.Sprintf("failed to persist %s", action),
		Status:  500,
		Err:     err,
	}
}

// NewSyncFailedError creates a SYNC_FAILED error for a push/pull exchange
// that the remote did not acknowledge.
func NewSyncFailedError(phase string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeSyncFailed,
		Message: fmt.Sprintf("sync %s failed", phase),
		Status:  502,
		Err:     err,
	}
}

// NewInvalidOutcomeError creates an INVALID_OUTCOME error for an
// unrecognized review result. This is a programmer error, not user input.
func NewInvalidOutcomeError(result string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidOutcome,
		Message: fmt.Sprintf("unrecognized review result: %q", result),
		Status:  500,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}
