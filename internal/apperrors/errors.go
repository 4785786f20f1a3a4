package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a balance-gated operation was rejected
// because the gating account cannot cover the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnavailable indicates that an exclusive account hold could not be obtained
// within the configured wait. Callers may retry.
var ErrUnavailable = errors.New("temporarily unavailable")

// ErrInternal marks unexpected store or lock failures.
var ErrInternal = errors.New("internal error")

// Outcome kinds callers can branch on. The values are stable.
const (
	KindInvalidRequest    = "invalid_request"
	KindNotFound          = "not_found"
	KindInsufficientFunds = "insufficient_funds"
	KindUnavailable       = "unavailable"
	KindInternal          = "internal"
)

// AppError carries an HTTP-ish status code and a safe message alongside the
// wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel implied by the status code, so a
// NewAppError(500, ...) is also an ErrInternal.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusUnprocessableEntity:
		return target == ErrInsufficientFunds
	case http.StatusServiceUnavailable:
		return target == ErrUnavailable
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// NewValidationError creates a 400 AppError.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// Kind maps an error to its stable outcome kind. Unknown errors are internal.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindInvalidRequest
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindInternal
	}
}

// NewInsufficientFundsError creates a 422 AppError.
func NewInsufficientFundsError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message}
}

// NewUnavailableError creates a 503 AppError. Callers may retry.
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Err: err}
}
