package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain error taxonomy. Handlers map these to
// HTTP status codes; everything else is treated as an internal error.
var (
	// ErrNotFound marks a referenced resource that does not exist or is
	// not owned by the requesting user.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists marks a uniqueness violation.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrInvalidInput marks malformed or empty request input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal marks a store or generator failure whose details must
	// not reach the client.
	ErrInternal = errors.New("internal error")
)

// DomainError carries a machine code, a user-safe message, and the
// wrapped cause for logging.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface (used for logs and internal
// propagation, never for client responses).
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the client-safe message without internal detail.
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error for a resource.
func NewNotFoundError(resourceType, id string) error {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s '%s' not found", resourceType, id),
		Err:     ErrNotFound,
	}
}

// NewAlreadyExistsError creates a uniqueness-violation error.
func NewAlreadyExistsError(resourceType, name string) error {
	return &DomainError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s '%s' already exists", resourceType, name),
		Err:     ErrAlreadyExists,
	}
}

// NewInvalidInputError creates a validation error with a client-safe message.
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewInternalError wraps a store or generator failure. The client-safe
// message is generic; the cause stays available for logging.
func NewInternalError(err error) error {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Err:     fmt.Errorf("%w: %v", ErrInternal, err),
	}
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is a uniqueness violation.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidInput reports whether err is a validation error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInternalError reports whether err is an internal error.
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}
