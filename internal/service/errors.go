package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps them to HTTP status codes:
//   - ErrInvalidArgument → 400 Bad Request
//   - store.ErrNotFound (wrapped) → 404 Not Found
var (
	// ErrInvalidArgument indicates that a request references something that
	// does not exist or carries an unacceptable value, such as a book pointing
	// at an unknown author.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ServiceError is a custom error type for service errors.
// Message is safe to show to API clients; Err carries the cause for logs and errors.Is.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func authorNotFound(operation string, id int64, err error) *ServiceError {
	return NewServiceError("author", operation, fmt.Sprintf("Author not found with ID: %d", id), err)
}

func bookNotFound(operation string, id int64, err error) *ServiceError {
	return NewServiceError("book", operation, fmt.Sprintf("Book not found with ID: %d", id), err)
}
