package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when a request carries no usable admin session
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a client-facing message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError reports that a referenced record does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// UserError is a field-level failure reported by an Admin API mutation
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// RemoteAPIError wraps the userErrors returned by an Admin API mutation
type RemoteAPIError struct {
	UserErrors []UserError
}

func (e *RemoteAPIError) Error() string {
	if len(e.UserErrors) == 0 {
		return "remote api rejected the request"
	}
	return e.UserErrors[0].Message
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
