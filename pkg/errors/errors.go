package errors

import (
	"fmt"
	"strings"
)

// ErrMissingFields rejects a sign-up that lacks one of its fields
var ErrMissingFields = NewValidationError(nil, "all fields are required")

// ValidationError represents a request rejected before anything was stored
type ValidationError struct {
	Fields  []string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(fields []string, message string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed: %s - %s", strings.Join(e.Fields, ", "), e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a mail that the SMTP server did not accept
type DeliveryError struct {
	Subject string
	Err     error
}

// NewDeliveryError creates a new delivery error
func NewDeliveryError(subject string, err error) *DeliveryError {
	return &DeliveryError{
		Subject: subject,
		Err:     err,
	}
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver %q: %v", e.Subject, e.Err)
}

// Unwrap returns the wrapped error
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
