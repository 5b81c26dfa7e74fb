package invoice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrDuplicateInvoice is returned when an invoice already exists for the
	// same subscription and billing period. This is the idempotence guard
	// against double billing on retried runs.
	ErrDuplicateInvoice = errors.New("invoice already exists for period")

	// ErrInvalidInvoiceStatus is returned when an invoice status transition
	// is invalid
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")

	// ErrInvoiceAlreadyPaid indicates that the invoice has already been paid
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
)

// ValidationError represents an error that occurs during invoice validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicateInvoice checks if an error is a duplicate period error
func IsDuplicateInvoice(err error) bool {
	return errors.Is(err, ErrDuplicateInvoice)
}
