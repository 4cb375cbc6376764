package errors

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrPaymentProcessing  = errors.New("payment processing failed")
	ErrValidation         = errors.New("validation failed")
)

// ValidationDetail points at a single rejected input field.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports client input that cannot be accepted.
type ValidationError struct {
	Message string
	Details []ValidationDetail
}

// NewValidationError builds ValidationError with optional field details.
func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		fields = append(fields, d.Field)
	}
	return e.Message + " (" + strings.Join(fields, ", ") + ")"
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AsValidationError extracts ValidationError from the chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// PaymentError carries the provider failure behind ErrPaymentProcessing.
type PaymentError struct {
	Provider string
	Cause    error
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return e.Provider + ": " + ErrPaymentProcessing.Error() + ": " + e.Cause.Error()
	}
	return e.Provider + ": " + ErrPaymentProcessing.Error()
}

func (e *PaymentError) Unwrap() []error {
	return []error{ErrPaymentProcessing, e.Cause}
}
