package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound         = errors.New("not found")
	ErrPropertyNotFound = fmt.Errorf("property %w", ErrNotFound)
	ErrUnitNotFound     = fmt.Errorf("unit %w", ErrNotFound)
	ErrTenantNotFound   = fmt.Errorf("tenant %w", ErrNotFound)
	ErrLeaseNotFound    = fmt.Errorf("lease %w", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("payment %w", ErrNotFound)
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePropertyNotFound = "PROPERTY_NOT_FOUND"
	ErrCodeUnitNotFound     = "UNIT_NOT_FOUND"
	ErrCodeTenantNotFound   = "TENANT_NOT_FOUND"
	ErrCodeLeaseNotFound    = "LEASE_NOT_FOUND"
	ErrCodePaymentNotFound  = "PAYMENT_NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapPropertyNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodePropertyNotFound,
		"Property not found",
		fmt.Errorf("property %d: %w", id, ErrPropertyNotFound),
	)
}

func WrapUnitNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeUnitNotFound,
		"Unit not found",
		fmt.Errorf("unit %d: %w", id, ErrUnitNotFound),
	)
}

func WrapTenantNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantNotFound,
		"Tenant not found",
		fmt.Errorf("tenant %d: %w", id, ErrTenantNotFound),
	)
}

func WrapLeaseNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeLeaseNotFound,
		"Lease not found",
		fmt.Errorf("lease %d: %w", id, ErrLeaseNotFound),
	)
}

func WrapPaymentNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		"Payment not found",
		fmt.Errorf("payment %d: %w", id, ErrPaymentNotFound),
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		message,
		ErrValidation,
	)
}

func WrapConflict(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeConflict,
		message,
		ErrConflict,
	)
}

func WrapUnauthorized(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeUnauthorized,
		"Not authenticated",
		fmt.Errorf("%w: %v", ErrUnauthorized, err),
	)
}

func WrapForbidden(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeForbidden,
		message,
		ErrForbidden,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// Message returns the client-facing message of a BusinessError, or fallback
// for any other error
func Message(err error, fallback string) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return fallback
}
