package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundWrappers(t *testing.T) {
	tests := []struct {
		name     string
		err      *BusinessError
		sentinel error
		code     string
		message  string
	}{
		{"property", WrapPropertyNotFound(1), ErrPropertyNotFound, ErrCodePropertyNotFound, "Property not found"},
		{"unit", WrapUnitNotFound(2), ErrUnitNotFound, ErrCodeUnitNotFound, "Unit not found"},
		{"tenant", WrapTenantNotFound(3), ErrTenantNotFound, ErrCodeTenantNotFound, "Tenant not found"},
		{"lease", WrapLeaseNotFound(4), ErrLeaseNotFound, ErrCodeLeaseNotFound, "Lease not found"},
		{"payment", WrapPaymentNotFound(5), ErrPaymentNotFound, ErrCodePaymentNotFound, "Payment not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.True(t, errors.Is(tt.err, ErrNotFound))
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, Message(tt.err, "fallback"))
		})
	}
}

func TestBusinessError_Error(t *testing.T) {
	err := WrapValidation("unit does not belong to property")
	assert.Equal(t, "VALIDATION_ERROR: unit does not belong to property (validation failed)", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	bare := NewBusinessError("X", "plain", nil)
	assert.Equal(t, "X: plain", bare.Error())
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))

	wrapped := fmt.Errorf("outer: %w", WrapConflict("property has units"))
	assert.Equal(t, "property has units", Message(wrapped, "fallback"))
	assert.True(t, errors.Is(wrapped, ErrConflict))
}

func TestWrapDatabaseError_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDatabaseError(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeDatabaseError, err.Code)
}
