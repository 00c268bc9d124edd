package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	customError "github.com/segyhp/propmgmt/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, map[string]interface{}{"count": float64(2)}, body.Data)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", customError.WrapUnitNotFound(4), http.StatusNotFound, customError.ErrCodeUnitNotFound, "Unit not found"},
		{"validation", customError.WrapValidation("bad unit"), http.StatusBadRequest, customError.ErrCodeValidation, "bad unit"},
		{"conflict", fmt.Errorf("delete: %w", customError.WrapConflict("has units")), http.StatusConflict, customError.ErrCodeConflict, "has units"},
		{"unauthorized", customError.WrapUnauthorized(errors.New("expired")), http.StatusUnauthorized, customError.ErrCodeUnauthorized, "Not authenticated"},
		{"forbidden", customError.WrapForbidden("admins only"), http.StatusForbidden, customError.ErrCodeForbidden, "admins only"},
		{"database", customError.WrapDatabaseError(errors.New("password=secret")), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			FromError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, w.Body.String(), "secret")
		})
	}
}
