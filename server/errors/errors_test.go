package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Constructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"not found", NewNotFoundError("missing", cause), http.StatusNotFound},
		{"validation", NewValidationError("bad", cause), http.StatusBadRequest},
		{"conflict", NewConflictError("dup", cause), http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("who", cause), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no", cause), http.StatusForbidden},
		{"too large", NewPayloadTooLargeError("big", cause), http.StatusRequestEntityTooLarge},
		{"rate limited", NewTooManyRequestsError("slow", cause), http.StatusTooManyRequests},
		{"unavailable", NewServiceUnavailableError("down", cause), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.StatusCode())
			assert.ErrorIs(t, tt.err, cause)
			assert.Contains(t, tt.err.Error(), tt.err.UserMessage())
		})
	}
}

func TestNewInternalError_HidesDetails(t *testing.T) {
	err := NewInternalError("failed to query orders", errors.New("disk I/O error"))

	assert.Equal(t, "Internal server error", err.UserMessage())
	assert.Contains(t, err.Err.Error(), "failed to query orders")
	assert.Contains(t, err.Err.Error(), "disk I/O error")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "ignored"))

	inner := NewConflictError("Duplicate entry", nil).WithDetail("duplicate", true)
	wrapped := WrapError(inner, "import row 3")
	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusConflict, wrapped.Code)
	assert.Equal(t, "import row 3: Duplicate entry", wrapped.Message)
	assert.Equal(t, true, wrapped.ResponseDetails()["duplicate"])

	plain := WrapError(errors.New("boom"), "export")
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
}
