package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "validation", err: ErrValidation, expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_ERROR"},
		{name: "invalid credentials", err: ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedCode: "INVALID_CREDENTIALS"},
		{name: "expired token", err: ErrTokenExpired, expectedStatus: http.StatusUnauthorized, expectedCode: "TOKEN_EXPIRED"},
		{name: "unauthenticated", err: ErrUnauthenticated, expectedStatus: http.StatusUnauthorized, expectedCode: "UNAUTHENTICATED"},
		{name: "forbidden", err: ErrForbidden, expectedStatus: http.StatusForbidden, expectedCode: "FORBIDDEN"},
		{name: "user not found", err: ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedCode: "USER_NOT_FOUND"},
		{
			name:           "store deadline exceeded",
			err:            context.DeadlineExceeded,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "SERVICE_UNAVAILABLE",
		},
		{
			// Services wrap store errors; the mapping must still see through.
			name:           "wrapped deadline exceeded",
			err:            fmt.Errorf("find user: %w", context.DeadlineExceeded),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "SERVICE_UNAVAILABLE",
		},
		{name: "unknown error", err: fmt.Errorf("boom"), expectedStatus: http.StatusInternalServerError, expectedCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestInternalErrorsNeverLeakDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "internal server error", httpErr.Message)
}
