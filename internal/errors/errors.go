package errors

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for a failed login. Unknown user and
	// wrong password produce this same value so responses cannot be used to
	// enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when no valid session token accompanies
	// the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrTokenExpired is returned when a session token is older than the
	// session lifetime.
	ErrTokenExpired = errors.New("token expired")
	// ErrForbidden is returned when the session identity may not perform the
	// requested mutation.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is returned for missing or malformed request input.
	ErrValidation = errors.New("missing or invalid request fields")
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store errors caused by
// pool saturation or timeouts map to 503 so requests fail instead of hanging;
// anything unrecognized is a 500 with a generic body.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusServiceUnavailable, "store unavailable", "SERVICE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
