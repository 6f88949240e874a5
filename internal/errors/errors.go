package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering an email that is taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrIdeaNotFound is returned when no idea matches the given id.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrRoomNotFound is returned when no room matches the given id.
	ErrRoomNotFound = errors.New("room not found")
	// ErrSelfTarget is returned when a user aims a roster mutation at their own account.
	ErrSelfTarget = errors.New("cannot target your own account")
	// ErrNotIdeaOwner is returned when a non-admin deletes someone else's idea.
	ErrNotIdeaOwner = errors.New("only the author or an admin may delete an idea")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrEmailExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case ErrIdeaNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "IDEA_NOT_FOUND")
	case ErrRoomNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROOM_NOT_FOUND")
	case ErrSelfTarget:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_TARGET")
	case ErrNotIdeaOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_IDEA_OWNER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
