package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// FetchFailed wraps a failed metadata fetch (language set, language list,
// room info) against the translation backend.
func FetchFailed(resource string, err error) *AppError {
	return &AppError{
		Code:    "FETCH_ERROR",
		Message: fmt.Sprintf("failed to fetch %s", resource),
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// TransportFailed wraps a stream-delivery failure (dial, write, batch
// translation request). Callers log these; they are never surfaced to users.
func TransportFailed(operation string, err error) *AppError {
	return &AppError{
		Code:    "TRANSPORT_ERROR",
		Message: fmt.Sprintf("transport failure during %s", operation),
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
