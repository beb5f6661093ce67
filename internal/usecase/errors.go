package usecase

import (
	"errors"
	"net/http"
)

// DomainError is a user-facing failure with a stable code and the HTTP
// status it maps to at the boundary. Message is safe to show the caller.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: "VALIDATION_ERROR", Message: msg, Status: http.StatusBadRequest}
}

func NewConflictError(msg string) *DomainError {
	return &DomainError{Code: "CONFLICT", Message: msg, Status: http.StatusConflict}
}

func NewAuthError(msg string) *DomainError {
	return &DomainError{Code: "UNAUTHORIZED", Message: msg, Status: http.StatusUnauthorized}
}

func NewNotFoundError(msg string) *DomainError {
	return &DomainError{Code: "NOT_FOUND", Message: msg, Status: http.StatusNotFound}
}

func NewRateLimitError(msg string) *DomainError {
	return &DomainError{Code: "RATE_LIMITED", Message: msg, Status: http.StatusTooManyRequests}
}

// NewConfigError flags a missing server-side setting. Operator-facing:
// the message names the env var, which is fine to return (it leaks no data).
func NewConfigError(msg string) *DomainError {
	return &DomainError{Code: "CONFIG_ERROR", Message: msg, Status: http.StatusInternalServerError}
}

func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func IsDomainError(err error) bool {
	_, ok := AsDomainError(err)
	return ok
}
