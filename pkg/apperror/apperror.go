// Package apperror classifies failures into a small set of kinds that the HTTP layer maps to
// status codes. Use cases return *AppError; adapters wrap driver errors into one.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
)

// statusByKind is checked in order; the first matching kind wins.
var statusByKind = []struct {
	kind   error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrInvalidInput, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrPermission, http.StatusForbidden},
	{ErrConflict, http.StatusConflict},
}

// AppError pairs a kind (BaseError) with a caller-facing Message. Details and Err stay
// server-side for 5xx responses.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.BaseError, e.Message)
	if e.Details != "" && e.Details != e.Message {
		msg += " (" + e.Details + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes only the kind, so errors.Is(err, ErrNotFound) never matches through a cause.
func (e *AppError) Unwrap() error {
	return e.BaseError
}

func (e *AppError) Cause() error {
	return e.Err
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	return NewAppError(ErrNotFound,
		fmt.Sprintf("%s not found", resource),
		fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier),
		nil,
	)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(resource, field, value string) *AppError {
	return NewAppError(ErrConflict,
		fmt.Sprintf("%s conflict", resource),
		fmt.Sprintf("%s with %s '%s' already exists", resource, field, value),
		nil,
	)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

// NewFailed is an Internal error whose message is shown to the caller verbatim.
func NewFailed(message string, err error) *AppError {
	return NewAppError(ErrInternal, message, message, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Unauthorized", details, err)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

// ToHTTPStatus maps any error to a status code. Errors of no known kind are 500.
func ToHTTPStatus(err error) int {
	for _, k := range statusByKind {
		if errors.Is(err, k.kind) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// ToJSON renders the response body. Details are included for client errors only.
func (e *AppError) ToJSON() gin.H {
	body := gin.H{
		"error":   e.BaseError.Error(),
		"message": e.Message,
	}
	if e.Details != "" && e.Details != e.Message && ToHTTPStatus(e) < http.StatusInternalServerError {
		body["details"] = e.Details
	}
	return body
}
