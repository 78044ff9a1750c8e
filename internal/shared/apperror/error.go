// Package apperror defines the error type carried from services to the HTTP error mapper.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Common error codes shared by every domain.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidID          = "INVALID_ID"
	CodeValidation         = "VALIDATION_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is a fault with an HTTP status and a stable code.
// Two errors match with errors.Is when their codes are equal.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

var (
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, CodeStorageUnavailable, "storage unavailable")
	ErrInternal           = New(http.StatusInternalServerError, CodeInternal, "internal server error")
)

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e that carries err as its cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// WithDetails returns a copy of e with details attached.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// InvalidRequest reports a malformed body or query.
func InvalidRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidRequest, message)
}

// InvalidBody reports a request body that could not be decoded. The decoder
// message goes under details.body so details stays an object.
func InvalidBody(err error) *Error {
	return InvalidRequest("invalid JSON body").WithDetails(map[string]string{"body": err.Error()})
}

// InvalidID reports a path id that is not a positive integer.
func InvalidID(raw string) *Error {
	return New(http.StatusBadRequest, CodeInvalidID, fmt.Sprintf("invalid id %q", raw))
}

// Validation converts an ozzo-validation result into a 400 error.
// Per-field messages end up in Details.
func Validation(err error) *Error {
	appErr := New(http.StatusBadRequest, CodeValidation, err.Error())

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			details[field] = ferr.Error()
		}
		appErr.Message = "validation failed"
		appErr.Details = details
	}
	return appErr
}

// From extracts an *Error from err, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
