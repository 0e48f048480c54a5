package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the "code" field of every error response.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
	CodeNotFound       = "NOT_FOUND"
	CodeCreateFailed   = "CREATE_FAILED"
	CodeListFailed     = "LIST_FAILED"
	CodeFetchFailed    = "FETCH_FAILED"
	CodeUpdateFailed   = "UPDATE_FAILED"
	CodeDeleteFailed   = "DELETE_FAILED"
	CodeInternal       = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewDuplicateEmail(err error) error {
	return &DomainError{
		Code:       CodeDuplicateEmail,
		Message:    "Email already exists",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewStoreFailure reports a store-side error as a client error carrying the store message.
func NewStoreFailure(code string, err error) error {
	message := "store operation failed"
	if err != nil {
		message = err.Error()
	}
	return &DomainError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeForStatus picks a response code for errors that only carry an HTTP status.
func CodeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 500:
		return CodeInternal
	case status == http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "BAD_REQUEST"
	}
}
