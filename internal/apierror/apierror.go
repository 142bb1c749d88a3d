package apierror

import (
	"net/http"
	"strings"
)

// ValidationError carries every violated constraint for a request, in the
// order the schema declares its fields. The request is aborted whole, there
// is no partial processing.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func (e *UnauthorizedError) StatusCode() int {
	return http.StatusUnauthorized
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func (e *ForbiddenError) StatusCode() int {
	return http.StatusForbidden
}

func NewValidation(errs []string) *ValidationError {
	return &ValidationError{Errors: errs}
}

func NewNotFound(msg string) *NotFoundError {
	return &NotFoundError{Message: msg}
}

func NewUnauthorized(msg string) *UnauthorizedError {
	return &UnauthorizedError{Message: msg}
}

func NewForbidden(msg string) *ForbiddenError {
	return &ForbiddenError{Message: msg}
}

type statusCoder interface {
	StatusCode() int
}

// Status maps an error to its client-facing status code, internal server
// error for anything outside the taxonomy.
func Status(err error) int {
	if sc, ok := err.(statusCoder); ok {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// Messages returns the client-facing error list for an error. Validation
// errors enumerate every violated constraint, other kinds carry one message.
func Messages(err error) []string {
	if v, ok := err.(*ValidationError); ok {
		return v.Errors
	}
	if Status(err) == http.StatusInternalServerError {
		return []string{"an internal error has occurred"}
	}
	return []string{err.Error()}
}
