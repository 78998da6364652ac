/**
 * @description
 * The single application error type: an HTTP status code plus a safe,
 * user-facing message. The API layer maps these (and well-known store and
 * driver errors) onto the uniform JSON error envelope.
 */
package apperr

import (
	"errors"
	"net/http"
)

// Error is an application error carrying the HTTP status it should map to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an application error with an explicit status code.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error    { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error  { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error     { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error      { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error      { return New(http.StatusConflict, message) }
func Unprocessable(message string) *Error { return New(http.StatusUnprocessableEntity, message) }

// From extracts an *Error from an error chain.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
