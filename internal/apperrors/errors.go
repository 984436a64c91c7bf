// Package apperrors defines the error taxonomy every failure in the
// request path collapses into, and the translator that maps any error to
// a single {status, message} pair at the HTTP boundary.
package apperrors

import "net/http"

// Kind tags a domain error. The HTTP status is baked in at raise time.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInternal
)

// Error is the tagged domain error raised by services.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Operational marks expected failures; internal errors are not.
	Operational bool
}

func (e *Error) Error() string { return e.Message }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Operational: true}
}

// NotFound renders "<resource> not found".
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: resource + " not found", Operational: true}
}

// NotFoundMessage is NotFound with a caller-supplied message for cases
// the "<resource> not found" shape does not fit.
func NotFoundMessage(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message, Operational: true}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: message, Operational: true}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message, Operational: true}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message, Operational: false}
}

// HTTPError carries an explicit transport-level status. The translator
// passes it through unchanged.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) HTTPStatus() int { return e.Status }
