// Package httperr defines the domain error taxonomy and its single
// translation point to HTTP responses. Services return *Error values;
// handlers finish with ToHTTP so that status codes and public messages
// are decided in exactly one place.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind classifies a domain failure.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindInvalidInput
	KindInvalidReference
	KindNotFound
	KindConflict
	KindInsufficientStock
)

// Error is a domain failure with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with a client-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause that is logged but never shown to the caller.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// NotFound, Conflict etc. are shorthand constructors for the common kinds.

func NotFound(message string) *Error          { return New(KindNotFound, message) }
func Conflict(message string) *Error          { return New(KindConflict, message) }
func InvalidInput(message string) *Error      { return New(KindInvalidInput, message) }
func InvalidReference(message string) *Error  { return New(KindInvalidReference, message) }
func Unauthenticated(message string) *Error   { return New(KindUnauthenticated, message) }
func Forbidden(message string) *Error         { return New(KindForbidden, message) }
func InsufficientStock(message string) *Error { return New(KindInsufficientStock, message) }

// Internal wraps an unexpected failure. The cause stays server-side.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "server error", cause: cause}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// Status maps a kind to its transport status code.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidInput, KindInvalidReference, KindInsufficientStock:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ToHTTP converts any error into an echo HTTPError carrying the
// {"error": message} body shape. Non-domain errors become opaque 500s.
func ToHTTP(err error) *echo.HTTPError {
	var de *Error
	if !errors.As(err, &de) {
		de = Internal(err)
	}
	return echo.NewHTTPError(de.Kind.Status(), map[string]string{"error": de.Message}).SetInternal(err)
}
