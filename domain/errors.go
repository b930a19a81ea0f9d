package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates a missing or rejected session cookie.
var ErrUnauthorized = errors.New("unauthorized")

// ErrorKind classifies an API failure. Every kind is recoverable: the caller
// reports it and returns to the previous prompt, nothing terminates the
// process.
type ErrorKind int

const (
	// ErrTransport covers network, DNS and TLS failures.
	ErrTransport ErrorKind = iota
	// ErrUnexpectedContentType means the response did not declare JSON.
	ErrUnexpectedContentType
	// ErrEmptyResponse means the body was empty after envelope unwrapping.
	ErrEmptyResponse
	// ErrJSONSyntax means the body could not be parsed even after repair.
	ErrJSONSyntax
	// ErrRemote carries an error message reported by the service itself.
	ErrRemote
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTransport:
		return "transport error"
	case ErrUnexpectedContentType:
		return "unexpected content type"
	case ErrEmptyResponse:
		return "empty response"
	case ErrJSONSyntax:
		return "json syntax error"
	case ErrRemote:
		return "remote error"
	default:
		return "unknown error"
	}
}

// APIError is the typed failure returned from the client layer.
type APIError struct {
	Kind    ErrorKind
	Message string
	Line    int // Populated for ErrJSONSyntax when derivable.
	Col     int
	Err     error // Underlying cause, if any.
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == ErrJSONSyntax && e.Line > 0:
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Col, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}
