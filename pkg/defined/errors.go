package defined

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies an APIError by the failure it represents.
type ErrorKind string

// Error kinds, from most to least specific. Transport errors occur before
// any HTTP status exists; client is the generic fallback for unexpected
// statuses and malformed success bodies.
const (
	ErrorKindValidation       ErrorKind = "validation"
	ErrorKindAuthentication   ErrorKind = "authentication"
	ErrorKindPermissionDenied ErrorKind = "permission_denied"
	ErrorKindNotFound         ErrorKind = "not_found"
	ErrorKindServer           ErrorKind = "server"
	ErrorKindClient           ErrorKind = "client"
	ErrorKindTransport        ErrorKind = "transport"
)

// ErrorDetail is a single machine-readable entry from the API's errors
// array. Code is an opaque token; the client never interprets it.
type ErrorDetail struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError is the common error type raised for every failed operation.
// Callers can match broadly with errors.As or use the Is* helpers for a
// specific kind.
type APIError struct {
	Kind    ErrorKind
	Message string

	// StatusCode is the HTTP status, or zero for transport errors.
	StatusCode int

	// Errors holds field-level details from a validation failure. It is
	// empty, never nil, when the API sent none.
	Errors []ErrorDetail

	// Response and Body expose the raw HTTP response for advanced
	// inspection. Body is fully read; Response.Body is already closed.
	Response *http.Response
	Body     []byte

	// Err is the underlying cause for transport errors.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		details := make([]string, 0, len(e.Errors))
		for _, detail := range e.Errors {
			details = append(details, detail.Message)
		}

		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(details, "; "))
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap exposes the underlying cause of transport errors to errors.Is.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation error (HTTP 400).
func IsValidation(err error) bool {
	return hasKind(err, ErrorKindValidation)
}

// IsAuthentication reports whether err is an authentication error
// (HTTP 401).
func IsAuthentication(err error) bool {
	return hasKind(err, ErrorKindAuthentication)
}

// IsPermissionDenied reports whether err is a permission-denied error
// (HTTP 403). A permission-denied failure usually means the API token is
// missing a required scope.
func IsPermissionDenied(err error) bool {
	return hasKind(err, ErrorKindPermissionDenied)
}

// IsNotFound reports whether err is a not-found error (HTTP 404).
func IsNotFound(err error) bool {
	return hasKind(err, ErrorKindNotFound)
}

// IsServer reports whether err is a server error (HTTP 5xx).
func IsServer(err error) bool {
	return hasKind(err, ErrorKindServer)
}

// IsTransport reports whether err is a network-level failure raised before
// any HTTP status existed.
func IsTransport(err error) bool {
	return hasKind(err, ErrorKindTransport)
}

func hasKind(err error, kind ErrorKind) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}
