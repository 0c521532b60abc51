// Package errors provides the typed error values returned by the account
// domain and their mapping to transport status codes.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind groups codes into the four error families surfaced to callers.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindPersistence Kind = "PERSISTENCE"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Validation
	CodeAccountIDNotAllowed   Code = "ACCOUNT_ID_NOT_ALLOWED"
	CodeAccountIDRequired     Code = "ACCOUNT_ID_REQUIRED"
	CodeTenantIDRequired      Code = "TENANT_ID_REQUIRED"
	CodeOwnerIDRequired       Code = "OWNER_ID_REQUIRED"
	CodeInvalidStatus         Code = "INVALID_STATUS"
	CodeInvalidInitialStatus  Code = "INVALID_INITIAL_STATUS"
	CodeInvalidRequestPayload Code = "INVALID_REQUEST_PAYLOAD"

	// Not found
	CodeAccountNotFound Code = "ACCOUNT_NOT_FOUND"

	// Conflict
	CodeSameStatus    Code = "ACCOUNT_ALREADY_IN_STATUS"
	CodeAccountClosed Code = "ACCOUNT_CLOSED"

	// Persistence
	CodePersistenceFailed Code = "PERSISTENCE_FAILED"
)

// Kind reports the family a code belongs to.
func (c Code) Kind() Kind {
	switch c {
	case CodeAccountIDNotAllowed,
		CodeAccountIDRequired,
		CodeTenantIDRequired,
		CodeOwnerIDRequired,
		CodeInvalidStatus,
		CodeInvalidInitialStatus,
		CodeInvalidRequestPayload:
		return KindValidation
	case CodeAccountNotFound:
		return KindNotFound
	case CodeSameStatus, CodeAccountClosed:
		return KindConflict
	default:
		return KindPersistence
	}
}

// HTTPStatus maps a code to the status used in response envelopes.
func (c Code) HTTPStatus() int {
	switch c.Kind() {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error value. Process names the layer and operation that
// produced it.
type Error struct {
	Code    Code
	Message string
	Process string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, or a kind sentinel of the same
// family.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case *Error:
		return e.Code == t.Code
	case kindSentinel:
		return e.Code.Kind() == Kind(t)
	}
	return false
}

type kindSentinel Kind

func (k kindSentinel) Error() string { return string(k) }

// Kind sentinels for errors.Is checks against a whole family.
var (
	ErrValidation  error = kindSentinel(KindValidation)
	ErrNotFound    error = kindSentinel(KindNotFound)
	ErrConflict    error = kindSentinel(KindConflict)
	ErrPersistence error = kindSentinel(KindPersistence)
)

func New(code Code, process, message string) *Error {
	return &Error{Code: code, Message: message, Process: process}
}

func Wrap(code Code, process, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Process: process, Cause: cause}
}

// From extracts an *Error from err. Errors that are not domain errors are
// reported as unknown persistence failures.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return &Error{Code: CodeUnknown, Message: "internal error", Cause: err}
}

// HTTPStatus returns the envelope status code for any error.
func HTTPStatus(err error) int {
	return From(err).Code.HTTPStatus()
}
