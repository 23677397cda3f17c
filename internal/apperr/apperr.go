// Package apperr defines the closed set of application errors understood by
// the HTTP layer.
//
// Every error that should reach a client with something other than the
// generic 500 envelope must be an *Error. Each Kind pins a stable,
// machine-readable code and an HTTP status:
//
//	Kind             Code              Status
//	KindValidation    VALIDATION_ERROR  400
//	KindUnauthorized  UNAUTHORIZED      401
//	KindForbidden     FORBIDDEN         403
//	KindNotFound      NOT_FOUND         404
//	KindConflict      CONFLICT          409
//	KindUnprocessable UNPROCESSABLE     422
//	KindApp           caller-chosen     caller-chosen (default INTERNAL_ERROR / 500)
//
// Messages carried by an *Error are considered safe to show to clients.
// Details are passed through untouched; callers must not put secrets there.
package apperr

import (
	"errors"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Kind discriminates the variants of Error.
type Kind uint8

const (
	// KindApp is the generic variant with caller-chosen code and status.
	KindApp Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnprocessable
)

// Stable error codes.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// Default messages for the variants that do not require one.
const (
	DefaultUnauthorizedMessage = "Unauthorized"
	DefaultForbiddenMessage    = "Forbidden"
	DefaultNotFoundMessage     = "Not found"
)

// String returns the variant name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "app"
	}
}

// Error is the single application error type. Construct it with the variant
// helpers (Validation, NotFound, ...) or New for ad-hoc errors.
type Error struct {
	Kind    Kind
	Code    string
	Status  int
	Message string
	// Details is optional structured data rendered into the response body.
	Details any
	// Cause is the underlying error. It is logged, never rendered.
	Cause error

	stack pkgerrors.StackTrace
}

// Error returns the client-safe message. All methods accept a nil receiver.
func (e *Error) Error() string {
	if e == nil {
		return "<nil *apperr.Error>"
	}
	return e.Message
}

// Unwrap exposes Cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// StackTrace returns the stack captured at construction. It satisfies the
// interface consumed by zerolog's pkgerrors marshaler.
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e == nil {
		return nil
	}
	return e.stack
}

// HasDetails reports whether the error carries details for the response body.
func (e *Error) HasDetails() bool { return e != nil && e.Details != nil }

// Option customizes an error built with New.
type Option func(*Error)

// WithCode overrides the machine-readable code.
func WithCode(code string) Option {
	return func(e *Error) {
		if code != "" {
			e.Code = code
		}
	}
}

// WithStatus overrides the HTTP status. Values outside 100..599 are ignored.
func WithStatus(status int) Option {
	return func(e *Error) {
		if status >= 100 && status <= 599 {
			e.Status = status
		}
	}
}

// WithDetails attaches structured details.
func WithDetails(details any) Option {
	return func(e *Error) { e.Details = details }
}

// WithCause records the underlying error for logging.
func WithCause(err error) Option {
	return func(e *Error) { e.Cause = err }
}

// New builds a generic application error. Code defaults to INTERNAL_ERROR and
// status to 500 unless overridden.
func New(message string, opts ...Option) *Error {
	e := &Error{
		Kind:    KindApp,
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: message,
		stack:   callers(1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validation is a 400 for malformed input. The message is required.
func Validation(message string, details ...any) *Error {
	return variant(KindValidation, CodeValidation, http.StatusBadRequest, message, details)
}

// Unauthorized is a 401 for missing or invalid credentials.
func Unauthorized(message string, details ...any) *Error {
	return variant(KindUnauthorized, CodeUnauthorized, http.StatusUnauthorized,
		orDefault(message, DefaultUnauthorizedMessage), details)
}

// Forbidden is a 403 for authenticated callers lacking permission.
func Forbidden(message string, details ...any) *Error {
	return variant(KindForbidden, CodeForbidden, http.StatusForbidden,
		orDefault(message, DefaultForbiddenMessage), details)
}

// NotFound is a 404.
func NotFound(message string, details ...any) *Error {
	return variant(KindNotFound, CodeNotFound, http.StatusNotFound,
		orDefault(message, DefaultNotFoundMessage), details)
}

// Conflict is a 409, e.g. a duplicate resource. The message is required.
func Conflict(message string, details ...any) *Error {
	return variant(KindConflict, CodeConflict, http.StatusConflict, message, details)
}

// Unprocessable is a 422 for well-formed requests that break a business rule.
// The message is required.
func Unprocessable(message string, details ...any) *Error {
	return variant(KindUnprocessable, CodeUnprocessable, http.StatusUnprocessableEntity, message, details)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

// Is reports whether err is (or wraps) an application error.
func Is(err error) bool {
	_, ok := As(err)
	return ok
}

func variant(kind Kind, code string, status int, message string, details []any) *Error {
	e := &Error{
		Kind:    kind,
		Code:    code,
		Status:  status,
		Message: message,
		stack:   callers(2),
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// callers captures the current stack, dropping its own frame plus skip
// constructor frames so the trace starts at the error site.
func callers(skip int) pkgerrors.StackTrace {
	st := pkgerrors.New("").(stackTracer).StackTrace()
	if n := 1 + skip; len(st) > n {
		return st[n:]
	}
	return st
}
