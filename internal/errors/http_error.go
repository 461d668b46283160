package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind is the machine-readable category of an error returned to API clients.
type Kind string

const (
	KindInvalidInput             Kind = "InvalidInput"
	KindUnknownBlock             Kind = "UnknownBlock"
	KindDuplicateName            Kind = "DuplicateName"
	KindBlockFull                Kind = "BlockFull"
	KindAlreadyParked            Kind = "AlreadyParked"
	KindNoActiveSession          Kind = "NoActiveSession"
	KindMultipleActiveSessions   Kind = "MultipleActiveSessions"
	KindAvailabilityLookupFailed Kind = "AvailabilityLookupFailed"
	KindTimestampParseError      Kind = "TimestampParseError"
	KindStoreUnavailable         Kind = "StoreUnavailable"
	KindConstraintViolation      Kind = "ConstraintViolation"
	KindInternal                 Kind = "Internal"
)

var kindStatus = map[Kind]int{
	KindInvalidInput:             http.StatusBadRequest,
	KindUnknownBlock:             http.StatusNotFound,
	KindNoActiveSession:          http.StatusNotFound,
	KindDuplicateName:            http.StatusConflict,
	KindBlockFull:                http.StatusConflict,
	KindAlreadyParked:            http.StatusConflict,
	KindMultipleActiveSessions:   http.StatusConflict,
	KindConstraintViolation:      http.StatusConflict,
	KindAvailabilityLookupFailed: http.StatusServiceUnavailable,
	KindStoreUnavailable:         http.StatusServiceUnavailable,
	KindTimestampParseError:      http.StatusInternalServerError,
	KindInternal:                 http.StatusInternalServerError,
}

// HTTPError represents an error with an associated HTTP status code and kind.
type HTTPError struct {
	Code    int
	Kind    Kind
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is matches any *HTTPError of the same kind, so sentinels work with errors.Is.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind; the status code follows the kind.
func New(kind Kind, message string) *HTTPError {
	return &HTTPError{Code: StatusFor(kind), Kind: kind, Message: message}
}

// Wrap is New with an underlying cause.
func Wrap(kind Kind, err error, message string) *HTTPError {
	return &HTTPError{Code: StatusFor(kind), Kind: kind, Message: message, Err: err}
}

// StatusFor returns the HTTP status used for kind.
func StatusFor(kind Kind) int {
	if code, ok := kindStatus[kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// KindOf extracts the kind from err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he.Kind
	}
	return KindInternal
}

// As returns the *HTTPError in err's chain, or a KindInternal error wrapping err.
func As(err error) *HTTPError {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he
	}
	return Wrap(KindInternal, err, "internal error")
}

// Retryable reports whether the caller may retry the failed operation unchanged.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindStoreUnavailable, KindAvailabilityLookupFailed:
		return true
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidInput             = New(KindInvalidInput, "invalid input")
	ErrUnknownBlock             = New(KindUnknownBlock, "unknown block")
	ErrDuplicateName            = New(KindDuplicateName, "block name already exists")
	ErrBlockFull                = New(KindBlockFull, "block is full")
	ErrAlreadyParked            = New(KindAlreadyParked, "vehicle already has an active session")
	ErrNoActiveSession          = New(KindNoActiveSession, "no active session for vehicle")
	ErrMultipleActiveSessions   = New(KindMultipleActiveSessions, "vehicle has more than one active session")
	ErrAvailabilityLookupFailed = New(KindAvailabilityLookupFailed, "availability could not be determined")
	ErrTimestampParse           = New(KindTimestampParseError, "stored timestamp is not RFC 3339")
	ErrStoreUnavailable         = New(KindStoreUnavailable, "store unavailable")
	ErrConstraintViolation      = New(KindConstraintViolation, "constraint violation")
)

// Helper for common errors
var (
	ErrBadRequest = func(msg string) *HTTPError { return New(KindInvalidInput, msg) }
)
