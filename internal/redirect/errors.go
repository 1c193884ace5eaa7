package redirect

import (
	"errors"
	"fmt"
)

// Kind classifies a failed redirect API call.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidArgument means the call was rejected before any request was sent.
	KindInvalidArgument
	// KindBadRequest means the API answered 400.
	KindBadRequest
	// KindNotFound means the API answered 404 to a single-redirect lookup.
	KindNotFound
	// KindAPI covers every other unexpected status.
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindBadRequest:
		return "bad request"
	case KindNotFound:
		return "not found"
	case KindAPI:
		return "api error"
	default:
		return "unknown"
	}
}

// Sentinels matched by *Error through errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("redirect not found")
	ErrAPI             = errors.New("redirect api error")

	ErrClientClosed   = errors.New("client is closed")
	ErrInvalidBaseURI = errors.New("invalid base uri")
)

// Error is returned for argument and status failures. Status is zero for
// argument errors. Op names the client method and is informational only; the
// message of a status failure keeps the fixed API wording.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets callers match on kind with errors.Is(err, redirect.ErrNotFound).
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrAPI:
		return e.Kind == KindAPI
	}
	return false
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func invalidArgument(op, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Message: op + ": " + message}
}

func statusError(op string, kind Kind, actual, expected int, requestURI string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Status:  actual,
		Message: fmt.Sprintf("the redirect api returned a %d response for %s (expected %d)", actual, requestURI, expected),
	}
}
