package ai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies completion failures so callers can react without
// string matching.
type ErrorKind int

// Error kinds surfaced by the completion client and response parser.
const (
	// ErrKindConfiguration means the endpoint, key, or deployment is missing
	// or malformed. Fails before any network call.
	ErrKindConfiguration ErrorKind = iota + 1
	// ErrKindTransport means the request failed in flight or returned a
	// non-2xx status.
	ErrKindTransport
	// ErrKindEmptyResponse means the API returned zero choices or empty content.
	ErrKindEmptyResponse
	// ErrKindDecode means the response content was not valid JSON or did not
	// match the expected shape for the requested task.
	ErrKindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindConfiguration:
		return "configuration"
	case ErrKindTransport:
		return "transport"
	case ErrKindEmptyResponse:
		return "empty response"
	case ErrKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a completion failure with its kind and, for transport errors, the
// HTTP status code.
type Error struct {
	Err    error
	Msg    string
	Kind   ErrorKind
	Status int
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
