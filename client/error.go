package client

import (
	"errors"
	"fmt"
)

// Kind names the pipeline stage that failed.
type Kind uint8

const (
	// KindEncode means the outgoing payload could not be serialised.
	KindEncode Kind = iota + 1
	// KindTransport means the transport reported a failure.
	KindTransport
	// KindDecode means the response body could not be interpreted.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindEncode:
		return "encode"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

var (
	// ErrEncode matches any [Error] of kind [KindEncode].
	ErrEncode = errors.New("encode failed")
	// ErrTransport matches any [Error] of kind [KindTransport].
	ErrTransport = errors.New("transport failed")
	// ErrDecode matches any [Error] of kind [KindDecode].
	ErrDecode = errors.New("decode failed")

	// ErrInvalidBaseURL is returned by [New] when the base URL is not
	// absolute or has no host.
	ErrInvalidBaseURL = errors.New("invalid base url")
	// ErrInvalidUTF8 is returned when text or JSON bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
	// ErrTypeMismatch is returned when a text body is requested as a
	// type that cannot hold a string.
	ErrTypeMismatch = errors.New("response type mismatch")
	// ErrPanic wraps a value recovered from a panicking pipeline step.
	ErrPanic = errors.New("recovered panic")
)

// Error is returned by every failed call. The underlying cause is
// reachable with [errors.Unwrap], and the stage with errors.Is against
// [ErrEncode], [ErrTransport] or [ErrDecode].
type Error struct {
	Kind   Kind
	Method string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrEncode:
		return e.Kind == KindEncode
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// IsTransport reports whether err came from the transport stage.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
