package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call to the content server.
type Kind int

const (
	// KindUnavailable means the server is down or answered its health check wrong.
	KindUnavailable Kind = iota
	// KindNotFound means the server has no such resource.
	KindNotFound
	// KindBadResponse means the server answered with an unexpected status or body.
	KindBadResponse
	// KindTransport means the request never got a response.
	KindTransport
	// KindRejected means the server refused a write.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindNotFound:
		return "not found"
	case KindBadResponse:
		return "bad response"
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	}
	return "unknown"
}

var (
	ErrUnavailable = errors.New("content server unavailable")
	ErrNotFound    = errors.New("content server resource not found")
	ErrBadResponse = errors.New("bad response from content server")
	ErrTransport   = errors.New("content server transport error")
	ErrRejected    = errors.New("content server rejected request")
)

// Error describes a failed call. errors.Is matches it against the sentinel
// for its Kind.
type Error struct {
	Kind   Kind
	Status int
	Op     string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnavailable:
		return ErrUnavailable
	case KindNotFound:
		return ErrNotFound
	case KindBadResponse:
		return ErrBadResponse
	case KindTransport:
		return ErrTransport
	case KindRejected:
		return ErrRejected
	}
	return nil
}

// IsKind reports whether err is a remote error of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}
