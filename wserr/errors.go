package wserr

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind represents the web services client error kind enumerate
type Kind int

const (
	// KindConfiguration is a fatal setup error, such as a missing or
	// unparseable service description. Never retried.
	KindConfiguration Kind = iota
	// KindTransport is a network or protocol fault raised by the
	// Transport during an invoke. Logged with the raw exchange and
	// re-raised unchanged.
	KindTransport
	// KindProtocolDecode is a response decoding error beyond what
	// graceful field omission can absorb.
	KindProtocolDecode
	// KindNotImplemented marks an explicitly unsupported operation or
	// message variant, raised before any network activity.
	KindNotImplemented
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindProtocolDecode:
		return "protocol-decode"
	case KindNotImplemented:
		return "not-implemented"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "configuration":
		*k = KindConfiguration
	case "transport":
		*k = KindTransport
	case "protocol-decode":
		*k = KindProtocolDecode
	case "not-implemented":
		*k = KindNotImplemented
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error represents a web services client error.
//
// Operation, RawRequest and RawResponse carry diagnostic context for
// offline analysis of transport faults and are empty for error kinds
// raised before any exchange took place.
type Error struct {
	Kind        Kind
	Operation   string
	Message     string
	RawRequest  string
	RawResponse string

	cause error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s error", e.Kind)
	if e.Operation != "" {
		s += " operation:" + e.Operation
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is (or wraps) an Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func Configuration(msg string, opts ...Option) *Error {
	e := &Error{Kind: KindConfiguration, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Transport(msg string, opts ...Option) *Error {
	e := &Error{Kind: KindTransport, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ProtocolDecode(msg string, opts ...Option) *Error {
	e := &Error{Kind: KindProtocolDecode, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NotImplemented(msg string, opts ...Option) *Error {
	e := &Error{Kind: KindNotImplemented, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
