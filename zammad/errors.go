package zammad

import (
	"errors"
	"fmt"
)

// Kind classifies a client error
type Kind int

const (
	// KindUnexpectedResponse means the server sent something the client cannot trust
	KindUnexpectedResponse Kind = iota + 1
	// KindInvalidRequest means the caller passed bad arguments; no request was sent
	KindInvalidRequest
	// KindUnimplemented means the operation is not supported by this client
	KindUnimplemented
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindUnexpectedResponse:
		return "UnexpectedResponse"
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindUnimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// Kind-only sentinels for use with errors.Is
var (
	ErrUnexpectedResponse = &Error{Kind: KindUnexpectedResponse}
	ErrInvalidRequest     = &Error{Kind: KindInvalidRequest}
	ErrUnimplemented      = &Error{Kind: KindUnimplemented}
)

// Error is returned by every validation and decoding step of the client.
// Expected and Received are only set for KindUnexpectedResponse.
type Error struct {
	Kind     Kind
	Message  string
	Expected string
	Received string
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no details"
	}
	if e.Kind == KindUnexpectedResponse {
		return fmt.Sprintf("zammad: %s: %s (expected %s, received %s)", e.Kind, msg, e.Expected, e.Received)
	}
	return fmt.Sprintf("zammad: %s: %s", e.Kind, msg)
}

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func unexpectedResponse(message, expected, received string) *Error {
	return &Error{
		Kind:     KindUnexpectedResponse,
		Message:  message,
		Expected: expected,
		Received: received,
	}
}

func invalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

func unimplemented(message string) *Error {
	return &Error{Kind: KindUnimplemented, Message: message}
}

// IsUnexpectedResponse reports whether err is a KindUnexpectedResponse error
func IsUnexpectedResponse(err error) bool {
	return errors.Is(err, ErrUnexpectedResponse)
}

// IsInvalidRequest reports whether err is a KindInvalidRequest error
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsUnimplemented reports whether err is a KindUnimplemented error
func IsUnimplemented(err error) bool {
	return errors.Is(err, ErrUnimplemented)
}
