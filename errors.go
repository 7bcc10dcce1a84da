package homie

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig       = errors.New("invalid node config")
	ErrOutOfRange          = errors.New("value out of range")
	ErrInvalidEnum         = errors.New("value not in enum")
	ErrTypeMismatch        = errors.New("value type does not match datatype")
	ErrMalformed           = errors.New("malformed payload")
	ErrConstraintViolation = errors.New("payload violates format constraint")
	ErrUnknownProperty     = errors.New("unknown property")
	ErrNotRetained         = errors.New("property is not retained")
	ErrTransport           = errors.New("transport error")
	ErrStaleCommand        = errors.New("retained set message ignored")
	ErrDispatcherClosed    = errors.New("dispatcher closed")
)

// BuildError names the first invalid field of a NodeConfig.
type BuildError struct {
	Field  string
	Reason string
}

func (e *BuildError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidConfig, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *BuildError) Unwrap() error { return ErrInvalidConfig }

func buildErr(field, format string, args ...any) *BuildError {
	return &BuildError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// EncodeErrorKind classifies an EncodeError.
type EncodeErrorKind int

const (
	EncodeOutOfRange EncodeErrorKind = iota
	EncodeInvalidEnum
	EncodeTypeMismatch
)

// EncodeError is returned when a typed value cannot be put on the wire.
type EncodeError struct {
	Kind   EncodeErrorKind
	Value  any
	Detail string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%v: %v (%s)", e.Unwrap(), e.Value, e.Detail)
}

func (e *EncodeError) Unwrap() error {
	switch e.Kind {
	case EncodeOutOfRange:
		return ErrOutOfRange
	case EncodeInvalidEnum:
		return ErrInvalidEnum
	default:
		return ErrTypeMismatch
	}
}

// DecodeErrorKind classifies a DecodeError.
type DecodeErrorKind int

const (
	DecodeMalformed DecodeErrorKind = iota
	DecodeConstraintViolation
)

// DecodeError is returned when a wire payload cannot be turned into a typed value.
type DecodeError struct {
	Kind    DecodeErrorKind
	Payload string
	Detail  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %q (%s)", e.Unwrap(), e.Payload, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	if e.Kind == DecodeConstraintViolation {
		return ErrConstraintViolation
	}
	return ErrMalformed
}

// TransportError wraps a failure reported by the transport collaborator.
type TransportError struct {
	Topic string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v on %s: %v", ErrTransport, e.Topic, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// PublishError is what Publisher methods return.
type PublishError struct {
	Property string
	Err      error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.Property, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// CommandError reports an inbound command that was dropped by a Dispatcher.
type CommandError struct {
	Node     string
	Property string
	Topic    string
	Payload  string
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s/%s dropped: %v", e.Node, e.Property, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
