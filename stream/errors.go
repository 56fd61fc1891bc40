package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput marks input which violates the grammar of its format.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedValue marks a value the destination format cannot represent.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnsupportedKeyType marks a mapping key the destination format
	// cannot represent as a key.
	ErrUnsupportedKeyType = fmt.Errorf("%w: unsupported key type", ErrUnsupportedValue)
)

// Error represents a structural error detected while tracking state.
// Structural errors mean the producer emitted an impossible event sequence,
// so they classify as malformed input.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return ErrMalformedInput
}

// IOError wraps a failure of the output destination.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "write error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// TranscodeError reports the path of the value which could not be copied.
type TranscodeError struct {
	Path string
	Err  error
}

func (e *TranscodeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return "at " + e.Path + ": " + e.Err.Error()
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}
