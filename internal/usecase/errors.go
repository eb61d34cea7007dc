package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// DecodeError means the model reply carried no parseable JSON payload.
// The raw reply text is kept so the caller can surface it.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode model reply: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidInput }

// ValidationError means the reply decoded but the extracted record does
// not describe a complete match.
type ValidationError struct {
	Raw string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate extracted record: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// RawReply returns the raw model text attached to an extraction
// failure, if any.
func RawReply(err error) (string, bool) {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Raw, true
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Raw, true
	}
	return "", false
}
