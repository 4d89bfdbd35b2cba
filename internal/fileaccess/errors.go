package fileaccess

import (
	"errors"
	"fmt"
)

// Kind classifies a file access failure
type Kind int

const (
	KindInvalidExtension Kind = iota + 1
	KindNotFound
	KindIoFailure
)

var (
	ErrInvalidExtension = errors.New("invalid extension")
	ErrNotFound         = errors.New("not found")
	ErrIoFailure        = errors.New("io failure")
)

// Error is returned by every file access operation. Its message is the text shown to the user; callers that need to
// branch should use errors.Is with ErrInvalidExtension, ErrNotFound or ErrIoFailure rather than matching on the text
type Error struct {
	Kind    Kind
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil && e.Kind == KindIoFailure {
		return fmt.Sprintf("%s: %s", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidExtension:
		return target == ErrInvalidExtension
	case KindNotFound:
		return target == ErrNotFound
	case KindIoFailure:
		return target == ErrIoFailure
	}
	return false
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, message: message, cause: cause}
}
