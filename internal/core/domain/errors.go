package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrRateLimited        = errors.New("rate limited")
	ErrUnknownStore       = errors.New("unknown store")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// InputError is a validation failure whose message is safe to return to the
// client. It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Msg string
}

func NewInputError(msg string) *InputError {
	return &InputError{Msg: msg}
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Unwrap() error { return ErrInvalidInput }
