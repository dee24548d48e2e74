package services

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrConflict         = errors.New("conflicting state")
	ErrSignatureInvalid = errors.New("payment signature invalid")
	ErrGatewayError     = errors.New("payment gateway error")
	ErrOTPInvalid       = errors.New("code invalid or expired")
)

// ValidationError marks client input problems so the HTTP layer can answer
// with 400 instead of 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
