// Package common defines shared constants and sentinel errors used across
// client and server layers of the idea board. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Account errors.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrAlreadyVerified   = errors.New("email already verified")
	ErrUnauthenticated   = errors.New("unauthenticated")

	// One-time code errors.
	ErrCodeMismatch = errors.New("verification code mismatch")
	ErrCodeExpired  = errors.New("verification code expired")

	// Validation errors (wrapped together with the failing field details).
	ErrValidation = errors.New("validation error")

	// Session token errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
