// Package common defines shared sentinel errors used across the service,
// repository, and transport layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrorEmailTaken = errors.New("email already registered")

	// Ledger errors.
	ErrorCategoryInUse   = errors.New("category has transactions")
	ErrorInvalidCategory = errors.New("category does not exist or belongs to another user")

	// Token lifecycle errors. All of them map to ErrorUnauthorized at the
	// boundary but stay distinct for logging and tests.
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature mismatch")
	ErrTokenNoSubject    = errors.New("token has no subject")
)
