// Package common defines shared constants and sentinel errors used across
// the storage, service and CLI layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors (simple rejections, never retried).
	ErrAlreadyExists   = errors.New("an account with this email already exists")
	ErrorUnauthorized  = errors.New("invalid email or password")
	ErrorEmptyEmail    = errors.New("email must not be empty")
	ErrorEmptyPassword = errors.New("password must not be empty")

	// Session errors.
	ErrNotSignedIn = errors.New("not signed in")

	// Entitlement errors.
	ErrEntitlementRequired = errors.New("this feature requires the Pro plan")
)
