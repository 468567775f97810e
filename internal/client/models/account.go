package models

import "time"

// Account is a local sign-up record keyed by the case-sensitive email.
// Credential is an opaque hash; see cryptox. Accounts are never mutated.
type Account struct {
	Email      string    `json:"email"`
	Salt       []byte    `json:"salt"`
	Credential []byte    `json:"credential"`
	CreatedAt  time.Time `json:"createdAt"`
}
