// Package cryptox derives the opaque credential placeholder stored with each
// local account. It is not a security boundary: the local store is readable
// by anyone with access to the device.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/atscv/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Kept light because hashing happens on the client
// during interactive sign-up.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32

	SaltSize = 16
)

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashCredential derives the stored credential from a password and salt.
func HashCredential(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyCredential reports whether password hashes to expected under salt.
func VerifyCredential(password, salt, expected []byte) bool {
	if len(expected) == 0 {
		return false
	}
	got := HashCredential(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}
