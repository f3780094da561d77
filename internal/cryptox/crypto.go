// Package cryptox holds the credential primitives of the account store:
// argon2id password hashing and one-time code generation.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the per-user random salt length in bytes.
	SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	codeMin = 100000
	codeMax = 999999
)

// NewSalt returns a fresh random salt of SaltSize bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives the stored password hash from (password, salt) with argon2id.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword recomputes the hash for candidate and compares it in constant
// time. An empty stored hash never verifies.
func VerifyPassword(candidate, salt, hash []byte) bool {
	if len(hash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(HashPassword(candidate, salt), hash) == 1
}

// NewVerificationCode returns a uniformly random 6-digit code in
// [100000, 999999] as its decimal string.
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// EqualCodes compares two codes in constant time.
func EqualCodes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
