// Package auth holds the credential and access-control primitives of the
// console: password hashing, the authenticated principal and the static
// authorization policy.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "tradedesk/internal/errors"
)

// PasswordHasher produces salted one-way digests and verifies plaintexts
// against them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed digest is
	// a mismatch, not an error.
	Verify(plaintext, digest string) bool
}

// BcryptHasher is the bcrypt PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher; a cost outside bcrypt's accepted
// range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt digest of plaintext with a fresh random salt.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.WithFields(apperrors.ErrValidationFailed,
				map[string]string{"password": "Password must be at most 72 bytes"})
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return string(digest), nil
}

// Verify compares in constant time via bcrypt.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
