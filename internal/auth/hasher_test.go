package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "tradedesk/internal/errors"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", digest)
	assert.True(t, h.Verify("Secret#123", digest))
	assert.False(t, h.Verify("secret#123", digest))

	again, err := h.Hash("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "each digest carries a fresh salt")
}

func TestBcryptHasherMalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("anything", ""))
}

func TestBcryptHasherTooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 73))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "password")
}

func TestNewBcryptHasherCostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
