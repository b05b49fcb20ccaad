package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret123", "mina@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, auth.CheckPassword(hash, "secret123", "mina@example.com"))
	assert.False(t, auth.CheckPassword(hash, "wrong", "mina@example.com"))

	// The email length is part of the salt, so the same password checked
	// against a different-length email must fail.
	assert.False(t, auth.CheckPassword(hash, "secret123", "mina2@example.com"))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := auth.MintToken(secret, "mina@example.com", "Mina", "Kim")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "mina@example.com", claims.Email)
	assert.Equal(t, "Mina", claims.FirstName)
	assert.Equal(t, "Kim", claims.LastName)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := auth.MintToken([]byte("secret-a"), "mina@example.com", "Mina", "Kim")
	require.NoError(t, err)

	_, err = auth.ParseToken([]byte("secret-b"), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := auth.ParseToken([]byte("test-secret"), "not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}
