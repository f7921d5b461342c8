package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Password123", hash)
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := HashPassword("Password123")
	require.NoError(t, err)
	h2, err := HashPassword("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "two hashes of the same input must differ")

	assert.True(t, CompareHashAndPassword(h1, "Password123"))
	assert.True(t, CompareHashAndPassword(h2, "Password123"))
}

func TestCompareHashAndPassword(t *testing.T) {
	hash, err := HashPassword("Password123")
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "Password123"))
	assert.False(t, CompareHashAndPassword(hash, "password123"))
	assert.False(t, CompareHashAndPassword(hash, ""))
}

func TestCompareHashAndPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-digest", "Password123"))
	assert.False(t, CompareHashAndPassword("", "Password123"))
}
