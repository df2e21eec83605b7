package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash, "plaintext must never be stored")
	assert.True(t, CompareHashAndPassword(hash, "secret1"))
	assert.False(t, CompareHashAndPassword(hash, "secret2"))
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	h1, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashPasswordCostFallback(t *testing.T) {
	// Out-of-range cost falls back to the default work factor.
	hash, err := HashPassword("secret1", -1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCompareHashAndPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-digest", "secret1"))
}
