package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, verifier.Compare(hash, "correct horse"))
	assert.Error(t, verifier.Compare(hash, "wrong horse"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).Cost())
	assert.Equal(t, 10, NewBcryptHasher(10).Cost())
}

func TestBcryptVerifier_GarbageHash(t *testing.T) {
	assert.Error(t, NewBcryptVerifier().Compare("not-a-hash", "password"))
}
