package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hash)
	assert.True(t, IsPasswordHash(hash))

	assert.True(t, h.Verify(hash, "p"))
	assert.False(t, h.Verify(hash, "P"))
	assert.False(t, h.Verify("p", "p"), "plaintext must never verify against itself")
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 10, NewPasswordHasher(10).Cost())
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestIsPasswordHash(t *testing.T) {
	assert.False(t, IsPasswordHash("admin123"))
	assert.False(t, IsPasswordHash(""))
}
