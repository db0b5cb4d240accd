package hashing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashCompare(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	h, err := b.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", h)

	assert.True(t, b.Compare(h, "admin123"))
	assert.False(t, b.Compare(h, "admin124"))
	assert.False(t, b.Compare("", "admin123"))
}

func TestBcrypt_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}

func TestBcrypt_TooLong(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)
	_, err := b.Hash(strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}
