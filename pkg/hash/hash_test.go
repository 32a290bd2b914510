package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", h)

	assert.True(t, CheckPassword(h, "password123"))
	assert.False(t, CheckPassword(h, "wrongpass"))
	assert.False(t, CheckPassword("not-a-hash", "password123"))
}

func TestHashPassword_SaltsEveryHash(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_UsesCost(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret", 5)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestHashPassword_Empty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	h, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, strings.Repeat("a", MaxPasswordBytes)))
}

func TestNormalizeCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NormalizeCost(0))
	assert.Equal(t, bcrypt.MinCost, NormalizeCost(1))
	assert.Equal(t, bcrypt.MaxCost, NormalizeCost(99))
	assert.Equal(t, 12, NormalizeCost(12))
}
