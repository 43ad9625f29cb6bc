package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apitemplate/go-user-api/pkg/helpers"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := helpers.HashPassword("123456", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, helpers.CheckPassword(hash, "123456"))
	assert.False(t, helpers.CheckPassword(hash, "1234567"))
	assert.False(t, helpers.CheckPassword(hash, ""))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := helpers.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := helpers.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, helpers.CheckPassword(h1, "secret"))
	assert.True(t, helpers.CheckPassword(h2, "secret"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, helpers.CheckPassword("not-a-bcrypt-hash", "secret"))
	assert.False(t, helpers.CheckPassword("", "secret"))
}
