package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("123Acb1234")
	require.NoError(t, err)

	assert.NotEqual(t, "123Acb1234", hash)
	assert.NoError(t, VerifyPassword(hash, "123Acb1234"))
	assert.Error(t, VerifyPassword(hash, "wrong-password"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
