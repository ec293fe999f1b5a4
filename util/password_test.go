package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	assert.NoError(t, err)
	assert.Len(t, salt, 32) // 16 bytes hex encoded

	other, err := GenerateSalt()
	assert.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestHashPasswordArgon2_RoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	assert.NoError(t, err)

	hashed, err := HashPasswordArgon2("supersecret", salt)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "argon2id$"))

	match, err := VerifyPassword("supersecret", hashed, salt)
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("wrongpass", hashed, salt)
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestHashPasswordArgon2_InvalidSalt(t *testing.T) {
	_, err := HashPasswordArgon2("supersecret", "not-hex!")
	assert.Error(t, err)
}

func TestHashPasswordArgon2_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	assert.NoError(t, err)

	first, err := HashPasswordArgon2("supersecret", salt)
	assert.NoError(t, err)
	second, err := HashPasswordArgon2("supersecret", salt)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVerifyPassword_LegacyHash(t *testing.T) {
	SetJWTSecret("legacy-test-secret")
	defer SetJWTSecret("")

	legacy := HashPassword("oldsecret")
	assert.NotContains(t, legacy, "argon2id$")

	match, err := VerifyPassword("oldsecret", legacy, "")
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("wrong", legacy, "")
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestSetJWTSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	assert.Equal(t, []byte("secret-one"), GetJWTSecretByte())

	SetJWTSecret("secret-two")
	assert.Equal(t, []byte("secret-two"), GetJWTSecretByte())
}
