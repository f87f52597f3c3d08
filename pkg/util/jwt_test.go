package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken("admin@grandeclip.com", "관리자", testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateAccessToken(t *testing.T) {
	t.Run("Valid token", func(t *testing.T) {
		token, err := GenerateAccessToken("admin@grandeclip.com", "관리자", testSecret, time.Hour)
		require.NoError(t, err)

		claims, err := ValidateAccessToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "admin@grandeclip.com", claims.Email)
		assert.Equal(t, "관리자", claims.Name)
		assert.Equal(t, "admin@grandeclip.com", claims.Subject)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := GenerateAccessToken("admin@grandeclip.com", "", testSecret, time.Hour)
		require.NoError(t, err)

		_, err = ValidateAccessToken(token, "different-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		token, err := GenerateAccessToken("admin@grandeclip.com", "", testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateAccessToken(token, testSecret)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := ValidateAccessToken("not-a-jwt", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
