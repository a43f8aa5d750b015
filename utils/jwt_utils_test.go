package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-service/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := config.LoadConfig()
	claims := jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsMissingEmail(t *testing.T) {
	cfg := config.LoadConfig()
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}
