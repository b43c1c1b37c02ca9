package users

import (
	"testing"
	"time"

	"shoply/globals"
	"shoply/middleware"
	"shoply/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	globals.JwtSecret = []byte("test_secret")

	user := models.User{ID: "u1", Email: "a@b.com"}
	tok, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := middleware.ValidateJWT("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestGenerateTokenExpiresInOneHour(t *testing.T) {
	globals.JwtSecret = []byte("test_secret")

	tok, err := GenerateToken(models.User{ID: "u1"})
	require.NoError(t, err)

	claims := &middleware.Claims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 55*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
}
