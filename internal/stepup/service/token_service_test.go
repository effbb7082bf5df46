package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signAccessToken(t *testing.T, secret, userID, email string, expiresIn time.Duration) string {
	t.Helper()

	claims := JWTCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenService_VerifyAccessToken(t *testing.T) {
	const secret = "test-access-secret-key-123"
	ts := NewTokenService(secret)

	t.Run("valid token", func(t *testing.T) {
		token := signAccessToken(t, secret, "user-123", "test@example.com", 15*time.Minute)

		claims, err := ts.VerifyAccessToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signAccessToken(t, "wrong-secret", "user-123", "test@example.com", 15*time.Minute)

		claims, err := ts.VerifyAccessToken(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signAccessToken(t, secret, "user-123", "test@example.com", -time.Minute)

		claims, err := ts.VerifyAccessToken(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("malformed token", func(t *testing.T) {
		claims, err := ts.VerifyAccessToken("not.a.jwt")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		// alg=none is never acceptable for an access token.
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		claims, err := ts.VerifyAccessToken(unsigned)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
