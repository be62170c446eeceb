package auth

import (
	"testing"
	"time"

	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fanaticos",
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID: uuid.NewString(),
		UserID:   uuid.NewString(),
		Username: "vendedor",
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(config.JWTConfig{Secret: testSecret, Issuer: "fanaticos"})
	require.True(t, v.Enabled())

	t.Run("valid token", func(t *testing.T) {
		claims := validClaims()
		got, err := v.Verify(sign(t, testSecret, claims))
		require.NoError(t, err)
		assert.Equal(t, claims.TenantID, got.TenantID)
		userID, err := got.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, userID.String())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(sign(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Verify(sign(t, "another-secret-key-of-32-chars!!", validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "someone-else"
		_, err := v.Verify(sign(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user", func(t *testing.T) {
		claims := validClaims()
		claims.UserID = ""
		_, err := v.Verify(sign(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifier_Disabled(t *testing.T) {
	v := NewVerifier(config.JWTConfig{})
	assert.False(t, v.Enabled())
	_, err := v.Verify("anything")
	assert.ErrorIs(t, err, ErrVerifierDisabled)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}
