package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret", ""))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestJWTRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateJWT("operator", "secret", time.Hour, "finpulse")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, "finpulse", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTExpired(t *testing.T) {
	token, _, err := GenerateJWT("operator", "secret", -time.Minute, "finpulse")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		currency string
		amount   string
		want     string
	}{
		{"PKR", "40000", "PKR 40,000.00"},
		{"", "1234.5", "1,234.50"},
		{"USD", "0.005", "USD 0.01"},
		{"USD", "-250", "USD -250.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.currency, decimal.RequireFromString(tt.amount)))
		})
	}
}
