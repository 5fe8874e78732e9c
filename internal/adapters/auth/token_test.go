package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_Roundtrip(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-123", "mom@example.com", []string{"parent"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTCodec_EmbedsClaims(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-123", "mom@example.com", []string{"parent", "member"}, time.Hour)
	require.NoError(t, err)

	var claims jwtClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "mom@example.com", claims.Email)
	assert.Equal(t, []string{"parent", "member"}, claims.Roles)
}

func TestJWTCodec_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTCodec("secret-one")
	verifier := NewJWTCodec("secret-two")

	token, err := issuer.Issue("user-123", "mom@example.com", nil, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_RejectsExpiredToken(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-123", "mom@example.com", nil, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_RejectsGarbage(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	_, err := codec.Verify("not-a-jwt")
	assert.Error(t, err)
}

func TestJWTCodec_RejectsUnsignedToken(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.Error(t, err)
}
