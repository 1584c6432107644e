package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, err := m.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_MalformedToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("swordfish")
	require.NoError(t, err)
	assert.NotEqual(t, "swordfish", hash)

	assert.True(t, CheckPassword("swordfish", hash))
	assert.False(t, CheckPassword("not-swordfish", hash))
}
