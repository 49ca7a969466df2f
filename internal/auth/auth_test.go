package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	token, err := mgr.GenerateJWT("user-123", "owner")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "owner", claims.Role)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateJWT("user-123", "owner")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	token, err := mgr.GenerateJWT("user-123", "owner")
	require.NoError(t, err)

	_, err = mgr.ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
