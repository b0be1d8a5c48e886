package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, VerifyPassword(hash, "hunter22"))
	require.False(t, VerifyPassword(hash, "hunter23"))
	require.False(t, VerifyPassword("", "hunter22"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("66f1a2b3c4d5e6f7a8b9c0d1", "secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, "66f1a2b3c4d5e6f7a8b9c0d1", claims.UserID)
	require.Equal(t, "66f1a2b3c4d5e6f7a8b9c0d1", claims.Subject)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken(token, "other")
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not.a.token", "secret")
		require.Error(t, err)
	})
}

func TestNewExternalID(t *testing.T) {
	shape := regexp.MustCompile(`^[A-Z]{3}-\d{2}[A-Z]-\d{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewExternalID()
		require.Regexp(t, shape, id)
		seen[id] = true
	}
	// collisions over this many draws would point at a broken generator
	require.Greater(t, len(seen), 95)
}
