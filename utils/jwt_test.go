package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-123", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseGarbageToken(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestSanitizeStripsScripts(t *testing.T) {
	out := Sanitize(`hello <script>alert(1)</script><b>world</b>`)
	assert.NotContains(t, out, "script")
	assert.Contains(t, out, "<b>world</b>")
}
