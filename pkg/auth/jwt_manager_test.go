package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thekizzer/microblog/pkg/auth"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Hour)

	token, err := mgr.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := mgr.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Hour)
	other := auth.NewJWTManager("other-secret", time.Hour)

	token, err := mgr.Generate(7)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := mgr.Generate(7)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	require.Error(t, err)
}

func TestExpiry(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Hour)

	token, err := mgr.Generate(7)
	require.NoError(t, err)

	exp, err := mgr.Expiry(token)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	_, err = auth.ExtractTokenFromHeader(req)
	require.Error(t, err)

	req.Header.Set("Authorization", "Bearer abc123")
	token, err := auth.ExtractTokenFromHeader(req)
	require.NoError(t, err)
	require.Equal(t, "abc123", token)
}
