package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHMACVerifierRoundTrip(t *testing.T) {
	v, err := NewHMACVerifier("s3cret", testLogger())
	require.NoError(t, err)

	token, err := IssueToken("s3cret", "user-42", time.Hour)
	require.NoError(t, err)

	claims, err := v.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.GetUserID())
}

func TestHMACVerifierRejects(t *testing.T) {
	v, err := NewHMACVerifier("s3cret", testLogger())
	require.NoError(t, err)

	wrongKey, err := IssueToken("other", "user-42", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("s3cret", "user-42", -time.Minute)
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	anon, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-42", "role": "anon", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong key": wrongKey,
		"expired":   expired,
		"no exp":    noExp,
		"anonymous": anon,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestLegacyNumericUserID(t *testing.T) {
	v, err := NewHMACVerifier("s3cret", testLogger())
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	claims, err := v.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.GetUserID())
}

func TestChainVerifier(t *testing.T) {
	a, err := NewHMACVerifier("first", testLogger())
	require.NoError(t, err)
	b, err := NewHMACVerifier("second", testLogger())
	require.NoError(t, err)
	chain := ChainVerifier{a, b}

	token, err := IssueToken("second", "user-1", time.Hour)
	require.NoError(t, err)
	claims, err := chain.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.GetUserID())

	bad, err := IssueToken("third", "user-1", time.Hour)
	require.NoError(t, err)
	_, err = chain.VerifyToken(bad)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NoError(t, chain.Close())
}
