package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(now *time.Time) *JWTManager {
	return NewJWTManager(JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "test",
	}).WithClock(func() time.Time { return *now })
}

func TestAccessTokenValidForFifteenMinutes(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestJWT(&now)

	tok, exp, err := m.IssueAccessToken("acc-1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute), exp)

	now = now.Add(14*time.Minute + 59*time.Second)
	claims, err := m.Verify(tok, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)

	now = now.Add(time.Second)
	_, err = m.Verify(tok, AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenValidForSevenDays(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestJWT(&now)

	tok, _, err := m.IssueRefreshToken("acc-1")
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour - time.Second)
	claims, err := m.Verify(tok, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)

	now = now.Add(time.Second)
	_, err = m.Verify(tok, RefreshToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestJWT(&now)

	access, _, err := m.IssueAccessToken("acc-1", "")
	require.NoError(t, err)
	refresh, _, err := m.IssueRefreshToken("acc-1")
	require.NoError(t, err)

	_, err = m.Verify(access, RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify(refresh, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTamperedAndForeignTokens(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestJWT(&now)

	tok, _, err := m.IssueAccessToken("acc-1", "a@x.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	parts[2] = strings.Repeat("A", len(parts[2]))
	_, err = m.Verify(strings.Join(parts, "."), AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTManager(JWTConfig{AccessSecret: "other", RefreshSecret: "other", AccessTTL: time.Minute, RefreshTTL: time.Minute}).
		WithClock(func() time.Time { return now })
	foreign, _, err := other.IssueAccessToken("acc-1", "")
	require.NoError(t, err)
	_, err = m.Verify(foreign, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not-a-jwt", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify("", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
