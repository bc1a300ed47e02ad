package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
)

func TestJWTRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewJWTManager("secret", time.Hour).WithClock(func() time.Time { return now })

	tok, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	id, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestJWTVerifyFailures(t *testing.T) {
	now := time.Now()
	m := NewJWTManager("secret", time.Minute).WithClock(func() time.Time { return now })
	tok, _, err := m.Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Minute).Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	_, err = m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	later := NewJWTManager("secret", time.Minute).WithClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = later.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrExpiredToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	blank, _, err := m.Issue("")
	require.NoError(t, err)
	_, err = m.Verify(blank)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CompareHashAndPassword(hash, "secret123"))
	assert.False(t, CompareHashAndPassword(hash, "secret124"))
}

func TestGenRandomHex(t *testing.T) {
	a, err := GenRandomHex(32)
	require.NoError(t, err)
	b, err := GenRandomHex(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
