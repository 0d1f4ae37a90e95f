package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCodecIssueAndValidate(t *testing.T) {
	c := NewCodec(testSecret, 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	access, err := c.IssueAccess(userID)
	require.NoError(t, err)
	refresh, err := c.IssueRefresh(userID)
	require.NoError(t, err)

	assert.True(t, c.Validate(access))
	assert.True(t, c.Validate(refresh))

	sub, err := c.Subject(access)
	require.NoError(t, err)
	assert.Equal(t, userID, sub)

	sub, err = c.Subject(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, sub)
}

func TestCodecRejectsGarbage(t *testing.T) {
	c := NewCodec(testSecret, 15*time.Minute, 7*24*time.Hour)

	assert.False(t, c.Validate(""))
	assert.False(t, c.Validate("garbage"))
	assert.False(t, c.Validate("a.b.c"))

	_, err := c.Subject("garbage")
	assert.Error(t, err)
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	issuer := NewCodec(testSecret, 15*time.Minute, 7*24*time.Hour)
	verifier := NewCodec("another-secret-another-secret!!!", 15*time.Minute, 7*24*time.Hour)

	token, err := issuer.IssueAccess(uuid.New())
	require.NoError(t, err)
	assert.False(t, verifier.Validate(token))
}

func TestCodecRejectsTamperedToken(t *testing.T) {
	c := NewCodec(testSecret, 15*time.Minute, 7*24*time.Hour)
	token, err := c.IssueAccess(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	assert.False(t, c.Validate(tampered))
}

func TestCodecExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	c := NewCodec(testSecret, time.Minute, 7*24*time.Hour).
		WithClock(func() time.Time { return now })

	token, err := c.IssueAccess(uuid.New())
	require.NoError(t, err)

	now = issued.Add(59 * time.Second)
	assert.True(t, c.Validate(token), "still inside validity window")

	now = issued.Add(61 * time.Second)
	assert.False(t, c.Validate(token), "past expiry")
}

func TestCodecAccessAndRefreshDifferOnlyInLifetime(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	c := NewCodec(testSecret, time.Minute, time.Hour).
		WithClock(func() time.Time { return now })
	userID := uuid.New()

	access, err := c.IssueAccess(userID)
	require.NoError(t, err)
	refresh, err := c.IssueRefresh(userID)
	require.NoError(t, err)

	now = issued.Add(30 * time.Minute)
	assert.False(t, c.Validate(access))
	assert.True(t, c.Validate(refresh))

	sub, err := c.Subject(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, sub)
}
