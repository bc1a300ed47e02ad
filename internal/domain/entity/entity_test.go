package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		ok       bool
	}{
		{StatusApplied, StatusReviewed, true},
		{StatusReviewed, StatusShortlisted, true},
		{StatusShortlisted, StatusInterview, true},
		{StatusInterview, StatusHired, true},
		{StatusApplied, StatusRejected, true},
		{StatusInterview, StatusRejected, true},
		{StatusApplied, StatusApplied, true},
		{StatusHired, StatusHired, true},
		{StatusApplied, StatusHired, false},
		{StatusReviewed, StatusApplied, false},
		{StatusHired, StatusRejected, false},
		{StatusRejected, StatusReviewed, false},
		{StatusApplied, "MAYBE", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEnums(t *testing.T) {
	assert.True(t, JobHybrid.Valid())
	assert.False(t, JobType("full_time").Valid())
	assert.True(t, RoleSeeker.Valid())
	assert.False(t, Role("").Valid())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusInterview.IsTerminal())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestPublicUserHidesSecrets(t *testing.T) {
	tok := "abc"
	u := &User{ID: "u1", Email: "jane@example.com", Password: "hash", Role: RoleSeeker, VerificationToken: &tok, AvatarURL: "https://cdn/a.png"}
	b, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "abc")
	assert.Contains(t, string(b), `"avatar":"https://cdn/a.png"`)

	assert.Equal(t, AuthUser{ID: "u1", Email: "jane@example.com", Role: RoleSeeker, Avatar: "https://cdn/a.png"}, u.Auth())
	assert.False(t, u.Auth().IsAdmin())
}
