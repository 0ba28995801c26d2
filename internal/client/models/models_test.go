package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1}, {499, 1}, {500, 2}, {999, 2}, {1000, 3}, {-5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestGamificationState_DerivedViews(t *testing.T) {
	s := GamificationState{XP: 120, Level: LevelForXP(120)}
	assert.Equal(t, 380, s.XPToNextLevel())
	assert.InDelta(t, 0.24, s.XPProgress(), 1e-9)

	s = GamificationState{XP: 1000, Level: LevelForXP(1000)}
	assert.Equal(t, 500, s.XPToNextLevel())
	assert.Zero(t, s.XPProgress())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
	assert.Equal(t, NormalizeEmail("A@B.com "), NormalizeEmail("a@b.com"))
}

func TestDefaultDisplayName(t *testing.T) {
	assert.Equal(t, "Sara", DefaultDisplayName("  Sara ", "x@y.z"))
	assert.Equal(t, "test", DefaultDisplayName("", "test@x.com"))
	assert.Equal(t, "test", DefaultDisplayName("   ", "test@x.com"))
}

func TestParseAuthMode(t *testing.T) {
	assert.Equal(t, AuthModeGuest, ParseAuthMode("guest"))
	assert.Equal(t, AuthModeAuthenticated, ParseAuthMode("authenticated"))
	assert.Equal(t, AuthModeNone, ParseAuthMode("none"))
	assert.Equal(t, AuthModeNone, ParseAuthMode(""))
	assert.Equal(t, AuthModeNone, ParseAuthMode("admin"))
}

func TestSessionConstructors_KeepUserInvariant(t *testing.T) {
	assert.Nil(t, NoSession().User)
	assert.Nil(t, GuestSession().User)
	assert.False(t, GuestSession().IsAuthenticated())

	s := AuthenticatedSession(User{ID: "u1"})
	require.NotNil(t, s.User)
	assert.True(t, s.IsAuthenticated())
}

func TestStoredCredential_UserOmitsSecrets(t *testing.T) {
	c := StoredCredential{ID: "u1", Email: "a@b.com", DisplayName: "a", PasswordHash: []byte{1, 2}, Salt: []byte{3}}

	b, err := json.Marshal(c.User())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "passwordHash")
	assert.NotContains(t, string(b), "salt")
	assert.Equal(t, ProviderEmail, c.User().Provider)
}

func TestRankInfo_Contains(t *testing.T) {
	r := RankInfo{MinLevel: 5, MaxLevel: 9}
	assert.False(t, r.Contains(4))
	assert.True(t, r.Contains(5))
	assert.True(t, r.Contains(9))
	assert.False(t, r.Contains(10))

	open := RankInfo{MinLevel: 50}
	assert.True(t, open.Contains(5000))
}
