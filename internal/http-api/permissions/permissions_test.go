package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRead_AlwaysAllowed(t *testing.T) {
	anon := Caller{}
	assert.True(t, CanRead(anon, KindCatalog))
	assert.True(t, CanRead(anon, KindFeedback))
	assert.True(t, CanRead(Caller{Authenticated: true, Role: RoleUser}, KindCatalog))
}

func TestCanModify(t *testing.T) {
	owner := "7e6cb2a3-90d6-4c29-8a3f-1f0f2a2d9b41"
	other := "b0a4d2cc-5a59-4f5f-9a37-97f6f0f0a111"

	tests := []struct {
		name    string
		caller  Caller
		kind    ResourceKind
		ownerID string
		want    bool
	}{
		{"anonymous feedback", Caller{}, KindFeedback, owner, false},
		{"anonymous catalog", Caller{}, KindCatalog, "", false},
		{"plain user not owner", Caller{Authenticated: true, UserID: other, Role: RoleUser}, KindFeedback, owner, false},
		{"plain user owner", Caller{Authenticated: true, UserID: owner, Role: RoleUser}, KindFeedback, owner, true},
		{"plain user catalog", Caller{Authenticated: true, UserID: owner, Role: RoleUser}, KindCatalog, "", false},
		{"moderator not owner", Caller{Authenticated: true, UserID: other, Role: RoleModerator}, KindFeedback, owner, true},
		{"moderator catalog", Caller{Authenticated: true, UserID: other, Role: RoleModerator}, KindCatalog, "", true},
		{"admin catalog", Caller{Authenticated: true, UserID: other, Role: RoleAdmin}, KindCatalog, "", true},
		{"superuser with user role", Caller{Authenticated: true, UserID: other, Role: RoleUser, IsSuperuser: true}, KindCatalog, "", true},
		{"owner with empty owner id", Caller{Authenticated: true, UserID: owner, Role: RoleUser}, KindFeedback, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.caller, tt.kind, tt.ownerID))
		})
	}
}

func TestAdmin(t *testing.T) {
	assert.False(t, Caller{Authenticated: true, Role: RoleModerator}.Admin())
	assert.True(t, Caller{Authenticated: true, Role: RoleAdmin}.Admin())
	assert.True(t, Caller{Authenticated: true, Role: RoleUser, IsSuperuser: true}.Admin())
	assert.False(t, Caller{Role: RoleAdmin}.Admin())
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "moderator", "admin"} {
		r, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, string(r))
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}
