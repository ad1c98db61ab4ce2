// Package permissions holds the single access decision table used by every
// handler. Roles are a closed enumeration, not free-form strings.
package permissions

// Role of an authenticated user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role string onto the enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// ResourceKind distinguishes the two write policies.
type ResourceKind int

const (
	// KindCatalog: categories, genres, titles. No per-item ownership.
	KindCatalog ResourceKind = iota
	// KindFeedback: reviews and comments. Owned by their author.
	KindFeedback
)

// Caller is the identity a decision is made for. The zero value is an
// unauthenticated caller.
type Caller struct {
	Authenticated bool
	UserID        string
	Role          Role
	IsSuperuser   bool
}

// Elevated reports whether the caller holds moderator or admin powers.
// A superuser is always treated as admin.
func (c Caller) Elevated() bool {
	return c.Authenticated && (c.IsSuperuser || c.Role == RoleAdmin || c.Role == RoleModerator)
}

// Admin reports whether the caller may administer users and other
// admin-only surfaces.
func (c Caller) Admin() bool {
	return c.Authenticated && (c.IsSuperuser || c.Role == RoleAdmin)
}

// CanRead: safe methods are open to everyone, authenticated or not.
func CanRead(Caller, ResourceKind) bool {
	return true
}

// CanModify decides create/update/delete:
//   - unauthenticated callers are always denied
//   - moderator, admin and superuser may modify anything
//   - feedback items may additionally be modified by their author
//   - plain users never modify catalog items
func CanModify(c Caller, kind ResourceKind, ownerID string) bool {
	if !c.Authenticated {
		return false
	}
	if c.Elevated() {
		return true
	}
	return kind == KindFeedback && ownerID != "" && c.UserID == ownerID
}
