package model

import "fmt"

// Role is the access level embedded in an auth token.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// allRoles lists every role in ascending privilege order.
var allRoles = [...]Role{RoleViewer, RoleEditor, RoleAdmin}

// ParseRole returns the Role named by s.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r.bit() != 0
}

func (r Role) bit() RoleSet {
	switch r {
	case RoleViewer:
		return 1 << 0
	case RoleEditor:
		return 1 << 1
	case RoleAdmin:
		return 1 << 2
	default:
		return 0
	}
}

// RoleSet is a finite set of roles allowed on a route.
type RoleSet uint8

// NewRoleSet builds a set from the given roles. Unknown roles are dropped.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= r.bit()
	}
	return s
}

var (
	// WriterRoles may create and update products.
	WriterRoles = NewRoleSet(RoleEditor, RoleAdmin)
	// AdminRoles may delete products.
	AdminRoles = NewRoleSet(RoleAdmin)
)

// Allows reports whether r is a member of s.
func (s RoleSet) Allows(r Role) bool {
	b := r.bit()
	return b != 0 && s&b == b
}

// Roles returns the members of s in ascending privilege order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(allRoles))
	for _, r := range allRoles {
		if s.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}
