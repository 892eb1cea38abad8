package models

import (
	"fmt"
	"strings"
)

// Role is a project member's access level. Values are ordered, so roles
// can be compared directly (RoleOwner > RoleMember).
type Role int

// The numeric values are the ones persisted and sent over the wire.
const (
	RoleNone   Role = 0
	RoleGuest  Role = 5
	RoleViewer Role = 10
	RoleMember Role = 15
	RoleOwner  Role = 20
)

// String returns the lowercase role name
func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleViewer:
		return "viewer"
	case RoleMember:
		return "member"
	case RoleOwner:
		return "owner"
	default:
		return "none"
	}
}

// Valid reports whether r is one of the four assignable roles
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleViewer, RoleMember, RoleOwner:
		return true
	}
	return false
}

// AtLeast reports whether r grants at least the access of min
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// ParseRole maps a role name to its Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "guest":
		return RoleGuest, nil
	case "viewer":
		return RoleViewer, nil
	case "member":
		return RoleMember, nil
	case "owner":
		return RoleOwner, nil
	}
	return RoleNone, fmt.Errorf("invalid role '%s' (must be: guest, viewer, member, owner)", s)
}

// Member grants a user a role on a project
type Member struct {
	WorkspaceSlug string `json:"workspace"`
	ProjectID     string `json:"project"`
	User          string `json:"user"`
	Role          Role   `json:"role"`
}
