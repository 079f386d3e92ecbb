package model

import "fmt"

// Role is the closed set of user roles. Authority over a hostel is derived from
// the role plus the hostel's staff assignments, never from the string alone.
type Role string

const (
	RoleStudent   Role = "student"
	RoleCaretaker Role = "caretaker"
	RoleWarden    Role = "warden"
	RoleDean      Role = "dean"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a raw role string coming from a token or request body.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleCaretaker, RoleWarden, RoleDean, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsStaff reports whether the role belongs to hostel staff rather than a resident.
func (r Role) IsStaff() bool {
	switch r {
	case RoleCaretaker, RoleWarden, RoleDean, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
