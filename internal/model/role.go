// Package model defines the closed domain enumerations and the pure business
// rules that do not touch the database: roles, hall and booking statuses, the
// booking cancellation state machine and field validation.
package model

// Role is the closed set of account roles. Roles are disjoint: an admin has
// no implicit owner or client privileges; any admin-only shortcut is an
// explicit handler path.
type Role string

const (
	RoleClient Role = "client"
	RoleOwner  Role = "hall_owner"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a raw string (JWT claim, DB column) onto a Role. The second
// return value is false for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleOwner, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }
