// Package auth provides JWT issuing/parsing, password hashing, and the
// role permission check.
package auth

// Role is an enumerated actor role. Authorization decisions go through
// Allowed instead of ad-hoc string comparisons.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Allowed reports whether the actor role is one of the required roles.
// An empty required set means any authenticated actor is allowed.
func Allowed(actor Role, required ...Role) bool {
	if len(required) == 0 {
		return actor.Valid()
	}
	for _, r := range required {
		if actor == r {
			return true
		}
	}
	return false
}
