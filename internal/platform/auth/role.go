package auth

import "fmt"

// Role is the closed set of user roles. Authorization checks are
// set-membership on this type, never substring matching, so a role like
// "admin" can never satisfy a check for a role it merely prefixes.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"
)

var validRoles = map[Role]bool{
	RoleAdmin: true, RoleDoctor: true, RoleStaff: true, RolePatient: true,
}

// ParseRole validates a role string. Empty defaults to patient.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RolePatient, nil
	}
	r := Role(s)
	if !validRoles[r] {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

// Satisfies reports whether the role passes a check for any of allowed.
// Admin satisfies every check.
func (r Role) Satisfies(allowed ...Role) bool {
	if r == RoleAdmin {
		return true
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
