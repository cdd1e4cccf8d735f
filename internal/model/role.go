package model

import "fmt"

// Role is the closed set of caller roles. Privilege is not linear:
// Investor and Business are siblings, so permission checks are matrix
// driven rather than threshold driven (see internal/authz).
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleInvestor Role = "Investor"
	RoleBusiness Role = "Business"
	RoleGuest    Role = "Guest"
)

// ParseRole validates a wire-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleInvestor, RoleBusiness, RoleGuest:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInvestor, RoleBusiness, RoleGuest:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
