// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// It is a closed two-variant type so authorization gates can switch over it
// exhaustively instead of consulting a loose boolean flag.
type Role string

const (
	// RoleCustomer indicates a regular storefront customer.
	RoleCustomer Role = "customer"
	// RoleAdmin indicates an administrator with access to the dashboard.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromAdminFlag maps the wire-level administrator flag onto the Role type.
func RoleFromAdminFlag(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}

	return RoleCustomer
}
