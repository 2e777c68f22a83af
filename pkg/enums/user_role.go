package enums

import "fmt"

// UserRole discriminates the account types the reservation platform knows about.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	// UserRoleEmployee has no dedicated creation path yet; employee accounts
	// are seeded out of band.
	UserRoleEmployee      UserRole = "employee"
	UserRoleAdministrator UserRole = "administrator"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleEmployee,
	UserRoleAdministrator,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// LandingPath maps a role to its post-login landing target. The mapping is a
// pure routing decision; unknown roles fall back to the customer landing.
func (u UserRole) LandingPath() string {
	switch u {
	case UserRoleAdministrator:
		return "/home/administrator"
	case UserRoleEmployee:
		return "/home/employee"
	default:
		return "/home/customer"
	}
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
