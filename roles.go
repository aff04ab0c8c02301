package auth

// Role is the user's role as encoded in token claims and profiles.
type Role string

const (
	// RoleNone is the unassigned role.
	RoleNone Role = "none"
	// RoleCashier operates a register.
	RoleCashier Role = "cashier"
	// RoleClerk manages inventory.
	RoleClerk Role = "clerk"
	// RoleManager has full store access.
	RoleManager Role = "manager"
)

// IsValid checks if the role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleNone, RoleCashier, RoleClerk, RoleManager:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level.
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleNone:    0,
		RoleCashier: 1,
		RoleClerk:   2,
		RoleManager: 3,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// ParseRole safely parses a string into a Role, falling back to RoleNone
// for unknown values.
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	if !role.IsValid() {
		return RoleNone, false
	}
	return role, true
}

// AllRoles returns the predefined roles in hierarchical order.
func AllRoles() []Role {
	return []Role{RoleNone, RoleCashier, RoleClerk, RoleManager}
}
